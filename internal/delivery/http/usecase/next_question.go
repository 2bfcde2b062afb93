package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
)

// NextQuestion picks the next unanswered question for a session. Ordering
// adapts to how the trainee is doing so far: strong performers get objection
// scenarios pulled forward, struggling ones get standard questions first,
// and questions touching topics they already failed come before everything
// else in their band.
func (u *trainingUsecase) NextQuestion(ctx context.Context, sessionID string) (*entity.NextQuestionResponse, error) {
	questions, err := u.cfg.Repository.FindQuestionsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found for session %s", sessionID)
	}

	evaluations, err := u.cfg.Repository.FindEvaluationsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}

	answered := make(map[string]float64, len(evaluations))
	total := 0.0
	for _, e := range evaluations {
		answered[e.QuestionID] = e.OverallScore
		total += e.OverallScore
	}

	var unanswered []internalEntity.SessionQuestion
	for _, q := range questions {
		if _, ok := answered[q.ID]; !ok {
			unanswered = append(unanswered, q)
		}
	}
	if len(unanswered) == 0 {
		return &entity.NextQuestionResponse{Done: true}, nil
	}

	hasAverage := len(evaluations) > 0
	average := 0.0
	if hasAverage {
		average = total / float64(len(evaluations))
	}

	weakTopics := make(map[string]bool)
	for _, q := range questions {
		score, ok := answered[q.ID]
		if !ok || score >= lowScoreFallbackThreshold {
			continue
		}
		for _, kp := range q.KeyPointList() {
			kp = strings.ToLower(strings.TrimSpace(kp))
			if kp != "" {
				weakTopics[kp] = true
			}
		}
	}

	matchWeight := func(q internalEntity.SessionQuestion) int {
		for _, kp := range q.KeyPointList() {
			if weakTopics[strings.ToLower(strings.TrimSpace(kp))] {
				return 0
			}
		}
		return 1
	}

	typeWeight := func(q internalEntity.SessionQuestion) int {
		if !hasAverage {
			return 0
		}
		switch {
		case average >= positiveFeedbackFloor:
			if q.IsObjection {
				return 0
			}
			return 1
		case average < constructiveFeedbackFloor:
			if q.IsObjection {
				return 1
			}
			return 0
		}
		return 0
	}

	sort.SliceStable(unanswered, func(i, j int) bool {
		qi, qj := unanswered[i], unanswered[j]
		if mi, mj := matchWeight(qi), matchWeight(qj); mi != mj {
			return mi < mj
		}
		if ti, tj := typeWeight(qi), typeWeight(qj); ti != tj {
			return ti < tj
		}
		return qi.Position < qj.Position
	})

	next := toGeneratedQuestion(unanswered[0])
	return &entity.NextQuestionResponse{Done: false, Question: &next}, nil
}
