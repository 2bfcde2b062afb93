package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/jsonextract"
)

type judgeEvaluationJSON struct {
	Accuracy         *float64 `json:"accuracy"`
	Completeness     *float64 `json:"completeness"`
	Clarity          *float64 `json:"clarity"`
	Tone             *float64 `json:"tone"`
	Technique        *float64 `json:"technique"`
	KeyPointsCovered *float64 `json:"key_points_covered"`
	Closing          *float64 `json:"closing"`
	ObjectionScore   *float64 `json:"objection_score"`

	OverallScore       *float64 `json:"overall_score"`
	WhatCorrect        string   `json:"what_correct"`
	WhatMissed         string   `json:"what_missed"`
	WhatWrong          *string  `json:"what_wrong"`
	PrescribedLanguage bool     `json:"prescribed_language_used"`
	Feedback           string   `json:"feedback"`
	SpokenFeedback     string   `json:"spoken_feedback"`
	Evidence           string   `json:"evidence_from_training"`
}

const (
	answerContextTopK     = 5
	evaluatorContextLimit = 1500

	lowScoreFallbackThreshold = 5.0
	keywordCoverageThreshold  = 0.5
	keywordFallbackScore      = 6.5
	semanticStrongThreshold   = 0.80
	semanticStrongScore       = 8.0
	semanticPartialThreshold  = 0.65
	semanticPartialScore      = 6.5

	positiveFeedbackFloor     = 8.0
	constructiveFeedbackFloor = 5.0

	evaluationFailedFeedback = "Evaluation failed due to technical error"
)

// EvaluateAnswer scores one answer against its question. The judge does the
// primary grading; when it fails or returns an implausibly low score for a
// non-empty answer, deterministic keyword and semantic checks can raise the
// result. Exactly one evaluation row is persisted regardless of which path
// produced the score.
func (u *trainingUsecase) EvaluateAnswer(ctx context.Context, sessionID, questionID, userAnswer string) (*entity.AnswerEvaluation, error) {
	session, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	question, err := u.cfg.Repository.FindQuestionByID(u.cfg.DB, questionID)
	if err != nil {
		return nil, fmt.Errorf("question not found: %w", err)
	}
	if question.SessionID != sessionID {
		return nil, fmt.Errorf("question %s does not belong to session %s", questionID, sessionID)
	}

	trainingContent := u.cfg.Retriever.AnswerContext(ctx, session.Category, userAnswer, answerContextTopK)

	eval := u.judgeAnswer(ctx, question, userAnswer, trainingContent)
	eval.SessionID = sessionID
	eval.QuestionID = questionID
	eval.UserAnswer = userAnswer

	u.applyScoreFallbacks(ctx, question, userAnswer, eval)
	u.finalizeEvaluation(question, eval)

	if err := u.cfg.Repository.CreateEvaluation(u.cfg.DB, eval); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	return toAnswerEvaluation(eval), nil
}

func (u *trainingUsecase) judgeAnswer(ctx context.Context, question *internalEntity.SessionQuestion, userAnswer, trainingContent string) *internalEntity.AnswerEvaluation {
	systemPrompt := buildEvaluationPrompt(question, userAnswer, trainingContent)
	temperature := float32(u.settingFloat("llm.temperature_eval", defaultTemperatureEval))
	maxTokens := u.settingInt("llm.max_tokens_answer", defaultMaxTokensAnswer)

	ectx, cancel := context.WithTimeout(ctx, evaluationTimeout)
	defer cancel()

	raw, err := u.cfg.Judge.Complete(ectx, systemPrompt, "Evaluate this answer strictly but fairly.", temperature, maxTokens)
	if err != nil {
		u.cfg.Log.Errorf("judge call failed during evaluation: %v", err)
		return failedEvaluation()
	}

	var parsed judgeEvaluationJSON
	if err := jsonextract.Unmarshal(raw, &parsed); err != nil {
		u.cfg.Log.Errorf("failed to parse judge evaluation: %v", err)
		return failedEvaluation()
	}

	overall := 0.0
	if parsed.OverallScore != nil {
		overall = clampScore(*parsed.OverallScore)
	}

	return &internalEntity.AnswerEvaluation{
		Accuracy:           clampScorePtr(parsed.Accuracy),
		Completeness:       clampScorePtr(parsed.Completeness),
		Clarity:            clampScorePtr(parsed.Clarity),
		Tone:               clampScorePtr(parsed.Tone),
		Technique:          clampScorePtr(parsed.Technique),
		KeyPointsCovered:   clampScorePtr(parsed.KeyPointsCovered),
		Closing:            clampScorePtr(parsed.Closing),
		ObjectionScore:     clampScorePtr(parsed.ObjectionScore),
		OverallScore:       overall,
		Feedback:           parsed.Feedback,
		SpokenFeedback:     parsed.SpokenFeedback,
		WhatCorrect:        parsed.WhatCorrect,
		WhatMissed:         parsed.WhatMissed,
		WhatWrong:          parsed.WhatWrong,
		Evidence:           parsed.Evidence,
		PrescribedLanguage: parsed.PrescribedLanguage,
	}
}

func failedEvaluation() *internalEntity.AnswerEvaluation {
	return &internalEntity.AnswerEvaluation{
		OverallScore:   0,
		Feedback:       evaluationFailedFeedback,
		SpokenFeedback: evaluationFailedFeedback,
	}
}

func buildEvaluationPrompt(question *internalEntity.SessionQuestion, userAnswer, trainingContent string) string {
	content := truncateText(trainingContent, evaluatorContextLimit)
	keyPoints := strings.Join(question.KeyPointList(), "; ")

	if question.IsObjection {
		return fmt.Sprintf(`You are grading how a hair replacement salesperson handled a customer objection.

CUSTOMER OBJECTION: %s

IDEAL RESPONSE: %s
KEY POINTS TO COVER: %s

TRAINING MATERIAL:
%s

SALESPERSON'S RESPONSE: %s

Score each dimension 0-10: tone, technique, key_points_covered, closing, objection_score.
Apply penalties to objection_score for forbidden mistakes: apologizing for the product (-3), arguing with the customer (-5), over-explaining (-2), losing control of the conversation (-4). Add +2 if the response uses the prescribed objection-handling language from the training material.
If the response carries the core meaning of the ideal response, objection_score must be at least 7 even if phrased differently. A short response that is still correct scores at least 8.

Return ONLY valid JSON:
{"tone": 0, "technique": 0, "key_points_covered": 0, "closing": 0, "objection_score": 0, "overall_score": 0, "what_correct": "...", "what_missed": "...", "what_wrong": null, "forbidden_mistakes_made": [], "prescribed_language_used": false, "feedback": "...", "spoken_feedback": "one or two spoken sentences", "evidence_from_training": "..."}`,
			question.QuestionText, question.ExpectedAnswer, keyPoints, content, userAnswer)
	}

	return fmt.Sprintf(`You are grading a hair replacement salesperson's answer to a training exam question.

QUESTION: %s

EXPECTED ANSWER: %s
KEY POINTS TO COVER: %s

TRAINING MATERIAL:
%s

SALESPERSON'S ANSWER: %s

Score each dimension 0-10: accuracy, completeness, clarity.
If the answer carries the core meaning of the expected answer, overall_score must be at least 7 even if phrased differently. A short answer that is still correct scores at least 8. Only facts contradicting the training material justify a low accuracy score.

Return ONLY valid JSON:
{"accuracy": 0, "completeness": 0, "clarity": 0, "overall_score": 0, "what_correct": "...", "what_missed": "...", "what_wrong": null, "prescribed_language_used": false, "feedback": "...", "spoken_feedback": "one or two spoken sentences", "evidence_from_training": "..."}`,
		question.QuestionText, question.ExpectedAnswer, keyPoints, content, userAnswer)
}

// applyScoreFallbacks rescues plausible answers the judge scored near zero.
// The keyword check runs first, then the semantic check; the semantic result
// wins when both fire.
func (u *trainingUsecase) applyScoreFallbacks(ctx context.Context, question *internalEntity.SessionQuestion, userAnswer string, eval *internalEntity.AnswerEvaluation) {
	if eval.OverallScore >= lowScoreFallbackThreshold || strings.TrimSpace(userAnswer) == "" {
		return
	}

	answerLower := strings.ToLower(userAnswer)
	keyPoints := question.KeyPointList()
	if len(keyPoints) > 0 {
		var matched []string
		for _, kp := range keyPoints {
			kp = strings.TrimSpace(kp)
			if kp != "" && strings.Contains(answerLower, strings.ToLower(kp)) {
				matched = append(matched, kp)
			}
		}
		if float64(len(matched))/float64(len(keyPoints)) >= keywordCoverageThreshold {
			score := keywordFallbackScore
			eval.OverallScore = math.Max(eval.OverallScore, score)
			eval.Accuracy = &score
			cited := matched
			if len(cited) > 2 {
				cited = cited[:2]
			}
			eval.Feedback = fmt.Sprintf("Your answer covered key points such as %s.", strings.Join(cited, " and "))
			eval.SpokenFeedback = "Good, you hit the key points there."
			eval.WhatCorrect = strings.Join(matched, ", ")
		}
	}

	expected := strings.TrimSpace(question.ExpectedAnswer)
	if expected == "" {
		return
	}

	ectx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()
	vectors, err := u.cfg.Embedder.Embed(ectx, []string{userAnswer, expected})
	if err != nil || len(vectors) != 2 {
		if err != nil {
			u.cfg.Log.Warnf("semantic fallback embedding failed: %v", err)
		}
		return
	}

	similarity := cosineSimilarity(vectors[0], vectors[1])
	switch {
	case similarity > semanticStrongThreshold:
		accuracy := semanticStrongScore
		completeness := 7.0
		eval.OverallScore = semanticStrongScore
		eval.Accuracy = &accuracy
		eval.Completeness = &completeness
		eval.Feedback = "Your answer closely matches the expected response."
		eval.SpokenFeedback = "That is right, your answer matches what we expect."
	case similarity > semanticPartialThreshold && eval.OverallScore < semanticPartialScore:
		score := semanticPartialScore
		eval.OverallScore = semanticPartialScore
		eval.Accuracy = &score
		eval.Feedback = "Your answer captures part of the expected response, but some details are missing."
		eval.SpokenFeedback = "You are on the right track, but add a bit more detail."
	}
}

func (u *trainingUsecase) finalizeEvaluation(question *internalEntity.SessionQuestion, eval *internalEntity.AnswerEvaluation) {
	eval.OverallScore = clampScore(eval.OverallScore)

	if question.IsObjection && eval.ObjectionScore == nil {
		score := eval.OverallScore
		eval.ObjectionScore = &score
	}

	switch {
	case eval.OverallScore >= positiveFeedbackFloor:
		eval.FeedbackTier = "positive"
		if eval.SpokenFeedback == "" {
			eval.SpokenFeedback = "Excellent! That is correct and well-articulated."
		}
	case eval.OverallScore >= constructiveFeedbackFloor:
		eval.FeedbackTier = "constructive"
		if eval.SpokenFeedback == "" {
			eval.SpokenFeedback = "Good effort. You covered the main points, but you missed a few details."
		}
	default:
		eval.FeedbackTier = "corrective"
		if eval.SpokenFeedback == "" {
			eval.SpokenFeedback = "Not quite. Please review the training material."
		}
	}
}

func toAnswerEvaluation(e *internalEntity.AnswerEvaluation) *entity.AnswerEvaluation {
	return &entity.AnswerEvaluation{
		SessionID:          e.SessionID,
		QuestionID:         e.QuestionID,
		UserAnswer:         e.UserAnswer,
		Accuracy:           e.Accuracy,
		Completeness:       e.Completeness,
		Clarity:            e.Clarity,
		Tone:               e.Tone,
		Technique:          e.Technique,
		KeyPointsCovered:   e.KeyPointsCovered,
		Closing:            e.Closing,
		ObjectionScore:     e.ObjectionScore,
		OverallScore:       e.OverallScore,
		Feedback:           e.Feedback,
		SpokenFeedback:     e.SpokenFeedback,
		FeedbackTier:       e.FeedbackTier,
		WhatCorrect:        e.WhatCorrect,
		WhatMissed:         e.WhatMissed,
		WhatWrong:          e.WhatWrong,
		Evidence:           e.Evidence,
		PrescribedLanguage: e.PrescribedLanguage,
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func clampScorePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := clampScore(*v)
	return &c
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
