package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/repository"
	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/llm"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type TrainingUsecase interface {
	StartSession(ctx context.Context, req entity.StartSessionRequest) (*entity.StartSessionResponse, error)
	GenerateQuestions(ctx context.Context, sessionID, category string, difficulty entity.Difficulty, durationMinutes int) ([]entity.GeneratedQuestion, error)
	SelectDifficulty(ctx context.Context, userID, category string) entity.Difficulty
	NextQuestion(ctx context.Context, sessionID string) (*entity.NextQuestionResponse, error)
	EvaluateAnswer(ctx context.Context, sessionID, questionID, userAnswer string) (*entity.AnswerEvaluation, error)
	CompleteSession(ctx context.Context, sessionID string) (*entity.CompleteSessionResponse, error)
	SessionReport(ctx context.Context, sessionID string) (*entity.SessionReport, error)
}

type TrainingConfig struct {
	DB         *gorm.DB
	Log        *logrus.Logger
	Config     *viper.Viper
	Judge      llm.Completer
	Embedder   llm.Embedder
	Repository repository.TrainingRepository
	Retriever  ContentRetriever
}

type trainingUsecase struct {
	cfg TrainingConfig
}

func NewTrainingUsecase(cfg TrainingConfig) TrainingUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &trainingUsecase{cfg: cfg}
}

// TrainingCategories is the fixed set of knowledge-base categories.
var TrainingCategories = []string{
	"Pre Consultation",
	"Consultation Series",
	"Sales Objections",
	"After Fixing Objection",
	"Full Wig Consultation",
	"Hairline Consultation",
	"Types of Patches",
	"Upselling / Cross Selling",
	"Retail Sales",
	"SMP Sales",
	"Sales Follow up",
	"General Sales",
}

// ValidCategory reports whether category is one of TrainingCategories,
// ignoring case.
func ValidCategory(category string) bool {
	for _, c := range TrainingCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func isObjectionCategory(category string) bool {
	return strings.Contains(strings.ToLower(category), "objection")
}

// Tunables with coded defaults so a bare viper instance still behaves.
const (
	defaultQuestionsPerMin      = 0.6
	defaultMinQuestions         = 7
	defaultMaxQuestions         = 25
	defaultRAGTopK              = 50
	defaultTemperatureQuestions = 0.7
	defaultTemperatureEval      = 0.3
	defaultMaxTokensAnswer      = 1000
)

const (
	questionGenTimeout = 45 * time.Second
	evaluationTimeout  = 30 * time.Second
)

func (u *trainingUsecase) settingFloat(key string, def float64) float64 {
	if u.cfg.Config != nil && u.cfg.Config.IsSet(key) {
		return u.cfg.Config.GetFloat64(key)
	}
	return def
}

func (u *trainingUsecase) settingInt(key string, def int) int {
	if u.cfg.Config != nil && u.cfg.Config.IsSet(key) {
		return u.cfg.Config.GetInt(key)
	}
	return def
}

func (u *trainingUsecase) StartSession(ctx context.Context, req entity.StartSessionRequest) (*entity.StartSessionResponse, error) {
	if !ValidCategory(req.Category) {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}

	difficulty := entity.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	if difficulty.IsAdaptive() {
		difficulty = u.SelectDifficulty(ctx, req.UserID, req.Category)
		u.cfg.Log.Infof("adaptive difficulty resolved to %s for user %s", difficulty, req.UserID)
	}
	if !difficulty.IsTier() {
		return nil, fmt.Errorf("invalid difficulty: %s", req.Difficulty)
	}

	session := &internalEntity.TrainingSession{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Category:        req.Category,
		Difficulty:      string(difficulty),
		DurationMinutes: req.DurationMinutes,
		Status:          internalEntity.SessionStatusInProgress,
	}
	if err := u.cfg.Repository.CreateSession(u.cfg.DB, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	questions, err := u.GenerateQuestions(ctx, session.ID, req.Category, difficulty, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return &entity.StartSessionResponse{
		SessionID:  session.ID,
		Difficulty: difficulty,
		Questions:  questions,
	}, nil
}

func (u *trainingUsecase) CompleteSession(ctx context.Context, sessionID string) (*entity.CompleteSessionResponse, error) {
	session, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	evaluations, err := u.cfg.Repository.FindEvaluationsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	if len(evaluations) == 0 {
		return nil, fmt.Errorf("no answers recorded for session %s", sessionID)
	}

	total := 0.0
	for _, e := range evaluations {
		total += e.OverallScore
	}
	overall := total / float64(len(evaluations))

	if err := u.cfg.Repository.CompleteSession(u.cfg.DB, session.ID, overall); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	return &entity.CompleteSessionResponse{
		SessionID:    session.ID,
		OverallScore: overall,
		Answered:     len(evaluations),
	}, nil
}

func (u *trainingUsecase) SessionReport(ctx context.Context, sessionID string) (*entity.SessionReport, error) {
	session, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	questions, err := u.cfg.Repository.FindQuestionsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	evaluations, err := u.cfg.Repository.FindEvaluationsBySessionID(u.cfg.DB, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}

	byQuestion := make(map[string]internalEntity.AnswerEvaluation, len(evaluations))
	total := 0.0
	for _, e := range evaluations {
		byQuestion[e.QuestionID] = e
		total += e.OverallScore
	}

	results := make([]entity.QuestionResult, 0, len(evaluations))
	for _, q := range questions {
		e, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		results = append(results, entity.QuestionResult{
			Position:     q.Position,
			QuestionText: q.QuestionText,
			IsObjection:  q.IsObjection,
			OverallScore: e.OverallScore,
			FeedbackTier: e.FeedbackTier,
			Feedback:     e.Feedback,
		})
	}

	average := 0.0
	if len(evaluations) > 0 {
		average = total / float64(len(evaluations))
	}

	return &entity.SessionReport{
		SessionID:      session.ID,
		Category:       session.Category,
		Difficulty:     entity.Difficulty(session.Difficulty),
		Status:         session.Status,
		TotalQuestions: len(questions),
		Answered:       len(evaluations),
		AverageScore:   average,
		Results:        results,
	}, nil
}

func toGeneratedQuestion(q internalEntity.SessionQuestion) entity.GeneratedQuestion {
	return entity.GeneratedQuestion{
		ID:             q.ID,
		Position:       q.Position,
		QuestionText:   q.QuestionText,
		ExpectedAnswer: q.ExpectedAnswer,
		KeyPoints:      q.KeyPointList(),
		Source:         q.SourceLabel,
		Difficulty:     entity.Difficulty(q.Difficulty),
		IsObjection:    q.IsObjection,
	}
}
