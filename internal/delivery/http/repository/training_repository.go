package repository

import (
	"github.com/ahlgroup/sales-trainer-be/internal/entity"
	"gorm.io/gorm"
)

type (
	TrainingRepository interface {
		// Session operations
		CreateSession(db *gorm.DB, session *entity.TrainingSession) error
		FindSessionByID(db *gorm.DB, sessionID string) (*entity.TrainingSession, error)
		CompleteSession(db *gorm.DB, sessionID string, overallScore float64) error

		// Question operations
		SaveQuestions(db *gorm.DB, questions []entity.SessionQuestion) error
		FindQuestionsBySessionID(db *gorm.DB, sessionID string) ([]entity.SessionQuestion, error)
		FindQuestionByID(db *gorm.DB, questionID string) (*entity.SessionQuestion, error)
		FindRecentQuestionTexts(db *gorm.DB, userID, category string, limit int) ([]string, error)

		// Evaluation operations
		CreateEvaluation(db *gorm.DB, evaluation *entity.AnswerEvaluation) error
		FindEvaluationsBySessionID(db *gorm.DB, sessionID string) ([]entity.AnswerEvaluation, error)

		// Performance history
		FindRecentSessionScores(db *gorm.DB, userID, category string, limit int) ([]float64, error)

		// Fallback bank
		FindFallbackQuestions(db *gorm.DB) ([]entity.FallbackQuestion, error)
	}

	trainingRepository struct {
		db *gorm.DB
	}
)

func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

// Session operations
func (r *trainingRepository) CreateSession(db *gorm.DB, session *entity.TrainingSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *trainingRepository) FindSessionByID(db *gorm.DB, sessionID string) (*entity.TrainingSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.TrainingSession
	err := db.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *trainingRepository) CompleteSession(db *gorm.DB, sessionID string, overallScore float64) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.TrainingSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":        entity.SessionStatusCompleted,
			"overall_score": overallScore,
			"completed_at":  gorm.Expr("NOW()"),
		}).Error
}

// Question operations
func (r *trainingRepository) SaveQuestions(db *gorm.DB, questions []entity.SessionQuestion) error {
	if db == nil {
		db = r.db
	}
	if len(questions) == 0 {
		return nil
	}
	return db.Create(&questions).Error
}

func (r *trainingRepository) FindQuestionsBySessionID(db *gorm.DB, sessionID string) ([]entity.SessionQuestion, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.SessionQuestion
	err := db.Where("session_id = ?", sessionID).Order("position ASC").Find(&questions).Error
	return questions, err
}

func (r *trainingRepository) FindQuestionByID(db *gorm.DB, questionID string) (*entity.SessionQuestion, error) {
	if db == nil {
		db = r.db
	}
	var question entity.SessionQuestion
	err := db.Where("id = ?", questionID).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *trainingRepository) FindRecentQuestionTexts(db *gorm.DB, userID, category string, limit int) ([]string, error) {
	if db == nil {
		db = r.db
	}
	var texts []string
	err := db.Model(&entity.SessionQuestion{}).
		Joins("JOIN training_sessions ON training_sessions.id = session_questions.session_id").
		Where("training_sessions.user_id = ? AND training_sessions.category = ?", userID, category).
		Order("session_questions.created_at DESC").
		Limit(limit).
		Pluck("session_questions.question_text", &texts).Error
	return texts, err
}

// Evaluation operations
func (r *trainingRepository) CreateEvaluation(db *gorm.DB, evaluation *entity.AnswerEvaluation) error {
	if db == nil {
		db = r.db
	}
	return db.Create(evaluation).Error
}

func (r *trainingRepository) FindEvaluationsBySessionID(db *gorm.DB, sessionID string) ([]entity.AnswerEvaluation, error) {
	if db == nil {
		db = r.db
	}
	var evaluations []entity.AnswerEvaluation
	err := db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&evaluations).Error
	return evaluations, err
}

// Performance history
func (r *trainingRepository) FindRecentSessionScores(db *gorm.DB, userID, category string, limit int) ([]float64, error) {
	if db == nil {
		db = r.db
	}
	var scores []float64
	err := db.Model(&entity.TrainingSession{}).
		Where("user_id = ? AND category = ? AND status = ? AND overall_score IS NOT NULL",
			userID, category, entity.SessionStatusCompleted).
		Order("started_at DESC").
		Limit(limit).
		Pluck("overall_score", &scores).Error
	return scores, err
}

// Fallback bank
func (r *trainingRepository) FindFallbackQuestions(db *gorm.DB) ([]entity.FallbackQuestion, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.FallbackQuestion
	err := db.Order("rank ASC").Find(&questions).Error
	return questions, err
}
