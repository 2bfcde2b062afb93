package entity

import (
	"encoding/json"
	"time"
)

const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// TrainingSession - one practice/exam run for a user in a category
type TrainingSession struct {
	ID              string     `gorm:"primarykey;size:64" json:"id"`
	UserID          string     `gorm:"size:100;not null;index" json:"user_id"`
	Category        string     `gorm:"size:100;not null;index" json:"category"`
	Difficulty      string     `gorm:"size:20;not null" json:"difficulty"` // trial, basics, field-ready
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	Status          string     `gorm:"size:20;not null;default:in_progress;index" json:"status"`
	OverallScore    *float64   `json:"overall_score"`
	StartedAt       time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}

// SessionQuestion - a question prepared for a session. Immutable once saved;
// position values form a contiguous 1..N sequence per session.
type SessionQuestion struct {
	ID             string    `gorm:"primarykey;size:64" json:"id"`
	SessionID      string    `gorm:"size:64;not null;index" json:"session_id"`
	Position       int       `gorm:"not null" json:"position"`
	QuestionText   string    `gorm:"type:text;not null" json:"question_text"`
	ExpectedAnswer string    `gorm:"type:text" json:"expected_answer"`
	KeyPoints      string    `gorm:"type:text" json:"key_points"` // JSON array of short phrases
	SourceLabel    string    `gorm:"size:200" json:"source_label"`
	Difficulty     string    `gorm:"size:20" json:"difficulty"`
	IsObjection    bool      `gorm:"not null;default:false" json:"is_objection"`
	CreatedAt      time.Time `json:"created_at"`
}

func (SessionQuestion) TableName() string {
	return "session_questions"
}

// KeyPointList decodes the stored JSON key-point array. A malformed or
// empty column yields an empty list.
func (q *SessionQuestion) KeyPointList() []string {
	var points []string
	if q.KeyPoints == "" {
		return points
	}
	if err := json.Unmarshal([]byte(q.KeyPoints), &points); err != nil {
		return nil
	}
	return points
}

// AnswerEvaluation - the scored result for one (session, question) pair.
// A question counts as answered iff a row exists here.
type AnswerEvaluation struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	SessionID  string `gorm:"size:64;not null;index:idx_eval_session_question" json:"session_id"`
	QuestionID string `gorm:"size:64;not null;index:idx_eval_session_question" json:"question_id"`
	UserAnswer string `gorm:"type:text" json:"user_answer"`

	// Standard rubric
	Accuracy     *float64 `json:"accuracy"`
	Completeness *float64 `json:"completeness"`
	Clarity      *float64 `json:"clarity"`

	// Objection rubric
	Tone             *float64 `json:"tone"`
	Technique        *float64 `json:"technique"`
	KeyPointsCovered *float64 `json:"key_points_covered"`
	Closing          *float64 `json:"closing"`
	ObjectionScore   *float64 `json:"objection_score"`

	OverallScore       float64   `gorm:"not null" json:"overall_score"`
	Feedback           string    `gorm:"type:text" json:"feedback"`
	SpokenFeedback     string    `gorm:"type:text" json:"spoken_feedback"`
	FeedbackTier       string    `gorm:"size:20" json:"feedback_tier"` // positive, constructive, corrective
	WhatCorrect        string    `gorm:"type:text" json:"what_correct"`
	WhatMissed         string    `gorm:"type:text" json:"what_missed"`
	WhatWrong          *string   `gorm:"type:text" json:"what_wrong"`
	Evidence           string    `gorm:"type:text" json:"evidence"`
	PrescribedLanguage bool      `gorm:"not null;default:false" json:"prescribed_language"`
	CreatedAt          time.Time `json:"created_at"`
}

func (AnswerEvaluation) TableName() string {
	return "answer_evaluations"
}

// FallbackQuestion - generic question bank used when the judge is
// unavailable. Seeded at startup, served in rank order.
type FallbackQuestion struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	Rank           int    `gorm:"not null;index" json:"rank"`
	QuestionText   string `gorm:"type:text;not null" json:"question_text"`
	ExpectedAnswer string `gorm:"type:text;not null" json:"expected_answer"`
	KeyPoints      string `gorm:"type:text;not null" json:"key_points"` // JSON array
	SourceLabel    string `gorm:"size:200;not null" json:"source_label"`
	IsObjection    bool   `gorm:"not null;default:false" json:"is_objection"`
}

func (FallbackQuestion) TableName() string {
	return "fallback_questions"
}
