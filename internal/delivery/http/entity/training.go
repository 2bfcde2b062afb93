package entity

type Difficulty string

const (
	DifficultyTrial      Difficulty = "trial"
	DifficultyBasics     Difficulty = "basics"
	DifficultyFieldReady Difficulty = "field-ready"

	// DifficultyAdaptive asks the server to pick a tier from history.
	DifficultyAdaptive Difficulty = "adaptive"
	DifficultyAuto     Difficulty = "auto"
)

func (d Difficulty) IsTier() bool {
	switch d {
	case DifficultyTrial, DifficultyBasics, DifficultyFieldReady:
		return true
	}
	return false
}

func (d Difficulty) IsAdaptive() bool {
	return d == DifficultyAdaptive || d == DifficultyAuto
}

type GeneratedQuestion struct {
	ID             string     `json:"id"`
	Position       int        `json:"position"`
	QuestionText   string     `json:"question_text"`
	ExpectedAnswer string     `json:"expected_answer"`
	KeyPoints      []string   `json:"key_points"`
	Source         string     `json:"source"`
	Difficulty     Difficulty `json:"difficulty"`
	IsObjection    bool       `json:"is_objection"`
}

type StartSessionRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Difficulty      string `json:"difficulty" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=120"`
}

type StartSessionResponse struct {
	SessionID  string              `json:"session_id"`
	Difficulty Difficulty          `json:"difficulty"`
	Questions  []GeneratedQuestion `json:"questions"`
}

type NextQuestionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type NextQuestionResponse struct {
	Done     bool               `json:"done"`
	Question *GeneratedQuestion `json:"question,omitempty"`
}

type EvaluateAnswerRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
	UserAnswer string `json:"user_answer"`
}

// AnswerEvaluation is the scored result returned to the client. Dimension
// scores are nullable; which set is populated depends on the question type.
type AnswerEvaluation struct {
	SessionID  string `json:"session_id"`
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`

	Accuracy     *float64 `json:"accuracy"`
	Completeness *float64 `json:"completeness"`
	Clarity      *float64 `json:"clarity"`

	Tone             *float64 `json:"tone"`
	Technique        *float64 `json:"technique"`
	KeyPointsCovered *float64 `json:"key_points_covered"`
	Closing          *float64 `json:"closing"`
	ObjectionScore   *float64 `json:"objection_score"`

	OverallScore       float64 `json:"overall_score"`
	Feedback           string  `json:"feedback"`
	SpokenFeedback     string  `json:"spoken_feedback"`
	FeedbackTier       string  `json:"feedback_tier"`
	WhatCorrect        string  `json:"what_correct"`
	WhatMissed         string  `json:"what_missed"`
	WhatWrong          *string `json:"what_wrong"`
	Evidence           string  `json:"evidence"`
	PrescribedLanguage bool    `json:"prescribed_language"`
}

type CompleteSessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type CompleteSessionResponse struct {
	SessionID    string  `json:"session_id"`
	OverallScore float64 `json:"overall_score"`
	Answered     int     `json:"answered"`
}

type QuestionResult struct {
	Position     int     `json:"position"`
	QuestionText string  `json:"question_text"`
	IsObjection  bool    `json:"is_objection"`
	OverallScore float64 `json:"overall_score"`
	FeedbackTier string  `json:"feedback_tier"`
	Feedback     string  `json:"feedback"`
}

type SessionReport struct {
	SessionID      string           `json:"session_id"`
	Category       string           `json:"category"`
	Difficulty     Difficulty       `json:"difficulty"`
	Status         string           `json:"status"`
	TotalQuestions int              `json:"total_questions"`
	Answered       int              `json:"answered"`
	AverageScore   float64          `json:"average_score"`
	Results        []QuestionResult `json:"results"`
}

type CategoryInfo struct {
	Name        string `json:"name"`
	UploadCount int    `json:"upload_count"`
	ChunkCount  int    `json:"chunk_count"`
}

type UploadContentRequest struct {
	Category    string `json:"category" validate:"required"`
	SourceLabel string `json:"source_label" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

type UploadContentResponse struct {
	PartitionKey string `json:"partition_key"`
	Chunks       int    `json:"chunks"`
}
