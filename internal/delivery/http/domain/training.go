package domain

var (
	TRAINING_START_SESSION_SUCCESS    = "Session started successfully"
	TRAINING_START_SESSION_FAILED     = "Failed to start session"
	TRAINING_NEXT_QUESTION_SUCCESS    = "Next question retrieved successfully"
	TRAINING_NEXT_QUESTION_FAILED     = "Failed to get next question"
	TRAINING_EVALUATE_ANSWER_SUCCESS  = "Answer evaluated successfully"
	TRAINING_EVALUATE_ANSWER_FAILED   = "Failed to evaluate answer"
	TRAINING_GET_DIFFICULTY_SUCCESS   = "Difficulty selected successfully"
	TRAINING_GET_DIFFICULTY_FAILED    = "Failed to select difficulty"
	TRAINING_COMPLETE_SESSION_SUCCESS = "Session completed successfully"
	TRAINING_COMPLETE_SESSION_FAILED  = "Failed to complete session"
	TRAINING_GET_REPORT_SUCCESS       = "Session report generated successfully"
	TRAINING_GET_REPORT_FAILED        = "Failed to generate session report"
	TRAINING_GET_CATEGORIES_SUCCESS   = "Categories retrieved successfully"
	TRAINING_GET_CATEGORIES_FAILED    = "Failed to retrieve categories"
	CONTENT_UPLOAD_SUCCESS            = "Content uploaded successfully"
	CONTENT_UPLOAD_FAILED             = "Failed to upload content"
)
