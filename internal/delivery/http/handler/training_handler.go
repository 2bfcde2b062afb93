package handler

import (
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/domain"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/usecase"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/response"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	TrainingHandler interface {
		StartSession(ctx *fiber.Ctx) error
		NextQuestion(ctx *fiber.Ctx) error
		EvaluateAnswer(ctx *fiber.Ctx) error
		GetDifficulty(ctx *fiber.Ctx) error
		CompleteSession(ctx *fiber.Ctx) error
		GetSessionReport(ctx *fiber.Ctx) error
	}

	trainingHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TrainingUsecase
	}
)

func NewTrainingHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TrainingUsecase) TrainingHandler {
	return &trainingHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /training/start
func (h *trainingHandler) StartSession(ctx *fiber.Ctx) error {
	var req entity.StartSessionRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TRAINING_START_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.StartSession(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.TRAINING_START_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_START_SESSION_SUCCESS, result, nil).Send(ctx)
}

// POST /training/next-question
func (h *trainingHandler) NextQuestion(ctx *fiber.Ctx) error {
	var req entity.NextQuestionRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TRAINING_NEXT_QUESTION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.NextQuestion(ctx.UserContext(), req.SessionID)
	if err != nil {
		return response.NewFailed(domain.TRAINING_NEXT_QUESTION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_NEXT_QUESTION_SUCCESS, result, nil).Send(ctx)
}

// POST /training/evaluate-answer
func (h *trainingHandler) EvaluateAnswer(ctx *fiber.Ctx) error {
	var req entity.EvaluateAnswerRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TRAINING_EVALUATE_ANSWER_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.EvaluateAnswer(ctx.UserContext(), req.SessionID, req.QuestionID, req.UserAnswer)
	if err != nil {
		return response.NewFailed(domain.TRAINING_EVALUATE_ANSWER_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_EVALUATE_ANSWER_SUCCESS, result, nil).Send(ctx)
}

// GET /training/difficulty?user_id=...&category=...
func (h *trainingHandler) GetDifficulty(ctx *fiber.Ctx) error {
	userID := ctx.Query("user_id")
	category := ctx.Query("category")
	if userID == "" || category == "" {
		return response.NewFailed(domain.TRAINING_GET_DIFFICULTY_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id and category are required"), h.logger).Send(ctx)
	}
	if !usecase.ValidCategory(category) {
		return response.NewFailed(domain.TRAINING_GET_DIFFICULTY_FAILED, fiber.NewError(fiber.StatusBadRequest, "invalid category: "+category), h.logger).Send(ctx)
	}

	difficulty := h.usecase.SelectDifficulty(ctx.UserContext(), userID, category)

	return response.NewSuccess(domain.TRAINING_GET_DIFFICULTY_SUCCESS, fiber.Map{"difficulty": difficulty}, nil).Send(ctx)
}

// POST /training/complete
func (h *trainingHandler) CompleteSession(ctx *fiber.Ctx) error {
	var req entity.CompleteSessionRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TRAINING_COMPLETE_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.CompleteSession(ctx.UserContext(), req.SessionID)
	if err != nil {
		return response.NewFailed(domain.TRAINING_COMPLETE_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_COMPLETE_SESSION_SUCCESS, result, nil).Send(ctx)
}

// GET /training/sessions/:session_id/report
func (h *trainingHandler) GetSessionReport(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.TRAINING_GET_REPORT_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	report, err := h.usecase.SessionReport(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(domain.TRAINING_GET_REPORT_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_GET_REPORT_SUCCESS, report, nil).Send(ctx)
}
