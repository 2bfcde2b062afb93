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
	ContentHandler interface {
		Upload(ctx *fiber.Ctx) error
		GetCategories(ctx *fiber.Ctx) error
	}

	contentHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ContentUsecase
	}
)

func NewContentHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ContentUsecase) ContentHandler {
	return &contentHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /content/upload
func (h *contentHandler) Upload(ctx *fiber.Ctx) error {
	var req entity.UploadContentRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.CONTENT_UPLOAD_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Upload(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.CONTENT_UPLOAD_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.CONTENT_UPLOAD_SUCCESS, result, nil).Send(ctx)
}

// GET /training/categories
func (h *contentHandler) GetCategories(ctx *fiber.Ctx) error {
	categories, err := h.usecase.Categories(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.TRAINING_GET_CATEGORIES_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.TRAINING_GET_CATEGORIES_SUCCESS, categories, nil).Send(ctx)
}
