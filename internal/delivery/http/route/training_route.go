package route

import (
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/handler"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupTrainingRoute(api *fiber.App, training handler.TrainingHandler, content handler.ContentHandler, m *middleware.Middleware) {
	router := api.Group("/training")
	{
		router.Post("/start", training.StartSession)
		router.Post("/next-question", training.NextQuestion)
		router.Post("/evaluate-answer", training.EvaluateAnswer)
		router.Get("/difficulty", training.GetDifficulty)
		router.Post("/complete", training.CompleteSession)
		router.Get("/sessions/:session_id/report", training.GetSessionReport)
		router.Get("/categories", content.GetCategories)
	}

	contentRouter := api.Group("/content")
	{
		contentRouter.Post("/upload", content.Upload)
	}
}
