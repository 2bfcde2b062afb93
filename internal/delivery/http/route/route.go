package route

import (
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/handler"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	TrainingHandler handler.TrainingHandler
	ContentHandler  handler.ContentHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupTrainingRoute(c.Api, c.TrainingHandler, c.ContentHandler, c.Middleware)
}
