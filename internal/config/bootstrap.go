package config

import (
	"time"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/handler"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/middleware"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/repository"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/route"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/usecase"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/llm"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/memocache"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	judgeAPIKey := ""
	judgeModel := ""
	judgeBaseURL := ""
	embedAPIKey := ""
	embedModel := ""
	embedBaseURL := ""
	cacheTTL := 300
	if config.Config != nil {
		judgeAPIKey = config.Config.GetString("llm.api_key")
		judgeModel = config.Config.GetString("llm.model")
		judgeBaseURL = config.Config.GetString("llm.base_url")
		embedAPIKey = config.Config.GetString("embedding.api_key")
		embedModel = config.Config.GetString("embedding.model")
		embedBaseURL = config.Config.GetString("embedding.base_url")
		if config.Config.IsSet("training.cache_ttl_seconds") {
			cacheTTL = config.Config.GetInt("training.cache_ttl_seconds")
		}
	}

	judge := llm.NewClient(judgeAPIKey, judgeModel, judgeBaseURL)
	embedder := llm.NewEmbeddingClient(embedAPIKey, embedModel, embedBaseURL)
	cache := memocache.New(time.Duration(cacheTTL) * time.Second)

	trainingRepo := repository.NewTrainingRepository(config.DB)
	contentRepo := repository.NewContentRepository(config.DB)

	retriever := usecase.NewContentRetriever(usecase.RetrieverConfig{
		DB:       config.DB,
		Log:      config.Log,
		Content:  contentRepo,
		Embedder: embedder,
		Cache:    cache,
	})

	trainingUsecase := usecase.NewTrainingUsecase(usecase.TrainingConfig{
		DB:         config.DB,
		Log:        config.Log,
		Config:     config.Config,
		Judge:      judge,
		Embedder:   embedder,
		Repository: trainingRepo,
		Retriever:  retriever,
	})
	contentUsecase := usecase.NewContentUsecase(usecase.ContentConfig{
		DB:         config.DB,
		Log:        config.Log,
		Config:     config.Config,
		Embedder:   embedder,
		Repository: contentRepo,
	})

	trainingHandler := handler.NewTrainingHandler(config.Validator, config.Log, trainingUsecase)
	contentHandler := handler.NewContentHandler(config.Validator, config.Log, contentUsecase)

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		TrainingHandler: trainingHandler,
		ContentHandler:  contentHandler,
	})

}
