package database

import (
	"github.com/ahlgroup/sales-trainer-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// pgvector must be present before content_chunks is created.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&entity.TrainingSession{},
		&entity.SessionQuestion{},
		&entity.AnswerEvaluation{},
		&entity.FallbackQuestion{},
		&entity.ContentUpload{},
		&entity.ContentChunk{},
	)
}
