package database

import (
	"fmt"

	"github.com/ahlgroup/sales-trainer-be/internal/entity"
	"gorm.io/gorm"
)

// SeedFallbackQuestions loads the built-in fallback bank into the database
// so question generation stays usable when the judge is down. Skips if the
// table already has rows.
func SeedFallbackQuestions(db *gorm.DB) error {
	var count int64
	db.Model(&entity.FallbackQuestion{}).Count(&count)
	if count > 0 {
		return nil
	}

	for _, q := range entity.DefaultFallbackQuestions() {
		if err := db.Create(&q).Error; err != nil {
			return fmt.Errorf("failed to seed fallback question %d: %w", q.Rank, err)
		}
	}
	return nil
}
