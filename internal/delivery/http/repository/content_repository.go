package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahlgroup/sales-trainer-be/internal/entity"
	"gorm.io/gorm"
)

type (
	ContentRepository interface {
		ListPartitions(db *gorm.DB, category string) ([]string, error)
		QueryChunks(ctx context.Context, db *gorm.DB, embedding []float32, partitionKey string, topK int) ([]entity.ChunkMatch, error)
		CreateUpload(db *gorm.DB, upload *entity.ContentUpload) error
		CreateChunks(db *gorm.DB, chunks []entity.ContentChunk) error
		UploadStatsByCategory(db *gorm.DB) (map[string]entity.CategoryStats, error)
	}

	contentRepository struct {
		db *gorm.DB
	}
)

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// FormatVector renders an embedding as a pgvector literal.
func FormatVector(embedding []float32) string {
	if len(embedding) == 0 {
		return "[]"
	}
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (r *contentRepository) ListPartitions(db *gorm.DB, category string) ([]string, error) {
	if db == nil {
		db = r.db
	}
	var partitions []string
	err := db.Model(&entity.ContentUpload{}).
		Where("category = ?", category).
		Order("created_at ASC").
		Pluck("partition_key", &partitions).Error
	return partitions, err
}

// QueryChunks runs a cosine-distance similarity search scoped to one
// partition. Score is 1 - distance, so higher is closer.
func (r *contentRepository) QueryChunks(ctx context.Context, db *gorm.DB, embedding []float32, partitionKey string, topK int) ([]entity.ChunkMatch, error) {
	if db == nil {
		db = r.db
	}
	vector := FormatVector(embedding)

	var matches []entity.ChunkMatch
	err := db.WithContext(ctx).Raw(`
		SELECT
			text,
			source_label,
			category,
			chunk_index,
			1 - (embedding <=> ?::vector) AS score
		FROM content_chunks
		WHERE partition_key = ?
		ORDER BY embedding <=> ?::vector
		LIMIT ?`,
		vector, partitionKey, vector, topK,
	).Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query content chunks: %w", err)
	}
	return matches, nil
}

func (r *contentRepository) CreateUpload(db *gorm.DB, upload *entity.ContentUpload) error {
	if db == nil {
		db = r.db
	}
	return db.Create(upload).Error
}

func (r *contentRepository) CreateChunks(db *gorm.DB, chunks []entity.ContentChunk) error {
	if db == nil {
		db = r.db
	}
	if len(chunks) == 0 {
		return nil
	}
	return db.CreateInBatches(&chunks, 100).Error
}

func (r *contentRepository) UploadStatsByCategory(db *gorm.DB) (map[string]entity.CategoryStats, error) {
	if db == nil {
		db = r.db
	}
	var rows []struct {
		Category    string
		UploadCount int
		ChunkCount  int
	}
	err := db.Model(&entity.ContentUpload{}).
		Select("category, COUNT(*) AS upload_count, COALESCE(SUM(chunk_count), 0) AS chunk_count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]entity.CategoryStats, len(rows))
	for _, row := range rows {
		stats[row.Category] = entity.CategoryStats{
			UploadCount: row.UploadCount,
			ChunkCount:  row.ChunkCount,
		}
	}
	return stats, nil
}
