package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/repository"
	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/llm"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/textutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type ContentUsecase interface {
	Upload(ctx context.Context, req entity.UploadContentRequest) (*entity.UploadContentResponse, error)
	Categories(ctx context.Context) ([]entity.CategoryInfo, error)
}

type ContentConfig struct {
	DB         *gorm.DB
	Log        *logrus.Logger
	Config     *viper.Viper
	Embedder   llm.Embedder
	Repository repository.ContentRepository
}

type contentUsecase struct {
	cfg ContentConfig
}

func NewContentUsecase(cfg ContentConfig) ContentUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &contentUsecase{cfg: cfg}
}

const chunkMaxChars = 1200

// Upload chunks a training document, embeds every chunk, and stores the
// vectors under a partition key derived from category and source label.
func (u *contentUsecase) Upload(ctx context.Context, req entity.UploadContentRequest) (*entity.UploadContentResponse, error) {
	if !ValidCategory(req.Category) {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}

	chunks := textutil.ChunkText(req.Content, chunkMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("content is empty")
	}

	ectx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()
	vectors, err := u.cfg.Embedder.Embed(ectx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(vectors))
	}

	partitionKey := slugify(req.Category) + "_" + slugify(req.SourceLabel)

	upload := &internalEntity.ContentUpload{
		Category:     req.Category,
		SourceLabel:  req.SourceLabel,
		PartitionKey: partitionKey,
		ChunkCount:   len(chunks),
	}
	if err := u.cfg.Repository.CreateUpload(u.cfg.DB, upload); err != nil {
		return nil, fmt.Errorf("failed to register upload: %w", err)
	}

	rows := make([]internalEntity.ContentChunk, len(chunks))
	for i, text := range chunks {
		rows[i] = internalEntity.ContentChunk{
			PartitionKey: partitionKey,
			ChunkIndex:   i,
			Category:     req.Category,
			SourceLabel:  req.SourceLabel,
			Text:         text,
			Embedding:    repository.FormatVector(vectors[i]),
		}
	}
	if err := u.cfg.Repository.CreateChunks(u.cfg.DB, rows); err != nil {
		return nil, fmt.Errorf("failed to store content chunks: %w", err)
	}

	u.cfg.Log.Infof("uploaded %d chunks to partition %s", len(chunks), partitionKey)
	return &entity.UploadContentResponse{
		PartitionKey: partitionKey,
		Chunks:       len(chunks),
	}, nil
}

// Categories lists every training category with its upload statistics.
// Categories with no content yet still appear, with zero counts.
func (u *contentUsecase) Categories(ctx context.Context) ([]entity.CategoryInfo, error) {
	stats, err := u.cfg.Repository.UploadStatsByCategory(u.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to load category stats: %w", err)
	}

	infos := make([]entity.CategoryInfo, len(TrainingCategories))
	for i, name := range TrainingCategories {
		s := stats[name]
		infos[i] = entity.CategoryInfo{
			Name:        name,
			UploadCount: s.UploadCount,
			ChunkCount:  s.ChunkCount,
		}
	}
	return infos, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '/' || r == '\t'
	})
	return strings.Join(fields, "_")
}
