package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/repository"
	"github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/llm"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/memocache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContentRetriever gathers training material for a category across all of
// its uploaded partitions. Retrieval is best-effort: failures degrade to an
// empty context instead of failing the training flow.
type ContentRetriever interface {
	Aggregate(ctx context.Context, category string, topK int) string
	AnswerContext(ctx context.Context, category, answerText string, topK int) string
}

type RetrieverConfig struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Content  repository.ContentRepository
	Embedder llm.Embedder
	Cache    *memocache.Cache
}

type contentRetriever struct {
	cfg RetrieverConfig
}

func NewContentRetriever(cfg RetrieverConfig) ContentRetriever {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &contentRetriever{cfg: cfg}
}

const (
	maxPartitionWorkers   = 4
	partitionQueryTimeout = 10 * time.Second
	embeddingTimeout      = 60 * time.Second
	mergedContextLimit    = 20000
)

func categorySummaryPrompt(category string) string {
	return fmt.Sprintf("Summarize key facts, procedures, and scenarios for training category: %s", category)
}

func (r *contentRetriever) Aggregate(ctx context.Context, category string, topK int) string {
	embedding, err := r.embedOne(ctx, categorySummaryPrompt(category))
	if err != nil {
		r.cfg.Log.Errorf("failed to embed category query for %s: %v", category, err)
		return ""
	}

	key := aggregateCacheKey(category, embedding, topK)
	if cached, ok := r.cfg.Cache.Get(key); ok {
		return cached
	}

	matches := r.queryPartitions(ctx, category, embedding, topK)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Text == "" {
			continue
		}
		label := m.SourceLabel
		if label == "" {
			label = "Unknown"
		}
		parts = append(parts, fmt.Sprintf("SOURCE: %s\nCONTENT: %s", label, m.Text))
	}

	combined := truncateText(strings.Join(parts, "\n\n"), mergedContextLimit)
	r.cfg.Cache.Set(key, combined)
	return combined
}

// AnswerContext retrieves material relevant to a specific answer. When the
// answer-scoped search turns up nothing, the category aggregate is used so
// the evaluator never judges against an empty context unnecessarily.
func (r *contentRetriever) AnswerContext(ctx context.Context, category, answerText string, topK int) string {
	embedding, err := r.embedOne(ctx, answerText)
	if err != nil {
		r.cfg.Log.Warnf("failed to embed answer for %s, falling back to aggregate: %v", category, err)
		return r.Aggregate(ctx, category, topK)
	}

	matches := r.queryPartitions(ctx, category, embedding, topK)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Text != "" {
			parts = append(parts, m.Text)
		}
	}

	combined := strings.Join(parts, "\n\n")
	if combined == "" {
		return r.Aggregate(ctx, category, topK)
	}
	return truncateText(combined, mergedContextLimit)
}

// queryPartitions fans the similarity search out over every partition of the
// category, at most maxPartitionWorkers at a time. A failing partition is
// logged and skipped; the remaining results are still merged.
func (r *contentRetriever) queryPartitions(ctx context.Context, category string, embedding []float32, topK int) []entity.ChunkMatch {
	partitions, err := r.cfg.Content.ListPartitions(r.cfg.DB, category)
	if err != nil {
		r.cfg.Log.Errorf("failed to list partitions for %s: %v", category, err)
		return nil
	}
	if len(partitions) == 0 {
		return nil
	}

	sem := make(chan struct{}, maxPartitionWorkers)
	results := make(chan []entity.ChunkMatch, len(partitions))

	var wg sync.WaitGroup
	for _, partition := range partitions {
		wg.Add(1)
		go func(partition string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			qctx, cancel := context.WithTimeout(ctx, partitionQueryTimeout)
			defer cancel()

			matches, err := r.cfg.Content.QueryChunks(qctx, r.cfg.DB, embedding, partition, topK)
			if err != nil {
				r.cfg.Log.Warnf("partition query failed for %s: %v", partition, err)
				return
			}
			results <- matches
		}(partition)
	}
	wg.Wait()
	close(results)

	var all []entity.ChunkMatch
	for matches := range results {
		all = append(all, matches...)
	}
	return all
}

func (r *contentRetriever) embedOne(ctx context.Context, text string) ([]float32, error) {
	ectx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()

	vectors, err := r.cfg.Embedder.Embed(ectx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

func aggregateCacheKey(category string, embedding []float32, topK int) string {
	sum := sha256.Sum256([]byte(repository.FormatVector(embedding)))
	return fmt.Sprintf("%s|%s|%d", category, hex.EncodeToString(sum[:]), topK)
}

func truncateText(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
