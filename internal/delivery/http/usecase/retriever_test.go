package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/memocache"
)

func newTestRetriever(content *mockContentRepo, embedder *mockEmbedder, cache *memocache.Cache) ContentRetriever {
	return NewContentRetriever(RetrieverConfig{
		Log:      testLogger(),
		Content:  content,
		Embedder: embedder,
		Cache:    cache,
	})
}

func TestAggregateMergesPartitions(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"p1", "p2"},
		chunks: map[string][]internalEntity.ChunkMatch{
			"p1": {{Text: "alpha facts", SourceLabel: "Doc A", Score: 0.9}},
			"p2": {{Text: "beta facts", SourceLabel: "Doc B", Score: 0.8}},
		},
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	got := r.Aggregate(context.Background(), "General Sales", 10)
	if !strings.Contains(got, "SOURCE: Doc A\nCONTENT: alpha facts") {
		t.Errorf("missing partition p1 content: %q", got)
	}
	if !strings.Contains(got, "SOURCE: Doc B\nCONTENT: beta facts") {
		t.Errorf("missing partition p2 content: %q", got)
	}
}

func TestAggregateSwallowsPartitionFailure(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"good", "bad"},
		chunks: map[string][]internalEntity.ChunkMatch{
			"good": {{Text: "surviving facts", SourceLabel: "Doc"}},
		},
		chunkErr: map[string]error{"bad": errors.New("connection reset")},
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	got := r.Aggregate(context.Background(), "General Sales", 10)
	if !strings.Contains(got, "surviving facts") {
		t.Errorf("healthy partition should still contribute: %q", got)
	}
}

func TestAggregateEmbedFailure(t *testing.T) {
	content := &mockContentRepo{partitions: []string{"p1"}}
	r := newTestRetriever(content, &mockEmbedder{err: errors.New("embedding api down")}, nil)

	if got := r.Aggregate(context.Background(), "General Sales", 10); got != "" {
		t.Errorf("expected empty context on embed failure, got %q", got)
	}
}

func TestAggregateNoPartitions(t *testing.T) {
	r := newTestRetriever(&mockContentRepo{}, &mockEmbedder{}, nil)
	if got := r.Aggregate(context.Background(), "General Sales", 10); got != "" {
		t.Errorf("expected empty context with no uploads, got %q", got)
	}
}

func TestAggregateTruncatesMergedContext(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"p1"},
		chunks: map[string][]internalEntity.ChunkMatch{
			"p1": {{Text: strings.Repeat("x", 30000), SourceLabel: "Big Doc"}},
		},
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	got := r.Aggregate(context.Background(), "General Sales", 10)
	if len(got) != 20000 {
		t.Errorf("expected merged context capped at 20000 chars, got %d", len(got))
	}
}

func TestAggregateUsesCache(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"p1"},
		chunks: map[string][]internalEntity.ChunkMatch{
			"p1": {{Text: "cached facts", SourceLabel: "Doc"}},
		},
	}
	r := newTestRetriever(content, &mockEmbedder{}, memocache.New(time.Minute))

	first := r.Aggregate(context.Background(), "General Sales", 10)
	// Swap the underlying data; the cached merge must still be served.
	content.mu.Lock()
	content.chunks["p1"] = []internalEntity.ChunkMatch{{Text: "new facts", SourceLabel: "Doc"}}
	content.mu.Unlock()

	second := r.Aggregate(context.Background(), "General Sales", 10)
	if first != second {
		t.Errorf("expected cache hit, got %q then %q", first, second)
	}
}

func TestAggregateManyPartitions(t *testing.T) {
	content := &mockContentRepo{chunks: map[string][]internalEntity.ChunkMatch{}}
	for i := 0; i < 12; i++ {
		key := string(rune('a' + i))
		content.partitions = append(content.partitions, key)
		content.chunks[key] = []internalEntity.ChunkMatch{{Text: "facts " + key, SourceLabel: "Doc " + key}}
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	got := r.Aggregate(context.Background(), "General Sales", 10)
	for i := 0; i < 12; i++ {
		key := string(rune('a' + i))
		if !strings.Contains(got, "facts "+key) {
			t.Errorf("partition %s missing from merged context", key)
		}
	}
}

func TestAnswerContextFallsBackToAggregate(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"p1"},
		chunks:     map[string][]internalEntity.ChunkMatch{},
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	// No answer-scoped matches, and no aggregate matches either, so both
	// paths end at the empty string without erroring.
	if got := r.AnswerContext(context.Background(), "General Sales", "my answer", 5); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}

	content.mu.Lock()
	content.chunks["p1"] = []internalEntity.ChunkMatch{{Text: "aggregate facts", SourceLabel: "Doc"}}
	content.mu.Unlock()
	got := r.AnswerContext(context.Background(), "General Sales", "my answer", 5)
	if !strings.Contains(got, "aggregate facts") {
		t.Errorf("expected answer context, got %q", got)
	}
}

func TestAnswerContextPlainMerge(t *testing.T) {
	content := &mockContentRepo{
		partitions: []string{"p1"},
		chunks: map[string][]internalEntity.ChunkMatch{
			"p1": {{Text: "relevant passage", SourceLabel: "Doc"}},
		},
	}
	r := newTestRetriever(content, &mockEmbedder{}, nil)

	got := r.AnswerContext(context.Background(), "General Sales", "my answer", 5)
	if got != "relevant passage" {
		t.Errorf("answer context should merge bare text, got %q", got)
	}
}
