package usecase

import (
	"context"
	"io"
	"sync"

	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// mockJudge returns a canned completion or a fixed error.
type mockJudge struct {
	response   string
	err        error
	calls      int
	lastSystem string
}

func (m *mockJudge) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// mockEmbedder returns fixed vectors, or one unit vector per input when none
// are configured.
type mockEmbedder struct {
	vectors [][]float32
	err     error
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.vectors != nil {
		return m.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type mockRetriever struct {
	aggregate      string
	answerContext  string
	aggregateCalls int
}

func (m *mockRetriever) Aggregate(ctx context.Context, category string, topK int) string {
	m.aggregateCalls++
	return m.aggregate
}

func (m *mockRetriever) AnswerContext(ctx context.Context, category, answerText string, topK int) string {
	return m.answerContext
}

// mockTrainingRepo is an in-memory TrainingRepository. The db argument is
// ignored, matching how the real implementation falls back to its own handle.
type mockTrainingRepo struct {
	mu sync.Mutex

	sessions    map[string]*internalEntity.TrainingSession
	questions   map[string][]internalEntity.SessionQuestion
	evaluations map[string][]internalEntity.AnswerEvaluation

	recentTexts     []string
	recentScores    []float64
	recentScoresErr error

	fallback    []internalEntity.FallbackQuestion
	fallbackErr error

	saveQuestionsErr   error
	evaluationsCreated int
}

func newMockTrainingRepo() *mockTrainingRepo {
	return &mockTrainingRepo{
		sessions:    make(map[string]*internalEntity.TrainingSession),
		questions:   make(map[string][]internalEntity.SessionQuestion),
		evaluations: make(map[string][]internalEntity.AnswerEvaluation),
	}
}

func (m *mockTrainingRepo) CreateSession(db *gorm.DB, session *internalEntity.TrainingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *mockTrainingRepo) FindSessionByID(db *gorm.DB, sessionID string) (*internalEntity.TrainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockTrainingRepo) CompleteSession(db *gorm.DB, sessionID string, overallScore float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = internalEntity.SessionStatusCompleted
	s.OverallScore = &overallScore
	return nil
}

func (m *mockTrainingRepo) SaveQuestions(db *gorm.DB, questions []internalEntity.SessionQuestion) error {
	if m.saveQuestionsErr != nil {
		return m.saveQuestionsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range questions {
		m.questions[q.SessionID] = append(m.questions[q.SessionID], q)
	}
	return nil
}

func (m *mockTrainingRepo) FindQuestionsBySessionID(db *gorm.DB, sessionID string) ([]internalEntity.SessionQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questions[sessionID], nil
}

func (m *mockTrainingRepo) FindQuestionByID(db *gorm.DB, questionID string) (*internalEntity.SessionQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, qs := range m.questions {
		for i := range qs {
			if qs[i].ID == questionID {
				return &qs[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepo) FindRecentQuestionTexts(db *gorm.DB, userID, category string, limit int) ([]string, error) {
	return m.recentTexts, nil
}

func (m *mockTrainingRepo) CreateEvaluation(db *gorm.DB, evaluation *internalEntity.AnswerEvaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluationsCreated++
	m.evaluations[evaluation.SessionID] = append(m.evaluations[evaluation.SessionID], *evaluation)
	return nil
}

func (m *mockTrainingRepo) FindEvaluationsBySessionID(db *gorm.DB, sessionID string) ([]internalEntity.AnswerEvaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evaluations[sessionID], nil
}

func (m *mockTrainingRepo) FindRecentSessionScores(db *gorm.DB, userID, category string, limit int) ([]float64, error) {
	if m.recentScoresErr != nil {
		return nil, m.recentScoresErr
	}
	return m.recentScores, nil
}

func (m *mockTrainingRepo) FindFallbackQuestions(db *gorm.DB) ([]internalEntity.FallbackQuestion, error) {
	if m.fallbackErr != nil {
		return nil, m.fallbackErr
	}
	return m.fallback, nil
}

// mockContentRepo is an in-memory ContentRepository. QueryChunks is safe for
// concurrent use since the retriever fans out across partitions.
type mockContentRepo struct {
	mu sync.Mutex

	partitions    []string
	partitionsErr error
	chunks        map[string][]internalEntity.ChunkMatch
	chunkErr      map[string]error

	uploads       []*internalEntity.ContentUpload
	createdChunks []internalEntity.ContentChunk
	stats         map[string]internalEntity.CategoryStats
}

func (m *mockContentRepo) ListPartitions(db *gorm.DB, category string) ([]string, error) {
	if m.partitionsErr != nil {
		return nil, m.partitionsErr
	}
	return m.partitions, nil
}

func (m *mockContentRepo) QueryChunks(ctx context.Context, db *gorm.DB, embedding []float32, partitionKey string, topK int) ([]internalEntity.ChunkMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.chunkErr[partitionKey]; ok {
		return nil, err
	}
	return m.chunks[partitionKey], nil
}

func (m *mockContentRepo) CreateUpload(db *gorm.DB, upload *internalEntity.ContentUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, upload)
	return nil
}

func (m *mockContentRepo) CreateChunks(db *gorm.DB, chunks []internalEntity.ContentChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdChunks = append(m.createdChunks, chunks...)
	return nil
}

func (m *mockContentRepo) UploadStatsByCategory(db *gorm.DB) (map[string]internalEntity.CategoryStats, error) {
	if m.stats == nil {
		return map[string]internalEntity.CategoryStats{}, nil
	}
	return m.stats, nil
}

func newTestTrainingUsecase(repo *mockTrainingRepo, judge *mockJudge, embedder *mockEmbedder, retriever ContentRetriever) TrainingUsecase {
	return NewTrainingUsecase(TrainingConfig{
		Log:        testLogger(),
		Config:     viper.New(),
		Judge:      judge,
		Embedder:   embedder,
		Repository: repo,
		Retriever:  retriever,
	})
}
