package usecase

import (
	"context"
	"testing"

	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
)

func seedSessionQuestions(repo *mockTrainingRepo, sessionID string, questions []internalEntity.SessionQuestion) {
	repo.sessions[sessionID] = &internalEntity.TrainingSession{
		ID:       sessionID,
		UserID:   "user-1",
		Category: "General Sales",
	}
	repo.questions[sessionID] = questions
}

func recordScore(repo *mockTrainingRepo, sessionID, questionID string, score float64) {
	repo.evaluations[sessionID] = append(repo.evaluations[sessionID], internalEntity.AnswerEvaluation{
		SessionID:    sessionID,
		QuestionID:   questionID,
		OverallScore: score,
	})
}

func TestNextQuestionNoAnswersYet(t *testing.T) {
	repo := newMockTrainingRepo()
	seedSessionQuestions(repo, "s1", []internalEntity.SessionQuestion{
		{ID: "q1", SessionID: "s1", Position: 1},
		{ID: "q2", SessionID: "s1", Position: 2, IsObjection: true},
	})
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	resp, err := u.NextQuestion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if resp.Done {
		t.Fatal("expected a question, got done")
	}
	if resp.Question.ID != "q1" {
		t.Errorf("with no history, expected position order, got %s", resp.Question.ID)
	}
}

func TestNextQuestionAllAnswered(t *testing.T) {
	repo := newMockTrainingRepo()
	seedSessionQuestions(repo, "s1", []internalEntity.SessionQuestion{
		{ID: "q1", SessionID: "s1", Position: 1},
	})
	recordScore(repo, "s1", "q1", 7)
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	resp, err := u.NextQuestion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if !resp.Done {
		t.Error("expected done when every question is answered")
	}
	if resp.Question != nil {
		t.Error("done response must not carry a question")
	}
}

func TestNextQuestionStrongPerformerGetsObjections(t *testing.T) {
	repo := newMockTrainingRepo()
	seedSessionQuestions(repo, "s1", []internalEntity.SessionQuestion{
		{ID: "q1", SessionID: "s1", Position: 1},
		{ID: "q2", SessionID: "s1", Position: 2},
		{ID: "q3", SessionID: "s1", Position: 3, IsObjection: true},
	})
	recordScore(repo, "s1", "q1", 9)
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	resp, err := u.NextQuestion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if resp.Question.ID != "q3" {
		t.Errorf("average >= 8 should surface objection questions first, got %s", resp.Question.ID)
	}
}

func TestNextQuestionStrugglingPerformerAvoidsObjections(t *testing.T) {
	repo := newMockTrainingRepo()
	seedSessionQuestions(repo, "s1", []internalEntity.SessionQuestion{
		{ID: "q1", SessionID: "s1", Position: 1},
		{ID: "q2", SessionID: "s1", Position: 2, IsObjection: true},
		{ID: "q3", SessionID: "s1", Position: 3},
	})
	recordScore(repo, "s1", "q1", 3)
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	resp, err := u.NextQuestion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if resp.Question.ID == "q2" {
		t.Error("average < 5 should push objection questions back")
	}
}

func TestNextQuestionWeakTopicFirst(t *testing.T) {
	repo := newMockTrainingRepo()
	seedSessionQuestions(repo, "s1", []internalEntity.SessionQuestion{
		{ID: "q1", SessionID: "s1", Position: 1, KeyPoints: `["pricing","warranty"]`},
		{ID: "q2", SessionID: "s1", Position: 2, KeyPoints: `["maintenance"]`},
		{ID: "q3", SessionID: "s1", Position: 3, KeyPoints: `["Warranty "]`},
	})
	// Failed q1, so warranty/pricing are weak topics. q3 shares "warranty"
	// after normalization and must come before q2.
	recordScore(repo, "s1", "q1", 2)
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	resp, err := u.NextQuestion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("NextQuestion returned error: %v", err)
	}
	if resp.Question.ID != "q3" {
		t.Errorf("expected weak-topic question q3 first, got %s", resp.Question.ID)
	}
}

func TestNextQuestionUnknownSession(t *testing.T) {
	repo := newMockTrainingRepo()
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})

	if _, err := u.NextQuestion(context.Background(), "missing"); err == nil {
		t.Error("expected error for session without questions")
	}
}
