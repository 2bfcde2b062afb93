package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
)

func selectWithScores(t *testing.T, scores []float64, err error) entity.Difficulty {
	t.Helper()
	repo := newMockTrainingRepo()
	repo.recentScores = scores
	repo.recentScoresErr = err
	u := newTestTrainingUsecase(repo, &mockJudge{}, &mockEmbedder{}, &mockRetriever{})
	return u.SelectDifficulty(context.Background(), "user-1", "General Sales")
}

func TestSelectDifficultyNewUser(t *testing.T) {
	if got := selectWithScores(t, nil, nil); got != entity.DifficultyTrial {
		t.Errorf("expected trial for new user, got %s", got)
	}
}

func TestSelectDifficultyLowScores(t *testing.T) {
	if got := selectWithScores(t, []float64{4, 5, 5.5}, nil); got != entity.DifficultyTrial {
		t.Errorf("expected trial for low scores, got %s", got)
	}
}

func TestSelectDifficultyMidScores(t *testing.T) {
	if got := selectWithScores(t, []float64{6.5, 7, 7.5}, nil); got != entity.DifficultyBasics {
		t.Errorf("expected basics for mid scores, got %s", got)
	}
}

func TestSelectDifficultyHighScores(t *testing.T) {
	if got := selectWithScores(t, []float64{9, 8.5, 9.5}, nil); got != entity.DifficultyFieldReady {
		t.Errorf("expected field-ready for high scores, got %s", got)
	}
}

func TestSelectDifficultyBoundaries(t *testing.T) {
	if got := selectWithScores(t, []float64{6.0}, nil); got != entity.DifficultyBasics {
		t.Errorf("average of exactly 6.0 should be basics, got %s", got)
	}
	if got := selectWithScores(t, []float64{8.0}, nil); got != entity.DifficultyFieldReady {
		t.Errorf("average of exactly 8.0 should be field-ready, got %s", got)
	}
}

func TestSelectDifficultyHistoryError(t *testing.T) {
	got := selectWithScores(t, nil, errors.New("db down"))
	if got != entity.DifficultyBasics {
		t.Errorf("expected basics when history is unavailable, got %s", got)
	}
}
