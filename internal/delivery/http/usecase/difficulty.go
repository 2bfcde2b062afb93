package usecase

import (
	"context"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
)

const (
	performanceWindow       = 5
	difficultyTrialCeiling  = 6.0
	difficultyBasicsCeiling = 8.0
)

// SelectDifficulty picks a tier from the user's recent completed sessions in
// the category. New users start at trial; history errors degrade to basics
// rather than failing the request.
func (u *trainingUsecase) SelectDifficulty(ctx context.Context, userID, category string) entity.Difficulty {
	scores, err := u.cfg.Repository.FindRecentSessionScores(u.cfg.DB, userID, category, performanceWindow)
	if err != nil {
		u.cfg.Log.Warnf("failed to load session history for user %s: %v", userID, err)
		return entity.DifficultyBasics
	}
	if len(scores) == 0 {
		return entity.DifficultyTrial
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	average := total / float64(len(scores))

	switch {
	case average < difficultyTrialCeiling:
		return entity.DifficultyTrial
	case average < difficultyBasicsCeiling:
		return entity.DifficultyBasics
	default:
		return entity.DifficultyFieldReady
	}
}
