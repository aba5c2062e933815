package interview

import "intervai/internal/models"

// Score thresholds for difficulty adjustment, on the normalized 1-10 scale.
const (
	stepUpScore   = 8
	stepDownScore = 4
)

// EffectiveDifficulty derives the difficulty for the next question from the
// session's base difficulty and the most recent normalized score. A strong
// last answer steps the level up one notch, a weak one steps it down; the
// base setting itself is never modified, so the adjustment is recomputed on
// every question.
func EffectiveDifficulty(base models.Level, lastScore *int) models.Level {
	if !base.IsValid() {
		base = models.LevelBasic
	}
	if lastScore == nil {
		return base
	}
	switch {
	case *lastScore >= stepUpScore && base != models.LevelHard:
		if base == models.LevelBasic {
			return models.LevelMedium
		}
		return models.LevelHard
	case *lastScore <= stepDownScore && base != models.LevelBasic:
		if base == models.LevelHard {
			return models.LevelMedium
		}
		return models.LevelBasic
	}
	return base
}
