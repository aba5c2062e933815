package interview

import (
	"testing"

	"intervai/internal/models"
)

func score(n int) *int { return &n }

func TestEffectiveDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		base      models.Level
		lastScore *int
		want      models.Level
	}{
		{"no score returns base", models.LevelMedium, nil, models.LevelMedium},
		{"invalid base defaults to basic", models.Level("expert"), nil, models.LevelBasic},
		{"strong answer steps basic up", models.LevelBasic, score(9), models.LevelMedium},
		{"strong answer steps medium up", models.LevelMedium, score(9), models.LevelHard},
		{"strong answer at hard stays hard", models.LevelHard, score(9), models.LevelHard},
		{"threshold of 8 steps up", models.LevelBasic, score(8), models.LevelMedium},
		{"weak answer steps hard down", models.LevelHard, score(3), models.LevelMedium},
		{"weak answer steps medium down", models.LevelMedium, score(3), models.LevelBasic},
		{"weak answer at basic stays basic", models.LevelBasic, score(3), models.LevelBasic},
		{"threshold of 4 steps down", models.LevelHard, score(4), models.LevelMedium},
		{"middling score leaves base alone", models.LevelMedium, score(6), models.LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveDifficulty(tt.base, tt.lastScore)
			if got != tt.want {
				t.Errorf("EffectiveDifficulty(%s, %v) = %s, want %s", tt.base, tt.lastScore, got, tt.want)
			}
		})
	}
}

func TestEffectiveDifficultyAlwaysValid(t *testing.T) {
	bases := []models.Level{models.LevelBasic, models.LevelMedium, models.LevelHard}
	for _, base := range bases {
		for s := 1; s <= 10; s++ {
			if got := EffectiveDifficulty(base, score(s)); !got.IsValid() {
				t.Fatalf("EffectiveDifficulty(%s, %d) produced invalid level %q", base, s, got)
			}
		}
		if got := EffectiveDifficulty(base, nil); !got.IsValid() {
			t.Fatalf("EffectiveDifficulty(%s, nil) produced invalid level %q", base, got)
		}
	}
}
