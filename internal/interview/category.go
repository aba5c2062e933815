package interview

import (
	"math/rand"
	"sync"

	"intervai/internal/models"
)

const (
	// diversityStep is added per unit of gap between a category's count and
	// the session's most-issued category, so underused categories always pull
	// ahead of overused ones.
	diversityStep = 0.2
	// recencyFloor keeps a recently used category drawable at all.
	recencyFloor = 0.01
)

// baseWeights gives the static per-level category distribution before any
// session correction. Rows sum to 1.0: conceptual dominates at basic,
// practical and scenario dominate at hard.
var baseWeights = map[models.Level]map[models.Category]float64{
	models.LevelBasic: {
		models.CategoryConceptual: 0.40,
		models.CategoryPractical:  0.20,
		models.CategoryScenario:   0.15,
		models.CategoryCoding:     0.15,
		models.CategoryBehavioral: 0.10,
	},
	models.LevelMedium: {
		models.CategoryConceptual: 0.25,
		models.CategoryPractical:  0.30,
		models.CategoryScenario:   0.20,
		models.CategoryCoding:     0.15,
		models.CategoryBehavioral: 0.10,
	},
	models.LevelHard: {
		models.CategoryConceptual: 0.15,
		models.CategoryPractical:  0.30,
		models.CategoryScenario:   0.30,
		models.CategoryCoding:     0.15,
		models.CategoryBehavioral: 0.10,
	},
}

// Selector draws question categories by weighted randomization, corrected
// for within-session imbalance and recency.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Pick draws one category for the given effective difficulty. counts and
// recent come from the session; the caller updates them only after a
// question is actually committed.
func (s *Selector) Pick(level models.Level, lastScore *int, counts map[models.Category]int, recent []models.Category) models.Category {
	return s.pick(level, counts, recent, "")
}

// PickAvoiding is Pick biased for followups: the avoided category (normally
// the most recently used one) is excluded from the draw entirely. With a
// single-category table it would fall back to the standard draw, but the
// fixed five-category set always leaves alternatives.
func (s *Selector) PickAvoiding(level models.Level, lastScore *int, counts map[models.Category]int, recent []models.Category, avoid models.Category) models.Category {
	return s.pick(level, counts, recent, avoid)
}

func (s *Selector) pick(level models.Level, counts map[models.Category]int, recent []models.Category, avoid models.Category) models.Category {
	base, ok := baseWeights[level]
	if !ok {
		base = baseWeights[models.LevelBasic]
	}

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	weights := make(map[models.Category]float64, len(models.Categories))
	for _, c := range models.Categories {
		// Diversity correction: categories issued less than the most-issued
		// one get a boost proportional to the gap.
		weights[c] = base[c] + float64(maxCount-counts[c]+1)*diversityStep
	}

	// Recency penalty, applied sequentially so a category appearing twice in
	// the window is halved twice.
	for _, c := range recent {
		w := weights[c] / 2
		if w < recencyFloor {
			w = recencyFloor
		}
		weights[c] = w
	}

	candidates := models.Categories
	if avoid != "" && len(candidates) > 1 {
		filtered := make([]models.Category, 0, len(candidates)-1)
		for _, c := range candidates {
			if c != avoid {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	total := 0.0
	for _, c := range candidates {
		total += weights[c]
	}

	s.mu.Lock()
	draw := s.rng.Float64() * total
	s.mu.Unlock()

	cum := 0.0
	for _, c := range candidates {
		cum += weights[c]
		if draw < cum {
			return c
		}
	}
	// Floating rounding left the draw unmatched; the last category wins.
	return candidates[len(candidates)-1]
}
