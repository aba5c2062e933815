package interview

import (
	"testing"

	"intervai/internal/models"
)

func TestPickIsProperDistribution(t *testing.T) {
	sel := NewSelector(42)
	fresh := map[models.Category]int{}

	draws := map[models.Category]int{}
	for i := 0; i < 1000; i++ {
		c := sel.Pick(models.LevelBasic, nil, fresh, nil)
		if !c.IsValid() {
			t.Fatalf("Pick returned invalid category %q", c)
		}
		draws[c]++
	}

	// conceptual must be the modal category at basic difficulty.
	for _, c := range models.Categories {
		if c == models.CategoryConceptual {
			continue
		}
		if draws[c] >= draws[models.CategoryConceptual] {
			t.Errorf("expected conceptual modal at basic, got %v", draws)
		}
	}

	nonzero := 0
	for _, n := range draws {
		if n > 0 {
			nonzero++
		}
	}
	if nonzero < 4 {
		t.Errorf("expected at least 4 categories drawn, got %d (%v)", nonzero, draws)
	}
}

func TestPickBoostsUnderusedCategories(t *testing.T) {
	sel := NewSelector(7)
	counts := map[models.Category]int{
		models.CategoryConceptual: 10,
		models.CategoryPractical:  0,
		models.CategoryScenario:   0,
		models.CategoryCoding:     0,
		models.CategoryBehavioral: 0,
	}

	draws := map[models.Category]int{}
	for i := 0; i < 1000; i++ {
		draws[sel.Pick(models.LevelBasic, nil, counts, nil)]++
	}

	for _, c := range models.Categories {
		if c == models.CategoryConceptual {
			continue
		}
		if draws[models.CategoryConceptual] >= draws[c] {
			t.Errorf("overused conceptual (%d draws) should trail %s (%d draws)",
				draws[models.CategoryConceptual], c, draws[c])
		}
	}
}

func TestPickRecencyPenalty(t *testing.T) {
	sel := NewSelector(11)
	fresh := map[models.Category]int{}
	recent := []models.Category{models.CategoryConceptual, models.CategoryConceptual}

	draws := map[models.Category]int{}
	for i := 0; i < 1000; i++ {
		draws[sel.Pick(models.LevelBasic, nil, fresh, recent)]++
	}

	// Quartered by the recency penalty, conceptual loses its modal spot.
	if draws[models.CategoryConceptual] >= draws[models.CategoryPractical] {
		t.Errorf("recency penalty should demote conceptual: %v", draws)
	}
}

func TestPickAvoidingExcludesCategory(t *testing.T) {
	sel := NewSelector(3)
	fresh := map[models.Category]int{}

	for i := 0; i < 500; i++ {
		c := sel.PickAvoiding(models.LevelHard, nil, fresh, nil, models.CategoryScenario)
		if c == models.CategoryScenario {
			t.Fatal("PickAvoiding drew the avoided category")
		}
	}
}
