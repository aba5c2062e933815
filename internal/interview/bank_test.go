package interview

import (
	"strings"
	"testing"

	"intervai/internal/models"
)

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	b, err := NewBank(1)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return b
}

func TestGenerateUsesDomainTemplates(t *testing.T) {
	b := newTestBank(t)

	q := b.Generate("Backend Engineering", models.LevelBasic, models.CategoryConceptual, nil)
	if q == "" {
		t.Fatal("Generate returned empty question")
	}
	if !strings.Contains(q, "Backend Engineering") {
		t.Errorf("question should name the domain, got %q", q)
	}
}

func TestGenerateSkipsRepeats(t *testing.T) {
	b := newTestBank(t)
	seen := make(map[string]struct{})
	isRepeat := func(q string) bool {
		_, ok := seen[Normalize(q)]
		return ok
	}

	// The medium/coding pool for software engineering holds two templates;
	// both must be issued before the generator falls through.
	first := b.Generate("software engineering", models.LevelMedium, models.CategoryCoding, isRepeat)
	seen[Normalize(first)] = struct{}{}
	second := b.Generate("software engineering", models.LevelMedium, models.CategoryCoding, isRepeat)
	seen[Normalize(second)] = struct{}{}
	if first == second {
		t.Fatalf("repeat issued before pool exhaustion: %q", first)
	}

	// Pool exhausted: the generator falls through instead of repeating a
	// specialized template.
	third := b.Generate("software engineering", models.LevelMedium, models.CategoryCoding, isRepeat)
	if third == first || third == second {
		t.Fatalf("exhausted pool re-issued a specialized template: %q", third)
	}
}

func TestGenerateFamilyFallback(t *testing.T) {
	b := newTestBank(t)

	// "Network Security" matches no specialized domain but hits the
	// technical family keywords.
	q := b.Generate("Network Security", models.LevelHard, models.CategoryScenario, nil)
	if !strings.Contains(q, "Network Security") {
		t.Errorf("family template should name the domain, got %q", q)
	}
}

func TestGenerateUltimateFallback(t *testing.T) {
	b := newTestBank(t)

	q := b.Generate("Beekeeping", models.LevelMedium, models.CategoryScenario, nil)
	want := "Ask me one medium scenario interview question about Beekeeping."
	if q != want {
		t.Errorf("ultimate fallback = %q, want %q", q, want)
	}
}

func TestGenerateEmptyDomain(t *testing.T) {
	b := newTestBank(t)

	q := b.Generate("", models.LevelBasic, models.CategoryPractical, nil)
	if !strings.Contains(q, "your field") {
		t.Errorf("empty domain should fall back to generic subject, got %q", q)
	}
}
