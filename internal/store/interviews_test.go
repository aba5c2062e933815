package store

import (
	"errors"
	"path/filepath"
	"testing"

	"intervai/internal/models"
)

func newTestStore(t *testing.T) *InterviewStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewInterviewStore(db)
}

func sampleSummary(id string) models.Summary {
	return models.Summary{
		SessionID:    id,
		Subject:      "Backend Engineering",
		OverallScore: 7.5,
		History: []models.QAPair{
			{Question: "What is a goroutine?", UserAnswer: "A lightweight thread.", Score: 8, Verdict: "Correct", Feedback: "Good.", ModelAnswer: "..."},
			{Question: "Explain mutexes.", UserAnswer: "No idea.", Score: 1, Verdict: "Incorrect", Feedback: "Review sync primitives.", ModelAnswer: "..."},
		},
	}
}

func TestArchiveAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Archive(sampleSummary("s1"), "openai", "gpt-3.5-turbo"); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	got, err := s.Get("s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Subject != "Backend Engineering" || got.OverallScore != 7.5 {
		t.Errorf("summary = %+v", got)
	}
	if len(got.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(got.History))
	}
	if got.History[0].Question != "What is a goroutine?" || got.History[1].Score != 1 {
		t.Errorf("history order not preserved: %+v", got.History)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestListOrdersAndCounts(t *testing.T) {
	s := newTestStore(t)

	if err := s.Archive(sampleSummary("a"), "openai", "gpt-3.5-turbo"); err != nil {
		t.Fatalf("Archive a: %v", err)
	}
	if err := s.Archive(sampleSummary("b"), "anthropic", "claude-3-opus-20240229"); err != nil {
		t.Fatalf("Archive b: %v", err)
	}

	list, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	for _, a := range list {
		if a.Questions != 2 {
			t.Errorf("interview %s question count = %d, want 2", a.ID, a.Questions)
		}
	}
}

func TestArchiveDuplicateIDFails(t *testing.T) {
	s := newTestStore(t)

	if err := s.Archive(sampleSummary("dup"), "openai", "gpt-3.5-turbo"); err != nil {
		t.Fatalf("first Archive: %v", err)
	}
	if err := s.Archive(sampleSummary("dup"), "openai", "gpt-3.5-turbo"); err == nil {
		t.Error("second Archive with same id should fail")
	}
}
