package interview

import (
	"sync"

	"intervai/internal/models"
)

// recentCategoryWindow bounds how many recently issued categories a session
// remembers for the selector's recency penalty.
const recentCategoryWindow = 2

// Session is the authoritative mutable record for one live interview. All
// field access goes through mu; the orchestrator releases the lock while
// waiting on upstream providers and reacquires it to commit.
type Session struct {
	mu sync.Mutex

	ID             string
	Provider       string
	Model          string
	Domain         string
	APIKey         string
	BaseDifficulty models.Level
	Offline        bool

	History          []models.QAPair
	CurrentQuestion  string
	ScoreHistory     []int
	CategoryCounts   map[models.Category]int
	RecentCategories []models.Category
	Asked            map[string]struct{}
	WeakAreas        map[string][]models.WeakArea
}

// snapshot is a consistent copy of the session fields the orchestrator needs
// while not holding the session lock (e.g. during an upstream call).
type snapshot struct {
	Provider         string
	Model            string
	Domain           string
	APIKey           string
	BaseDifficulty   models.Level
	Offline          bool
	CurrentQuestion  string
	LastScore        *int
	CategoryCounts   map[models.Category]int
	RecentCategories []models.Category
	LastAnswer       string
}

func (s *Session) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		Provider:        s.Provider,
		Model:           s.Model,
		Domain:          s.Domain,
		APIKey:          s.APIKey,
		BaseDifficulty:  s.BaseDifficulty,
		Offline:         s.Offline,
		CurrentQuestion: s.CurrentQuestion,
		CategoryCounts:  make(map[models.Category]int, len(s.CategoryCounts)),
	}
	for c, n := range s.CategoryCounts {
		snap.CategoryCounts[c] = n
	}
	snap.RecentCategories = append(snap.RecentCategories, s.RecentCategories...)
	if n := len(s.ScoreHistory); n > 0 {
		last := s.ScoreHistory[n-1]
		snap.LastScore = &last
	}
	if n := len(s.History); n > 0 {
		snap.LastAnswer = s.History[n-1].UserAnswer
	}
	return snap
}

// hasAsked reports whether the normalized fingerprint was already issued in
// this session.
func (s *Session) hasAsked(fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Asked[fingerprint]
	return ok
}

// commitQuestion records an issued question: current-question slot, the
// session's fingerprint set, and the category bookkeeping the selector
// depends on. Counts are only updated here, never on selection alone, so a
// retried selection is not double-counted.
func (s *Session) commitQuestion(question, fingerprint string, category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CurrentQuestion = question
	s.Asked[fingerprint] = struct{}{}
	s.CategoryCounts[category]++
	s.RecentCategories = append(s.RecentCategories, category)
	if len(s.RecentCategories) > recentCategoryWindow {
		s.RecentCategories = s.RecentCategories[len(s.RecentCategories)-recentCategoryWindow:]
	}
}

// commitAnswer appends the judged answer to the session history and flags a
// weak area when the normalized score falls below the threshold.
func (s *Session) commitAnswer(judgment models.Judgment, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.CurrentQuestion
	s.History = append(s.History, models.QAPair{
		Question:    question,
		UserAnswer:  answer,
		Score:       judgment.Score,
		Verdict:     judgment.Verdict,
		Feedback:    judgment.Feedback,
		ModelAnswer: judgment.ModelAnswer,
	})
	s.ScoreHistory = append(s.ScoreHistory, judgment.Score)

	if judgment.Score < weakScoreThreshold {
		topic := s.Domain
		if topic == "" {
			topic = "General"
		}
		s.WeakAreas[topic] = append(s.WeakAreas[topic], models.WeakArea{
			Question:       question,
			ImprovementTip: improvementTip,
		})
	}
}

// summary builds the end-of-session report.
func (s *Session) summary() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, sc := range s.ScoreHistory {
		total += sc
	}
	overall := 0.0
	if len(s.ScoreHistory) > 0 {
		overall = float64(total) / float64(len(s.ScoreHistory))
	}

	weak := make(map[string][]models.WeakArea, len(s.WeakAreas))
	for topic, areas := range s.WeakAreas {
		weak[topic] = append([]models.WeakArea(nil), areas...)
	}

	return models.Summary{
		SessionID:    s.ID,
		Subject:      s.Domain,
		OverallScore: overall,
		WeakAreas:    weak,
		History:      append([]models.QAPair(nil), s.History...),
	}
}

// LiveStore holds active sessions in memory. Sessions are independent units
// of work; the store lock only guards the map, per-session state has its own
// mutex.
type LiveStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewLiveStore() *LiveStore {
	return &LiveStore{sessions: make(map[string]*Session)}
}

func (s *LiveStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *LiveStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove pops the session from the live store. A session removed here is
// terminal; a second Remove for the same id reports not-found.
func (s *LiveStore) Remove(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, id)
	return sess, nil
}
