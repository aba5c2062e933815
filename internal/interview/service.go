package interview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"intervai/internal/models"
	"intervai/internal/provider"
)

// Archiver persists a finished interview. The live store never depends on
// it; a nil archiver simply skips persistence.
type Archiver interface {
	Archive(summary models.Summary, providerID, model string) error
}

// ProviderGateway is the slice of the provider registry the orchestrator
// needs. Validation helpers stay package functions on provider.
type ProviderGateway interface {
	provider.Gateway
	Known(providerID string) bool
	DefaultModel(providerID string) string
}

// Service orchestrates interview sessions: it composes the difficulty
// controller, category selector, repetition tracking, question bank, and
// provider gateway per operation.
type Service struct {
	store    *LiveStore
	registry *Registry
	selector *Selector
	bank     *Bank
	gateway  ProviderGateway
	archive  Archiver
	logger   *slog.Logger

	generateTimeout time.Duration
	evaluateTimeout time.Duration
}

// NewService wires the orchestrator. archive may be nil.
func NewService(
	gateway ProviderGateway,
	bank *Bank,
	selector *Selector,
	archive Archiver,
	generateTimeout, evaluateTimeout time.Duration,
	logger *slog.Logger,
) *Service {
	if generateTimeout <= 0 {
		generateTimeout = 30 * time.Second
	}
	if evaluateTimeout <= 0 {
		evaluateTimeout = 45 * time.Second
	}
	return &Service{
		store:           NewLiveStore(),
		registry:        NewRegistry(),
		selector:        selector,
		bank:            bank,
		gateway:         gateway,
		archive:         archive,
		logger:          logger,
		generateTimeout: generateTimeout,
		evaluateTimeout: evaluateTimeout,
	}
}

// Start validates the configuration and creates a live session.
func (s *Service) Start(req models.StartRequest) (models.StartResponse, error) {
	if req.APIKey == "" {
		return models.StartResponse{}, validationf("API key cannot be empty")
	}
	if !s.gateway.Known(req.Provider) {
		return models.StartResponse{}, validationf("invalid API provider: %s", req.Provider)
	}

	difficulty := models.Level(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = models.LevelBasic
	} else if !difficulty.IsValid() {
		return models.StartResponse{}, validationf("invalid difficulty %q: must be basic, medium, or hard", req.Difficulty)
	}

	offline := provider.IsOfflineKey(req.APIKey)
	if !offline {
		if inferred := provider.InferFromKey(req.APIKey); inferred != "unknown" && inferred != req.Provider {
			return models.StartResponse{}, validationf(
				"the provided API key appears to be for %q, but provider %q was selected", inferred, req.Provider)
		}
	}

	model := req.Model
	if model == "" {
		model = s.gateway.DefaultModel(req.Provider)
	}

	sess := &Session{
		ID:             uuid.New().String(),
		Provider:       req.Provider,
		Model:          model,
		Domain:         req.Domain,
		APIKey:         req.APIKey,
		BaseDifficulty: difficulty,
		Offline:        offline,
		CategoryCounts: make(map[models.Category]int),
		Asked:          make(map[string]struct{}),
		WeakAreas:      make(map[string][]models.WeakArea),
	}
	s.store.Put(sess)

	s.logger.Info("interview started",
		"session_id", sess.ID,
		"provider", sess.Provider,
		"domain", sess.Domain,
		"difficulty", difficulty,
		"offline", offline,
	)

	return models.StartResponse{
		SessionID:  sess.ID,
		Provider:   sess.Provider,
		Domain:     sess.Domain,
		Model:      sess.Model,
		Difficulty: difficulty,
	}, nil
}

// NextQuestion issues the next question for the session. It never fails for
// upstream reasons: any provider failure or repeat degrades to local
// generation.
func (s *Service) NextQuestion(ctx context.Context, sessionID string) (models.QuestionResponse, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return models.QuestionResponse{}, err
	}
	snap := sess.snapshot()

	level := EffectiveDifficulty(snap.BaseDifficulty, snap.LastScore)
	category := s.selector.Pick(level, snap.LastScore, snap.CategoryCounts, snap.RecentCategories)

	prompt := fmt.Sprintf("Ask me one %s %s interview question about %s. Return only the question itself.",
		level, category, snap.Domain)

	question := s.obtainQuestion(ctx, sess, snap, level, category, prompt)
	s.commit(sess, question, category)

	return models.QuestionResponse{Question: question, Difficulty: level, Category: category}, nil
}

// Followup issues a follow-up question: the category draw avoids the most
// recently used category, and the upstream prompt carries the previous
// question/answer pair as conversational context.
func (s *Service) Followup(ctx context.Context, sessionID string) (models.QuestionResponse, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return models.QuestionResponse{}, err
	}
	snap := sess.snapshot()

	level := EffectiveDifficulty(snap.BaseDifficulty, snap.LastScore)

	var category models.Category
	if n := len(snap.RecentCategories); n > 0 {
		category = s.selector.PickAvoiding(level, snap.LastScore, snap.CategoryCounts, snap.RecentCategories, snap.RecentCategories[n-1])
	} else {
		category = s.selector.Pick(level, snap.LastScore, snap.CategoryCounts, snap.RecentCategories)
	}

	prompt := fmt.Sprintf(
		"We are in a mock interview about %s.\nPrevious question: %s\nCandidate's answer: %s\n"+
			"Ask one %s %s follow-up interview question that builds on this exchange. Return only the question itself.",
		snap.Domain, snap.CurrentQuestion, snap.LastAnswer, level, category)

	question := s.obtainQuestion(ctx, sess, snap, level, category, prompt)
	s.commit(sess, question, category)

	return models.QuestionResponse{Question: question, Difficulty: level, Category: category}, nil
}

// obtainQuestion tries the upstream provider once and falls back to the
// local bank on any failure, malformed payload, or detected repeat. The
// session lock is not held during the upstream round trip.
func (s *Service) obtainQuestion(ctx context.Context, sess *Session, snap snapshot, level models.Level, category models.Category, prompt string) string {
	isRepeat := func(text string) bool {
		fp := Normalize(text)
		return sess.hasAsked(fp) || s.registry.Contains(fp)
	}

	if !snap.Offline {
		callCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
		defer cancel()

		text, err := s.gateway.GenerateText(callCtx, snap.Provider, snap.APIKey, snap.Model, prompt, 0)
		switch {
		case err != nil:
			// Degradation is routine here; the caller always gets a question.
			s.logger.Warn("upstream question generation failed, using local bank",
				"session_id", sess.ID, "provider", snap.Provider, "error", err)
		case Normalize(text) == "":
			s.logger.Warn("upstream returned empty question, using local bank",
				"session_id", sess.ID, "provider", snap.Provider)
		case isRepeat(text):
			s.logger.Info("upstream question is a repeat, using local bank",
				"session_id", sess.ID, "provider", snap.Provider)
		default:
			return text
		}
	}

	return s.bank.Generate(snap.Domain, level, category, isRepeat)
}

// commit records the issued question in the session and the process-wide
// repetition registry.
func (s *Service) commit(sess *Session, question string, category models.Category) {
	fp := Normalize(question)
	sess.commitQuestion(question, fp, category)
	s.registry.Add(fp)
}

// SubmitAnswer scores the answer for the session's pending question and
// appends the result to the session history. Offline sessions use the local
// heuristic scorer; upstream evaluation failures surface to the caller, as a
// silently wrong score would corrupt the session's scoring history.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (models.Judgment, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return models.Judgment{}, err
	}
	snap := sess.snapshot()

	var judgment models.Judgment
	if snap.Offline {
		judgment = HeuristicJudge(snap.CurrentQuestion, answer, snap.Domain)
	} else {
		callCtx, cancel := context.WithTimeout(ctx, s.evaluateTimeout)
		defer cancel()

		raw, err := s.gateway.EvaluateStructured(callCtx, snap.Provider, snap.APIKey, snap.Model, snap.CurrentQuestion, answer)
		if err != nil {
			s.logger.Error("upstream answer evaluation failed",
				"session_id", sess.ID, "provider", snap.Provider, "error", err)
			return models.Judgment{}, fmt.Errorf("evaluate answer: %w", err)
		}
		judgment = models.Judgment{
			Score:       NormalizeScore(raw.Score),
			Verdict:     raw.Verdict,
			Feedback:    raw.Feedback,
			ModelAnswer: raw.ModelAnswer,
		}
	}

	sess.commitAnswer(judgment, answer)
	return judgment, nil
}

// Restore returns live-session metadata for client-side state recovery.
func (s *Service) Restore(sessionID string) (models.RestoreResponse, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return models.RestoreResponse{}, err
	}
	snap := sess.snapshot()
	return models.RestoreResponse{
		SessionID: sessionID,
		Provider:  snap.Provider,
		Domain:    snap.Domain,
		Model:     snap.Model,
	}, nil
}

// End removes the session from the live store and returns its summary. The
// removal is terminal: a second End for the same identifier reports
// not-found. Archive failures are logged, never surfaced.
func (s *Service) End(sessionID string) (models.Summary, error) {
	sess, err := s.store.Remove(sessionID)
	if err != nil {
		return models.Summary{}, err
	}

	summary := sess.summary()
	if s.archive != nil {
		if err := s.archive.Archive(summary, sess.Provider, sess.Model); err != nil {
			s.logger.Error("archive interview failed", "session_id", sessionID, "error", err)
		}
	}

	s.logger.Info("interview ended",
		"session_id", sessionID,
		"questions", len(summary.History),
		"overall_score", summary.OverallScore,
	)
	return summary, nil
}
