package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"intervai/internal/models"
)

// ErrNotFound is returned when an archived interview does not exist.
var ErrNotFound = errors.New("not found")

// InterviewStore persists completed interviews.
type InterviewStore struct {
	db *DB
}

func NewInterviewStore(db *DB) *InterviewStore {
	return &InterviewStore{db: db}
}

// Archive writes a finished session and its question history in one
// transaction.
func (s *InterviewStore) Archive(summary models.Summary, providerID, model string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO interviews (id, domain, provider, model, overall_score, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		summary.SessionID, summary.Subject, providerID, model, summary.OverallScore, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}

	for i, qa := range summary.History {
		_, err = tx.Exec(
			`INSERT INTO qa_pairs (interview_id, position, question, user_answer, score, verdict, feedback, model_answer)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.SessionID, i, qa.Question, qa.UserAnswer, qa.Score, qa.Verdict, qa.Feedback, qa.ModelAnswer,
		)
		if err != nil {
			return fmt.Errorf("insert qa pair: %w", err)
		}
	}

	return tx.Commit()
}

// List returns archived interviews, most recent first.
func (s *InterviewStore) List(limit int) ([]models.ArchivedInterview, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT i.id, i.domain, i.provider, i.model, i.overall_score, i.ended_at,
		        (SELECT COUNT(*) FROM qa_pairs q WHERE q.interview_id = i.id)
		 FROM interviews i
		 ORDER BY i.ended_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	out := []models.ArchivedInterview{}
	for rows.Next() {
		var a models.ArchivedInterview
		if err := rows.Scan(&a.ID, &a.Domain, &a.Provider, &a.Model, &a.OverallScore, &a.EndedAt, &a.Questions); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get returns one archived interview as a full summary, including history.
func (s *InterviewStore) Get(id string) (models.Summary, error) {
	var sum models.Summary
	err := s.db.QueryRow(
		`SELECT id, domain, overall_score FROM interviews WHERE id = ?`, id,
	).Scan(&sum.SessionID, &sum.Subject, &sum.OverallScore)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Summary{}, ErrNotFound
	}
	if err != nil {
		return models.Summary{}, fmt.Errorf("get interview: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT question, user_answer, score, verdict, feedback, model_answer
		 FROM qa_pairs WHERE interview_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return models.Summary{}, fmt.Errorf("get qa pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var qa models.QAPair
		var feedback, modelAnswer sql.NullString
		if err := rows.Scan(&qa.Question, &qa.UserAnswer, &qa.Score, &qa.Verdict, &feedback, &modelAnswer); err != nil {
			return models.Summary{}, fmt.Errorf("scan qa pair: %w", err)
		}
		qa.Feedback = feedback.String
		qa.ModelAnswer = modelAnswer.String
		sum.History = append(sum.History, qa)
	}
	return sum, rows.Err()
}
