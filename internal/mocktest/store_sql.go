package mocktest

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Attempt is one finished mock-test run as persisted.
type Attempt struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Context    string `json:"context"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percent    int    `json:"percent"`
	FinalTier  int    `json:"final_tier"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}

// AttemptStore records finished sessions and lists a user's history.
type AttemptStore interface {
	Record(ctx context.Context, s *Session) (Attempt, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Attempt, error)
}

type sqlAttemptStore struct{ db *sql.DB }

func NewSQLAttemptStore(db *sql.DB) AttemptStore {
	return &sqlAttemptStore{db: db}
}

func (s *sqlAttemptStore) Record(ctx context.Context, sess *Session) (Attempt, error) {
	if sess == nil || sess.Status != StatusFinished {
		return Attempt{}, errors.New("mocktest: session not finished")
	}
	a := Attempt{
		ID:         sess.ID,
		UserID:     sess.UserID,
		Context:    sess.Context,
		Score:      sess.Score,
		Total:      SessionLength,
		Percent:    sess.Percent(),
		FinalTier:  sess.Tier,
		StartedAt:  sess.StartedAt.Unix(),
		FinishedAt: time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, user_id, context, score, total, percent, final_tier, started_at, finished_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO NOTHING`,
		a.ID, a.UserID, a.Context, a.Score, a.Total, a.Percent, a.FinalTier, a.StartedAt, a.FinishedAt)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *sqlAttemptStore) ListByUser(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, context, score, total, percent, final_tier, started_at, finished_at
		 FROM attempts WHERE user_id=$1 ORDER BY finished_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Context, &a.Score, &a.Total, &a.Percent, &a.FinalTier, &a.StartedAt, &a.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
