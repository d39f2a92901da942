package mocktest

import (
	"time"

	"github.com/speakeasy-learn/eslprep/internal/bank"
)

// Status is a session's position in the idle -> running -> finished
// lifecycle. NoQuestions is the visible configuration-error state entered
// when the current tier has an empty pool.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusRunning     Status = "running"
	StatusFinished    Status = "finished"
	StatusNoQuestions Status = "no_questions"
)

// SessionLength is the fixed number of questions per mock test.
const SessionLength = 8

// Session is the mutable state of one mock-test run. It is in-memory only;
// a finished session is recorded as an Attempt.
type Session struct {
	ID      string         `json:"id"`
	UserID  string         `json:"user_id"`
	Context string         `json:"context"`
	Tier    int            `json:"tier"`  // 1..3, clamped
	Index   int            `json:"index"` // questions answered so far, 0..8
	Score   int            `json:"score"` // cumulative correct count
	Status  Status         `json:"status"`
	Current *bank.Question `json:"-"` // current question with key, never serialized to clients

	StartedAt time.Time  `json:"started_at"`
	Deadline  *time.Time `json:"deadline,omitempty"` // optional timed-session cutoff
}

// Running reports whether the session accepts answers.
func (s *Session) Running() bool { return s != nil && s.Status == StatusRunning }

// Expired reports whether a timed session has passed its deadline.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && s.Deadline != nil && now.After(*s.Deadline)
}

// Percent is the final score as a percentage of the session length.
func (s *Session) Percent() int {
	return s.Score * 100 / SessionLength
}

// Report is the client-facing summary of a finished session.
type Report struct {
	SessionID string `json:"session_id"`
	Context   string `json:"context"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	FinalTier int    `json:"final_tier"`
}

// Summary returns the final report of a finished session, or nil while the
// session is still in any other state.
func (s *Session) Summary() *Report {
	if s == nil || s.Status != StatusFinished {
		return nil
	}
	return s.report()
}

func (s *Session) report() *Report {
	return &Report{
		SessionID: s.ID,
		Context:   s.Context,
		Score:     s.Score,
		Total:     SessionLength,
		Percent:   s.Percent(),
		FinalTier: s.Tier,
	}
}
