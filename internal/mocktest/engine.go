// Package mocktest implements the adaptive mock test: a fixed-length
// session whose difficulty tier moves up one step after a correct answer
// and down one step after an incorrect one, clamped to [1,3]. Each question
// is drawn uniformly at random from the current tier's pool only.
package mocktest

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/speakeasy-learn/eslprep/internal/bank"
	"github.com/speakeasy-learn/eslprep/internal/grading"
)

var (
	// ErrNoQuestions means the bank has an empty pool at the current tier.
	// This is a configuration defect surfaced to the user, not a retryable
	// runtime condition.
	ErrNoQuestions = errors.New("mocktest: no questions available at current tier")

	// ErrNotRunning is returned when an answer arrives outside a running
	// session. The session state is left untouched.
	ErrNotRunning = errors.New("mocktest: session is not running")
)

// Banks resolves a context key to a question bank. Unknown keys must fall
// back to a default bank rather than returning nil.
type Banks func(context string) *bank.Bank

// Engine drives mock-test sessions. Safe for concurrent use by handlers.
type Engine struct {
	banks  Banks
	grader grading.Grader

	mu  sync.Mutex
	rng *rand.Rand

	timeLimit time.Duration // 0 = untimed
	now       func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand injects the random source used for question draws.
func WithRand(r *rand.Rand) EngineOption { return func(e *Engine) { e.rng = r } }

// WithTimeLimit makes sessions expire after d. Answers after the deadline
// finish the session instead of being judged.
func WithTimeLimit(d time.Duration) EngineOption { return func(e *Engine) { e.timeLimit = d } }

// WithClock injects the time source. Tests use this to step past deadlines.
func WithClock(now func() time.Time) EngineOption { return func(e *Engine) { e.now = now } }

// NewEngine builds an engine over the given bank resolver and grader.
func NewEngine(banks Banks, grader grading.Grader, opts ...EngineOption) *Engine {
	e := &Engine{
		banks:  banks,
		grader: grader,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start resets session state to its defaults, resolves the bank for the
// context key (unknown keys fall back to the default bank), and draws the
// first question. An empty tier-1 pool puts the session in the visible
// no-questions state and returns ErrNoQuestions.
func (e *Engine) Start(userID, context string) (*Session, error) {
	b := e.banks(context)
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Context:   context,
		Tier:      bank.MinTier,
		Status:    StatusRunning,
		StartedAt: e.now(),
	}
	if b != nil {
		s.Context = b.Context
	}
	if e.timeLimit > 0 {
		dl := s.StartedAt.Add(e.timeLimit)
		s.Deadline = &dl
	}
	if err := e.next(s, b); err != nil {
		return s, err
	}
	return s, nil
}

// next advances the session: finish at the fixed length, otherwise draw one
// question uniformly from the current tier's pool.
func (e *Engine) next(s *Session, b *bank.Bank) error {
	if s.Index >= SessionLength {
		s.Status = StatusFinished
		s.Current = nil
		return nil
	}
	pool := b.AtTier(s.Tier)
	if len(pool) == 0 {
		s.Status = StatusNoQuestions
		s.Current = nil
		return ErrNoQuestions
	}
	e.mu.Lock()
	q := pool[e.rng.Intn(len(pool))]
	e.mu.Unlock()
	s.Current = &q
	return nil
}

// Judge applies the adaptive rule for one judged answer: index increments;
// a correct answer raises score and tier, an incorrect one lowers tier;
// both clamped; then the next question is drawn (or the session finishes at
// the fixed length). Outside a running session this is a no-op.
func (e *Engine) Judge(s *Session, correct bool) error {
	if !s.Running() {
		return ErrNotRunning
	}
	s.Index++
	if correct {
		s.Score++
		if s.Tier < bank.MaxTier {
			s.Tier++
		}
	} else if s.Tier > bank.MinTier {
		s.Tier--
	}
	return e.next(s, e.banks(s.Context))
}

// Outcome is what one answer produces: per-question feedback plus either
// the next question or the final report.
type Outcome struct {
	Correct  bool         `json:"correct"`
	Explain  string       `json:"explain,omitempty"`
	Feedback []string     `json:"feedback,omitempty"`
	Next     *bank.Public `json:"next,omitempty"`
	Report   *Report      `json:"report,omitempty"`
}

// Answer evaluates the submitted payload against the current question and
// judges the session. Malformed payloads are treated as incorrect answers.
// A timed session past its deadline finishes instead of judging.
func (e *Engine) Answer(s *Session, submitted interface{}) (*Outcome, error) {
	if !s.Running() {
		return nil, ErrNotRunning
	}
	if s.Expired(e.now()) {
		s.Status = StatusFinished
		s.Current = nil
		return &Outcome{Report: s.report()}, nil
	}
	if s.Current == nil {
		return nil, ErrNoQuestions
	}
	q := *s.Current
	res := e.grader.Grade(q, submitted)
	if err := e.Judge(s, res.Correct); err != nil {
		return nil, err
	}
	out := &Outcome{
		Correct:  res.Correct,
		Explain:  q.Explain,
		Feedback: res.Feedback,
	}
	switch s.Status {
	case StatusFinished:
		out.Report = s.report()
	case StatusRunning:
		pub := s.Current.Public()
		out.Next = &pub
	}
	return out, nil
}

// Reset returns the session to its initial defaults and clears any current
// question. It does not start a new run. Resetting twice is the same as
// resetting once.
func (e *Engine) Reset(s *Session) {
	if s == nil {
		return
	}
	s.Tier = bank.MinTier
	s.Index = 0
	s.Score = 0
	s.Status = StatusIdle
	s.Current = nil
	s.Deadline = nil
}
