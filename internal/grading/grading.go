// Package grading evaluates submitted answers against a question's key.
// It is deliberately separate from the mock-test engine so the engine's
// state machine can be tested without caring how answers are judged.
package grading

import (
	"strconv"
	"strings"

	"github.com/speakeasy-learn/eslprep/internal/bank"
)

// Result is the outcome of evaluating a single submitted answer.
type Result struct {
	Correct  bool
	Feedback []string
}

// Strategy evaluates a single question type.
type Strategy interface {
	Grade(q bank.Question, response interface{}) Result
}

// Grader routes by question type to the correct Strategy. Unknown types and
// malformed responses grade as incorrect; nothing here returns an error that
// could abort a session.
type Grader interface {
	Grade(q bank.Question, response interface{}) Result
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(q bank.Question, response interface{}) Result {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{Feedback: []string{"unknown question type"}}
	}
	return s.Grade(q, response)
}

// Option configures the grader.
type Option func(*config)

type config struct {
	MaxEditDistance int // for free-text near-miss tolerance
}

// WithMaxEditDistance allows free-text answers within n edits of the
// canonical answer to count as correct. Default 0 (off).
func WithMaxEditDistance(n int) Option { return func(c *config) { c.MaxEditDistance = n } }

// NewDefaultGrader installs built-in strategies.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			bank.TypeChoice: choiceStrategy{},
			bank.TypeInput:  inputStrategy{maxEdit: cfg.MaxEditDistance},
		},
	}
}

// --- Strategies ---

type choiceStrategy struct{}

// Grade accepts the selected option index as an int, a float64 (JSON
// numbers decode to float64), or a numeric string.
func (choiceStrategy) Grade(q bank.Question, response interface{}) Result {
	idx, ok := toIndex(response)
	if !ok {
		return Result{Feedback: []string{"response must be an option index"}}
	}
	if idx < 0 || idx >= len(q.Options) {
		return Result{Feedback: []string{"option index out of range"}}
	}
	return Result{Correct: idx == q.Correct}
}

type inputStrategy struct{ maxEdit int }

// Grade applies the lenient free-text rule: the trimmed, casefolded
// submission either equals the canonical answer, or contains at least one
// accepted substring when an accepted set is defined. The leniency is
// intentional product behaviour, not an approximation.
func (s inputStrategy) Grade(q bank.Question, response interface{}) Result {
	resp, ok := response.(string)
	if !ok {
		return Result{Feedback: []string{"response must be a string"}}
	}
	trimmed := strings.ToLower(strings.TrimSpace(resp))
	if trimmed == "" {
		return Result{}
	}
	for _, acc := range q.Accepted {
		acc = strings.ToLower(strings.TrimSpace(acc))
		if acc != "" && strings.Contains(trimmed, acc) {
			return Result{Correct: true}
		}
	}
	if q.Answer != "" {
		norm := normalize(resp)
		key := normalize(q.Answer)
		if norm == key {
			return Result{Correct: true}
		}
		if s.maxEdit > 0 && levenshtein(norm, key) <= s.maxEdit {
			return Result{Correct: true, Feedback: []string{"close match"}}
		}
	}
	return Result{}
}

func toIndex(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
