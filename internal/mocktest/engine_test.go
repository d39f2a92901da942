package mocktest

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/speakeasy-learn/eslprep/internal/bank"
	"github.com/speakeasy-learn/eslprep/internal/grading"
)

func testBank() *bank.Bank {
	b := &bank.Bank{Context: "test", Name: "Test Bank"}
	for _, q := range []bank.Question{
		{ID: "t1-a", Type: bank.TypeChoice, Tier: 1, Options: []string{"x", "y"}, Correct: 0},
		{ID: "t1-b", Type: bank.TypeInput, Tier: 1, Answer: "alpha"},
		{ID: "t2-a", Type: bank.TypeChoice, Tier: 2, Options: []string{"x", "y"}, Correct: 1},
		{ID: "t2-b", Type: bank.TypeInput, Tier: 2, Accepted: []string{"key", "essential"}},
		{ID: "t3-a", Type: bank.TypeChoice, Tier: 3, Options: []string{"x", "y", "z"}, Correct: 2},
	} {
		b.Questions = append(b.Questions, q)
	}
	return b
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	b := testBank()
	opts = append([]EngineOption{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewEngine(func(string) *bank.Bank { return b }, grading.NewDefaultGrader(), opts...)
}

func TestStartDefaults(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.Start("u1", "test")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Tier != 1 || s.Index != 0 || s.Score != 0 || s.Status != StatusRunning {
		t.Fatalf("bad initial state: %+v", s)
	}
	if s.Current == nil {
		t.Fatal("no first question drawn")
	}
	if s.Current.Tier != 1 {
		t.Fatalf("first draw tier = %d, want 1", s.Current.Tier)
	}
}

func TestTierMonotonicStep(t *testing.T) {
	e := newTestEngine(t)
	for _, start := range []int{1, 2, 3} {
		s, _ := e.Start("u1", "test")
		s.Tier = start

		if err := e.Judge(s, true); err != nil {
			t.Fatalf("judge: %v", err)
		}
		want := start + 1
		if want > 3 {
			want = 3
		}
		if s.Tier != want {
			t.Errorf("correct from tier %d: got %d, want %d", start, s.Tier, want)
		}

		s, _ = e.Start("u1", "test")
		s.Tier = start
		if err := e.Judge(s, false); err != nil {
			t.Fatalf("judge: %v", err)
		}
		want = start - 1
		if want < 1 {
			want = 1
		}
		if s.Tier != want {
			t.Errorf("incorrect from tier %d: got %d, want %d", start, s.Tier, want)
		}
	}
}

func TestFixedLength(t *testing.T) {
	// Any mix of correct/incorrect answers finishes exactly at 8.
	patterns := [][]bool{
		{true, true, true, true, true, true, true, true},
		{false, false, false, false, false, false, false, false},
		{true, false, true, false, true, false, true, false},
	}
	for _, pat := range patterns {
		e := newTestEngine(t)
		s, _ := e.Start("u1", "test")
		for i, correct := range pat {
			if s.Status != StatusRunning {
				t.Fatalf("finished early at answer %d", i)
			}
			if err := e.Judge(s, correct); err != nil {
				t.Fatalf("judge %d: %v", i, err)
			}
			if s.Score > s.Index {
				t.Fatalf("score %d exceeds index %d", s.Score, s.Index)
			}
		}
		if s.Status != StatusFinished {
			t.Errorf("status = %s after %d answers, want finished", s.Status, SessionLength)
		}
		if s.Index != SessionLength {
			t.Errorf("index = %d, want %d", s.Index, SessionLength)
		}
		if s.Score < 0 || s.Score > SessionLength {
			t.Errorf("score %d out of bounds", s.Score)
		}
		if s.Current != nil {
			t.Error("finished session still holds a question")
		}
	}
}

func TestDrawConfinedToCurrentTier(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 20; run++ {
		s, err := e.Start("u1", "test")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		for s.Status == StatusRunning {
			if s.Current.Tier != s.Tier {
				t.Fatalf("drawn tier %d != session tier %d", s.Current.Tier, s.Tier)
			}
			if err := e.Judge(s, rng.Intn(2) == 0); err != nil {
				t.Fatalf("judge: %v", err)
			}
		}
	}
}

func TestJudgeNoOpOutsideRunning(t *testing.T) {
	e := newTestEngine(t)

	s, _ := e.Start("u1", "test")
	e.Reset(s)
	if err := e.Judge(s, true); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("judge on idle: err = %v, want ErrNotRunning", err)
	}
	if s.Index != 0 || s.Score != 0 || s.Tier != 1 {
		t.Fatalf("idle state mutated: %+v", s)
	}

	s, _ = e.Start("u1", "test")
	for i := 0; i < SessionLength; i++ {
		if err := e.Judge(s, true); err != nil {
			t.Fatalf("judge: %v", err)
		}
	}
	index, score, tier := s.Index, s.Score, s.Tier
	if err := e.Judge(s, true); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("judge on finished: err = %v, want ErrNotRunning", err)
	}
	if s.Index != index || s.Score != score || s.Tier != tier {
		t.Fatalf("finished state mutated: %+v", s)
	}
}

func TestResetIdempotent(t *testing.T) {
	e := newTestEngine(t)
	s, _ := e.Start("u1", "test")
	_ = e.Judge(s, true)
	_ = e.Judge(s, false)

	e.Reset(s)
	first := *s
	e.Reset(s)
	if *s != first {
		t.Fatalf("double reset diverged: %+v vs %+v", *s, first)
	}
	if s.Tier != 1 || s.Index != 0 || s.Score != 0 || s.Status != StatusIdle || s.Current != nil {
		t.Fatalf("bad reset state: %+v", s)
	}
}

func TestEmptyTierPool(t *testing.T) {
	b := &bank.Bank{Context: "thin", Questions: []bank.Question{
		{ID: "only-t2", Type: bank.TypeChoice, Tier: 2, Options: []string{"x", "y"}, Correct: 0},
	}}
	e := NewEngine(func(string) *bank.Bank { return b }, grading.NewDefaultGrader())
	s, err := e.Start("u1", "thin")
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if s.Status != StatusNoQuestions {
		t.Fatalf("status = %s, want %s", s.Status, StatusNoQuestions)
	}
}

func TestAnswerScenario(t *testing.T) {
	// The worked example: tier-1 correct -> tier 2; tier-2 incorrect -> tier 1.
	e := newTestEngine(t)
	s, err := e.Start("u1", "test")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	out, err := e.Answer(s, correctPayload(*s.Current))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !out.Correct {
		t.Fatal("expected correct")
	}
	if s.Tier != 2 || s.Index != 1 || s.Score != 1 {
		t.Fatalf("after correct: tier=%d index=%d score=%d", s.Tier, s.Index, s.Score)
	}
	if out.Next == nil || out.Next.Tier != 2 {
		t.Fatalf("next question not from tier 2: %+v", out.Next)
	}

	out, err = e.Answer(s, "definitely wrong")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Correct {
		t.Fatal("expected incorrect")
	}
	if s.Tier != 1 || s.Index != 2 || s.Score != 1 {
		t.Fatalf("after incorrect: tier=%d index=%d score=%d", s.Tier, s.Index, s.Score)
	}

	for s.Status == StatusRunning {
		if _, err := e.Answer(s, "nope"); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}
	if s.Index != SessionLength {
		t.Fatalf("index = %d at finish", s.Index)
	}
}

func TestUnknownContextFallsBack(t *testing.T) {
	def := testBank()
	def.Context = "general"
	resolver := func(key string) *bank.Bank { return def }
	e := NewEngine(resolver, grading.NewDefaultGrader())
	s, err := e.Start("u1", "no-such-context")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Context != "general" {
		t.Fatalf("context = %q, want fallback bank's context", s.Context)
	}
}

func TestTimedSessionExpires(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	e := newTestEngine(t, WithTimeLimit(10*time.Minute), WithClock(now))

	s, err := e.Start("u1", "test")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Deadline == nil {
		t.Fatal("no deadline on timed session")
	}

	clock = clock.Add(11 * time.Minute)
	out, err := e.Answer(s, correctPayload(*s.Current))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if s.Status != StatusFinished {
		t.Fatalf("status = %s, want finished after deadline", s.Status)
	}
	if out.Report == nil {
		t.Fatal("expected final report")
	}
}

// correctPayload returns a submission that grades correct for q.
func correctPayload(q bank.Question) interface{} {
	if q.Type == bank.TypeChoice {
		return q.Correct
	}
	if q.Answer != "" {
		return q.Answer
	}
	return q.Accepted[0]
}
