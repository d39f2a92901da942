package bank

import (
	"strings"
	"sync"
	"testing"
)

func validBank() *Bank {
	return &Bank{
		Context: "unittest",
		Name:    "Unit Test Bank",
		Questions: []Question{
			{ID: "q1", Type: TypeChoice, Tier: 1, Prompt: "p", Options: []string{"a", "b"}, Correct: 0},
			{ID: "q2", Type: TypeInput, Tier: 2, Prompt: "p", Answer: "yes"},
			{ID: "q3", Type: TypeChoice, Tier: 2, Prompt: "p", Options: []string{"a", "b", "c"}, Correct: 2},
		},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(b *Bank)
		wantErr string
	}{
		{"valid", func(b *Bank) {}, ""},
		{"missing context", func(b *Bank) { b.Context = "" }, "context is required"},
		{"no questions", func(b *Bank) { b.Questions = nil }, "no questions"},
		{"missing id", func(b *Bank) { b.Questions[0].ID = "" }, "id is required"},
		{"duplicate id", func(b *Bank) { b.Questions[1].ID = "q1" }, "duplicate question id"},
		{"tier too low", func(b *Bank) { b.Questions[0].Tier = 0 }, "out of range"},
		{"tier too high", func(b *Bank) { b.Questions[0].Tier = 4 }, "out of range"},
		{"mcq one option", func(b *Bank) { b.Questions[0].Options = []string{"a"} }, "at least 2 options"},
		{"mcq bad correct", func(b *Bank) { b.Questions[0].Correct = 5 }, "out of range"},
		{"input no key", func(b *Bank) { b.Questions[1].Answer = "" }, "needs an answer"},
		{"unknown type", func(b *Bank) { b.Questions[0].Type = "essay" }, "unknown type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBank()
			tc.mutate(b)
			err := Validate(b)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestAtTier(t *testing.T) {
	b := validBank()
	if got := len(b.AtTier(1)); got != 1 {
		t.Errorf("tier 1 pool = %d, want 1", got)
	}
	if got := len(b.AtTier(2)); got != 2 {
		t.Errorf("tier 2 pool = %d, want 2", got)
	}
	if got := b.AtTier(3); got != nil {
		t.Errorf("tier 3 pool = %v, want empty", got)
	}
}

func TestPublicOmitsAnswerKey(t *testing.T) {
	q := Question{
		ID: "q1", Type: TypeChoice, Prompt: "p", Tier: 1,
		Options: []string{"a", "b"}, Correct: 1, Explain: "because",
		Answer: "b", Accepted: []string{"b"},
	}
	p := q.Public()
	if p.ID != q.ID || p.Type != q.Type || len(p.Options) != 2 {
		t.Fatalf("public view lost fields: %+v", p)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
context: travel
name: Travel English
questions:
  - id: tr-1
    type: mcq
    tier: 1
    prompt: Choose the correct word.
    options: [ticket, tickle, tackle]
    correct: 0
  - id: tr-2
    type: input
    tier: 2
    prompt: Type the missing word.
    answer: passport
`
	b, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Context != "travel" || len(b.Questions) != 2 {
		t.Fatalf("bank = %+v", b)
	}
	if got := len(b.AtTier(1)); got != 1 {
		t.Errorf("tier 1 pool = %d", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	doc := `
context: broken
questions:
  - id: b-1
    type: mcq
    tier: 9
    prompt: p
    options: [a, b]
`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("invalid bank loaded without error")
	}
}

func TestRegistryFallback(t *testing.T) {
	def := validBank()
	Register(DefaultContext, def)
	other := validBank()
	Register("unittest-other", other)
	t.Cleanup(func() {
		banks.mu.Lock()
		delete(banks.m, "unittest-other")
		banks.mu.Unlock()
	})

	if got := ForContext("unittest-other"); got != other {
		t.Fatal("registered context not resolved")
	}
	if got := ForContext("no-such-context"); got != def {
		t.Fatal("unknown context did not fall back to the default bank")
	}

	found := false
	for _, k := range Contexts() {
		if k == "unittest-other" {
			found = true
		}
	}
	if !found {
		t.Fatal("Contexts() missing registered key")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	// Uploads register banks at runtime while requests read the registry;
	// both directions must be safe to interleave.
	Register(DefaultContext, validBank())
	t.Cleanup(func() {
		banks.mu.Lock()
		delete(banks.m, "unittest-hot")
		banks.mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			Register("unittest-hot", validBank())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if b := ForContext("unittest-hot"); b == nil {
				if ForContext("definitely-missing") == nil {
					t.Error("default fallback lost during writes")
					return
				}
			}
			Contexts()
		}
	}()
	wg.Wait()

	if b := ForContext("unittest-hot"); b == nil || b.Context != "unittest-hot" {
		t.Fatalf("registry lost a concurrent registration: %+v", b)
	}
}
