package bank

// Question types. A question is either multiple-choice or free-text input;
// the Type field discriminates and each variant only reads its own fields.
const (
	TypeChoice = "mcq"
	TypeInput  = "input"
)

const (
	MinTier = 1
	MaxTier = 3
)

type Question struct {
	ID      string `json:"id" yaml:"id"`
	Type    string `json:"type" yaml:"type"`
	Prompt  string `json:"prompt" yaml:"prompt"`
	Stem    string `json:"stem,omitempty" yaml:"stem,omitempty"`
	Tier    int    `json:"tier" yaml:"tier"`
	Skill   string `json:"skill,omitempty" yaml:"skill,omitempty"` // display-only tag, e.g. "Reading"
	Explain string `json:"explain,omitempty" yaml:"explain,omitempty"`

	// mcq only
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Correct int      `json:"correct,omitempty" yaml:"correct,omitempty"`

	// input only
	Answer   string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Accepted []string `json:"accepted,omitempty" yaml:"accepted,omitempty"`
}

// Public is the student-facing view of a question: same shape minus the
// answer key fields, so handlers never leak the key to the client.
type Public struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Stem    string   `json:"stem,omitempty"`
	Tier    int      `json:"tier"`
	Skill   string   `json:"skill,omitempty"`
	Options []string `json:"options,omitempty"`
}

func (q Question) Public() Public {
	return Public{
		ID:      q.ID,
		Type:    q.Type,
		Prompt:  q.Prompt,
		Stem:    q.Stem,
		Tier:    q.Tier,
		Skill:   q.Skill,
		Options: q.Options,
	}
}

// Bank maps difficulty tiers to the questions available at each tier.
type Bank struct {
	Context   string     `json:"context" yaml:"context"`
	Name      string     `json:"name" yaml:"name"`
	Questions []Question `json:"questions" yaml:"questions"`
	byTier    map[int][]Question
}

// AtTier returns the questions available at tier t. The slice is shared;
// callers must not mutate it.
func (b *Bank) AtTier(t int) []Question {
	if b == nil {
		return nil
	}
	if b.byTier == nil {
		b.index()
	}
	return b.byTier[t]
}

func (b *Bank) index() {
	b.byTier = make(map[int][]Question, MaxTier)
	for _, q := range b.Questions {
		b.byTier[q.Tier] = append(b.byTier[q.Tier], q)
	}
}
