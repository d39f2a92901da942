package bank

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML bank document and validates it.
func Load(r io.Reader) (*Bank, error) {
	var b Bank
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("bank: decode: %w", err)
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	b.index()
	return &b, nil
}

// LoadFile reads one bank from a YAML file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate runs basic consistency checks. Violations are configuration
// defects, not runtime conditions.
func Validate(b *Bank) error {
	if b == nil {
		return errors.New("bank is required")
	}
	if b.Context == "" {
		return errors.New("bank.context is required")
	}
	if len(b.Questions) == 0 {
		return fmt.Errorf("bank %s: no questions", b.Context)
	}
	seen := map[string]bool{}
	for i, q := range b.Questions {
		if q.ID == "" {
			return fmt.Errorf("bank %s: question %d: id is required", b.Context, i)
		}
		if seen[q.ID] {
			return fmt.Errorf("bank %s: duplicate question id %s", b.Context, q.ID)
		}
		seen[q.ID] = true
		if q.Tier < MinTier || q.Tier > MaxTier {
			return fmt.Errorf("bank %s: question %s: tier %d out of range", b.Context, q.ID, q.Tier)
		}
		switch q.Type {
		case TypeChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("bank %s: question %s: mcq needs at least 2 options", b.Context, q.ID)
			}
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				return fmt.Errorf("bank %s: question %s: correct index %d out of range", b.Context, q.ID, q.Correct)
			}
		case TypeInput:
			if q.Answer == "" && len(q.Accepted) == 0 {
				return fmt.Errorf("bank %s: question %s: input needs an answer or accepted set", b.Context, q.ID)
			}
		default:
			return fmt.Errorf("bank %s: question %s: unknown type %q", b.Context, q.ID, q.Type)
		}
	}
	return nil
}
