package progress

import (
	"reflect"
	"testing"
)

func TestAwardOverwrites(t *testing.T) {
	tr := NewTracker()
	tr.Award("flashcards", 3, 10)
	tr.Award("flashcards", 7, 10) // later call replaces, never adds
	tot := tr.Recalc()
	if tot.Earned != 7 || tot.Max != 10 {
		t.Fatalf("totals = %+v, want earned 7 / max 10", tot)
	}
}

func TestRecalcIsPure(t *testing.T) {
	tr := NewTracker(WithBonusPool(20))
	tr.Award("quiz", 5, 10)
	tr.Award("sorting", 8, 10)

	first := tr.Recalc()
	second := tr.Recalc()
	if first != second {
		t.Fatalf("recalc not stable: %+v vs %+v", first, second)
	}
	if first.Earned != 13 || first.Max != 40 {
		t.Fatalf("totals = %+v, want earned 13 / max 40", first)
	}
	if first.Percent != 13*100/40 {
		t.Fatalf("percent = %d", first.Percent)
	}
}

func TestAwardClamps(t *testing.T) {
	tr := NewTracker()
	tr.Award("quiz", 12, 10)
	if got := tr.Recalc(); got.Earned != 10 {
		t.Fatalf("earned = %d, want clamped to max", got.Earned)
	}
	tr.Award("quiz", -3, 10)
	if got := tr.Recalc(); got.Earned != 0 {
		t.Fatalf("earned = %d, want clamped to 0", got.Earned)
	}
}

func TestMigrate(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantActs map[string]Pair
		wantSet  Settings
	}{
		{
			name:     "current version",
			raw:      `{"schema_version":2,"activities":{"quiz":{"earned":4,"max":10}},"settings":{"accent":"en-GB"}}`,
			wantActs: map[string]Pair{"quiz": {Earned: 4, Max: 10}},
			wantSet:  Settings{Accent: "en-GB"},
		},
		{
			name:     "v1 bare points map",
			raw:      `{"quiz":{"earned":4,"max":10}}`,
			wantActs: map[string]Pair{"quiz": {Earned: 4, Max: 10}},
		},
		{
			name: "corrupt json",
			raw:  `{"quiz":`,
		},
		{
			name: "unexpected shape",
			raw:  `[1,2,3]`,
		},
		{
			name: "empty",
			raw:  ``,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acts, set := migrate([]byte(tc.raw))
			if len(tc.wantActs) == 0 && len(acts) != 0 {
				t.Fatalf("acts = %v, want empty", acts)
			}
			if len(tc.wantActs) > 0 && !reflect.DeepEqual(acts, tc.wantActs) {
				t.Fatalf("acts = %v, want %v", acts, tc.wantActs)
			}
			if set != tc.wantSet {
				t.Fatalf("settings = %+v, want %+v", set, tc.wantSet)
			}
		})
	}
}
