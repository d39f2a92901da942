// Package progress accumulates per-activity point totals and keeps them in
// sync with a persisted snapshot. Awards overwrite rather than add: an
// activity's latest earned/max pair is the one that counts.
package progress

import "sync"

// Pair is one activity's latest earned/max points.
type Pair struct {
	Earned int `json:"earned"`
	Max    int `json:"max"`
}

// Settings are the small user preferences persisted alongside points.
type Settings struct {
	Accent   string `json:"accent,omitempty"` // e.g. "en-US", "en-GB"
	Language string `json:"language,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// Totals is the recomputed grand total over all recorded activities.
type Totals struct {
	Earned  int `json:"earned"`
	Max     int `json:"max"`
	Percent int `json:"percent"`
}

// Tracker holds one user's activity records. Safe for concurrent use.
type Tracker struct {
	mu         sync.RWMutex
	activities map[string]Pair
	settings   Settings
	bonusMax   int // fixed bonus pool counted into the max total
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBonusPool adds a fixed number of bonus points to the max total.
func WithBonusPool(max int) Option { return func(t *Tracker) { t.bonusMax = max } }

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{activities: map[string]Pair{}}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Award records the latest earned/max pair for one activity. Later calls
// for the same key overwrite; they never accumulate.
func (t *Tracker) Award(activityKey string, earned, max int) Totals {
	if activityKey == "" {
		return t.Recalc()
	}
	if earned < 0 {
		earned = 0
	}
	if max < 0 {
		max = 0
	}
	if earned > max {
		earned = max
	}
	t.mu.Lock()
	t.activities[activityKey] = Pair{Earned: earned, Max: max}
	t.mu.Unlock()
	return t.Recalc()
}

// Recalc is a pure recomputation of the grand total from the recorded
// pairs plus the bonus pool. It never mutates the tracker.
func (t *Tracker) Recalc() Totals {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tot := Totals{Max: t.bonusMax}
	for _, p := range t.activities {
		tot.Earned += p.Earned
		tot.Max += p.Max
	}
	if tot.Max > 0 {
		tot.Percent = tot.Earned * 100 / tot.Max
	}
	return tot
}

// Activities returns a copy of the recorded pairs.
func (t *Tracker) Activities() map[string]Pair {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Pair, len(t.activities))
	for k, v := range t.activities {
		out[k] = v
	}
	return out
}

// Settings returns the current preference snapshot.
func (t *Tracker) Settings() Settings {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.settings
}

// SetSettings replaces the preference snapshot.
func (t *Tracker) SetSettings(s Settings) {
	t.mu.Lock()
	t.settings = s
	t.mu.Unlock()
}

// load replaces all state from a restored snapshot.
func (t *Tracker) load(acts map[string]Pair, s Settings) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activities = map[string]Pair{}
	for k, v := range acts {
		t.activities[k] = v
	}
	t.settings = s
}
