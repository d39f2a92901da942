// Package placement is the dual-input abstraction behind sorting and
// matching activities: one logical "move item onto target" action triggered
// either by a pointer drag or, on touch devices, by a two-step tap sequence
// (tap to pick, tap to place).
package placement

// Mode is the resolved interaction mode. Exactly one mode is active per
// activity; events for the other mode are ignored so a single gesture can
// never apply twice.
type Mode string

const (
	ModeDrag Mode = "drag"
	ModeTap  Mode = "tap"
	// ModeAuto defers to touch-capability detection.
	ModeAuto Mode = "auto"
)

// Resolve maps a user setting and the client's touch capability to exactly
// one of drag or tap.
func Resolve(setting Mode, touchCapable bool) Mode {
	switch setting {
	case ModeDrag, ModeTap:
		return setting
	default:
		if touchCapable {
			return ModeTap
		}
		return ModeDrag
	}
}

// PlaceFunc is the caller-supplied placement callback. It reports whether
// the placement was accepted; the selection is cleared either way.
type PlaceFunc func(item, target string) bool

// Selector holds the single "currently held item" of one activity and
// dispatches placements. It has no other persistent state and is rebuilt
// with the activity that owns it.
type Selector struct {
	mode  Mode
	held  string
	place PlaceFunc
}

func NewSelector(mode Mode, place PlaceFunc) *Selector {
	return &Selector{mode: mode, place: place}
}

// Mode returns the active interaction mode.
func (s *Selector) Mode() Mode { return s.mode }

// Held returns the currently held item, or "" when nothing is held.
func (s *Selector) Held() string { return s.held }

// Pick records item as the held selection. Re-picking the same item clears
// the selection; picking a different item silently replaces it. At most one
// item is held at a time.
func (s *Selector) Pick(item string) {
	if item == "" {
		return
	}
	if s.held == item {
		s.held = ""
		return
	}
	s.held = item
}

// Place invokes the placement callback with the held item and target, then
// clears the selection regardless of the callback's verdict. With nothing
// held it is a no-op.
func (s *Selector) Place(target string) bool {
	if s.held == "" {
		return false
	}
	item := s.held
	s.held = ""
	if s.place == nil {
		return false
	}
	return s.place(item, target)
}

// Reset clears the held selection, as when the owning activity rebuilds.
func (s *Selector) Reset() { s.held = "" }

// DragEvent names the native drag gestures the selector understands.
type DragEvent string

const (
	DragStart DragEvent = "dragstart"
	Drop      DragEvent = "drop"
)

// HandleDragEvent applies a drag gesture. It only fires in drag mode; in
// tap mode drag events must not change state.
func (s *Selector) HandleDragEvent(ev DragEvent, item, target string) bool {
	if s.mode != ModeDrag {
		return false
	}
	switch ev {
	case DragStart:
		s.held = item
		return true
	case Drop:
		return s.Place(target)
	}
	return false
}

// HandleTap applies one tap. The first tap on an item picks it, a tap on a
// target places the held item. Only fires in tap mode.
func (s *Selector) HandleTap(item, target string) bool {
	if s.mode != ModeTap {
		return false
	}
	if item != "" {
		s.Pick(item)
		return true
	}
	if target != "" {
		return s.Place(target)
	}
	return false
}
