package speech

import (
	"strings"
	"sync"
)

// Voice is one synthetic voice the engine can speak with.
type Voice struct {
	Name    string `json:"name"`
	Locale  string `json:"locale"` // BCP 47, e.g. "en-US"
	Default bool   `json:"default,omitempty"`
}

// Catalog holds the available voice list. Engines populate it
// asynchronously; SetVoices may be called again whenever the list changes
// and selection simply consults whatever is current.
type Catalog struct {
	mu     sync.RWMutex
	voices []Voice
}

func NewCatalog(voices ...Voice) *Catalog {
	c := &Catalog{}
	c.SetVoices(voices)
	return c
}

// SetVoices replaces the voice list.
func (c *Catalog) SetVoices(voices []Voice) {
	c.mu.Lock()
	c.voices = append([]Voice(nil), voices...)
	c.mu.Unlock()
}

// Voices returns a copy of the current list.
func (c *Catalog) Voices() []Voice {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Voice(nil), c.voices...)
}

// Empty reports whether no voices are available yet.
func (c *Catalog) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.voices) == 0
}

// Select picks the voice for a locale preference: exact locale match first,
// then any voice sharing the language subtag, then any English voice, then
// the platform default (or the first voice when none is marked default).
func (c *Catalog) Select(localePref string) (Voice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.voices) == 0 {
		return Voice{}, false
	}
	pref := strings.ToLower(strings.TrimSpace(localePref))
	if pref != "" {
		for _, v := range c.voices {
			if strings.ToLower(v.Locale) == pref {
				return v, true
			}
		}
		lang := pref
		if i := strings.IndexByte(pref, '-'); i > 0 {
			lang = pref[:i]
		}
		for _, v := range c.voices {
			if strings.HasPrefix(strings.ToLower(v.Locale), lang) {
				return v, true
			}
		}
	}
	for _, v := range c.voices {
		if strings.HasPrefix(strings.ToLower(v.Locale), "en") {
			return v, true
		}
	}
	for _, v := range c.voices {
		if v.Default {
			return v, true
		}
	}
	return c.voices[0], true
}
