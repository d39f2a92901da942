// Package speech turns text into synthesized audio using whichever voice
// best matches the requested locale. Missing capability is a reportable
// status, never an error that reaches an activity.
package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/speakeasy-learn/eslprep/internal/storage"
)

// Engine synthesizes audio for text in a given voice. Implementations wrap
// whatever synthesis backend is configured.
type Engine interface {
	Synthesize(ctx context.Context, text string, v Voice) ([]byte, string, error) // data, MIME type
}

// Utterance is one in-flight or completed speak request.
type Utterance struct {
	Text   string `json:"text"`
	Voice  Voice  `json:"voice"`
	MIME   string `json:"mime,omitempty"`
	Key    string `json:"key,omitempty"` // cache key of the audio blob
	Paused bool   `json:"paused,omitempty"`

	cancel context.CancelFunc
}

// Speaker serializes utterances: starting a new one cancels the previous,
// so only the most recent request is ever audible.
type Speaker struct {
	catalog *Catalog
	engine  Engine
	cache   storage.BlobStore

	mu      sync.Mutex
	current *Utterance
}

func NewSpeaker(catalog *Catalog, engine Engine, cache storage.BlobStore) *Speaker {
	return &Speaker{catalog: catalog, engine: engine, cache: cache}
}

// Available reports whether speech can be produced at all.
func (s *Speaker) Available() bool {
	return s.engine != nil && !s.catalog.Empty()
}

// cacheKey mirrors the audio cache layout: pre-recorded overrides and
// synthesized results share one keyspace hashed from locale and text.
func cacheKey(locale, text string) string {
	h := sha256.Sum256([]byte(locale + ":" + text))
	return hex.EncodeToString(h[:16]) + ".mp3"
}

func blobKey(key string) string { return "audio/" + key }

// Speak cancels any in-flight utterance, selects a voice for localePref,
// and synthesizes text (serving from the audio cache when possible). When
// no engine or no voices are available it returns ok=false and the caller
// shows an unavailable indicator; that is not an error path.
func (s *Speaker) Speak(ctx context.Context, text, localePref string) (*Utterance, bool, error) {
	if text == "" {
		return nil, false, fmt.Errorf("speech: empty text")
	}
	if !s.Available() {
		return nil, false, nil
	}
	voice, ok := s.catalog.Select(localePref)
	if !ok {
		return nil, false, nil
	}

	s.mu.Lock()
	if s.current != nil && s.current.cancel != nil {
		s.current.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	u := &Utterance{Text: text, Voice: voice, Key: cacheKey(voice.Locale, text), cancel: cancel}
	s.current = u
	s.mu.Unlock()

	if s.cache != nil && s.cache.Has(blobKey(u.Key)) {
		u.MIME = "audio/mpeg"
		return u, true, nil
	}

	data, mime, err := s.engine.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, false, fmt.Errorf("speech: synthesize: %w", err)
	}
	u.MIME = mime
	if s.cache != nil {
		if _, err := s.cache.Put(blobKey(u.Key), bytes.NewReader(data)); err != nil {
			log.Printf("speech: cache write failed for %q: %v", u.Key, err)
		}
	}
	return u, true, nil
}

// Audio streams the cached audio for an utterance key.
func (s *Speaker) Audio(key string) (io.ReadCloser, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("speech: no audio cache")
	}
	return s.cache.Get(blobKey(key))
}

// Stop cancels the in-flight utterance. Never fails when nothing is
// speaking.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.cancel != nil {
		s.current.cancel()
	}
	s.current = nil
}

// Pause marks the current utterance paused. Best effort.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Paused = true
	}
}

// Resume clears a pause. Best effort.
func (s *Speaker) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Paused = false
	}
}

// Current returns the in-flight utterance, if any.
func (s *Speaker) Current() *Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
