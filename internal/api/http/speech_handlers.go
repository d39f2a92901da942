package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/speakeasy-learn/eslprep/internal/speech"
)

// SpeakHandler synthesizes text with the voice matching the requested
// locale and returns the cache key of the audio. Missing speech capability
// is reported as a status payload, never a failure the client has to
// special-case.
func SpeakHandler(sp *speech.Speaker) http.HandlerFunc {
	type out struct {
		Available bool              `json:"available"`
		Utterance *speech.Utterance `json:"utterance,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text   string `json:"text"`
			Locale string `json:"locale"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		u, ok, err := sp.Speak(r.Context(), req.Text, req.Locale)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, out{Available: ok, Utterance: u})
	}
}

// SpeechAudioHandler streams cached utterance audio.
func SpeechAudioHandler(sp *speech.Speaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, err := sp.Audio(chi.URLParam(r, "key"))
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = io.Copy(w, rc)
	}
}

// SpeechControlHandler exposes stop/pause/resume. All three are best
// effort and succeed even when nothing is speaking.
func SpeechControlHandler(sp *speech.Speaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "action") {
		case "stop":
			sp.Stop()
		case "pause":
			sp.Pause()
		case "resume":
			sp.Resume()
		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]bool{"ok": true})
	}
}

// ListVoicesHandler returns the current voice catalog. The list may be
// empty right after startup while the engine populates it asynchronously.
func ListVoicesHandler(c *speech.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		voices := c.Voices()
		if voices == nil {
			voices = []speech.Voice{}
		}
		writeJSON(w, voices)
	}
}
