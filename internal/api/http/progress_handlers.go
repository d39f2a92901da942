package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/speakeasy-learn/eslprep/internal/auth/middleware"
	"github.com/speakeasy-learn/eslprep/internal/progress"
)

type progressView struct {
	Activities map[string]progress.Pair `json:"activities"`
	Settings   progress.Settings        `json:"settings"`
	Totals     progress.Totals          `json:"totals"`
}

// GetProgressHandler returns the caller's activity records and totals.
// Missing or malformed stored state silently restores to empty.
func GetProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		t := progress.NewTracker()
		if err := store.Load(r.Context(), userID, t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, progressView{
			Activities: t.Activities(),
			Settings:   t.Settings(),
			Totals:     t.Recalc(),
		})
	}
}

// AwardProgressHandler records the latest earned/max pair for one activity.
// Repeating the call with the same numbers is a no-op in effect: awards
// overwrite, they never add.
func AwardProgressHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activity := chi.URLParam(r, "activity")
		var req struct {
			Earned int `json:"earned"`
			Max    int `json:"max"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		t := progress.NewTracker()
		if err := store.Load(r.Context(), userID, t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		totals := t.Award(activity, req.Earned, req.Max)
		if err := store.Save(r.Context(), userID, t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, totals)
	}
}

// SetSettingsHandler replaces the caller's preference snapshot (accent,
// UI language, theme).
func SetSettingsHandler(store progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req progress.Settings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		t := progress.NewTracker()
		if err := store.Load(r.Context(), userID, t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t.SetSettings(req)
		if err := store.Save(r.Context(), userID, t); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, t.Settings())
	}
}
