package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	authmw "github.com/speakeasy-learn/eslprep/internal/auth/middleware"
	"github.com/speakeasy-learn/eslprep/internal/bank"
	"github.com/speakeasy-learn/eslprep/internal/mocktest"
	syncx "github.com/speakeasy-learn/eslprep/internal/sync"
)

// sessionView is the client-facing session state: the engine's counters
// plus the current question without its answer key.
type sessionView struct {
	*mocktest.Session
	Question *bank.Public     `json:"question,omitempty"`
	Report   *mocktest.Report `json:"report,omitempty"`
}

func viewOf(s *mocktest.Session) sessionView {
	v := sessionView{Session: s, Report: s.Summary()}
	if s.Current != nil {
		pub := s.Current.Public()
		v.Question = &pub
	}
	return v
}

// StartMockTestHandler resets and starts a session for the caller. An
// unknown context key silently selects the default bank; an empty question
// pool is reported as a visible conflict, not a crash.
func StartMockTestHandler(e *mocktest.Engine, sessions *mocktest.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Context string `json:"context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		s, err := e.Start(userID, req.Context)
		view := viewOf(s)
		sessions.Put(s)
		if err != nil {
			if errors.Is(err, mocktest.ErrNoQuestions) {
				writeJSONStatus(w, http.StatusConflict, view)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, view)
	}
}

// AnswerMockTestHandler judges one submitted answer. The body carries
// either an option index or free text; the grader sorts out the rest.
func AnswerMockTestHandler(e *mocktest.Engine, sessions *mocktest.SessionStore, attempts mocktest.AttemptStore, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer interface{} `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		var out *mocktest.Outcome
		err := sessions.Update(userID, func(s *mocktest.Session) error {
			var err error
			out, err = e.Answer(s, req.Answer)
			if err != nil {
				return err
			}
			if out.Report != nil {
				if a, err := attempts.Record(r.Context(), s); err != nil {
					log.Printf("mocktest: record attempt %s: %v", s.ID, err)
				} else if events != nil {
					_ = events.AppendJSON(r.Context(), syncx.TypeSessionFinished, a.ID, a)
				}
			}
			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, mocktest.ErrSessionNotFound):
				http.Error(w, "no active session", http.StatusNotFound)
			case errors.Is(err, mocktest.ErrNotRunning):
				http.Error(w, "session is not running", http.StatusConflict)
			case errors.Is(err, mocktest.ErrNoQuestions):
				http.Error(w, "no questions available", http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}
		writeJSON(w, out)
	}
}

// ResetMockTestHandler returns the caller's session to defaults without
// starting a new run.
func ResetMockTestHandler(e *mocktest.Engine, sessions *mocktest.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		var view sessionView
		err := sessions.Update(userID, func(s *mocktest.Session) error {
			e.Reset(s)
			cp := *s
			view = viewOf(&cp)
			return nil
		})
		if err != nil {
			// Nothing to reset; reset is idempotent from the client's view.
			writeJSON(w, map[string]string{"status": string(mocktest.StatusIdle)})
			return
		}
		writeJSON(w, view)
	}
}

// GetMockTestSessionHandler returns the caller's current session state.
func GetMockTestSessionHandler(sessions *mocktest.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		s, err := sessions.Get(userID)
		if err != nil {
			http.Error(w, "no session", http.StatusNotFound)
			return
		}
		writeJSON(w, viewOf(s))
	}
}

// ListAttemptsHandler returns the caller's finished mock tests.
func ListAttemptsHandler(attempts mocktest.AttemptStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		list, err := attempts.ListByUser(r.Context(), userID, parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []mocktest.Attempt{}
		}
		writeJSON(w, list)
	}
}
