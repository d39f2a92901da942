package http

import (
	"bytes"
	"database/sql"
	"io"
	"net/http"
	"time"

	authmw "github.com/speakeasy-learn/eslprep/internal/auth/middleware"
	"github.com/speakeasy-learn/eslprep/internal/bank"
	syncx "github.com/speakeasy-learn/eslprep/internal/sync"
)

// ListContextsHandler returns the registered question-bank contexts.
func ListContextsHandler() http.HandlerFunc {
	type ctxInfo struct {
		Context string `json:"context"`
		Name    string `json:"name"`
		Default bool   `json:"default,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var out []ctxInfo
		for _, key := range bank.Contexts() {
			b := bank.ForContext(key)
			out = append(out, ctxInfo{
				Context: key,
				Name:    b.Name,
				Default: key == bank.DefaultContext,
			})
		}
		writeJSON(w, out)
	}
}

// UploadBankHandler validates a YAML bank document, registers it, and
// persists the source so it survives restarts. Teacher role only.
func UploadBankHandler(db *sql.DB, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		b, err := bank.Load(bytes.NewReader(raw))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uploadedBy := authmw.SubjectFromContext(r.Context())
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO banks (context, name, bank_yaml, uploaded_by, created_at)
			 VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (context) DO UPDATE SET name=EXCLUDED.name, bank_yaml=EXCLUDED.bank_yaml, uploaded_by=EXCLUDED.uploaded_by`,
			b.Context, b.Name, string(raw), uploadedBy, time.Now().Unix())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		bank.Register(b.Context, b)
		if events != nil {
			_ = events.AppendJSON(r.Context(), syncx.TypeBankUploaded, b.Context,
				map[string]interface{}{"context": b.Context, "questions": len(b.Questions), "by": uploadedBy})
		}
		writeJSON(w, map[string]interface{}{"context": b.Context, "questions": len(b.Questions)})
	}
}

// RestoreBanks re-registers previously uploaded banks at startup. A bank
// that no longer validates is skipped rather than blocking boot.
func RestoreBanks(db *sql.DB) error {
	rows, err := db.Query(`SELECT bank_yaml FROM banks`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		b, err := bank.Load(bytes.NewReader([]byte(raw)))
		if err != nil {
			continue
		}
		bank.Register(b.Context, b)
	}
	return rows.Err()
}
