package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SchemaVersion is carried inside the payload so format changes migrate old
// snapshots instead of abandoning them under a renamed key.
const SchemaVersion = 2

type payload struct {
	SchemaVersion int             `json:"schema_version"`
	Activities    map[string]Pair `json:"activities"`
	Settings      Settings        `json:"settings"`
}

// v1 snapshots were a bare points map with no version field or settings.
type payloadV1 map[string]Pair

// Store persists one JSON snapshot per user.
type Store interface {
	Save(ctx context.Context, userID string, t *Tracker) error
	Load(ctx context.Context, userID string, t *Tracker) error
}

type sqlStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) Store { return &sqlStore{db: db} }

func (s *sqlStore) Save(ctx context.Context, userID string, t *Tracker) error {
	p := payload{
		SchemaVersion: SchemaVersion,
		Activities:    t.Activities(),
		Settings:      t.Settings(),
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, payload_json, updated_at)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (user_id) DO UPDATE SET payload_json=EXCLUDED.payload_json, updated_at=EXCLUDED.updated_at`,
		userID, string(buf), time.Now().Unix())
	return err
}

// Load restores a user's snapshot into t. Missing rows and malformed
// payloads restore to empty state: the user starts fresh, never sees an
// error.
func (s *sqlStore) Load(ctx context.Context, userID string, t *Tracker) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM progress WHERE user_id=$1`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		t.load(nil, Settings{})
		return nil
	}
	if err != nil {
		return err
	}
	acts, settings := migrate([]byte(raw))
	t.load(acts, settings)
	return nil
}

// migrate decodes a snapshot of any known version into the current shape.
// Anything unrecognizable decodes to empty state.
func migrate(raw []byte) (map[string]Pair, Settings) {
	var p payload
	if err := json.Unmarshal(raw, &p); err == nil && p.SchemaVersion >= 2 {
		return p.Activities, p.Settings
	}
	var v1 payloadV1
	if err := json.Unmarshal(raw, &v1); err == nil && len(v1) > 0 {
		return v1, Settings{}
	}
	return nil, Settings{}
}
