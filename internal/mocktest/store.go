package mocktest

import (
	"errors"
	"sync"
)

// ErrSessionNotFound is returned when a user has no session.
var ErrSessionNotFound = errors.New("mocktest: no session")

// entry pairs a session with the lock that serializes its mutation.
type entry struct {
	mu sync.Mutex
	s  *Session
}

// SessionStore holds live sessions. One session per user: starting a new
// test replaces any prior one, matching the rule that only the most recent
// user action is honored. A user's answers are serialized through Update,
// so a double submit judges one answer after the other instead of
// interleaving on the shared counters.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*entry // userID -> entry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{entries: map[string]*entry{}}
}

func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries[s.UserID] = &entry{s: s}
}

// Get returns a snapshot copy of the user's session, safe to read while
// other requests keep mutating the live one.
func (st *SessionStore) Get(userID string) (*Session, error) {
	st.mu.RLock()
	e, ok := st.entries[userID]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.mu.Lock()
	cp := *e.s
	e.mu.Unlock()
	return &cp, nil
}

// Update runs fn against the user's live session while holding its lock.
func (st *SessionStore) Update(userID string, fn func(*Session) error) error {
	st.mu.RLock()
	e, ok := st.entries[userID]
	st.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (st *SessionStore) Delete(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, userID)
}
