package mocktest

import (
	"errors"
	"sync"
	"testing"
)

func TestConcurrentAnswersSerialized(t *testing.T) {
	// A double-submitting client fires overlapping answer requests for the
	// same session. Serialized through the store, exactly the fixed number
	// of answers is judged; the rest see the finished session.
	e := newTestEngine(t)
	st := NewSessionStore()
	s, err := e.Start("u1", "test")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	st.Put(s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uerr := st.Update("u1", func(s *Session) error {
				_, err := e.Answer(s, "nope")
				if err != nil && !errors.Is(err, ErrNotRunning) {
					return err
				}
				return nil
			})
			if uerr != nil {
				t.Errorf("update: %v", uerr)
			}
		}()
	}
	wg.Wait()

	got, err := st.Get("u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Index != SessionLength {
		t.Fatalf("index = %d, want exactly %d judged answers", got.Index, SessionLength)
	}
	if got.Status != StatusFinished {
		t.Fatalf("status = %s, want finished", got.Status)
	}
	if got.Score != 0 {
		t.Fatalf("score = %d for all-incorrect answers", got.Score)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	e := newTestEngine(t)
	st := NewSessionStore()
	s, _ := e.Start("u1", "test")
	st.Put(s)

	snap, err := st.Get("u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	snap.Score = 99

	again, _ := st.Get("u1")
	if again.Score != 0 {
		t.Fatal("mutating a snapshot leaked into the stored session")
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	st := NewSessionStore()
	err := st.Update("nobody", func(*Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
