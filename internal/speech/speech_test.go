package speech

import (
	"bytes"
	"context"
	"io"
	"testing"
)

var testVoices = []Voice{
	{Name: "Daniel", Locale: "en-GB"},
	{Name: "Samantha", Locale: "en-US"},
	{Name: "Amelie", Locale: "fr-CA"},
	{Name: "System", Locale: "de-DE", Default: true},
}

func TestVoiceSelection(t *testing.T) {
	c := NewCatalog(testVoices...)
	cases := []struct {
		pref string
		want string
	}{
		{"en-US", "Samantha"}, // exact locale
		{"en-GB", "Daniel"},
		{"en-AU", "Daniel"}, // language-subtag prefix, first listed wins
		{"fr-FR", "Amelie"}, // prefix match over English fallback
		{"sv-SE", "Daniel"}, // no Swedish: any English voice
		{"", "Daniel"},      // no preference: any English voice
	}
	for _, tc := range cases {
		v, ok := c.Select(tc.pref)
		if !ok {
			t.Fatalf("Select(%q) found nothing", tc.pref)
		}
		if v.Name != tc.want {
			t.Errorf("Select(%q) = %s, want %s", tc.pref, v.Name, tc.want)
		}
	}
}

func TestVoiceSelectionFallsBackToDefault(t *testing.T) {
	c := NewCatalog(
		Voice{Name: "Anna", Locale: "de-DE"},
		Voice{Name: "System", Locale: "ja-JP", Default: true},
	)
	v, ok := c.Select("pt-BR")
	if !ok || v.Name != "System" {
		t.Fatalf("Select = %+v, want platform default", v)
	}
}

func TestVoiceSelectionEmptyCatalog(t *testing.T) {
	c := NewCatalog()
	if _, ok := c.Select("en-US"); ok {
		t.Fatal("empty catalog selected a voice")
	}
}

func TestAsyncVoiceListRefresh(t *testing.T) {
	c := NewCatalog()
	if !c.Empty() {
		t.Fatal("catalog should start empty")
	}
	// The voice list arrives later; selection just consults the new list.
	c.SetVoices(testVoices)
	if _, ok := c.Select("en-US"); !ok {
		t.Fatal("selection failed after refresh")
	}
}

type fakeEngine struct {
	calls  int
	lastV  Voice
	cancel []context.Context
}

func (f *fakeEngine) Synthesize(ctx context.Context, text string, v Voice) ([]byte, string, error) {
	f.calls++
	f.lastV = v
	f.cancel = append(f.cancel, ctx)
	return []byte("mp3:" + text), "audio/mpeg", nil
}

type memBlob struct{ m map[string][]byte }

func newMemBlob() *memBlob { return &memBlob{m: map[string][]byte{}} }

func (b *memBlob) Put(key string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.m[key] = data
	return key, nil
}

func (b *memBlob) Get(key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.m[key])), nil
}

func (b *memBlob) Has(key string) bool { _, ok := b.m[key]; return ok }

func TestSpeakCachesAndCancelsPrior(t *testing.T) {
	eng := &fakeEngine{}
	sp := NewSpeaker(NewCatalog(testVoices...), eng, newMemBlob())

	u1, ok, err := sp.Speak(context.Background(), "good morning", "en-GB")
	if err != nil || !ok {
		t.Fatalf("Speak: ok=%v err=%v", ok, err)
	}
	if u1.Voice.Name != "Daniel" {
		t.Fatalf("voice = %s", u1.Voice.Name)
	}

	// Second utterance cancels the first.
	if _, ok, err := sp.Speak(context.Background(), "good evening", "en-GB"); err != nil || !ok {
		t.Fatalf("Speak: ok=%v err=%v", ok, err)
	}
	if eng.cancel[0].Err() == nil {
		t.Fatal("first utterance context not cancelled")
	}

	// Same text again is served from cache without another synth call.
	calls := eng.calls
	u3, ok, err := sp.Speak(context.Background(), "good morning", "en-GB")
	if err != nil || !ok {
		t.Fatalf("Speak: ok=%v err=%v", ok, err)
	}
	if eng.calls != calls {
		t.Fatal("cache miss on repeated text")
	}
	if u3.Key != u1.Key {
		t.Fatalf("cache keys differ: %s vs %s", u3.Key, u1.Key)
	}
}

func TestSpeakUnavailable(t *testing.T) {
	// No engine at all: unavailability is a status, not an error.
	sp := NewSpeaker(NewCatalog(testVoices...), nil, nil)
	if _, ok, err := sp.Speak(context.Background(), "hello", "en-US"); ok || err != nil {
		t.Fatalf("ok=%v err=%v, want unavailable with no error", ok, err)
	}

	// Engine but no voices yet: same.
	sp = NewSpeaker(NewCatalog(), &fakeEngine{}, nil)
	if _, ok, err := sp.Speak(context.Background(), "hello", "en-US"); ok || err != nil {
		t.Fatalf("ok=%v err=%v, want unavailable with no error", ok, err)
	}
}

func TestControlsNeverFailWhenIdle(t *testing.T) {
	sp := NewSpeaker(NewCatalog(), nil, nil)
	sp.Stop()
	sp.Pause()
	sp.Resume()
	if sp.Current() != nil {
		t.Fatal("idle speaker has a current utterance")
	}
}
