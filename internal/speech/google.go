package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// GoogleEngine synthesizes through the Google Cloud TTS REST API. It also
// fills the voice catalog from the API's voice list, which arrives
// asynchronously after startup.
type GoogleEngine struct {
	apiKey     string
	httpClient *http.Client
}

func NewGoogleEngine(apiKey string) *GoogleEngine {
	return &GoogleEngine{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleEngine) Synthesize(ctx context.Context, text string, v Voice) ([]byte, string, error) {
	url := "https://texttospeech.googleapis.com/v1/text:synthesize?key=" + g.apiKey

	reqBody := map[string]interface{}{
		"input": map[string]string{"text": text},
		"voice": map[string]string{
			"languageCode": v.Locale,
			"name":         v.Name,
		},
		"audioConfig": map[string]string{"audioEncoding": "MP3"},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, "", fmt.Errorf("parse response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, "", fmt.Errorf("decode audio: %w", err)
	}
	return audio, "audio/mpeg", nil
}

// PopulateCatalog fetches the English voice list into c. Called in a
// goroutine at startup; a failure leaves the catalog empty and the speaker
// reports unavailable until a retry succeeds.
func (g *GoogleEngine) PopulateCatalog(ctx context.Context, c *Catalog) {
	url := "https://texttospeech.googleapis.com/v1/voices?key=" + g.apiKey

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("speech: voice list fetch failed: %v", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Voices []struct {
			Name          string   `json:"name"`
			LanguageCodes []string `json:"languageCodes"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("speech: voice list decode failed: %v", err)
		return
	}

	var voices []Voice
	for _, v := range result.Voices {
		for _, lc := range v.LanguageCodes {
			if strings.HasPrefix(strings.ToLower(lc), "en") {
				voices = append(voices, Voice{Name: v.Name, Locale: lc})
			}
		}
	}
	c.SetVoices(voices)
}
