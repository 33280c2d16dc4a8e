package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDeepgramURL = "https://api.deepgram.com"

// DeepgramConfig configures one Deepgram model entry.
type DeepgramConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type deepgramProvider struct {
	cfg    DeepgramConfig
	client *http.Client
}

// NewDeepgram creates a provider for a single Deepgram model.
func NewDeepgram(cfg DeepgramConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepgramURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &deepgramProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// NewDeepgramChain returns one provider per model, in order.
func NewDeepgramChain(apiKey, baseURL string, models []string, timeout time.Duration) []Provider {
	out := make([]Provider, 0, len(models))
	for _, m := range models {
		out = append(out, NewDeepgram(DeepgramConfig{APIKey: apiKey, BaseURL: baseURL, Model: m, Timeout: timeout}))
	}
	return out
}

func (d *deepgramProvider) Name() string { return "deepgram-" + d.cfg.Model }

func (d *deepgramProvider) Available() bool { return d.cfg.APIKey != "" }

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (d *deepgramProvider) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error) {
	q := url.Values{}
	q.Set("model", d.cfg.Model)
	q.Set("smart_format", "true")
	if language != "" {
		q.Set("language", language)
	}
	endpoint := strings.TrimRight(d.cfg.BaseURL, "/") + "/v1/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("build deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+d.cfg.APIKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", fmt.Errorf("read deepgram response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		return "", fmt.Errorf("deepgram %s returned %d: %s", d.cfg.Model, resp.StatusCode, snippet)
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode deepgram response: %w", err)
	}
	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("deepgram %s returned no alternatives", d.cfg.Model)
	}
	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}
