package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

func (c *implClient) Configured() bool {
	return len(c.clients) > 0
}

// Generate sends a text prompt.
func (c *implClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, genai.Text(prompt))
}

// GenerateWithAudio sends the prompt followed by the audio bytes as inline data.
func (c *implClient) GenerateWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		},
	}}
	return c.call(ctx, contents)
}

// call issues the request with the current key. A rate-limited key rotates
// to the next one and the request is retried at once, so every key is tried
// before a *domain.RateLimitError reaches the caller.
func (c *implClient) call(ctx context.Context, contents []*genai.Content) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	var lastErr error
	for attempt := 0; attempt < len(c.clients); attempt++ {
		c.mu.Lock()
		idx := c.currentKey
		client := c.clients[idx]
		c.mu.Unlock()

		result, err := client.GenerateContent(ctx, c.model, contents, nil)
		if err == nil {
			if text := responseText(result); text != "" {
				return text, nil
			}
			return "", fmt.Errorf("empty response from Gemini")
		}

		lastErr = classify(err)
		if !isRateLimit(lastErr) {
			return "", lastErr
		}
		c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		c.rotateKey(idx)
	}
	return "", lastErr
}

// rotateKey advances past idx; concurrent rotations for the same key collapse.
func (c *implClient) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.clients)
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text += part.Text
		}
	}
	return text
}
