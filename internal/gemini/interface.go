// Package gemini wraps the Gemini generative API for summaries and inline
// audio requests, rotating API keys when one hits its quota.
package gemini

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("gemini: no API key configured")

// Client generates text from a prompt, optionally with inline audio.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
	Configured() bool
}
