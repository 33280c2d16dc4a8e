package transcriber

import (
	"context"
	"fmt"
)

// MockName identifies the placeholder provider.
const MockName = "mock-degraded"

// mockProvider is the last resort when no real provider produced text.
// It never fails and always reports the degraded state in its output.
type mockProvider struct{}

// NewMock creates the placeholder provider.
func NewMock() Provider {
	return mockProvider{}
}

func (mockProvider) Name() string { return MockName }

func (mockProvider) Available() bool { return true }

func (mockProvider) Transcribe(_ context.Context, audio []byte, _ string, language string) (string, error) {
	return fmt.Sprintf("[Transcription unavailable: no speech-to-text provider could process this %d-byte audio segment (language %q). "+
		"Configure a Deepgram or Gemini API key and try again.]", len(audio), language), nil
}
