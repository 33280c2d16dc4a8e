package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Attempt records one provider call.
type Attempt struct {
	Provider string
	Segment  int
	Err      string
}

// Transcript is the joined text of every segment.
// Degraded is set when the placeholder provider answered for any segment.
type Transcript struct {
	Text     string
	Provider string
	Degraded bool
	Attempts []Attempt
}

// Transcriber turns normalized audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, segments []domain.NormalizedAudio, languageHint string) (Transcript, error)
}

// Provider is one speech-to-text backend in the fallback chain.
type Provider interface {
	Name() string
	// Available is false when the provider has no credentials.
	Available() bool
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error)
}
