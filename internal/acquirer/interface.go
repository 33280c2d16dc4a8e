package acquirer

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Acquired is the outcome of acquisition: either a local media file, or a
// transcript when captions were found.
type Acquired struct {
	AudioPath  string
	Transcript string
	Title      string
	FileName   string
	Strategy   string
}

// HasTranscript reports whether acquisition already produced text.
func (a Acquired) HasTranscript() bool {
	return a.Transcript != ""
}

// Acquirer turns a media source into a local file or a transcript.
// Every file it creates is added to reg.
type Acquirer interface {
	Acquire(ctx context.Context, src domain.MediaSource, reg *cleanup.Registry) (Acquired, error)
}

// Target is what a remote strategy works on.
type Target struct {
	URL          string
	VideoID      string
	YouTube      bool
	LanguageHint string
	Registry     *cleanup.Registry
}

// Strategy is one way of fetching a remote video.
type Strategy interface {
	Name() string
	// Applies reports whether the strategy can serve the target.
	Applies(t Target) bool
	Attempt(ctx context.Context, t Target) (Acquired, error)
}
