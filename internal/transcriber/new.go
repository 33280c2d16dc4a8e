package transcriber

import (
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

type implTranscriber struct {
	providers []Provider
	fallback  Provider
	logger    logger.Logger
}

// New creates a Transcriber that tries providers in order and falls back
// to the placeholder provider when every one of them fails.
func New(providers []Provider, log logger.Logger) Transcriber {
	return &implTranscriber{
		providers: providers,
		fallback:  NewMock(),
		logger:    log,
	}
}
