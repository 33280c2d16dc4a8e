package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Summarizer turns transcript chunks (or inline audio) into a styled summary.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []domain.TranscriptChunk, opts domain.SummaryOptions) (string, error)
	SummarizeAudio(ctx context.Context, audio []byte, mimeType string, opts domain.SummaryOptions) (string, error)
}
