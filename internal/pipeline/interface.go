// Package pipeline drives one request from media source to summary.
package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Request is one summarization job.
type Request struct {
	Source  domain.MediaSource
	Options domain.SummaryOptions
	UserID  string
}

// Pipeline runs requests end to end.
type Pipeline interface {
	Run(ctx context.Context, req Request) (domain.PipelineResult, error)
}

// Saver persists finished results.
type Saver interface {
	Save(ctx context.Context, userID string, result domain.PipelineResult) error
}
