// Package render turns final summary text into downloadable documents.
package render

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Renderer writes a fresh document per call and returns its path.
type Renderer interface {
	RenderPDF(ctx context.Context, title, text string, opts domain.SummaryOptions) (string, error)
	RenderDocx(ctx context.Context, title, text string, opts domain.SummaryOptions) (string, error)
}
