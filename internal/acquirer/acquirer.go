package acquirer

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Acquire dispatches on the populated source variant.
func (a *implAcquirer) Acquire(ctx context.Context, src domain.MediaSource, reg *cleanup.Registry) (Acquired, error) {
	kind, err := src.Kind()
	if err != nil {
		return Acquired{}, err
	}

	switch kind {
	case domain.SourceUpload:
		return a.acquireUpload(ctx, src.Upload, reg)
	case domain.SourceRecording:
		return a.acquireRecording(ctx, src.Recording, reg)
	default:
		return a.acquireRemote(ctx, src.Remote, reg)
	}
}
