package normalizer

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// Normalizer converts arbitrary media into mono 16 kHz PCM WAV segments.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string, reg *cleanup.Registry) ([]domain.NormalizedAudio, error)
}
