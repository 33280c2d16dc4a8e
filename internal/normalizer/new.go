package normalizer

import (
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

const (
	TargetSampleRate = 16000
	TargetChannels   = 1
)

// Config tunes conversion and segmentation.
type Config struct {
	FFmpegPath     string
	TempDir        string
	SegmentLength  time.Duration
	SplitOverBytes int64
	MinOutputBytes int64
}

type implNormalizer struct {
	cfg      Config
	executor executor.Executor
	logger   logger.Logger
	probe    func(path string) (wavInfo, error)
}

// New creates a Normalizer instance
func New(cfg Config, exec executor.Executor, log logger.Logger) Normalizer {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.SegmentLength <= 0 {
		cfg.SegmentLength = 30 * time.Minute
	}
	if cfg.SplitOverBytes <= 0 {
		cfg.SplitOverBytes = 100 << 20
	}
	if cfg.MinOutputBytes <= 0 {
		cfg.MinOutputBytes = 1024
	}
	return &implNormalizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		probe:    probeWAV,
	}
}
