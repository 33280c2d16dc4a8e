package acquirer

import (
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// Config holds acquisition limits and the yt-dlp setup.
type Config struct {
	TempDir           string
	MaxUploadBytes    int64
	MaxRecordingBytes int64
	YtDlpPath         string
	AudioFormat       string
	SubLanguages      []string
}

type implAcquirer struct {
	cfg        Config
	strategies []Strategy
	logger     logger.Logger
}

// New creates an Acquirer with the default remote strategy chain.
func New(cfg Config, exec executor.Executor, log logger.Logger) Acquirer {
	if cfg.YtDlpPath == "" {
		cfg.YtDlpPath = "yt-dlp"
	}
	if cfg.AudioFormat == "" {
		cfg.AudioFormat = "mp3"
	}
	return NewWithStrategies(cfg, DefaultStrategies(cfg, exec), log)
}

// NewWithStrategies creates an Acquirer that walks strategies in order.
func NewWithStrategies(cfg Config, strategies []Strategy, log logger.Logger) Acquirer {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1 << 30
	}
	if cfg.MaxRecordingBytes <= 0 {
		cfg.MaxRecordingBytes = 150 << 20
	}
	return &implAcquirer{
		cfg:        cfg,
		strategies: strategies,
		logger:     log,
	}
}
