// Package httpapi exposes the summarization pipeline over HTTP.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/pipeline"
)

// Config holds the HTTP boundary settings.
type Config struct {
	Mode            string
	UploadsDir      string
	OutputDir       string
	MaxUploadBytes    int64
	MaxRecordingBytes int64
	PipelineTimeout   time.Duration
}

// SummaryStore reads stored summaries for a user. Get returns
// sqlite.ErrNotFound when the user owns no summary with that id.
type SummaryStore interface {
	Get(ctx context.Context, userID, id string) (domain.PipelineResult, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.PipelineResult, error)
}

// Server wires routes to the pipeline.
type Server struct {
	cfg      Config
	pipeline pipeline.Pipeline
	store    SummaryStore
	logger   logger.Logger
	engine   *gin.Engine
	started  time.Time
}

// New creates a Server. store may be nil, in which case listing is empty.
func New(cfg Config, p pipeline.Pipeline, store SummaryStore, log logger.Logger) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1 << 30
	}
	if cfg.MaxRecordingBytes <= 0 {
		cfg.MaxRecordingBytes = 150 << 20
	}
	if cfg.PipelineTimeout <= 0 {
		cfg.PipelineTimeout = 30 * time.Minute
	}

	s := &Server{
		cfg:      cfg,
		pipeline: p,
		store:    store,
		logger:   log,
		engine:   gin.New(),
		started:  time.Now(),
	}
	s.routes()
	return s
}
