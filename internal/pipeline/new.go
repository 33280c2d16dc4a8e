package pipeline

import (
	"github.com/nguyentantai21042004/lecture-flow/internal/acquirer"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/normalizer"
	"github.com/nguyentantai21042004/lecture-flow/internal/render"
	"github.com/nguyentantai21042004/lecture-flow/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-flow/internal/transcriber"
)

// Deps are the stage implementations. Store may be nil.
type Deps struct {
	Acquirer    acquirer.Acquirer
	Normalizer  normalizer.Normalizer
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Renderer    render.Renderer
	Store       Saver
}

// Options are the routing and output switches.
type Options struct {
	ChunkWords     int
	DirectAudio    bool
	MaxInlineBytes int64
	RejectDegraded bool
	RenderPDF      bool
	RenderDocx     bool
	MaxConcurrent  int
}

type implPipeline struct {
	deps   Deps
	opts   Options
	sem    *semaphore
	logger logger.Logger
}

// New creates a new Pipeline instance
func New(deps Deps, opts Options, log logger.Logger) Pipeline {
	if opts.MaxInlineBytes <= 0 {
		opts.MaxInlineBytes = 20 << 20
	}
	return &implPipeline{
		deps:   deps,
		opts:   opts,
		sem:    newSemaphore(opts.MaxConcurrent),
		logger: log,
	}
}
