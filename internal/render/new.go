package render

import (
	"os"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// Config controls where and how documents are produced.
type Config struct {
	OutputDir  string
	TempDir    string
	ChromePath string
	MarginMM   int
	FontFamily string
}

type implRenderer struct {
	cfg        Config
	executor   executor.Executor
	logger     logger.Logger
	removeFile func(string) error
}

// New creates a Renderer.
func New(cfg Config, exec executor.Executor, log logger.Logger) Renderer {
	return &implRenderer{
		cfg:        cfg,
		executor:   exec,
		logger:     log,
		removeFile: os.Remove,
	}
}
