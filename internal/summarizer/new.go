package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/gemini"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// Options bounds the rate-limit retry policy.
type Options struct {
	DefaultRetryAfter time.Duration
	MaxRetries        int
	MaxRetryWait      time.Duration
	RequestsPerMinute int
}

type implSummarizer struct {
	client  gemini.Client
	logger  logger.Logger
	opts    Options
	limiter *backoffLimiter
}

// New creates a Summarizer backed by the given generative client.
func New(client gemini.Client, opts Options, log logger.Logger) Summarizer {
	if opts.DefaultRetryAfter <= 0 {
		opts.DefaultRetryAfter = 60 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if opts.MaxRetryWait <= 0 {
		opts.MaxRetryWait = 10 * time.Minute
	}
	return &implSummarizer{
		client:  client,
		logger:  log,
		opts:    opts,
		limiter: newBackoffLimiter(opts.RequestsPerMinute),
	}
}
