package summarizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/chunker"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/gemini"
	"github.com/nguyentantai21042004/lecture-flow/internal/metrics"
)

// Summarize summarizes each chunk in order, then merges the partial
// summaries in a second pass when there is more than one. A transcript
// output type returns the joined chunks untouched.
func (s *implSummarizer) Summarize(ctx context.Context, chunks []domain.TranscriptChunk, opts domain.SummaryOptions) (string, error) {
	if opts.OutputType == domain.OutputTranscript {
		return chunker.Join(chunks), nil
	}
	if len(chunks) == 0 {
		return "", domain.NewInvalidInput("transcript is empty, nothing to summarize", nil)
	}

	partials := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		s.logger.Info(ctx, "[%d/%d] Summarizing chunk (%d words, style=%s, lang=%s)",
			chunk.Index+1, len(chunks), chunk.WordCount, opts.Style, opts.Language)

		prompt := buildChunkPrompt(chunk, len(chunks), opts)
		summary, err := s.generate(ctx, func(ctx context.Context) (string, error) {
			return s.client.Generate(ctx, prompt)
		})
		if err != nil {
			return "", err
		}
		partials = append(partials, summary)
	}

	if len(partials) == 1 {
		return partials[0], nil
	}

	s.logger.Info(ctx, "Combining %d partial summaries", len(partials))
	prompt := buildCombinePrompt(partials, opts)
	return s.generate(ctx, func(ctx context.Context) (string, error) {
		return s.client.Generate(ctx, prompt)
	})
}

// SummarizeAudio sends the audio inline with the style prompt.
func (s *implSummarizer) SummarizeAudio(ctx context.Context, audio []byte, mimeType string, opts domain.SummaryOptions) (string, error) {
	if len(audio) == 0 {
		return "", domain.NewInvalidInput("audio is empty, nothing to summarize", nil)
	}
	prompt := buildAudioPrompt(opts)
	return s.generate(ctx, func(ctx context.Context) (string, error) {
		return s.client.GenerateWithAudio(ctx, prompt, audio, mimeType)
	})
}

// generate runs call, retrying the identical call after each rate-limit
// signal until the retry count or the total wait budget is exhausted.
func (s *implSummarizer) generate(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	retries := 0
	var waited time.Duration

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", domain.NewProvider("summarization cancelled", err)
		}

		text, err := call(ctx)
		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				return "", domain.NewProvider("summarization returned an empty result", nil)
			}
			return text, nil
		}

		if errors.Is(err, gemini.ErrNotConfigured) {
			return "", domain.NewProvider("summarization provider is not configured", err)
		}

		var rl *domain.RateLimitError
		if !errors.As(err, &rl) {
			return "", domain.NewProvider("summarization failed", err)
		}

		delay := rl.RetryAfter
		if delay <= 0 {
			delay = s.opts.DefaultRetryAfter
		}
		if retries >= s.opts.MaxRetries || waited+delay > s.opts.MaxRetryWait {
			return "", domain.NewProvider("summarization service is busy (rate limited), please try again later", err).
				WithReason(domain.ReasonRateLimited)
		}

		retries++
		waited += delay
		metrics.RecordRateLimitRetry()
		s.logger.Warn(ctx, "Rate limited, retry %d/%d in %s", retries, s.opts.MaxRetries, delay)
		s.limiter.Backoff(delay)
	}
}
