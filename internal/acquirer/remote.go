package acquirer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/metrics"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// blockedMarkers identify a provider refusing automated access. Retrying
// with another profile does not help once one of these appears.
var blockedMarkers = []string{
	"sign in to confirm",
	"not a bot",
	"captcha",
	"http error 429",
	"this helps protect our community",
}

// IsBlocked reports whether err carries a bot-check or throttling marker.
func IsBlocked(err error) bool {
	if err == nil {
		return false
	}
	text := err.Error()
	var exitErr *executor.ExitError
	if errors.As(err, &exitErr) {
		text += "\n" + exitErr.Stderr
	}
	text = strings.ToLower(text)
	for _, m := range blockedMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func (a *implAcquirer) acquireRemote(ctx context.Context, rv *domain.RemoteVideo, reg *cleanup.Registry) (Acquired, error) {
	t, err := ParseTarget(rv.URL)
	if err != nil {
		return Acquired{}, err
	}
	t.LanguageHint = rv.LanguageHint
	t.Registry = reg

	var failures []error
	for _, s := range a.strategies {
		if !s.Applies(t) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Acquired{}, err
		}

		a.logger.Info(ctx, "Trying %s for %s", s.Name(), t.URL)
		got, err := s.Attempt(ctx, t)
		if err == nil {
			metrics.RecordAttempt("acquirer", s.Name(), true)
			a.logger.Info(ctx, "Acquired %s via %s", t.URL, s.Name())
			return got, nil
		}
		metrics.RecordAttempt("acquirer", s.Name(), false)

		if IsBlocked(err) {
			a.logger.Warn(ctx, "Strategy %s was blocked: %v", s.Name(), err)
			return Acquired{}, domain.NewAccessBlocked(
				"the video provider is blocking automated access; please upload the file instead", err)
		}
		if ctx.Err() != nil {
			return Acquired{}, ctx.Err()
		}

		a.logger.Warn(ctx, "Strategy %s failed: %v", s.Name(), err)
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
	}

	return Acquired{}, domain.NewProvider("download failed", errors.Join(failures...))
}
