package cleanup

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// Sweeper deletes files older than the retention window from known directories.
type Sweeper struct {
	dirs      []string
	retention time.Duration
	interval  time.Duration
	logger    logger.Logger
	now       func() time.Time
}

// NewSweeper creates a sweeper over dirs.
func NewSweeper(dirs []string, interval, retention time.Duration, log logger.Logger) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{
		dirs:      dirs,
		retention: retention,
		interval:  interval,
		logger:    log,
		now:       time.Now,
	}
}

// Start sweeps once immediately and then every interval until ctx is done.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Temp sweeper started (every %s, retention %s)", s.interval, s.retention)
	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Temp sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce scans each directory and removes stale regular files.
func (s *Sweeper) SweepOnce(ctx context.Context) Report {
	cutoff := s.now().Add(-s.retention)
	var stale []string

	for _, dir := range s.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().Before(cutoff) {
				stale = append(stale, path)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn(ctx, "Sweep of %s failed: %v", dir, err)
		}
	}

	report := Cleanup(stale)
	if len(report.Removed) > 0 {
		s.logger.Info(ctx, "Sweep removed %d stale files", len(report.Removed))
	}
	for _, e := range report.Errors {
		s.logger.Warn(ctx, "Sweep could not remove %s: %v", e.Path, e.Err)
	}
	return report
}
