package cleanup

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// Registry is the list of transient files created during one pipeline run.
type Registry struct {
	mu     sync.Mutex
	paths  []string
	seen   map[string]struct{}
	kept   map[string]struct{}
	logger logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		seen:   make(map[string]struct{}),
		kept:   make(map[string]struct{}),
		logger: log,
	}
}

// Add records a path. Adding the same path twice is a no-op.
func (r *Registry) Add(path string) {
	if path == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[path]; ok {
		return
	}
	r.seen[path] = struct{}{}
	r.paths = append(r.paths, path)
}

// Keep exempts a path from Release; used for result documents.
func (r *Registry) Keep(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kept[path] = struct{}{}
}

// Paths returns the registered paths that are not kept, in insertion order.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.paths))
	for _, p := range r.paths {
		if _, ok := r.kept[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Release removes every non-kept path and logs failures.
func (r *Registry) Release(ctx context.Context) Report {
	report := Cleanup(r.Paths())
	for _, p := range report.Removed {
		r.logger.Debug(ctx, "Cleaned up temp file: %s", p)
	}
	for _, e := range report.Errors {
		r.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", e.Path, e.Err)
	}
	return report
}
