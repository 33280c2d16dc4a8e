// Package cleanup tracks transient files of a pipeline run and removes them,
// plus a periodic sweep of stale files left behind by killed runs.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// PathError records one failed removal.
type PathError struct {
	Path string
	Err  error
}

func (e PathError) Error() string {
	return fmt.Sprintf("remove %s: %v", e.Path, e.Err)
}

// Report is the outcome of a Cleanup call.
type Report struct {
	Removed []string
	Missing []string
	Errors  []PathError
}

// Success reports whether every path is gone.
func (r Report) Success() bool {
	return len(r.Errors) == 0
}

// Err joins the collected errors, or returns nil.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Cleanup removes every path. Missing files are reported, not failed; other
// errors are collected and do not stop the remaining removals.
func Cleanup(paths []string) Report {
	return cleanupWith(paths, os.Remove)
}

func cleanupWith(paths []string, remove func(string) error) Report {
	var r Report
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := remove(p)
		switch {
		case err == nil:
			r.Removed = append(r.Removed, p)
		case errors.Is(err, fs.ErrNotExist):
			r.Missing = append(r.Missing, p)
		default:
			r.Errors = append(r.Errors, PathError{Path: p, Err: err})
		}
	}
	return r
}
