package acquirer

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

// baseMime strips parameters such as ";codecs=opus" and lowercases.
func baseMime(m string) string {
	if t, _, err := mime.ParseMediaType(m); err == nil {
		return t
	}
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}

// IsMediaMime reports whether m is an audio or video type.
func IsMediaMime(m string) bool {
	b := baseMime(m)
	return strings.HasPrefix(b, "audio/") || strings.HasPrefix(b, "video/")
}

func (a *implAcquirer) acquireUpload(ctx context.Context, up *domain.UploadedFile, reg *cleanup.Registry) (Acquired, error) {
	// The file is already on disk; it is transient either way.
	reg.Add(up.Path)

	if !IsMediaMime(up.MimeType) {
		return Acquired{}, domain.NewInvalidInput(
			fmt.Sprintf("unsupported file type %q: only audio or video files are accepted", up.MimeType), nil)
	}

	actual, err := fileutil.Size(up.Path)
	if err != nil {
		return Acquired{}, fmt.Errorf("uploaded file: %w", err)
	}
	// The declared size may be missing or understated.
	size := max(actual, up.SizeBytes)
	if size > a.cfg.MaxUploadBytes {
		return Acquired{}, domain.NewInvalidInput(
			fmt.Sprintf("file is too large (%d bytes, limit %d)", size, a.cfg.MaxUploadBytes), nil).
			WithReason(domain.ReasonTooLarge)
	}

	a.logger.Info(ctx, "Accepted upload %s (%s, %d bytes)", up.FileName, baseMime(up.MimeType), size)
	return Acquired{
		AudioPath: up.Path,
		Title:     titleFromFileName(up.FileName),
		FileName:  up.FileName,
		Strategy:  string(domain.SourceUpload),
	}, nil
}

func titleFromFileName(name string) string {
	base := name
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
	if base == "" {
		return "Lecture"
	}
	return base
}
