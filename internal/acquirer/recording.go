package acquirer

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

// recordingExt maps a MIME marker to a file extension. Order matters:
// "mp4" is checked before "mp3" style substrings like "mpeg".
var recordingExt = []struct {
	marker string
	ext    string
}{
	{"webm", "webm"},
	{"mp4", "mp4"},
	{"m4a", "mp4"},
	{"wav", "wav"},
	{"mpeg", "mp3"},
	{"mp3", "mp3"},
	{"ogg", "ogg"},
}

func extensionFor(mimeType string) string {
	m := strings.ToLower(mimeType)
	for _, e := range recordingExt {
		if strings.Contains(m, e.marker) {
			return e.ext
		}
	}
	return "webm"
}

// splitDataURL returns the MIME type and base64 body of a data URL, or
// ("", payload) for a bare base64 string.
func splitDataURL(payload string) (string, string) {
	if !strings.HasPrefix(payload, "data:") {
		return "", payload
	}
	header, body, ok := strings.Cut(payload, ",")
	if !ok {
		return "", payload
	}
	header = strings.TrimPrefix(header, "data:")
	header = strings.TrimSuffix(header, ";base64")
	return header, body
}

func decodeBase64(body string) ([]byte, error) {
	body = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, body)
	if data, err := base64.StdEncoding.DecodeString(body); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
}

func (a *implAcquirer) acquireRecording(ctx context.Context, rec *domain.RecordedClip, reg *cleanup.Registry) (Acquired, error) {
	mimeType, body := splitDataURL(rec.Payload)
	if mimeType == "" {
		mimeType = rec.MimeType
	}
	if strings.TrimSpace(body) == "" {
		return Acquired{}, domain.NewInvalidInput("recording is empty", nil)
	}
	// Cheap pre-check on the encoded length before allocating.
	if int64(base64.StdEncoding.DecodedLen(len(body))) > a.cfg.MaxRecordingBytes+3 {
		return Acquired{}, domain.NewInvalidInput("recording too long", nil).WithReason(domain.ReasonTooLarge)
	}

	data, err := decodeBase64(body)
	if err != nil {
		return Acquired{}, domain.NewInvalidInput("recording is not valid base64 audio", err)
	}
	if len(data) == 0 {
		return Acquired{}, domain.NewInvalidInput("recording is empty", nil)
	}
	if int64(len(data)) > a.cfg.MaxRecordingBytes {
		return Acquired{}, domain.NewInvalidInput("recording too long", nil).WithReason(domain.ReasonTooLarge)
	}

	fileName := fileutil.UniqueName("recording", extensionFor(mimeType))
	path := filepath.Join(a.cfg.TempDir, fileName)
	reg.Add(path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Acquired{}, fmt.Errorf("write recording: %w", err)
	}

	a.logger.Info(ctx, "Saved recording %s (%d bytes)", path, len(data))
	return Acquired{
		AudioPath: path,
		Title:     "Recorded lecture",
		FileName:  fileName,
		Strategy:  string(domain.SourceRecording),
	}, nil
}
