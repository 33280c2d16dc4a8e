package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/metrics"
)

const wavMime = "audio/wav"

// Transcribe runs each segment through the provider chain in order and
// joins the texts with newlines. Provider failures are absorbed; only a
// missing segment file or cancellation is returned as an error.
func (t *implTranscriber) Transcribe(ctx context.Context, segments []domain.NormalizedAudio, languageHint string) (Transcript, error) {
	if len(segments) == 0 {
		return Transcript{}, fmt.Errorf("no audio segments to transcribe")
	}

	var (
		result   Transcript
		texts    = make([]string, 0, len(segments))
		used     []string
		usedSeen = make(map[string]bool)
	)

	for i, seg := range segments {
		audio, err := os.ReadFile(seg.FilePath)
		if err != nil {
			return Transcript{}, fmt.Errorf("read segment %d: %w", i, err)
		}

		t.logger.Info(ctx, "Transcribing segment %d/%d (%.0fs)", i+1, len(segments), seg.DurationSeconds)
		text, provider, attempts, err := t.transcribeSegment(ctx, i, audio, languageHint)
		result.Attempts = append(result.Attempts, attempts...)
		if err != nil {
			return Transcript{}, err
		}

		if provider == t.fallback.Name() {
			result.Degraded = true
		}
		if !usedSeen[provider] {
			usedSeen[provider] = true
			used = append(used, provider)
		}
		texts = append(texts, text)
	}

	result.Text = strings.Join(texts, "\n")
	result.Provider = strings.Join(used, ",")
	if result.Degraded {
		t.logger.Warn(ctx, "Transcription degraded: every provider failed for at least one segment")
	}
	return result, nil
}

func (t *implTranscriber) transcribeSegment(ctx context.Context, index int, audio []byte, language string) (string, string, []Attempt, error) {
	var attempts []Attempt

	for _, p := range t.providers {
		if !p.Available() {
			t.logger.Debug(ctx, "Skipping %s: not configured", p.Name())
			continue
		}

		text, err := p.Transcribe(ctx, audio, wavMime, language)
		if err == nil && strings.TrimSpace(text) == "" {
			err = fmt.Errorf("empty transcript")
		}
		if err == nil {
			metrics.RecordAttempt("transcriber", p.Name(), true)
			attempts = append(attempts, Attempt{Provider: p.Name(), Segment: index})
			return strings.TrimSpace(text), p.Name(), attempts, nil
		}

		metrics.RecordAttempt("transcriber", p.Name(), false)
		attempts = append(attempts, Attempt{Provider: p.Name(), Segment: index, Err: err.Error()})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", attempts, ctxErr
		}
		t.logger.Warn(ctx, "Provider %s failed on segment %d: %v", p.Name(), index, err)
	}

	text, _ := t.fallback.Transcribe(ctx, audio, wavMime, language)
	metrics.RecordAttempt("transcriber", t.fallback.Name(), true)
	attempts = append(attempts, Attempt{Provider: t.fallback.Name(), Segment: index})
	return text, t.fallback.Name(), attempts, nil
}
