package normalizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

// Normalize converts the input to 16kHz mono WAV and, for large or long
// inputs, splits it into fixed-length segments without re-encoding.
func (n *implNormalizer) Normalize(ctx context.Context, inputPath string, reg *cleanup.Registry) ([]domain.NormalizedAudio, error) {
	inputSize, err := fileutil.Size(inputPath)
	if err != nil {
		return nil, fmt.Errorf("stat input media: %w", err)
	}

	wavPath, info, err := n.convert(ctx, inputPath, reg)
	if err != nil {
		return nil, err
	}

	whole := domain.NormalizedAudio{
		FilePath:        wavPath,
		SampleRate:      info.SampleRate,
		Channels:        info.Channels,
		DurationSeconds: info.DurationSeconds,
	}

	if inputSize <= n.cfg.SplitOverBytes && info.DurationSeconds <= n.cfg.SegmentLength.Seconds() {
		return []domain.NormalizedAudio{whole}, nil
	}

	n.logger.Info(ctx, "Input is large (%d bytes, %.0fs), splitting into %s segments",
		inputSize, info.DurationSeconds, n.cfg.SegmentLength)
	return n.split(ctx, wavPath, reg)
}

// convert extracts audio from the input and converts to 16kHz mono WAV.
func (n *implNormalizer) convert(ctx context.Context, inputPath string, reg *cleanup.Registry) (string, wavInfo, error) {
	audioPath := filepath.Join(n.cfg.TempDir, fileutil.UniqueName("normalized", ".wav"))
	reg.Add(audioPath)

	n.logger.Info(ctx, "Normalizing audio: %s", inputPath)

	// -vn: drop video, -ar/-ac: 16kHz mono, pcm_s16le: 16-bit PCM
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(TargetSampleRate),
		"-ac", strconv.Itoa(TargetChannels),
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := n.executor.Run(ctx, executor.Command{Name: n.cfg.FFmpegPath, Args: args}); err != nil {
		return "", wavInfo{}, domain.NewConversion("could not convert the audio file", err)
	}

	info, err := n.verify(audioPath)
	if err != nil {
		return "", wavInfo{}, err
	}

	n.logger.Info(ctx, "Audio normalized successfully: %s (%.1fs)", audioPath, info.DurationSeconds)
	return audioPath, info, nil
}

// verify rejects missing or tiny outputs and anything not mono 16kHz.
func (n *implNormalizer) verify(path string) (wavInfo, error) {
	size, err := fileutil.Size(path)
	if err != nil {
		return wavInfo{}, domain.NewConversion("audio conversion produced no output", err)
	}
	if size < n.cfg.MinOutputBytes {
		return wavInfo{}, domain.NewConversion(
			fmt.Sprintf("audio conversion produced an unusable file (%d bytes)", size), nil)
	}

	info, err := n.probe(path)
	if err != nil {
		return wavInfo{}, domain.NewConversion("converted audio is not a valid WAV file", err)
	}
	if info.SampleRate != TargetSampleRate || info.Channels != TargetChannels {
		return wavInfo{}, domain.NewConversion(
			fmt.Sprintf("converted audio has %d Hz / %d channels, want %d Hz mono", info.SampleRate, info.Channels, TargetSampleRate), nil)
	}
	return info, nil
}

// split stream-copies wavPath into SegmentLength pieces.
func (n *implNormalizer) split(ctx context.Context, wavPath string, reg *cleanup.Registry) ([]domain.NormalizedAudio, error) {
	prefix := fileutil.UniqueName("segment", "")
	pattern := filepath.Join(n.cfg.TempDir, prefix+"_%03d.wav")

	args := []string{
		"-i", wavPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(int(n.cfg.SegmentLength.Seconds())),
		"-reset_timestamps", "1",
		"-c", "copy",
		"-y",
		pattern,
	}

	_, runErr := n.executor.Run(ctx, executor.Command{Name: n.cfg.FFmpegPath, Args: args})

	matches, err := filepath.Glob(filepath.Join(n.cfg.TempDir, prefix+"_*.wav"))
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		reg.Add(m)
	}

	if runErr != nil {
		return nil, domain.NewConversion("could not split the audio into segments", runErr)
	}
	if len(matches) == 0 {
		return nil, domain.NewConversion("audio split produced no segments", nil)
	}

	matches = n.dropShortTail(ctx, matches)

	segments := make([]domain.NormalizedAudio, 0, len(matches))
	for _, m := range matches {
		info, err := n.verify(m)
		if err != nil {
			return nil, err
		}
		segments = append(segments, domain.NormalizedAudio{
			FilePath:        m,
			SampleRate:      info.SampleRate,
			Channels:        info.Channels,
			DurationSeconds: info.DurationSeconds,
		})
	}

	if err := os.Remove(wavPath); err != nil && !os.IsNotExist(err) {
		n.logger.Warn(ctx, "Failed to remove unsplit audio %s: %v", wavPath, err)
	}

	n.logger.Info(ctx, "Audio split into %d segments", len(segments))
	return segments, nil
}

// dropShortTail discards a final segment below MinOutputBytes. Inputs a
// fraction of a second past a segment boundary leave such a sliver, which
// holds no speech and would otherwise fail verification.
func (n *implNormalizer) dropShortTail(ctx context.Context, matches []string) []string {
	if len(matches) < 2 {
		return matches
	}
	last := matches[len(matches)-1]
	size, err := fileutil.Size(last)
	if err != nil || size >= n.cfg.MinOutputBytes {
		return matches
	}
	n.logger.Info(ctx, "Dropping short trailing segment %s (%d bytes)", last, size)
	if err := os.Remove(last); err != nil && !os.IsNotExist(err) {
		n.logger.Warn(ctx, "Failed to remove short segment %s: %v", last, err)
	}
	return matches[:len(matches)-1]
}
