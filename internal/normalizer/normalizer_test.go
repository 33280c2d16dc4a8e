package normalizer

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor/executortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a silent 16-bit PCM file with a canonical 44-byte header.
func writeWAV(t *testing.T, path string, sampleRate, channels int, seconds float64) {
	t.Helper()
	dataLen := int(float64(sampleRate*channels*2) * seconds)
	buf := make([]byte, 44+dataLen)
	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+dataLen))
	copy(buf[8:], "WAVE")
	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16)
	binary.LittleEndian.PutUint16(buf[20:], 1)
	binary.LittleEndian.PutUint16(buf[22:], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(buf[32:], uint16(channels*2))
	binary.LittleEndian.PutUint16(buf[34:], 16)
	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(dataLen))
	require.NoError(t, os.WriteFile(path, buf, 0644))
}

func writeInput(t *testing.T, dir string, size int) string {
	t.Helper()
	p := filepath.Join(dir, "lecture.mp4")
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0644))
	return p
}

func newTestNormalizer(dir string, fake *executortest.Fake) *implNormalizer {
	return New(Config{TempDir: dir}, fake, logger.Nop()).(*implNormalizer)
}

func TestProbeWAV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.wav")
	writeWAV(t, p, 16000, 1, 1.5)

	info, err := probeWAV(p)
	require.NoError(t, err)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.Equal(t, 16, info.BitDepth)
	assert.InDelta(t, 1.5, info.DurationSeconds, 0.01)

	junk := filepath.Join(dir, "junk.wav")
	require.NoError(t, os.WriteFile(junk, []byte(strings.Repeat("x", 2048)), 0644))
	_, err = probeWAV(junk)
	assert.Error(t, err)
}

func TestNormalizeSingle(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, 4096)

	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		out := cmd.Args[len(cmd.Args)-1]
		writeWAV(t, out, 16000, 1, 2)
		return executor.Output{}, nil
	}}
	n := newTestNormalizer(dir, fake)
	reg := cleanup.NewRegistry(nil)

	segs, err := n.Normalize(context.Background(), input, reg)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, 16000, segs[0].SampleRate)
	assert.Equal(t, 1, segs[0].Channels)
	assert.InDelta(t, 2.0, segs[0].DurationSeconds, 0.01)
	assert.Contains(t, reg.Paths(), segs[0].FilePath)

	calls := fake.Calls("ffmpeg")
	require.Len(t, calls, 1)
	args := strings.Join(calls[0].Args, " ")
	assert.Contains(t, args, "-vn")
	assert.Contains(t, args, "-ar 16000")
	assert.Contains(t, args, "-ac 1")
	assert.Contains(t, args, "pcm_s16le")
}

func TestNormalizeSplitsLongRecording(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, 4096)

	fake := &executortest.Fake{}
	n := newTestNormalizer(dir, fake)
	// 45 minutes of audio without writing 86 MB of samples.
	n.probe = func(path string) (wavInfo, error) {
		if strings.Contains(filepath.Base(path), "normalized") {
			return wavInfo{SampleRate: 16000, Channels: 1, BitDepth: 16, DurationSeconds: 45 * 60}, nil
		}
		if strings.HasSuffix(path, "_000.wav") {
			return wavInfo{SampleRate: 16000, Channels: 1, BitDepth: 16, DurationSeconds: 30 * 60}, nil
		}
		return wavInfo{SampleRate: 16000, Channels: 1, BitDepth: 16, DurationSeconds: 15 * 60}, nil
	}
	fake.Handle = func(cmd executor.Command) (executor.Output, error) {
		out := cmd.Args[len(cmd.Args)-1]
		if strings.Contains(out, "%03d") {
			for i := 0; i < 2; i++ {
				p := strings.Replace(out, "%03d", []string{"000", "001"}[i], 1)
				require.NoError(t, os.WriteFile(p, make([]byte, 2048), 0644))
			}
			return executor.Output{}, nil
		}
		require.NoError(t, os.WriteFile(out, make([]byte, 2048), 0644))
		return executor.Output{}, nil
	}

	reg := cleanup.NewRegistry(nil)
	segs, err := n.Normalize(context.Background(), input, reg)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.True(t, strings.HasSuffix(segs[0].FilePath, "_000.wav"))
	assert.True(t, strings.HasSuffix(segs[1].FilePath, "_001.wav"))
	assert.Equal(t, 30*60.0, segs[0].DurationSeconds)

	calls := fake.Calls("ffmpeg")
	require.Len(t, calls, 2)
	split := strings.Join(calls[1].Args, " ")
	assert.Contains(t, split, "-f segment")
	assert.Contains(t, split, "-segment_time 1800")
	assert.Contains(t, split, "-c copy")

	for _, s := range segs {
		assert.Contains(t, reg.Paths(), s.FilePath)
	}
}

func TestNormalizeSplitsLargeInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, 4096)

	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		out := cmd.Args[len(cmd.Args)-1]
		if strings.Contains(out, "%03d") {
			writeWAV(t, strings.Replace(out, "%03d", "000", 1), 16000, 1, 1)
			return executor.Output{}, nil
		}
		writeWAV(t, out, 16000, 1, 1)
		return executor.Output{}, nil
	}}
	n := New(Config{TempDir: dir, SplitOverBytes: 1000}, fake, logger.Nop())

	segs, err := n.Normalize(context.Background(), input, cleanup.NewRegistry(nil))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Len(t, fake.Calls("ffmpeg"), 2)
}

func TestNormalizeDropsShortTailSegment(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, 4096)

	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		out := cmd.Args[len(cmd.Args)-1]
		if strings.Contains(out, "%03d") {
			writeWAV(t, strings.Replace(out, "%03d", "000", 1), 16000, 1, 1)
			writeWAV(t, strings.Replace(out, "%03d", "001", 1), 16000, 1, 0.02)
			return executor.Output{}, nil
		}
		writeWAV(t, out, 16000, 1, 1)
		return executor.Output{}, nil
	}}
	n := newTestNormalizer(dir, fake)
	base := n.probe
	n.probe = func(path string) (wavInfo, error) {
		info, err := base(path)
		if strings.Contains(filepath.Base(path), "normalized") {
			info.DurationSeconds = 30*60 + 0.02
		}
		return info, err
	}

	segs, err := n.Normalize(context.Background(), input, cleanup.NewRegistry(nil))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.True(t, strings.HasSuffix(segs[0].FilePath, "_000.wav"))

	tails, _ := filepath.Glob(filepath.Join(dir, "segment_*_001.wav"))
	assert.Empty(t, tails)
}

func TestNormalizeErrors(t *testing.T) {
	tcs := map[string]struct {
		handle  executortest.Handler
		wantMsg string
	}{
		"ffmpeg fails": {
			handle: func(cmd executor.Command) (executor.Output, error) {
				return executortest.Fail("ffmpeg", "Invalid data found when processing input")
			},
			wantMsg: "could not convert",
		},
		"no output": {
			handle: func(cmd executor.Command) (executor.Output, error) {
				return executor.Output{}, nil
			},
			wantMsg: "no output",
		},
		"tiny output": {
			handle: func(cmd executor.Command) (executor.Output, error) {
				return executor.Output{}, os.WriteFile(cmd.Args[len(cmd.Args)-1], make([]byte, 100), 0644)
			},
			wantMsg: "unusable",
		},
		"wrong format": {
			handle: func(cmd executor.Command) (executor.Output, error) {
				writeWAV(t, cmd.Args[len(cmd.Args)-1], 44100, 2, 1)
				return executor.Output{}, nil
			},
			wantMsg: "want 16000 Hz mono",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeInput(t, dir, 4096)
			n := newTestNormalizer(dir, &executortest.Fake{Handle: tc.handle})

			reg := cleanup.NewRegistry(nil)
			_, err := n.Normalize(context.Background(), input, reg)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConversion)
			assert.Contains(t, err.Error(), tc.wantMsg)
			// The output path is registered even when conversion fails.
			assert.Len(t, reg.Paths(), 1)
		})
	}
}

func TestNormalizeMissingInput(t *testing.T) {
	n := newTestNormalizer(t.TempDir(), &executortest.Fake{})
	_, err := n.Normalize(context.Background(), "/nonexistent/input.mp4", cleanup.NewRegistry(nil))
	require.Error(t, err)
}

func TestNormalizeCancelled(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, 4096)
	n := newTestNormalizer(dir, &executortest.Fake{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := n.Normalize(ctx, input, cleanup.NewRegistry(nil))
	require.Error(t, err)
}
