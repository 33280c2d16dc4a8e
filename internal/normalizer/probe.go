package normalizer

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

type wavInfo struct {
	SampleRate      int
	Channels        int
	BitDepth        int
	DurationSeconds float64
}

// probeWAV reads format and PCM length from the WAV header.
func probeWAV(path string) (wavInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return wavInfo{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return wavInfo{}, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := d.FwdToPCM(); err != nil {
		return wavInfo{}, fmt.Errorf("locate PCM data: %w", err)
	}

	info := wavInfo{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}
	bytesPerSecond := info.SampleRate * info.Channels * info.BitDepth / 8
	if bytesPerSecond == 0 {
		return wavInfo{}, fmt.Errorf("WAV header has no sample format: %s", path)
	}
	info.DurationSeconds = float64(d.PCMLen()) / float64(bytesPerSecond)
	return info, nil
}
