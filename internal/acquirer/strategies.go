package acquirer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

const (
	StrategyCaptions        = "captions"
	StrategyDownloadDefault = "download-default"
	StrategyGeoBypass       = "download-geo-bypass"
	StrategyMobileUA        = "download-mobile-ua"
)

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	mobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

// errNoCaptions means the video has no usable caption track.
var errNoCaptions = errors.New("no captions available")

// DefaultStrategies returns captions first, then three download profiles.
func DefaultStrategies(cfg Config, exec executor.Executor) []Strategy {
	return []Strategy{
		&captionsStrategy{cfg: cfg, executor: exec},
		&downloadStrategy{cfg: cfg, executor: exec, name: StrategyDownloadDefault,
			extra: []string{"--user-agent", desktopUserAgent}},
		&downloadStrategy{cfg: cfg, executor: exec, name: StrategyGeoBypass,
			extra: []string{"--geo-bypass", "--user-agent", desktopUserAgent}},
		&downloadStrategy{cfg: cfg, executor: exec, name: StrategyMobileUA,
			extra: []string{"--user-agent", mobileUserAgent, "--extractor-args", "youtube:player_client=ios,android"}},
	}
}

// captionsStrategy fetches subtitles only and cleans them to text.
type captionsStrategy struct {
	cfg      Config
	executor executor.Executor
}

func (s *captionsStrategy) Name() string { return StrategyCaptions }

func (s *captionsStrategy) Applies(t Target) bool { return t.YouTube }

func (s *captionsStrategy) Attempt(ctx context.Context, t Target) (Acquired, error) {
	prefix := fileutil.UniqueName("captions_"+t.VideoID, "")
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", subLanguages(t.LanguageHint, s.cfg.SubLanguages),
		"--sub-format", "vtt",
		"--no-playlist",
		"--no-simulate",
		"--print", "title",
		"-o", filepath.Join(s.cfg.TempDir, prefix+".%(ext)s"),
		t.URL,
	}

	out, runErr := s.executor.Run(ctx, executor.Command{Name: s.cfg.YtDlpPath, Args: args})
	files := collect(t, s.cfg.TempDir, prefix)
	if runErr != nil {
		return Acquired{}, runErr
	}

	var vtts []string
	for _, f := range files {
		if strings.HasSuffix(f, ".vtt") {
			vtts = append(vtts, f)
		}
	}
	if len(vtts) == 0 {
		return Acquired{}, errNoCaptions
	}

	path := pickTrack(vtts, t.LanguageHint)
	raw, err := os.ReadFile(path)
	if err != nil {
		return Acquired{}, fmt.Errorf("read captions: %w", err)
	}
	text := CleanVTT(string(raw))
	if text == "" {
		return Acquired{}, errNoCaptions
	}

	return Acquired{
		Transcript: text,
		Title:      titleOrDefault(out.Stdout, t),
		FileName:   t.VideoID,
		Strategy:   StrategyCaptions,
	}, nil
}

// downloadStrategy extracts the audio track with a given yt-dlp profile.
type downloadStrategy struct {
	cfg      Config
	executor executor.Executor
	name     string
	extra    []string
}

func (s *downloadStrategy) Name() string { return s.name }

func (s *downloadStrategy) Applies(Target) bool { return true }

func (s *downloadStrategy) Attempt(ctx context.Context, t Target) (Acquired, error) {
	id := t.VideoID
	if id == "" {
		id = "media"
	}
	prefix := fileutil.UniqueName("remote_"+id, "")
	args := []string{
		"-x",
		"--audio-format", s.cfg.AudioFormat,
		"--no-playlist",
		"--no-simulate",
		"--print", "title",
		"-o", filepath.Join(s.cfg.TempDir, prefix+".%(ext)s"),
	}
	args = append(args, s.extra...)
	args = append(args, t.URL)

	out, runErr := s.executor.Run(ctx, executor.Command{Name: s.cfg.YtDlpPath, Args: args})
	files := collect(t, s.cfg.TempDir, prefix)
	if runErr != nil {
		return Acquired{}, runErr
	}

	audio := ""
	for _, f := range files {
		if strings.HasSuffix(f, "."+s.cfg.AudioFormat) {
			audio = f
			break
		}
	}
	if audio == "" && len(files) > 0 {
		audio = files[0]
	}
	if audio == "" {
		return Acquired{}, fmt.Errorf("yt-dlp reported success but wrote no audio file")
	}

	return Acquired{
		AudioPath: audio,
		Title:     titleOrDefault(out.Stdout, t),
		FileName:  filepath.Base(audio),
		Strategy:  s.name,
	}, nil
}

// collect registers every file a strategy wrote under prefix.
func collect(t Target, dir, prefix string) []string {
	matches, _ := filepath.Glob(filepath.Join(dir, prefix+"*"))
	sort.Strings(matches)
	for _, m := range matches {
		t.Registry.Add(m)
	}
	return matches
}

func subLanguages(hint string, configured []string) string {
	var langs []string
	if hint != "" {
		langs = append(langs, hint, hint+".*")
	}
	if len(configured) == 0 {
		configured = []string{"en.*"}
	}
	for _, l := range configured {
		if l != hint && l != hint+".*" {
			langs = append(langs, l)
		}
	}
	return strings.Join(langs, ",")
}

// pickTrack prefers a track in the hinted language. Files are named
// <prefix>.<lang>.vtt.
func pickTrack(files []string, hint string) string {
	if hint != "" {
		for _, f := range files {
			lang := filepath.Ext(strings.TrimSuffix(f, ".vtt"))
			if lang == "."+hint || strings.HasPrefix(lang, "."+hint+"-") {
				return f
			}
		}
	}
	return files[0]
}

func titleOrDefault(stdout string, t Target) string {
	for _, line := range strings.Split(stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	if t.VideoID != "" {
		return "Video " + t.VideoID
	}
	return "Video"
}
