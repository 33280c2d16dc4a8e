package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/lecture-flow/internal/acquirer"
	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/gemini"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/normalizer"
	"github.com/nguyentantai21042004/lecture-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-flow/internal/render"
	"github.com/nguyentantai21042004/lecture-flow/internal/store/sqlite"
	"github.com/nguyentantai21042004/lecture-flow/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-flow/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	pipeline pipeline.Pipeline
	store    *sqlite.Store
	sweeper  *cleanup.Sweeper
}

// loadApp reads the config and builds the logger only; enough for sweep.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		log = logger.NewWithFile(cfg.Logging.Level, logger.FileOptions{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		})
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  log,
		sweeper: cleanup.NewSweeper([]string{cfg.Paths.Temp, cfg.Paths.Uploads}, cfg.Cleanup.Interval, cfg.Cleanup.Retention, log),
	}, nil
}

// buildApp wires the full pipeline and the summary store.
func buildApp(ctx context.Context) (*app, error) {
	a, err := loadApp(ctx)
	if err != nil {
		return nil, err
	}
	cfg, log := a.cfg, a.logger

	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Flow")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Max concurrent pipelines: %d", cfg.Performance.MaxConcurrent)

	exec := executor.New()
	checkBinaries(ctx, log, exec, cfg)

	gem, err := gemini.New(ctx, cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if err != nil {
		return nil, err
	}
	if !gem.Configured() {
		log.Warn(ctx, "No Gemini API key configured: summaries will fail until one is set")
	}

	providers := transcriber.NewDeepgramChain(cfg.Deepgram.APIKey, cfg.Deepgram.BaseURL, cfg.Deepgram.Models, cfg.Deepgram.Timeout)
	if cfg.Transcription.UseGemini {
		providers = append(providers, transcriber.NewGemini(gem, cfg.Gemini.MaxInlineBytes))
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open summary store: %w", err)
	}
	log.Info(ctx, "Summary store: %s", store.Path())

	a.store = store
	a.pipeline = pipeline.New(pipeline.Deps{
		Acquirer: acquirer.New(acquirer.Config{
			TempDir:           cfg.Paths.Temp,
			MaxUploadBytes:    cfg.Limits.MaxUploadBytes,
			MaxRecordingBytes: cfg.Limits.MaxRecordingBytes,
			YtDlpPath:         cfg.YtDlp.BinaryPath,
			AudioFormat:       cfg.YtDlp.AudioFormat,
			SubLanguages:      cfg.YtDlp.SubLanguages,
		}, exec, log),
		Normalizer: normalizer.New(normalizer.Config{
			FFmpegPath:     cfg.FFmpeg.BinaryPath,
			TempDir:        cfg.Paths.Temp,
			SegmentLength:  cfg.FFmpeg.SegmentLength,
			SplitOverBytes: cfg.FFmpeg.SplitOverBytes,
			MinOutputBytes: cfg.FFmpeg.MinOutputBytes,
		}, exec, log),
		Transcriber: transcriber.New(providers, log),
		Summarizer: summarizer.New(gem, summarizer.Options{
			DefaultRetryAfter: cfg.Summary.DefaultRetryAfter,
			MaxRetries:        cfg.Summary.MaxRateLimitRetries,
			MaxRetryWait:      cfg.Summary.MaxRetryWait,
			RequestsPerMinute: cfg.Summary.RequestsPerMinute,
		}, log),
		Renderer: render.New(render.Config{
			OutputDir:  cfg.Paths.Output,
			TempDir:    cfg.Paths.Temp,
			ChromePath: cfg.Render.ChromePath,
			MarginMM:   cfg.Render.MarginMM,
			FontFamily: cfg.Render.FontFamily,
		}, exec, log),
		Store: store,
	}, pipeline.Options{
		ChunkWords:     cfg.Summary.ChunkWords,
		DirectAudio:    cfg.Summary.DirectAudio,
		MaxInlineBytes: cfg.Gemini.MaxInlineBytes,
		RejectDegraded: cfg.Transcription.RejectDegraded,
		RenderPDF:      cfg.Render.PDF,
		RenderDocx:     cfg.Render.Docx,
		MaxConcurrent:  cfg.Performance.MaxConcurrent,
	}, log)

	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn(context.Background(), "Failed to close store: %v", err)
		}
	}
	if err := logger.Close(a.logger); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}

// checkBinaries warns about missing external tools without failing startup.
func checkBinaries(ctx context.Context, log logger.Logger, exec executor.Executor, cfg *config.Config) {
	for _, bin := range []string{cfg.FFmpeg.BinaryPath, cfg.YtDlp.BinaryPath, cfg.Render.ChromePath} {
		if _, err := exec.LookPath(bin); err != nil {
			log.Warn(ctx, "External tool %q not found on PATH: %v", bin, err)
		}
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Temp,
		cfg.Paths.Output,
		cfg.Paths.Inbox,
		cfg.Paths.Archived,
		cfg.Storage.DataDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
