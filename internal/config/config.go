package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Paths         PathsConfig         `yaml:"paths"`
	Limits        LimitsConfig        `yaml:"limits"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	YtDlp         YtDlpConfig         `yaml:"ytdlp"`
	Deepgram      DeepgramConfig      `yaml:"deepgram"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	Render        RenderConfig        `yaml:"render"`
	Cleanup       CleanupConfig       `yaml:"cleanup"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"`
	PipelineTimeout time.Duration `yaml:"pipeline_timeout"`
}

type PathsConfig struct {
	Uploads  string `yaml:"uploads"`
	Temp     string `yaml:"temp"`
	Output   string `yaml:"output"`
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type LimitsConfig struct {
	MaxUploadBytes    int64 `yaml:"max_upload_bytes"`
	MaxRecordingBytes int64 `yaml:"max_recording_bytes"`
}

type FFmpegConfig struct {
	BinaryPath     string        `yaml:"binary_path"`
	SegmentLength  time.Duration `yaml:"segment_length"`
	SplitOverBytes int64         `yaml:"split_over_bytes"`
	MinOutputBytes int64         `yaml:"min_output_bytes"`
}

type YtDlpConfig struct {
	BinaryPath   string   `yaml:"binary_path"`
	AudioFormat  string   `yaml:"audio_format"`
	SubLanguages []string `yaml:"sub_languages"`
}

type DeepgramConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Models  []string      `yaml:"models"`
	Timeout time.Duration `yaml:"timeout"`
}

type GeminiConfig struct {
	APIKeys        []string `yaml:"api_keys"`
	Model          string   `yaml:"model"`
	MaxInlineBytes int64    `yaml:"max_inline_bytes"`
}

type TranscriptionConfig struct {
	UseGemini      bool `yaml:"use_gemini"`
	RejectDegraded bool `yaml:"reject_degraded"`
}

type SummaryConfig struct {
	ChunkWords          int           `yaml:"chunk_words"`
	DirectAudio         bool          `yaml:"direct_audio"`
	DefaultRetryAfter   time.Duration `yaml:"default_retry_after"`
	MaxRateLimitRetries int           `yaml:"max_rate_limit_retries"`
	MaxRetryWait        time.Duration `yaml:"max_retry_wait"`
	RequestsPerMinute   int           `yaml:"requests_per_minute"`
}

type RenderConfig struct {
	PDF        bool   `yaml:"pdf"`
	Docx       bool   `yaml:"docx"`
	ChromePath string `yaml:"chrome_path"`
	MarginMM   int    `yaml:"margin_mm"`
	FontFamily string `yaml:"font_family"`
}

type CleanupConfig struct {
	Interval  time.Duration `yaml:"interval"`
	Retention time.Duration `yaml:"retention"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func (c *Config) Validate() error {
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Limits.MaxUploadBytes < 0 || c.Limits.MaxRecordingBytes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if c.Summary.ChunkWords < 0 {
		return fmt.Errorf("summary.chunk_words must not be negative")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.PipelineTimeout == 0 {
		c.Server.PipelineTimeout = 30 * time.Minute
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Limits.MaxUploadBytes == 0 {
		c.Limits.MaxUploadBytes = 1 << 30
	}
	if c.Limits.MaxRecordingBytes == 0 {
		c.Limits.MaxRecordingBytes = 150 << 20
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SegmentLength == 0 {
		c.FFmpeg.SegmentLength = 30 * time.Minute
	}
	if c.FFmpeg.SplitOverBytes == 0 {
		c.FFmpeg.SplitOverBytes = 100 << 20
	}
	if c.FFmpeg.MinOutputBytes == 0 {
		c.FFmpeg.MinOutputBytes = 1024
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.AudioFormat == "" {
		c.YtDlp.AudioFormat = "mp3"
	}
	if c.Deepgram.BaseURL == "" {
		c.Deepgram.BaseURL = "https://api.deepgram.com"
	}
	if len(c.Deepgram.Models) == 0 {
		c.Deepgram.Models = []string{"nova-2", "base"}
	}
	if c.Deepgram.Timeout == 0 {
		c.Deepgram.Timeout = 10 * time.Minute
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxInlineBytes == 0 {
		c.Gemini.MaxInlineBytes = 20 << 20
	}
	if c.Summary.ChunkWords == 0 {
		c.Summary.ChunkWords = 1500
	}
	if c.Summary.DefaultRetryAfter == 0 {
		c.Summary.DefaultRetryAfter = 60 * time.Second
	}
	if c.Summary.MaxRateLimitRetries == 0 {
		c.Summary.MaxRateLimitRetries = 5
	}
	if c.Summary.MaxRetryWait == 0 {
		c.Summary.MaxRetryWait = 10 * time.Minute
	}
	if c.Render.ChromePath == "" {
		c.Render.ChromePath = "chromium"
	}
	if c.Render.MarginMM == 0 {
		c.Render.MarginMM = 20
	}
	if c.Render.FontFamily == "" {
		c.Render.FontFamily = "'DejaVu Sans Mono', 'Courier New', monospace"
	}
	if c.Cleanup.Interval == 0 {
		c.Cleanup.Interval = time.Hour
	}
	if c.Cleanup.Retention == 0 {
		c.Cleanup.Retention = 24 * time.Hour
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data/db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
