package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Uploads: "data/uploads",
					Output:  "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing uploads path",
			config: Config{
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "negative limit",
			config: Config{
				Paths:  PathsConfig{Uploads: "u", Output: "o"},
				Limits: LimitsConfig{MaxUploadBytes: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Uploads: "u", Output: "o"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Limits.MaxUploadBytes != 1<<30 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Limits.MaxUploadBytes, 1<<30)
	}
	if cfg.Limits.MaxRecordingBytes != 150<<20 {
		t.Errorf("MaxRecordingBytes = %d, want %d", cfg.Limits.MaxRecordingBytes, 150<<20)
	}
	if cfg.Summary.ChunkWords != 1500 {
		t.Errorf("ChunkWords = %d, want 1500", cfg.Summary.ChunkWords)
	}
	if cfg.FFmpeg.SegmentLength != 30*time.Minute {
		t.Errorf("SegmentLength = %s, want 30m", cfg.FFmpeg.SegmentLength)
	}
	if cfg.Cleanup.Retention != 24*time.Hour || cfg.Cleanup.Interval != time.Hour {
		t.Errorf("cleanup = %+v, want 1h/24h", cfg.Cleanup)
	}
	if cfg.Summary.DefaultRetryAfter != time.Minute {
		t.Errorf("DefaultRetryAfter = %s, want 1m", cfg.Summary.DefaultRetryAfter)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %s", cfg.Gemini.Model)
	}
	if cfg.Paths.Archived != "data/archived" {
		t.Errorf("Archived = %s, want data/archived", cfg.Paths.Archived)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
paths:
  uploads: "data/uploads"
  output: "data/output"

deepgram:
  models: ["nova-2"]

summary:
  chunk_words: 800
  max_retry_wait: 2m

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEYS", "key-a, key-b,")
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Uploads != "data/uploads" {
		t.Errorf("Uploads = %v, want %v", cfg.Paths.Uploads, "data/uploads")
	}
	if cfg.Summary.ChunkWords != 800 {
		t.Errorf("ChunkWords = %v, want 800", cfg.Summary.ChunkWords)
	}
	if cfg.Summary.MaxRetryWait != 2*time.Minute {
		t.Errorf("MaxRetryWait = %v, want 2m", cfg.Summary.MaxRetryWait)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[1] != "key-b" {
		t.Errorf("APIKeys = %v, want [key-a key-b]", cfg.Gemini.APIKeys)
	}
	if cfg.Deepgram.APIKey != "dg-key" {
		t.Errorf("Deepgram.APIKey = %q", cfg.Deepgram.APIKey)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
