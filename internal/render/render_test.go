package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor/executortest"
)

func newTestRenderer(t *testing.T, fake *executortest.Fake) (Renderer, Config) {
	t.Helper()
	cfg := Config{
		OutputDir:  filepath.Join(t.TempDir(), "output"),
		TempDir:    t.TempDir(),
		ChromePath: "chromium",
		MarginMM:   20,
		FontFamily: "monospace",
	}
	return New(cfg, fake, logger.Nop()), cfg
}

func TestRenderPDF(t *testing.T) {
	var html string
	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		page := strings.TrimPrefix(cmd.Args[len(cmd.Args)-1], "file://")
		data, err := os.ReadFile(page)
		require.NoError(t, err)
		html = string(data)
		out := executortest.FlagValue(cmd.Args, "--print-to-pdf")
		return executor.Output{}, os.WriteFile(out, []byte("%PDF-1.4"), 0644)
	}}
	r, cfg := newTestRenderer(t, fake)

	opts := domain.SummaryOptions{Style: domain.StyleDetailed, Language: domain.LangHebrew, OutputType: domain.OutputSummary}
	path, err := r.RenderPDF(context.Background(), "סיכום", "שורה  ראשונה\n<b>not a tag</b>", opts)
	require.NoError(t, err)

	assert.Equal(t, cfg.OutputDir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "summary_"))
	assert.FileExists(t, path)

	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, "size: A4")
	assert.Contains(t, html, "white-space: pre-wrap")
	assert.Contains(t, html, "&lt;b&gt;not a tag&lt;/b&gt;")

	entries, err := os.ReadDir(cfg.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "html page should be removed")
}

func TestRenderPDFLeftToRight(t *testing.T) {
	r, _ := newTestRenderer(t, &executortest.Fake{})
	impl := r.(*implRenderer)

	html, err := impl.buildHTML("Summary", "text", domain.SummaryOptions{Language: domain.LangEnglish})
	require.NoError(t, err)
	assert.Contains(t, string(html), `dir="ltr"`)
}

func TestRenderPDFEngineFailure(t *testing.T) {
	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		return executortest.Fail(cmd.Name, "chromium crashed")
	}}
	r, _ := newTestRenderer(t, fake)

	_, err := r.RenderPDF(context.Background(), "t", "x", domain.DefaultSummaryOptions())
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestRenderPDFNoOutput(t *testing.T) {
	r, _ := newTestRenderer(t, &executortest.Fake{})

	_, err := r.RenderPDF(context.Background(), "t", "x", domain.DefaultSummaryOptions())
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestRenderPDFLogsFailedPageRemoval(t *testing.T) {
	fake := &executortest.Fake{Handle: func(cmd executor.Command) (executor.Output, error) {
		out := executortest.FlagValue(cmd.Args, "--print-to-pdf")
		return executor.Output{}, os.WriteFile(out, []byte("%PDF-1.4"), 0644)
	}}
	var logs bytes.Buffer
	r := New(Config{
		OutputDir:  t.TempDir(),
		TempDir:    t.TempDir(),
		ChromePath: "chromium",
	}, fake, logger.NewWithWriter("debug", &logs)).(*implRenderer)
	r.removeFile = func(string) error { return errors.New("device busy") }

	_, err := r.RenderPDF(context.Background(), "t", "x", domain.DefaultSummaryOptions())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Failed to cleanup temp file")
	assert.Contains(t, logs.String(), "device busy")
}

func TestRenderDocx(t *testing.T) {
	r, cfg := newTestRenderer(t, &executortest.Fake{})

	md := "# Overview\n\n- **Stack**: LIFO\n1. push\n\nplain line"
	path, err := r.RenderDocx(context.Background(), "Data structures", md, domain.DefaultSummaryOptions())
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputDir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".docx"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold and code", cleanMarkdownInline("**bold** and `code`"))
	assert.Equal(t, uint64(16), headingSize(1))
	assert.Equal(t, uint64(fontSize), headingSize(5))
}
