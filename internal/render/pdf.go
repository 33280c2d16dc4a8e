package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: {{.Margin}}mm; }
body { direction: {{.Dir}}; font-family: {{.Font}}; font-size: 11pt; line-height: 1.5; }
h1 { font-size: 16pt; margin: 0 0 8mm 0; }
pre { white-space: pre-wrap; word-wrap: break-word; font-family: inherit; margin: 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<pre>{{.Text}}</pre>
</body>
</html>
`))

type pageData struct {
	Lang   string
	Dir    string
	Title  string
	Text   string
	Margin int
	Font   template.CSS
}

// RenderPDF writes an HTML page and prints it to an A4 PDF with headless chromium.
func (r *implRenderer) RenderPDF(ctx context.Context, title, text string, opts domain.SummaryOptions) (string, error) {
	html, err := r.buildHTML(title, text, opts)
	if err != nil {
		return "", domain.NewRender("could not build the PDF page", err)
	}

	htmlPath := filepath.Join(r.cfg.TempDir, fileutil.UniqueName("page", ".html"))
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		return "", domain.NewRender("could not write the PDF page", err)
	}
	defer r.remove(ctx, htmlPath)

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return "", domain.NewRender("could not create the output directory", err)
	}
	pdfPath := filepath.Join(r.cfg.OutputDir, fileutil.UniqueName("summary", ".pdf"))

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", domain.NewRender("could not resolve the PDF page path", err)
	}

	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf=" + pdfPath,
		"file://" + absHTML,
	}

	r.logger.Info(ctx, "Rendering PDF: %s", pdfPath)
	if _, err := r.executor.Run(ctx, executor.Command{Name: r.cfg.ChromePath, Args: args}); err != nil {
		r.remove(ctx, pdfPath)
		return "", domain.NewRender("PDF engine failed", err)
	}

	info, err := os.Stat(pdfPath)
	if err != nil || info.Size() == 0 {
		r.remove(ctx, pdfPath)
		return "", domain.NewRender("PDF engine produced no output", err)
	}

	r.logger.Info(ctx, "PDF rendered successfully: %s", pdfPath)
	return pdfPath, nil
}

// remove deletes an intermediate or partial file, logging anything but absence.
func (r *implRenderer) remove(ctx context.Context, path string) {
	if err := r.removeFile(path); err != nil && !os.IsNotExist(err) {
		r.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

func (r *implRenderer) buildHTML(title, text string, opts domain.SummaryOptions) ([]byte, error) {
	dir := "ltr"
	if opts.IsRTL() {
		dir = "rtl"
	}
	data := pageData{
		Lang:   string(opts.Language),
		Dir:    dir,
		Title:  title,
		Text:   text,
		Margin: r.cfg.MarginMM,
		Font:   template.CSS(r.cfg.FontFamily),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}
