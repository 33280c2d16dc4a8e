package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

var (
	runStyle      string
	runLanguage   string
	runOutputType string
	runUser       string
)

var runCmd = &cobra.Command{
	Use:   "run <file-or-url>",
	Short: "Summarize one local media file or video URL",
	Long: `Runs the pipeline once and prints the result. A local file is copied
into the uploads directory first so the original is never removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runOnce,
}

func init() {
	addOptionFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runStyle, "style", string(domain.StyleDetailed), "summary style")
	cmd.Flags().StringVar(&runLanguage, "language", string(domain.LangHebrew), "output language (he, en, ar, fr, ru)")
	cmd.Flags().StringVar(&runOutputType, "output", string(domain.OutputSummary), "summary or transcript")
	cmd.Flags().StringVar(&runUser, "user", "cli", "user id the result is stored under")
}

func optionFlags() domain.SummaryOptions {
	return domain.NewSummaryOptions(runStyle, runLanguage, runOutputType)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := optionFlags()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	src, err := sourceFor(args[0], a.cfg.Paths.Uploads)
	if err != nil {
		return err
	}

	result, err := a.pipeline.Run(ctx, pipeline.Request{Source: src, Options: opts, UserID: runUser})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n\n%s\n", result.Title, result.Content)
	if result.PDFPath != nil {
		fmt.Fprintf(out, "\nPDF:  %s\n", *result.PDFPath)
	}
	if result.DocxPath != nil {
		fmt.Fprintf(out, "DOCX: %s\n", *result.DocxPath)
	}
	return nil
}

// sourceFor treats http(s) arguments as remote videos and anything else as
// a local file, copied so the pipeline may delete its copy.
func sourceFor(arg, uploadsDir string) (domain.MediaSource, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return domain.MediaSource{Remote: &domain.RemoteVideo{URL: arg}}, nil
	}

	dst := filepath.Join(uploadsDir, fileutil.UniqueName("upload", filepath.Ext(arg)))
	size, err := fileutil.Copy(arg, dst)
	if err != nil {
		return domain.MediaSource{}, fmt.Errorf("copy input: %w", err)
	}
	return domain.MediaSource{Upload: &domain.UploadedFile{
		Path:      dst,
		FileName:  filepath.Base(arg),
		MimeType:  fileutil.MediaType(arg),
		SizeBytes: size,
	}}, nil
}
