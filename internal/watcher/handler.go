package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

// HandlerConfig says where inbox files go while and after they are processed.
type HandlerConfig struct {
	UploadsDir string
	ArchiveDir string
	UserID     string
	Options    domain.SummaryOptions
}

// PipelineHandler runs a copy of every inbox file through p. The original
// moves to ArchiveDir after a successful run and stays in the inbox otherwise.
func PipelineHandler(p pipeline.Pipeline, cfg HandlerConfig, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		name := filepath.Base(filePath)
		working := filepath.Join(cfg.UploadsDir, fileutil.UniqueName("inbox", filepath.Ext(name)))
		size, err := fileutil.Copy(filePath, working)
		if err != nil {
			return fmt.Errorf("copy inbox file: %w", err)
		}

		result, err := p.Run(ctx, pipeline.Request{
			Source: domain.MediaSource{Upload: &domain.UploadedFile{
				Path:      working,
				FileName:  name,
				MimeType:  fileutil.MediaType(filePath),
				SizeBytes: size,
			}},
			Options: cfg.Options,
			UserID:  cfg.UserID,
		})
		if err != nil {
			log.Warn(ctx, "Inbox file %s kept for retry", name)
			return err
		}

		if err := archive(filePath, cfg.ArchiveDir); err != nil {
			log.Warn(ctx, "Failed to move %s to archived folder: %v", name, err)
		}

		pdf := "-"
		if result.PDFPath != nil {
			pdf = *result.PDFPath
		}
		log.Info(ctx, "Inbox file %s summarized (id=%s, pdf=%s)", name, result.ID, pdf)
		return nil
	}
}

func archive(filePath, archiveDir string) error {
	if archiveDir == "" {
		return os.Remove(filePath)
	}
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return err
	}
	return os.Rename(filePath, filepath.Join(archiveDir, filepath.Base(filePath)))
}
