package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Summarize media files dropped into the inbox directory",
	RunE:  runWatch,
}

func init() {
	addOptionFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := optionFlags()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := watcher.New(a.cfg.Paths.Inbox,
		watcher.PipelineHandler(a.pipeline, inboxHandlerConfig(a, runUser, opts), a.logger),
		a.logger, watcher.Options{MaxConcurrent: a.cfg.Performance.MaxConcurrent})
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "Drop lecture files into %s (Ctrl+C to stop)", a.cfg.Paths.Inbox)
	return ignoreCanceled(w.Start(ctx))
}

func inboxHandlerConfig(a *app, userID string, opts domain.SummaryOptions) watcher.HandlerConfig {
	return watcher.HandlerConfig{
		UploadsDir: a.cfg.Paths.Uploads,
		ArchiveDir: a.cfg.Paths.Archived,
		UserID:     userID,
		Options:    opts,
	}
}
