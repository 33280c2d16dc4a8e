package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/httpapi"
	"github.com/nguyentantai21042004/lecture-flow/internal/watcher"
)

var serveWatchInbox bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the temp-file sweeper",
	Long: `Starts the HTTP API. The sweeper removes stale temp files on a timer.
With --watch, media dropped into the inbox directory is summarized too.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatchInbox, "watch", false, "also process files dropped into paths.inbox")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := httpapi.New(httpapi.Config{
		Mode:              a.cfg.Server.Mode,
		UploadsDir:        a.cfg.Paths.Uploads,
		OutputDir:         a.cfg.Paths.Output,
		MaxUploadBytes:    a.cfg.Limits.MaxUploadBytes,
		MaxRecordingBytes: a.cfg.Limits.MaxRecordingBytes,
		PipelineTimeout:   a.cfg.Server.PipelineTimeout,
	}, a.pipeline, a.store, a.logger)

	var inbox watcher.Watcher
	if serveWatchInbox {
		inbox, err = watcher.New(a.cfg.Paths.Inbox,
			watcher.PipelineHandler(a.pipeline, inboxHandlerConfig(a, "inbox", domain.DefaultSummaryOptions()), a.logger),
			a.logger, watcher.Options{MaxConcurrent: a.cfg.Performance.MaxConcurrent})
		if err != nil {
			return err
		}
		defer inbox.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, a.cfg.Server.Addr)
	})
	g.Go(func() error {
		return ignoreCanceled(a.sweeper.Start(gctx))
	})
	if inbox != nil {
		g.Go(func() error {
			return ignoreCanceled(inbox.Start(gctx))
		})
	}

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Lecture Flow is ready on %s", a.cfg.Server.Addr)
	a.logger.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	err = g.Wait()
	a.logger.Info(context.Background(), "Lecture Flow stopped")
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
