package main

import (
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete stale files from the temp and uploads directories once",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.sweeper.SweepOnce(ctx)
	cmd.Printf("Removed %d stale files (%d errors)\n", len(report.Removed), len(report.Errors))
	return report.Err()
}
