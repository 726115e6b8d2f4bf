package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show recent pipeline and approval runs",
	Long:  `Lists recent orchestrator passes from the run journal, newest first.`,
	RunE:  runReports,
}

func init() {
	reportsCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, _ []string) error {
	if reportStore == nil {
		return errors.New("run journal not configured")
	}

	runs, err := reportStore.ListRuns(context.Background(), reportsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %-8s  %d processed, %d skipped, %d failed  (%s)\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Kind,
			run.Processed, run.Skipped, run.Failed,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		)
		for _, o := range run.Outcomes {
			if o.Err != "" {
				cmd.Printf("    %s: %s\n", o.ItemName, o.Err)
			}
		}
	}
	return nil
}
