package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one generation pass over the source folder",
	Long: `Scans the source folder for new notes, claims each one, generates the
blog, X and LinkedIn artifacts, and uploads them to the review folder.

Items that fail are reported and left claimed; they are not retried.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if pipelineOrchestrator == nil {
		return errors.New("pipeline not configured: set storage and anthropic.api_key in the config file")
	}

	cmd.Println("Running generation pass...")

	report, err := pipelineOrchestrator.RunOnce(context.Background())
	if err != nil {
		return fmt.Errorf("pipeline pass failed: %w", err)
	}

	printOutcomes(cmd, report.Items)
	cmd.Printf("Done: %d processed, %d skipped, %d failed.\n",
		report.Processed(), report.Skipped(), report.Failed())
	return nil
}

// printOutcomes lists per-item results, failures with their reasons.
func printOutcomes(cmd *cobra.Command, outcomes []domain.ItemOutcome) {
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusProcessed:
			cmd.Printf("  ok      %s\n", o.ItemName)
		case domain.StatusSkipped:
			cmd.Printf("  skipped %s\n", o.ItemName)
		case domain.StatusFailed:
			cmd.Printf("  FAILED  %s: %s\n", o.ItemName, o.Err)
		}
	}
}
