package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Publish approved artifacts and archive them",
	Long: `Scans the approval folder, publishes each artifact as a Notion page,
and moves it to the archive folder.

Publication is at-least-once: an artifact that publishes but fails to
archive stays in the approval folder and is published again on the next
pass. Check the reported page IDs before re-running to avoid keeping
duplicate pages.`,
	RunE: runApprove,
}

func init() {
	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, _ []string) error {
	if approvalOrchestrator == nil {
		return errors.New("publishing not configured: set notion.token and notion.database_id in the config file")
	}

	cmd.Println("Running approval pass...")

	report, err := approvalOrchestrator.RunOnce(context.Background())
	if err != nil {
		return fmt.Errorf("approval pass failed: %w", err)
	}

	for _, o := range report.Items {
		switch o.Status {
		case domain.StatusProcessed:
			cmd.Printf("  ok      %s -> page %s\n", o.ItemName, o.PageID)
		case domain.StatusFailed:
			if o.PageID != "" {
				// Published but not archived; the next pass re-publishes.
				cmd.Printf("  FAILED  %s: %s (page %s was created)\n", o.ItemName, o.Err, o.PageID)
			} else {
				cmd.Printf("  FAILED  %s: %s\n", o.ItemName, o.Err)
			}
		}
	}
	cmd.Printf("Done: %d published, %d failed.\n", report.Published(), report.Failed())
	return nil
}
