// Package cli provides the cobra command surface for EchoPress.
//
// Commands operate on package-level orchestrator variables wired by
// Execute via the configuration file. Tests swap the variables for
// mocks and invoke rootCmd directly.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/echopress/internal/core/ports/driven"
	"github.com/custodia-labs/echopress/internal/core/ports/driving"
	"github.com/custodia-labs/echopress/internal/logger"
)

// version is set from main at build time.
var version = "dev"

// Services wired by initServices. A nil service means its configuration
// is incomplete; the commands that need it report that instead of
// running.
var (
	pipelineOrchestrator driving.PipelineOrchestrator
	approvalOrchestrator driving.ApprovalOrchestrator
	reportStore          driven.ReportStore
	configStore          driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "echopress",
	Short: "Turn raw notes into publishable content",
	Long: `EchoPress drives notes through a folder-based content pipeline.

Drop notes (txt, md, docx, pdf) into the source folder and 'run'
generates a blog post, an X post and a LinkedIn post into the review
folder. Move reviewed artifacts to the approval folder and 'approve'
publishes them to Notion and archives them.

Configuration lives in ~/.echopress/config.toml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the services from configuration and runs the root
// command. Wiring failures for individual services are not fatal here;
// each command reports its own missing configuration.
func Execute(v string) error {
	version = v

	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	return rootCmd.Execute()
}
