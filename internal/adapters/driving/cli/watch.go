package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/echopress/internal/logger"
)

// watchDebounce batches a burst of filesystem events (an editor save, a
// multi-file drop) into one pipeline pass.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source folder and run passes on change",
	Long: `Monitors the source folder for new files and triggers a generation
pass after each change, debounced. An initial pass picks up anything
already waiting. Only available with the filesystem storage backend.

Stops on interrupt.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if pipelineOrchestrator == nil {
		return errors.New("pipeline not configured: set storage and anthropic.api_key in the config file")
	}
	backend := configStore.GetString(keyStorageBackend)
	if backend != "" && backend != "filesystem" {
		return errors.New("watch requires the filesystem storage backend; use 'run' on a schedule instead")
	}
	if sourceLocation == "" {
		return errors.New("watch requires storage.source_location to be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(sourceLocation); err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)...\n", sourceLocation)

	// Drain anything already in the folder before waiting for events.
	runPass(ctx, cmd)

	var debounce *time.Timer
	trigger := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopping.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Filesystem event: %s", ev)
			if debounce == nil {
				debounce = time.AfterFunc(watchDebounce, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})
			} else {
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-trigger:
			debounce = nil
			runPass(ctx, cmd)
		}
	}
}

// runPass executes one pipeline pass and prints its summary. Errors are
// reported but do not stop the watch loop.
func runPass(ctx context.Context, cmd *cobra.Command) {
	report, err := pipelineOrchestrator.RunOnce(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			cmd.Printf("Pass failed: %v\n", err)
		}
		return
	}
	if len(report.Items) > 0 {
		printOutcomes(cmd, report.Items)
		cmd.Printf("Pass complete: %d processed, %d skipped, %d failed.\n",
			report.Processed(), report.Skipped(), report.Failed())
	}
}
