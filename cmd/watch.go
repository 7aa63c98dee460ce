// =============================================================================
// CSV to JSON Converter - Watch Command
// =============================================================================
//
// This file defines the 'watch' command, which converts once and then again
// every time the source file changes, until interrupted.
//
// COMMAND USAGE:
//   converter watch
//
// BEHAVIOR:
//   - A missing source is waited for; the first conversion runs once it exists
//   - A failed conversion is logged; watching continues
//   - Changes within watch_debounce of each other trigger one conversion
//   - SIGINT or SIGTERM stops the command with status 0
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/converter"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/watcher"
	"github.com/ginjaninja78/CSV-to-JSON-conversion/pkg/utils"
)

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert the source again whenever it changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := utils.NewFileManager(cfg.ArchiveDir).EnsureDirectories(); err != nil {
		return err
	}

	conv := converter.New(cfg, logger)
	convert := func() error {
		result, err := conv.Run()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
		return nil
	}

	convertIfPresent(cfg.Source, convert, logger)

	w, err := watcher.New(cfg.Source, cfg.Watch.Debounce, convert, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}

// convertIfPresent runs the first conversion of a watch session. A source
// that does not exist yet is waited for instead of reported as a failure;
// the watcher converts it once it is created.
func convertIfPresent(source string, convert func() error, logger converter.Logger) {
	if !utils.FileExists(source) {
		logger.Info("Waiting for %s to be created", source)
		return
	}
	if err := convert(); err != nil {
		logger.Error("Conversion failed: %v", err)
	}
}
