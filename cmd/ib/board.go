package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/tui"
)

// boardLogger writes to path, or discards when path is empty. The board owns
// the terminal, so logs never go to stderr.
func boardLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f.Close, nil
}

var boardCmd = &cobra.Command{
	Use:     "board",
	Short:   "Open the interactive kanban board",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		logFile, _ := cmd.Flags().GetString("log-file")

		logger, closeLog, err := boardLogger(logFile)
		if err != nil {
			return err
		}
		defer closeLog()

		logger.Info("board started", "url", serverURL, "interval", interval)
		if err := tui.Run(cmd.Context(), issueClient, tui.Options{
			Interval: interval,
			Logger:   logger,
		}); err != nil {
			return fmt.Errorf("running board: %w", err)
		}
		return nil
	},
}

func init() {
	boardCmd.Flags().Duration("interval", tui.FetchInterval, "refresh interval")
	boardCmd.Flags().String("log-file", os.Getenv("ISSUEBOARD_LOG_FILE"), "write debug logs to this file")
}
