package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Show issue counts per status",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := issueClient.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("getting summary: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), s)
		}
		printSummaryTable(cmd.OutOrStdout(), s)
		return nil
	},
}
