package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/client"
)

// notFound rewrites a 404 from the API into a short message naming the issue.
func notFound(id string, err error, action string) error {
	if client.IsNotFound(err) {
		return fmt.Errorf("issue %s not found", id)
	}
	return fmt.Errorf("%s: %w", action, err)
}

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show issue details",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issue, err := issueClient.GetIssue(cmd.Context(), args[0])
		if err != nil {
			return notFound(args[0], err, "getting issue")
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), issue)
		}
		printIssueTable(cmd.OutOrStdout(), issue)
		return nil
	},
}
