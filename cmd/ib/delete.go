package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete an issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := issueClient.DeleteIssue(cmd.Context(), args[0]); err != nil {
			return notFound(args[0], err, "deleting issue")
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted issue %s\n", args[0])
		return nil
	},
}
