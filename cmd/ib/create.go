package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/model"
)

var createCmd = &cobra.Command{
	Use:     "create <title>",
	Short:   "Create a new issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		statusFlag, _ := cmd.Flags().GetString("status")
		assignee, _ := cmd.Flags().GetString("assignee")
		image, _ := cmd.Flags().GetString("assignee-image")

		req := &client.CreateIssueRequest{
			Title:         args[0],
			Description:   description,
			Assignee:      assignee,
			AssigneeImage: image,
		}
		if statusFlag != "" {
			s, ok := model.ParseStatus(statusFlag)
			if !ok {
				return fmt.Errorf("invalid status %q", statusFlag)
			}
			req.Status = s.String()
		}

		issue, err := issueClient.CreateIssue(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("creating issue: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), issue)
		}
		printIssueTable(cmd.OutOrStdout(), issue)
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("description", "d", "", "issue description")
	createCmd.Flags().StringP("status", "s", "", "initial status (default OPEN)")
	createCmd.Flags().StringP("assignee", "a", "", "assignee")
	createCmd.Flags().String("assignee-image", "", "assignee avatar URL")
}
