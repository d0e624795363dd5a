package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/ui"
)

// buildUpdateRequest collects the flags the user actually set.
func buildUpdateRequest(cmd *cobra.Command) (*client.UpdateIssueRequest, error) {
	req := &client.UpdateIssueRequest{}
	changed := false
	str := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
			changed = true
		}
	}
	str("title", &req.Title)
	str("description", &req.Description)
	str("assignee", &req.Assignee)
	str("assignee-image", &req.AssigneeImage)
	str("status", &req.Status)

	if req.Status != nil {
		s, ok := model.ParseStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("invalid status %q", *req.Status)
		}
		v := s.String()
		req.Status = &v
	}
	if !changed {
		return nil, fmt.Errorf("nothing to update (use --title, --description, --status, --assignee or --assignee-image)")
	}
	return req, nil
}

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update an issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildUpdateRequest(cmd)
		if err != nil {
			return err
		}

		issue, err := issueClient.UpdateIssue(cmd.Context(), args[0], req)
		if err != nil {
			return notFound(args[0], err, "updating issue")
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), issue)
		}
		printIssueTable(cmd.OutOrStdout(), issue)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:     "move <id> <status>",
	Short:   "Move an issue to another status column",
	GroupID: "issues",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		status, ok := model.ParseStatus(args[1])
		if !ok {
			return fmt.Errorf("invalid status %q (must be one of open, in_progress, closed)", args[1])
		}

		issue, err := issueClient.UpdateStatus(cmd.Context(), id, status)
		if err != nil {
			return notFound(id, err, "moving issue")
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), issue)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", issue.ID, ui.RenderStatus(issue.Status))
		return nil
	},
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().StringP("description", "d", "", "new description")
	cmd.Flags().StringP("status", "s", "", "new status")
	cmd.Flags().StringP("assignee", "a", "", "new assignee (empty to unassign)")
	cmd.Flags().String("assignee-image", "", "new assignee avatar URL")
}

func init() {
	addUpdateFlags(updateCmd)
}
