package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/model"
)

// parseStatuses normalizes user-typed statuses ("in-progress") to wire values.
func parseStatuses(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := model.ParseStatus(v)
		if !ok {
			return nil, fmt.Errorf("invalid status %q (must be one of open, in_progress, closed)", v)
		}
		out = append(out, s.String())
	}
	return out, nil
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List issues",
	GroupID: "issues",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlags, _ := cmd.Flags().GetStringSlice("status")
		assignee, _ := cmd.Flags().GetString("assignee")
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		status, err := parseStatuses(statusFlags)
		if err != nil {
			return err
		}

		req := &client.ListIssuesRequest{
			Status:   status,
			Assignee: assignee,
			Search:   search,
			Sort:     sort,
		}
		resp, err := issueClient.ListIssuesPage(cmd.Context(), req, page, pageSize)
		if err != nil {
			return fmt.Errorf("listing issues: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printIssueListTable(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	listCmd.Flags().String("assignee", "", "filter by assignee")
	listCmd.Flags().String("search", "", "search title and description")
	listCmd.Flags().String("sort", "", "sort field, prefix with - for descending (e.g. -updated_at)")
	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("page-size", 20, "issues per page")
}
