package main

import (
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:     "events <id>",
	Short:   "Show the change history of an issue",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		evts, err := issueClient.GetEvents(cmd.Context(), args[0])
		if err != nil {
			return notFound(args[0], err, "getting events")
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), evts)
		}
		printEventsTable(cmd.OutOrStdout(), evts)
		return nil
	},
}
