package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/ui"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool
	noColor    bool
	actor      string

	issueClient client.IssueClient
)

func defaultActor() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	return "unknown"
}

func defaultURL() string {
	if s := os.Getenv("ISSUEBOARD_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("ISSUEBOARD_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

// skipClient overrides the root PersistentPreRunE for commands that never
// talk to the HTTP API.
func skipClient(cmd *cobra.Command, args []string) error { return nil }

var rootCmd = &cobra.Command{
	Use:           "ib <command>",
	Short:         "Issue tracker with a kanban board",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		issueClient = client.NewHTTPClient(serverURL, authToken, client.WithActor(actor))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if issueClient != nil {
			issueClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultURL(), "issue server URL ($ISSUEBOARD_URL or active remote)")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token ($ISSUEBOARD_TOKEN or active remote)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", defaultActor(), "actor name recorded on changes")

	rootCmd.AddGroup(
		&cobra.Group{ID: "issues", Title: "Issues:"},
		&cobra.Group{ID: "views", Title: "Views:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Issues
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(deleteCmd)

	// Views
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(ui.RenderError("Error: ") + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
