package main

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:     "remote",
	Short:   "Manage named server remotes",
	GroupID: "system",
	// Remote subcommands only touch the local profile file.
	PersistentPreRunE: skipClient,
}

// maskToken keeps the first n characters of a token and replaces the rest.
func maskToken(token string, n int, fill func(hidden int) string) string {
	if len(token) <= n {
		return token
	}
	return token[:n] + fill(len(token)-n)
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a named remote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, rawURL := args[0], args[1]
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid remote URL %q (expected e.g. http://host:8080)", rawURL)
		}
		token, _ := cmd.Flags().GetString("token")
		natsURL, _ := cmd.Flags().GetString("nats")
		grpcAddr, _ := cmd.Flags().GetString("grpc")

		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		cfg.Remotes[name] = Remote{URL: rawURL, Token: token, NATSURL: natsURL, GRPCAddr: grpcAddr}
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "remote %q added (%s)\n", name, rawURL)
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		delete(cfg.Remotes, name)
		if cfg.Active == name {
			cfg.Active = ""
		}
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "remote %q removed\n", name)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all remotes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if len(cfg.Remotes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no remotes configured")
			return nil
		}
		names := make([]string, 0, len(cfg.Remotes))
		for name := range cfg.Remotes {
			names = append(names, name)
		}
		slices.Sort(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tURL\tTOKEN")
		for _, name := range names {
			r := cfg.Remotes[name]
			marker := "  "
			if name == cfg.Active {
				marker = "* "
			}
			token := maskToken(r.Token, 8, func(int) string { return "..." })
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", marker, name, r.URL, token)
		}
		return w.Flush()
	},
}

var remoteUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		cfg.Active = name
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "active remote set to %q\n", name)
		return nil
	},
}

var remoteShowCmd = &cobra.Command{
	Use:   "show [<name>]",
	Short: "Show details for a remote (defaults to active)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}

		name := cfg.Active
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no active remote; specify a name or run 'ib remote use <name>'")
		}

		r, ok := cfg.Remotes[name]
		if !ok {
			return fmt.Errorf("remote %q not found", name)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		active := ""
		if name == cfg.Active {
			active = " (active)"
		}
		fmt.Fprintf(w, "name:\t%s%s\n", name, active)
		fmt.Fprintf(w, "url:\t%s\n", r.URL)
		if r.Token != "" {
			fmt.Fprintf(w, "token:\t%s\n", maskToken(r.Token, 8, func(n int) string { return strings.Repeat("*", n) }))
		}
		if r.NATSURL != "" {
			fmt.Fprintf(w, "nats_url:\t%s\n", r.NATSURL)
		}
		if r.GRPCAddr != "" {
			fmt.Fprintf(w, "grpc_addr:\t%s\n", r.GRPCAddr)
		}
		return w.Flush()
	},
}

func init() {
	remoteAddCmd.Flags().String("token", "", "bearer token for authentication")
	remoteAddCmd.Flags().String("nats", "", "NATS URL for event streaming")
	remoteAddCmd.Flags().String("grpc", "", "gRPC address for health probes")

	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteUseCmd)
	remoteCmd.AddCommand(remoteShowCmd)
}
