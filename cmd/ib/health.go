package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/server"
)

func defaultGRPCAddr() string {
	if s := os.Getenv("ISSUEBOARD_GRPC_ADDR"); s != "" {
		return s
	}
	if a := activeRemoteGRPCAddr(); a != "" {
		return a
	}
	return "localhost:9090"
}

func checkGRPC(ctx context.Context, addr, token string) (string, error) {
	var opts []grpc.DialOption
	if token != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(bearerTokenInterceptor(token)))
	}
	hc, err := client.NewHealthClient(addr, opts...)
	if err != nil {
		return "", err
	}
	defer hc.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return hc.Check(ctx, server.ServiceName)
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the health of the issue service",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		useGRPC, _ := cmd.Flags().GetBool("grpc")
		grpcAddr, _ := cmd.Flags().GetString("grpc-addr")

		var (
			status string
			err    error
			want   = "ok"
		)
		if useGRPC {
			want = "SERVING"
			status, err = checkGRPC(cmd.Context(), grpcAddr, authToken)
		} else {
			status, err = issueClient.Health(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}

		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), map[string]string{"status": status}); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Health: %s\n", status)
		}

		if status != want {
			return fmt.Errorf("unhealthy: %s", status)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().Bool("grpc", false, "probe the gRPC health service instead of HTTP")
	healthCmd.Flags().String("grpc-addr", defaultGRPCAddr(), "gRPC server address")
}
