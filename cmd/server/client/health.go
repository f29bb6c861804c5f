package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var healthGRPC bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Long:  `Calls /api/health, or the gRPC health service with --via-grpc.`,
	RunE:  checkHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthGRPC, "via-grpc", false, "check the gRPC health service instead of HTTP")
}

func checkHealth(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if healthGRPC {
		return checkGRPCHealth(ctx, cmd)
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := call(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Status, resp.Message)
	return nil
}

func checkGRPCHealth(ctx context.Context, cmd *cobra.Command) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resp.GetStatus())
	return nil
}
