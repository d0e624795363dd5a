package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthClient probes the gRPC health service exposed by the issue server.
type HealthClient struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewHealthClient connects to the given gRPC address. Extra dial options
// are appended after the insecure transport credentials.
func NewHealthClient(addr string, opts ...grpc.DialOption) (*HealthClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	return &HealthClient{
		conn:   conn,
		client: healthpb.NewHealthClient(conn),
	}, nil
}

func (c *HealthClient) Close() error {
	return c.conn.Close()
}

// Check returns the serving status of service, e.g. "SERVING". An empty
// service name asks about the server as a whole.
func (c *HealthClient) Check(ctx context.Context, service string) (string, error) {
	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", err
	}
	return resp.GetStatus().String(), nil
}
