package cli

import (
	"context"
	"fmt"
	"time"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
)

// requestTimeout bounds every call made to the daemon
const requestTimeout = 10 * time.Second

// withClient connects to the daemon and runs fn with a bounded context
func withClient(fn func(ctx context.Context, client *grpcAdapter.GameClient) error) error {
	socket := socketPath
	if daemonAddress != "" {
		socket = ""
	}

	client, err := grpcAdapter.NewGameClient(socket, daemonAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return fn(ctx, client)
}
