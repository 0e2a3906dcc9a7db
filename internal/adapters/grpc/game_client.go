package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/baron-go/internal/application/game/session"
)

// GameClient talks to the daemon's game service
type GameClient struct {
	conn *grpc.ClientConn
}

// NewGameClient connects to the daemon. target is either a unix socket
// path or a host:port address.
func NewGameClient(socketPath, address string) (*GameClient, error) {
	target := address
	if socketPath != "" {
		target = "unix:" + socketPath
	}

	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}

	return NewGameClientFromConn(conn), nil
}

// NewGameClientFromConn wraps an existing connection
func NewGameClientFromConn(conn *grpc.ClientConn) *GameClient {
	return &GameClient{conn: conn}
}

// Close closes the gRPC connection
func (c *GameClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// CreateGame starts a game for players under variant, or the daemon's
// default variant when variant is empty
func (c *GameClient) CreateGame(ctx context.Context, variant string, players []string) (*CreateGameReply, error) {
	var out CreateGameReply
	if err := c.call(ctx, methodCreateGame, &CreateGameRequest{Variant: variant, Players: players}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PerformAction submits an action to a game
func (c *GameClient) PerformAction(ctx context.Context, gameID string, action session.ActionDTO) (*PerformActionReply, error) {
	var out PerformActionReply
	if err := c.call(ctx, methodPerformAction, &PerformActionRequest{GameID: gameID, Action: action}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGameState fetches the state of a game
func (c *GameClient) GetGameState(ctx context.Context, gameID string) (*session.GameState, error) {
	var out GetGameStateReply
	if err := c.call(ctx, methodGetGameState, &GetGameStateRequest{GameID: gameID}, &out); err != nil {
		return nil, err
	}
	return out.State, nil
}

// GetLedger fetches stored transactions of a game
func (c *GameClient) GetLedger(ctx context.Context, req GetLedgerRequest) (*GetLedgerReply, error) {
	var out GetLedgerReply
	if err := c.call(ctx, methodGetLedger, &req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGames lists stored games, optionally filtered by status
func (c *GameClient) ListGames(ctx context.Context, status string) ([]GameView, error) {
	var out ListGamesReply
	if err := c.call(ctx, methodListGames, &ListGamesRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

func (c *GameClient) call(ctx context.Context, method string, req, out any) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	reply := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, reply); err != nil {
		return fromStatus(err)
	}
	return fromStruct(reply, out)
}
