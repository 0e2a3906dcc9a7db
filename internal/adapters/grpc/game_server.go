package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/baron-go/internal/application/game/commands"
	"github.com/andrescamacho/baron-go/internal/application/game/queries"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// GameServer serves the game service over gRPC.
// Every request is dispatched through the mediator.
type GameServer struct {
	mediator        mediator.Mediator
	limiter         *ActionLimiter
	logger          *zap.Logger
	shutdownTimeout time.Duration
	server          *grpc.Server
}

// NewGameServer creates a game server
func NewGameServer(med mediator.Mediator, cfg config.DaemonConfig, logger *zap.Logger) *GameServer {
	s := &GameServer{
		mediator:        med,
		limiter:         NewActionLimiter(cfg.ActionRate, time.Now),
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.server = grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	RegisterGameServiceServer(s.server, s)
	return s
}

// Listen opens the daemon listener: a unix socket when one is configured,
// otherwise TCP on the configured address
func Listen(cfg config.DaemonConfig) (net.Listener, error) {
	if cfg.SocketPath == "" {
		listener, err := net.Listen("tcp", cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
		}
		return listener, nil
	}

	// Remove existing socket file if present
	if err := os.RemoveAll(cfg.SocketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(cfg.SocketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	return listener, nil
}

// Serve serves requests on listener until ctx is cancelled, then stops
// gracefully. In-flight requests get the shutdown timeout to finish.
func (s *GameServer) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("game server listening", zap.String("address", listener.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.logger.Info("initiating graceful shutdown of gRPC server")
		s.stop()
		return nil
	}
}

func (s *GameServer) stop() {
	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("graceful shutdown timed out, forcing stop")
		s.server.Stop()
	}
}

// CreateGame starts a new game
func (s *GameServer) CreateGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CreateGameRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.mediator.Send(ctx, &commands.CreateGameCommand{
		Variant: req.Variant,
		Players: req.Players,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	created, ok := resp.(*commands.CreateGameResponse)
	if !ok {
		return nil, unexpected(resp)
	}

	return reply(&CreateGameReply{GameID: created.GameID, State: created.State})
}

// PerformAction submits one action to a game
func (s *GameServer) PerformAction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req PerformActionRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.GameID == "" {
		return nil, status.Error(codes.InvalidArgument, "game_id is required")
	}
	if !s.limiter.Allow(req.GameID) {
		return nil, status.Errorf(codes.ResourceExhausted, "too many actions submitted to game %s", req.GameID)
	}

	resp, err := s.mediator.Send(ctx, &commands.PerformActionCommand{
		GameID: req.GameID,
		Action: req.Action,
	})
	if err != nil {
		var notFound *game.ErrGameNotFound
		if errors.As(err, &notFound) {
			s.limiter.Forget(req.GameID)
		}
		return nil, toStatus(err)
	}
	performed, ok := resp.(*commands.PerformActionResponse)
	if !ok {
		return nil, unexpected(resp)
	}
	if performed.State.Over {
		s.limiter.Forget(req.GameID)
	}

	return reply(&PerformActionReply{
		Sequence:     performed.Sequence,
		Transactions: transactionViews(performed.Transactions),
		State:        performed.State,
	})
}

// GetGameState returns the current state of a game
func (s *GameServer) GetGameState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req GetGameStateRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.mediator.Send(ctx, &queries.GetGameStateQuery{GameID: req.GameID})
	if err != nil {
		return nil, toStatus(err)
	}
	result, ok := resp.(*queries.GetGameStateResponse)
	if !ok {
		return nil, unexpected(resp)
	}

	return reply(&GetGameStateReply{State: result.State})
}

// GetLedger returns stored transactions of a game
func (s *GameServer) GetLedger(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req GetLedgerRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, toStatus(shared.NewValidationError("limit", "limit and offset must not be negative"))
	}

	resp, err := s.mediator.Send(ctx, &queries.GetLedgerQuery{
		GameID: req.GameID,
		Party:  req.Party,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	result, ok := resp.(*queries.GetLedgerResponse)
	if !ok {
		return nil, unexpected(resp)
	}

	return reply(&GetLedgerReply{
		Transactions: transactionViews(result.Transactions),
		Total:        result.Total,
	})
}

// ListGames lists stored games
func (s *GameServer) ListGames(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ListGamesRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.mediator.Send(ctx, &queries.ListGamesQuery{Status: game.Status(req.Status)})
	if err != nil {
		return nil, toStatus(err)
	}
	result, ok := resp.(*queries.ListGamesResponse)
	if !ok {
		return nil, unexpected(resp)
	}

	return reply(&ListGamesReply{Games: gameViews(result.Games)})
}

func reply(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func unexpected(resp any) error {
	return status.Errorf(codes.Internal, "unexpected response type %T", resp)
}

// loggingInterceptor logs every call with its status code and duration
func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch status.Code(err) {
		case codes.OK:
			logger.Debug("rpc handled", fields...)
		case codes.Internal, codes.Unknown:
			logger.Error("rpc failed", append(fields, zap.Error(err))...)
		default:
			logger.Info("rpc rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
