package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ListGamesQuery lists stored games, optionally by status
type ListGamesQuery struct {
	Status game.Status
}

// ListGamesResponse represents the result of the query
type ListGamesResponse struct {
	Games []*game.GameRecord
}

// ListGamesHandler handles the ListGames query
type ListGamesHandler struct {
	gameRepo game.GameRepository
}

// NewListGamesHandler creates a new ListGamesHandler
func NewListGamesHandler(gameRepo game.GameRepository) *ListGamesHandler {
	return &ListGamesHandler{gameRepo: gameRepo}
}

// Handle executes the ListGames query
func (h *ListGamesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListGamesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListGamesQuery")
	}

	switch query.Status {
	case "", game.StatusActive, game.StatusFinished:
	default:
		return nil, shared.NewValidationError("status", fmt.Sprintf("unknown game status %q", query.Status))
	}

	games, err := h.gameRepo.List(ctx, query.Status)
	if err != nil {
		return nil, err
	}
	return &ListGamesResponse{Games: games}, nil
}
