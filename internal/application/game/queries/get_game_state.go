package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
)

// GetGameStateQuery asks for a snapshot of a game
type GetGameStateQuery struct {
	GameID string
}

// GetGameStateResponse holds the snapshot
type GetGameStateResponse struct {
	State *session.GameState
}

// GetGameStateHandler handles the GetGameState query
type GetGameStateHandler struct {
	registry *session.Registry
}

// NewGetGameStateHandler creates a new GetGameStateHandler
func NewGetGameStateHandler(registry *session.Registry) *GetGameStateHandler {
	return &GetGameStateHandler{registry: registry}
}

// Handle executes the GetGameState query
func (h *GetGameStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetGameStateQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameStateQuery")
	}

	var state *session.GameState
	err := h.registry.With(ctx, query.GameID, func(s *session.Session) error {
		state = s.State()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GetGameStateResponse{State: state}, nil
}
