package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/baron-go/internal/adapters/metrics"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
)

// CreateGameCommand sets up a new game
type CreateGameCommand struct {
	// Variant of the rules; the configured default when empty
	Variant string
	// Player names in seating order
	Players []string
}

// CreateGameResponse represents the created game
type CreateGameResponse struct {
	GameID string
	State  *session.GameState
}

// CreateGameHandler handles the CreateGame command
type CreateGameHandler struct {
	registry       *session.Registry
	defaultVariant string
}

// NewCreateGameHandler creates a new CreateGameHandler
func NewCreateGameHandler(registry *session.Registry, defaultVariant string) *CreateGameHandler {
	return &CreateGameHandler{
		registry:       registry,
		defaultVariant: defaultVariant,
	}
}

// Handle executes the CreateGame command
func (h *CreateGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateGameCommand")
	}

	variant := cmd.Variant
	if variant == "" {
		variant = h.defaultVariant
	}

	gameID, err := h.registry.Create(ctx, variant, cmd.Players)
	if err != nil {
		return nil, err
	}
	metrics.RecordGameCreated(variant)

	var state *session.GameState
	err = h.registry.With(ctx, gameID, func(s *session.Session) error {
		state = s.State()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateGameResponse{GameID: gameID, State: state}, nil
}
