package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrescamacho/baron-go/internal/adapters/metrics"
	"github.com/andrescamacho/baron-go/internal/application/common"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// PerformActionCommand submits an action to a game
type PerformActionCommand struct {
	GameID string
	Action session.ActionDTO
}

// PerformActionResponse describes the accepted action and the game after it
type PerformActionResponse struct {
	Sequence     int
	Transactions []*ledger.TransactionEntry
	State        *session.GameState
}

// PerformActionHandler handles the PerformAction command
type PerformActionHandler struct {
	registry *session.Registry
}

// NewPerformActionHandler creates a new PerformActionHandler
func NewPerformActionHandler(registry *session.Registry) *PerformActionHandler {
	return &PerformActionHandler{registry: registry}
}

// Handle executes the PerformAction command
func (h *PerformActionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PerformActionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PerformActionCommand")
	}

	var response *PerformActionResponse
	err := h.registry.With(ctx, cmd.GameID, func(s *session.Session) error {
		wasActive := s.Record().Status == game.StatusActive

		result, err := s.Perform(ctx, cmd.Action)
		metrics.RecordAction(cmd.Action.Type, err)
		if err != nil {
			return err
		}
		metrics.RecordTransactions(len(result.Transactions))

		record := s.Record()
		if wasActive && record.Status == game.StatusFinished {
			metrics.RecordGameFinished(record.Variant)
			common.LoggerFromContext(ctx).Info("game finished", zap.String("game_id", record.ID))
		}

		response = &PerformActionResponse{
			Sequence:     result.Sequence,
			Transactions: result.Transactions,
			State:        s.State(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Debug("action performed",
		zap.String("game_id", cmd.GameID),
		zap.String("type", cmd.Action.Type),
		zap.String("actor", cmd.Action.Actor),
		zap.Int("sequence", response.Sequence),
		zap.Int("transactions", len(response.Transactions)),
	)
	return response, nil
}
