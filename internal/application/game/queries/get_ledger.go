package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// GetLedgerQuery retrieves the stored transactions of a game
type GetLedgerQuery struct {
	GameID string
	// Party restricts the result to one shareholder's transactions
	Party  string
	Limit  int
	Offset int
}

// GetLedgerResponse represents the result of the query
type GetLedgerResponse struct {
	Transactions []*ledger.TransactionEntry
	Total        int
}

// GetLedgerHandler handles the GetLedger query
type GetLedgerHandler struct {
	gameRepo        game.GameRepository
	transactionRepo ledger.TransactionRepository
}

// NewGetLedgerHandler creates a new GetLedgerHandler
func NewGetLedgerHandler(gameRepo game.GameRepository, transactionRepo ledger.TransactionRepository) *GetLedgerHandler {
	return &GetLedgerHandler{
		gameRepo:        gameRepo,
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetLedger query
func (h *GetLedgerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetLedgerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLedgerQuery")
	}

	if _, err := h.gameRepo.FindByID(ctx, query.GameID); err != nil {
		return nil, err
	}

	opts := ledger.DefaultQueryOptions()
	opts.Party = query.Party
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	if query.Offset > 0 {
		opts.Offset = query.Offset
	}

	entries, err := h.transactionRepo.FindByGame(ctx, query.GameID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	total, err := h.transactionRepo.CountByGame(ctx, query.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger: %w", err)
	}

	return &GetLedgerResponse{Transactions: entries, Total: total}, nil
}
