package ledger

import (
	"context"
	"time"
)

// TransactionEntry is the persisted form of a journal transaction
type TransactionEntry struct {
	GameID        string
	Sequence      int
	TransactionID string
	Buyer         string
	Seller        string // empty for grants
	BuyerItems    []string
	SellerItems   []string
	RecordedAt    time.Time
}

// EntryOf flattens a transaction into its persisted form
func EntryOf(gameID string, sequence int, t *Transaction, recordedAt time.Time) *TransactionEntry {
	entry := &TransactionEntry{
		GameID:        gameID,
		Sequence:      sequence,
		TransactionID: t.ID().String(),
		Buyer:         t.Buyer().Name(),
		BuyerItems:    labels(t.buyerItems),
		SellerItems:   labels(t.sellerItems),
		RecordedAt:    recordedAt,
	}
	if t.Seller() != nil {
		entry.Seller = t.Seller().Name()
	}
	return entry
}

func labels(items []Transferrable) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

// TransactionRepository defines persistence operations for the append-only transaction log
type TransactionRepository interface {
	// Append stores entries after the ones already persisted for their game
	Append(ctx context.Context, entries []*TransactionEntry) error

	// FindByGame returns a game's entries ordered by sequence
	FindByGame(ctx context.Context, gameID string, opts QueryOptions) ([]*TransactionEntry, error)

	// CountByGame returns how many entries a game has
	CountByGame(ctx context.Context, gameID string) (int, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	// Party restricts results to transactions where the named shareholder is buyer or seller
	Party string

	Limit  int
	Offset int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50}
}
