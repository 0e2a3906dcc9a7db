package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// MemoryGameRepository is an in-memory game.GameRepository
type MemoryGameRepository struct {
	mu      sync.Mutex
	records map[string]game.GameRecord
	Saves   int
}

func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{records: make(map[string]game.GameRecord)}
}

func (r *MemoryGameRepository) Save(ctx context.Context, record *game.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	r.Saves++
	return nil
}

func (r *MemoryGameRepository) FindByID(ctx context.Context, id string) (*game.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, &game.ErrGameNotFound{ID: id}
	}
	return &record, nil
}

func (r *MemoryGameRepository) List(ctx context.Context, status game.Status) ([]*game.GameRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*game.GameRecord
	for _, record := range r.records {
		if status != "" && record.Status != status {
			continue
		}
		copied := record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MemoryActionRepository is an in-memory game.ActionRepository. AppendErr,
// when set, is returned by Append instead of storing.
type MemoryActionRepository struct {
	mu        sync.Mutex
	entries   map[string][]*game.ActionEntry
	AppendErr error
}

func NewMemoryActionRepository() *MemoryActionRepository {
	return &MemoryActionRepository{entries: make(map[string][]*game.ActionEntry)}
}

func (r *MemoryActionRepository) Append(ctx context.Context, entry *game.ActionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AppendErr != nil {
		return r.AppendErr
	}
	copied := *entry
	r.entries[entry.GameID] = append(r.entries[entry.GameID], &copied)
	return nil
}

func (r *MemoryActionRepository) FindByGame(ctx context.Context, gameID string) ([]*game.ActionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*game.ActionEntry(nil), r.entries[gameID]...), nil
}

// MemoryTransactionRepository is an in-memory ledger.TransactionRepository
type MemoryTransactionRepository struct {
	mu      sync.Mutex
	entries map[string][]*ledger.TransactionEntry
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{entries: make(map[string][]*ledger.TransactionEntry)}
}

func (r *MemoryTransactionRepository) Append(ctx context.Context, entries []*ledger.TransactionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		copied := *e
		r.entries[e.GameID] = append(r.entries[e.GameID], &copied)
	}
	return nil
}

func (r *MemoryTransactionRepository) FindByGame(ctx context.Context, gameID string, opts ledger.QueryOptions) ([]*ledger.TransactionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*ledger.TransactionEntry
	for _, e := range r.entries[gameID] {
		if opts.Party != "" && e.Buyer != opts.Party && e.Seller != opts.Party {
			continue
		}
		matched = append(matched, e)
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *MemoryTransactionRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[gameID]), nil
}
