package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Session is one game in memory together with how much of it has been stored
type Session struct {
	mu        sync.Mutex
	registry  *Registry
	record    *game.GameRecord
	game      *game.Game
	actions   int
	persisted int
	refs      int
	lastUsed  time.Time
	// set under mu by a failed write, read by the registry under its own lock
	broken atomic.Bool
}

// Result describes the effect of an accepted action
type Result struct {
	Sequence     int
	Type         action.Type
	Transactions []*ledger.TransactionEntry
}

func (s *Session) ID() string {
	return s.record.ID
}

func (s *Session) Record() game.GameRecord {
	return *s.record
}

func (s *Session) Game() *game.Game {
	return s.game
}

// Actions returns how many actions the game has accepted
func (s *Session) Actions() int {
	return s.actions
}

// State returns a snapshot of the game
func (s *Session) State() *GameState {
	return NewGameState(s.record, s.game, s.actions)
}

// Perform applies an action and stores it with the transactions it produced.
// A rejected action leaves the game and the store untouched.
func (s *Session) Perform(ctx context.Context, dto ActionDTO) (*Result, error) {
	a, err := Resolve(s.game, dto)
	if err != nil {
		return nil, err
	}
	if err := s.game.Perform(a); err != nil {
		return nil, err
	}

	payload, err := dto.Encode()
	if err != nil {
		s.broken.Store(true)
		return nil, fmt.Errorf("failed to encode action: %w", err)
	}
	r := s.registry
	entry := &game.ActionEntry{
		GameID:     s.record.ID,
		Sequence:   s.actions + 1,
		Type:       a.Type().String(),
		Actor:      a.Actor().Name(),
		Payload:    payload,
		RecordedAt: r.now(),
	}
	if err := r.actions.Append(ctx, entry); err != nil {
		s.broken.Store(true)
		return nil, fmt.Errorf("failed to store action: %w", err)
	}
	s.actions++

	from := s.persisted
	if err := s.persistTransactions(ctx); err != nil {
		s.broken.Store(true)
		return nil, err
	}

	if s.game.Over() && s.record.Status != game.StatusFinished {
		s.record.Status = game.StatusFinished
	}
	s.record.UpdatedAt = r.now()
	if err := r.games.Save(ctx, s.record); err != nil {
		s.broken.Store(true)
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return &Result{
		Sequence:     entry.Sequence,
		Type:         a.Type(),
		Transactions: s.entries(from),
	}, nil
}

// persistTransactions stores journal transactions not yet in the repository
func (s *Session) persistTransactions(ctx context.Context) error {
	pending := s.entries(s.persisted)
	if len(pending) == 0 {
		return nil
	}
	if err := s.registry.transactions.Append(ctx, pending); err != nil {
		return fmt.Errorf("failed to store transactions: %w", err)
	}
	s.persisted += len(pending)
	return nil
}

func (s *Session) entries(from int) []*ledger.TransactionEntry {
	now := s.registry.now()
	var out []*ledger.TransactionEntry
	for i, t := range s.game.Journal().Since(from) {
		out = append(out, ledger.EntryOf(s.record.ID, from+i+1, t, now))
	}
	return out
}
