package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andrescamacho/baron-go/internal/application/common"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
)

// RulesLoader returns the rules of a variant
type RulesLoader func(variant string) (*rules.Rules, error)

// Clock returns the current time
type Clock func() time.Time

// Registry keeps the games in play in memory and serializes access to each
// of them. A game missing from memory is rebuilt by replaying its stored actions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	capacity int

	loadRules    RulesLoader
	games        game.GameRepository
	actions      game.ActionRepository
	transactions ledger.TransactionRepository
	now          Clock
}

// NewRegistry creates a registry holding at most capacity games in memory
func NewRegistry(
	capacity int,
	loadRules RulesLoader,
	games game.GameRepository,
	actions game.ActionRepository,
	transactions ledger.TransactionRepository,
	now Clock,
) *Registry {
	if capacity < 1 {
		capacity = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions:     make(map[string]*Session),
		capacity:     capacity,
		loadRules:    loadRules,
		games:        games,
		actions:      actions,
		transactions: transactions,
		now:          now,
	}
}

// Create sets up and stores a new game
func (r *Registry) Create(ctx context.Context, variant string, players []string) (string, error) {
	rs, err := r.loadRules(variant)
	if err != nil {
		return "", err
	}
	g, err := game.New(rs, players)
	if err != nil {
		return "", err
	}

	now := r.now()
	record := &game.GameRecord{
		ID:        game.NewGameID(),
		Variant:   variant,
		Players:   append([]string(nil), players...),
		Status:    game.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.games.Save(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save game: %w", err)
	}

	s := &Session{registry: r, record: record, game: g}
	if err := s.persistTransactions(ctx); err != nil {
		return "", err
	}

	common.LoggerFromContext(ctx).Info("game created",
		zap.String("game_id", record.ID),
		zap.String("variant", variant),
		zap.Strings("players", players),
		zap.Int("transactions", g.Journal().Len()),
	)

	r.mu.Lock()
	r.insert(s)
	r.mu.Unlock()
	return record.ID, nil
}

// With runs fn while holding the game's lock
func (r *Registry) With(ctx context.Context, gameID string, fn func(s *Session) error) error {
	s, err := r.acquire(ctx, gameID)
	if err != nil {
		return err
	}
	defer r.release(s)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken.Load() {
		return fmt.Errorf("game %s must be reloaded after a storage failure", gameID)
	}
	return fn(s)
}

// Loaded returns the IDs of the games currently in memory
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) acquire(ctx context.Context, gameID string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[gameID]; ok && !s.broken.Load() {
		s.refs++
		s.lastUsed = r.now()
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	loaded, err := r.load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have loaded the game meanwhile
	if s, ok := r.sessions[gameID]; ok && !s.broken.Load() {
		s.refs++
		s.lastUsed = r.now()
		return s, nil
	}
	r.insert(loaded)
	loaded.refs++
	return loaded, nil
}

func (r *Registry) release(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.refs--
	if s.broken.Load() && s.refs == 0 && r.sessions[s.record.ID] == s {
		delete(r.sessions, s.record.ID)
	}
}

// insert adds s, evicting the least recently used idle sessions over capacity.
// Callers hold r.mu.
func (r *Registry) insert(s *Session) {
	s.lastUsed = r.now()
	r.sessions[s.record.ID] = s
	for len(r.sessions) > r.capacity {
		var oldest *Session
		for _, candidate := range r.sessions {
			if candidate == s || candidate.refs > 0 {
				continue
			}
			if oldest == nil || candidate.lastUsed.Before(oldest.lastUsed) {
				oldest = candidate
			}
		}
		if oldest == nil {
			return
		}
		delete(r.sessions, oldest.record.ID)
	}
}

// load rebuilds a game from its record and action log
func (r *Registry) load(ctx context.Context, gameID string) (*Session, error) {
	record, err := r.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	rs, err := r.loadRules(record.Variant)
	if err != nil {
		return nil, err
	}
	g, err := game.New(rs, record.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to set up game %s: %w", gameID, err)
	}

	entries, err := r.actions.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actions of game %s: %w", gameID, err)
	}
	for _, entry := range entries {
		dto, err := DecodeActionDTO(entry.Payload)
		if err != nil {
			return nil, fmt.Errorf("action %d of game %s: %w", entry.Sequence, gameID, err)
		}
		a, err := Resolve(g, dto)
		if err != nil {
			return nil, fmt.Errorf("action %d of game %s: %w", entry.Sequence, gameID, err)
		}
		if err := g.Perform(a); err != nil {
			return nil, fmt.Errorf("replay of action %d of game %s failed: %w", entry.Sequence, gameID, err)
		}
	}

	persisted, err := r.transactions.CountByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions of game %s: %w", gameID, err)
	}
	s := &Session{
		registry:  r,
		record:    record,
		game:      g,
		actions:   len(entries),
		persisted: persisted,
	}
	// A crash between storing an action and its transactions leaves the log short
	if err := s.persistTransactions(ctx); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Debug("game loaded",
		zap.String("game_id", gameID),
		zap.Int("actions", len(entries)),
	)
	return s, nil
}
