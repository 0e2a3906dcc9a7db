package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
	"github.com/andrescamacho/baron-go/test/helpers"
)

type stores struct {
	games        *helpers.MemoryGameRepository
	actions      *helpers.MemoryActionRepository
	transactions *helpers.MemoryTransactionRepository
}

func newStores() *stores {
	return &stores{
		games:        helpers.NewMemoryGameRepository(),
		actions:      helpers.NewMemoryActionRepository(),
		transactions: helpers.NewMemoryTransactionRepository(),
	}
}

func (s *stores) registry(capacity int) *session.Registry {
	return session.NewRegistry(capacity, helpers.TestRulesLoader, s.games, s.actions, s.transactions, time.Now)
}

func perform(t *testing.T, r *session.Registry, gameID string, dto session.ActionDTO) *session.Result {
	t.Helper()
	var result *session.Result
	err := r.With(context.Background(), gameID, func(s *session.Session) error {
		var err error
		result, err = s.Perform(context.Background(), dto)
		return err
	})
	require.NoError(t, err)
	return result
}

func state(t *testing.T, r *session.Registry, gameID string) *session.GameState {
	t.Helper()
	var st *session.GameState
	require.NoError(t, r.With(context.Background(), gameID, func(s *session.Session) error {
		st = s.State()
		return nil
	}))
	return st
}

// playAuction lets alice win BHC for 30 and bob win YHC for 50
func playAuction(t *testing.T, r *session.Registry, gameID string) {
	t.Helper()
	perform(t, r, gameID, session.ActionDTO{Type: "bid", Actor: "alice", Amount: 30})
	perform(t, r, gameID, session.ActionDTO{Type: "pass", Actor: "bob"})
	perform(t, r, gameID, session.ActionDTO{Type: "pass", Actor: "carol"})
	perform(t, r, gameID, session.ActionDTO{Type: "select_certificate", Actor: "alice", Certificate: "BHC-0"})
	perform(t, r, gameID, session.ActionDTO{Type: "bid", Actor: "bob", Amount: 50})
	perform(t, r, gameID, session.ActionDTO{Type: "pass", Actor: "carol"})
	perform(t, r, gameID, session.ActionDTO{Type: "pass", Actor: "alice"})
	perform(t, r, gameID, session.ActionDTO{Type: "select_certificate", Actor: "bob", Certificate: "YHC-0"})
}

func TestRegistry_CreateStoresRecordAndSetupTransactions(t *testing.T) {
	// Arrange
	s := newStores()
	r := s.registry(4)

	// Act
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})

	// Assert
	require.NoError(t, err)
	record, err := s.games.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, game.StatusActive, record.Status)
	assert.Equal(t, []string{"alice", "bob", "carol"}, record.Players)

	st := state(t, r, id)
	count, err := s.transactions.CountByGame(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, st.Transactions, count)
	assert.Equal(t, "initial_auction", st.Round.Kind)
	assert.Equal(t, "alice", st.Round.Actor)
	assert.Equal(t, []string{"bid", "pass"}, st.Round.AvailableActions)
}

func TestRegistry_CreateRejectsUnknownVariantAndBadPlayers(t *testing.T) {
	r := newStores().registry(4)

	_, err := r.Create(context.Background(), "1830", []string{"alice", "bob"})
	assert.Error(t, err)

	_, err = r.Create(context.Background(), helpers.TestVariant, []string{"alice"})
	assert.Error(t, err)
}

func TestSession_PerformStoresActionAndTransactions(t *testing.T) {
	s := newStores()
	r := s.registry(4)
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	before, err := s.transactions.CountByGame(context.Background(), id)
	require.NoError(t, err)

	perform(t, r, id, session.ActionDTO{Type: "bid", Actor: "alice", Amount: 30})
	perform(t, r, id, session.ActionDTO{Type: "pass", Actor: "bob"})
	result := perform(t, r, id, session.ActionDTO{Type: "pass", Actor: "carol"})

	// The decisive pass settles the bid: alice pays the bank
	assert.Equal(t, 3, result.Sequence)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Bank", result.Transactions[0].Buyer)
	assert.Equal(t, "alice", result.Transactions[0].Seller)

	stored, err := s.actions.FindByGame(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "pass", stored[2].Type)
	assert.Equal(t, "carol", stored[2].Actor)

	after, err := s.transactions.CountByGame(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestSession_RejectedActionChangesNothing(t *testing.T) {
	s := newStores()
	r := s.registry(4)
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		dto       session.ActionDTO
		violation shared.Violation
	}{
		{"out of turn", session.ActionDTO{Type: "pass", Actor: "bob"}, shared.ViolationProtocol},
		{"not available", session.ActionDTO{Type: "done", Actor: "alice"}, shared.ViolationProtocol},
		{"illegal bid", session.ActionDTO{Type: "bid", Actor: "alice", Amount: 7}, shared.ViolationValue},
		{"unknown player", session.ActionDTO{Type: "pass", Actor: "dave"}, shared.ViolationValue},
		{"unknown type", session.ActionDTO{Type: "teleport", Actor: "alice"}, shared.ViolationValue},
		{"missing actor", session.ActionDTO{Type: "pass"}, shared.ViolationValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.With(context.Background(), id, func(sess *session.Session) error {
				_, err := sess.Perform(context.Background(), tt.dto)
				return err
			})

			require.Error(t, err)
			violation, ok := shared.ViolationOf(err)
			require.True(t, ok, "expected a classified error, got %v", err)
			assert.Equal(t, tt.violation, violation)

			stored, err := s.actions.FindByGame(context.Background(), id)
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestRegistry_ReloadsGameByReplay(t *testing.T) {
	// Arrange
	s := newStores()
	first := s.registry(4)
	id, err := first.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	playAuction(t, first, id)
	want := state(t, first, id)

	// Act: a fresh registry has nothing in memory
	second := s.registry(4)
	got := state(t, second, id)

	// Assert
	assert.Equal(t, want, got)
	assert.Equal(t, "stock", got.Round.Kind)
	assert.Equal(t, "carol", got.Round.Actor)

	count, err := s.transactions.CountByGame(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, got.Transactions, count, "replay must not store transactions twice")

	// The replayed game keeps accepting actions
	perform(t, second, id, session.ActionDTO{Type: "pass", Actor: "carol"})
}

func TestRegistry_UnknownGame(t *testing.T) {
	r := newStores().registry(4)

	err := r.With(context.Background(), "missing", func(*session.Session) error { return nil })

	var notFound *game.ErrGameNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	s := newStores()
	r := s.registry(2)
	players := []string{"alice", "bob"}

	a, err := r.Create(context.Background(), helpers.TestVariant, players)
	require.NoError(t, err)
	b, err := r.Create(context.Background(), helpers.TestVariant, players)
	require.NoError(t, err)
	require.NoError(t, r.With(context.Background(), a, func(*session.Session) error { return nil }))

	c, err := r.Create(context.Background(), helpers.TestVariant, players)
	require.NoError(t, err)

	loaded := r.Loaded()
	assert.Len(t, loaded, 2)
	assert.Contains(t, loaded, a)
	assert.Contains(t, loaded, c)
	assert.NotContains(t, loaded, b)

	// An evicted game is reloaded on demand
	require.NoError(t, r.With(context.Background(), b, func(*session.Session) error { return nil }))
}

func TestSession_StorageFailureForcesReload(t *testing.T) {
	s := newStores()
	r := s.registry(4)
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	s.actions.AppendErr = errors.New("disk full")
	err = r.With(context.Background(), id, func(sess *session.Session) error {
		_, err := sess.Perform(context.Background(), session.ActionDTO{Type: "bid", Actor: "alice", Amount: 30})
		return err
	})
	require.Error(t, err)
	s.actions.AppendErr = nil

	// The bid never reached storage, so the reloaded game still expects it
	st := state(t, r, id)
	assert.Equal(t, "alice", st.Round.Actor)
	require.NotNil(t, st.Round.Auction)
	assert.Zero(t, st.Round.Auction.HighBid)
}

func TestSession_ConcurrentStorageFailuresReloadCleanly(t *testing.T) {
	s := newStores()
	r := s.registry(4)
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	s.actions.AppendErr = errors.New("disk full")

	var group errgroup.Group
	for i := 0; i < 8; i++ {
		group.Go(func() error {
			err := r.With(context.Background(), id, func(sess *session.Session) error {
				_, err := sess.Perform(context.Background(), session.ActionDTO{Type: "bid", Actor: "alice", Amount: 30})
				return err
			})
			if err == nil {
				return errors.New("bid stored despite the failing action log")
			}
			return nil
		})
		group.Go(func() error {
			// readers either see the game or are told to retry after the reload
			_ = r.With(context.Background(), id, func(sess *session.Session) error { return nil })
			return nil
		})
	}
	require.NoError(t, group.Wait())
	s.actions.AppendErr = nil

	st := state(t, r, id)
	assert.Equal(t, "alice", st.Round.Actor)
	require.NotNil(t, st.Round.Auction)
	assert.Zero(t, st.Round.Auction.HighBid)
	assert.Contains(t, r.Loaded(), id)
}

func TestSession_TransactionsCarryJournalOrder(t *testing.T) {
	s := newStores()
	r := s.registry(4)
	id, err := r.Create(context.Background(), helpers.TestVariant, []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	playAuction(t, r, id)

	entries, err := s.transactions.FindByGame(context.Background(), id, ledger.QueryOptions{})
	require.NoError(t, err)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Sequence)
		assert.Equal(t, id, e.GameID)
	}
}
