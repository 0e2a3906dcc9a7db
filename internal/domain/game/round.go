package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/player"
)

// RoundKind identifies the phase a round belongs to
type RoundKind string

const (
	RoundInitialAuction RoundKind = "initial_auction"
	RoundStock          RoundKind = "stock"
	RoundOperating      RoundKind = "operating"
)

// Round sequences the turns of one phase of the game
type Round interface {
	Kind() RoundKind
	Name() string
	// Over reports whether the round has no more turns to play
	Over() bool
	// CurrentTurn returns the turn awaiting an action, or nil once over
	CurrentTurn() Turn
	Perform(a action.Action) error
	start() error
}

// PriorityDealer is implemented by rounds that decide who acts first in the next stock round
type PriorityDealer interface {
	NextPriorityDeal() (*player.Player, error)
}

// performInRound applies a to the current turn of r. A finished round only
// stays current once the game has ended.
func performInRound(r Round, a action.Action) error {
	turn := r.CurrentTurn()
	if turn == nil {
		return &ErrGameOver{}
	}
	return turn.Perform(a)
}
