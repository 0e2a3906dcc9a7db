package game

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ErrWrongTurn is returned when someone other than the turn's actor submits an action
type ErrWrongTurn struct {
	Actor    string
	Expected string
}

func (e *ErrWrongTurn) Error() string {
	return fmt.Sprintf("%s attempted to act, but it is %s's turn", e.Actor, e.Expected)
}

func (e *ErrWrongTurn) Violation() shared.Violation {
	return shared.ViolationProtocol
}

// ErrInvalidAction is returned when the action type is not currently available
type ErrInvalidAction struct {
	Type    action.Type
	Allowed []action.Type
}

func (e *ErrInvalidAction) Error() string {
	names := make([]string, len(e.Allowed))
	for i, t := range e.Allowed {
		names[i] = t.String()
	}
	return fmt.Sprintf("Attempted to perform %s, Allowed Actions: (%s)", e.Type, strings.Join(names, ", "))
}

func (e *ErrInvalidAction) Violation() shared.Violation {
	return shared.ViolationProtocol
}

// ErrRoundNotOver is returned when a round result is requested before the round ends
type ErrRoundNotOver struct {
	Round string
}

func (e *ErrRoundNotOver) Error() string {
	return fmt.Sprintf("%s is not over", e.Round)
}

func (e *ErrRoundNotOver) Violation() shared.Violation {
	return shared.ViolationState
}

// ErrGameOver is returned for actions submitted after the final round has ended
type ErrGameOver struct{}

func (e *ErrGameOver) Error() string {
	return "the game is over"
}

func (e *ErrGameOver) Violation() shared.Violation {
	return shared.ViolationState
}

// ErrInsufficientFunds is returned when a shareholder cannot cover a payment
type ErrInsufficientFunds struct {
	Party     string
	Needed    ledger.Money
	Available ledger.Money
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("%s needs %s but only has %s", e.Party, e.Needed, e.Available)
}

func (e *ErrInsufficientFunds) Violation() shared.Violation {
	return shared.ViolationValue
}

// ErrNotForSale is returned when a certificate cannot be traded the way it was offered
type ErrNotForSale struct {
	Item   string
	Reason string
}

func (e *ErrNotForSale) Error() string {
	return fmt.Sprintf("%s cannot be traded: %s", e.Item, e.Reason)
}

func (e *ErrNotForSale) Violation() shared.Violation {
	return shared.ViolationValue
}

// ErrPriceMismatch is returned when a purchase from a holding area is offered at the wrong price
type ErrPriceMismatch struct {
	Item     string
	Expected ledger.Money
	Offered  ledger.Money
}

func (e *ErrPriceMismatch) Error() string {
	return fmt.Sprintf("%s costs %s, not %s", e.Item, e.Expected, e.Offered)
}

func (e *ErrPriceMismatch) Violation() shared.Violation {
	return shared.ViolationValue
}

// ErrInvalidPlayers is returned when a game is set up with an unusable player list
type ErrInvalidPlayers struct {
	Reason string
}

func (e *ErrInvalidPlayers) Error() string {
	return fmt.Sprintf("invalid players: %s", e.Reason)
}

func (e *ErrInvalidPlayers) Violation() shared.Violation {
	return shared.ViolationValue
}
