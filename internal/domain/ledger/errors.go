package ledger

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ErrInvalidItems is returned when an item list is malformed
type ErrInvalidItems struct {
	Reason string
}

func (e *ErrInvalidItems) Error() string {
	return fmt.Sprintf("invalid items: %s", e.Reason)
}

func (e *ErrInvalidItems) Violation() shared.Violation {
	return shared.ViolationStructural
}

// ErrNonTransferrable is returned when a value cannot change hands
type ErrNonTransferrable struct {
	Index int
	Value any
}

func (e *ErrNonTransferrable) Error() string {
	return fmt.Sprintf("item %d (%v) is not transferrable", e.Index, e.Value)
}

func (e *ErrNonTransferrable) Violation() shared.Violation {
	return shared.ViolationStructural
}

// ErrNotOwner is returned when a party gives away an item it does not own
type ErrNotOwner struct {
	Item     string
	Expected string
	Actual   string
}

func (e *ErrNotOwner) Error() string {
	return fmt.Sprintf("%s is owned by %s, not %s", e.Item, e.Actual, e.Expected)
}

func (e *ErrNotOwner) Violation() shared.Violation {
	return shared.ViolationOwnership
}

// ErrInvalidParty is returned for a malformed party or a query against a non-party
type ErrInvalidParty struct {
	Party  string
	Reason string
}

func (e *ErrInvalidParty) Error() string {
	if e.Party == "" {
		return fmt.Sprintf("invalid party: %s", e.Reason)
	}
	return fmt.Sprintf("invalid party %s: %s", e.Party, e.Reason)
}

func (e *ErrInvalidParty) Violation() shared.Violation {
	return shared.ViolationOwnership
}
