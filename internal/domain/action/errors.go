package action

import (
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ErrIllegalBidAmount is returned for malformed bids and for bids that do not
// beat the current high bid
type ErrIllegalBidAmount struct {
	Amount ledger.Money
	Reason string
}

func (e *ErrIllegalBidAmount) Error() string {
	return e.Reason
}

func (e *ErrIllegalBidAmount) Violation() shared.Violation {
	return shared.ViolationValue
}
