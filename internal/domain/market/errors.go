package market

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ErrInvalidStartingPrice is returned when a company is listed at a price off the ladder
type ErrInvalidStartingPrice struct {
	Company string
	Price   ledger.Money
}

func (e *ErrInvalidStartingPrice) Error() string {
	return fmt.Sprintf("%s is not a legal starting price for %s", e.Price, e.Company)
}

func (e *ErrInvalidStartingPrice) Violation() shared.Violation {
	return shared.ViolationValue
}

// ErrParPriceAlreadySet is returned on a second attempt to set a par price
type ErrParPriceAlreadySet struct {
	Company string
}

func (e *ErrParPriceAlreadySet) Error() string {
	return fmt.Sprintf("Attempted to reset par price for %s", e.Company)
}

func (e *ErrParPriceAlreadySet) Violation() shared.Violation {
	return shared.ViolationState
}

// ErrParPriceNotSet is returned when pricing a major company share before its par is known
type ErrParPriceNotSet struct {
	Company string
}

func (e *ErrParPriceNotSet) Error() string {
	return fmt.Sprintf("par price for %s has not been set", e.Company)
}

func (e *ErrParPriceNotSet) Violation() shared.Violation {
	return shared.ViolationState
}

// ErrAlreadyListed is returned when a company is added to the market twice
type ErrAlreadyListed struct {
	Company string
}

func (e *ErrAlreadyListed) Error() string {
	return fmt.Sprintf("%s is already on the market", e.Company)
}

func (e *ErrAlreadyListed) Violation() shared.Violation {
	return shared.ViolationState
}

// ErrNotListed is returned when moving the price of a company that has no market position
type ErrNotListed struct {
	Company string
}

func (e *ErrNotListed) Error() string {
	return fmt.Sprintf("%s is not on the market", e.Company)
}

func (e *ErrNotListed) Violation() shared.Violation {
	return shared.ViolationState
}
