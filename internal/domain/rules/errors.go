package rules

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ErrInvalidRules is returned when a variant definition is inconsistent
type ErrInvalidRules struct {
	Reason string
}

func (e *ErrInvalidRules) Error() string {
	return fmt.Sprintf("invalid rules: %s", e.Reason)
}

func (e *ErrInvalidRules) Violation() shared.Violation {
	return shared.ViolationValue
}

type ErrUnsupportedPlayerCount struct {
	Variant   string
	Players   int
	Supported []int
}

func (e *ErrUnsupportedPlayerCount) Error() string {
	return fmt.Sprintf("%s does not support %d players (supported: %v)", e.Variant, e.Players, e.Supported)
}

func (e *ErrUnsupportedPlayerCount) Violation() shared.Violation {
	return shared.ViolationValue
}
