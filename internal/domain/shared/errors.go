package shared

import (
	"errors"
	"fmt"
)

// Violation classifies a rule violation so adapters can react to whole families of errors
type Violation string

const (
	// ViolationProtocol: an action out of turn or not currently legal
	ViolationProtocol Violation = "protocol"
	// ViolationValue: a malformed domain value
	ViolationValue Violation = "value"
	// ViolationOwnership: transfer of something not owned, or a query against a non-party
	ViolationOwnership Violation = "ownership"
	// ViolationStructural: a malformed transaction payload
	ViolationStructural Violation = "structural"
	// ViolationState: an operation attempted outside its valid window
	ViolationState Violation = "state"
)

// Classified is implemented by every domain error that carries a violation class
type Classified interface {
	error
	Violation() Violation
}

// ViolationOf returns the violation class of the first classified error in err's chain
func ViolationOf(err error) (Violation, bool) {
	var classified Classified
	if errors.As(err, &classified) {
		return classified.Violation(), true
	}
	return "", false
}

// DomainError is the base error type for domain errors that need no extra fields
type DomainError struct {
	Message string
	Kind    Violation
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Violation() Violation {
	return e.Kind
}

func NewDomainError(kind Violation, message string) *DomainError {
	return &DomainError{Message: message, Kind: kind}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Violation() Violation {
	return ViolationValue
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
