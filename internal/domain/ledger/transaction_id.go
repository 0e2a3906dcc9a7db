package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a transaction across the journal and its persisted form
type TransactionID struct {
	value uuid.UUID
}

// NewTransactionID generates a random TransactionID
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New()}
}

// ParseTransactionID restores a TransactionID from its string form
func ParseTransactionID(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, fmt.Errorf("transaction_id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction_id format: %w", err)
	}
	return TransactionID{value: parsed}, nil
}

func (t TransactionID) String() string {
	return t.value.String()
}

func (t TransactionID) IsZero() bool {
	return t.value == uuid.Nil
}
