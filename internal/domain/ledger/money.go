package ledger

import "fmt"

// Money is an immutable integer amount of currency.
// Two Money values are equal when their amounts match.
type Money struct {
	amount int
}

// NewMoney creates a Money value
func NewMoney(amount int) Money {
	return Money{amount: amount}
}

// Amount returns the integer amount
func (m Money) Amount() int {
	return m.amount
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

// Times returns m scaled by n
func (m Money) Times(n int) Money {
	return Money{amount: m.amount * n}
}

// Cmp returns -1, 0 or 1 depending on whether m is less than, equal to or greater than other
func (m Money) Cmp(other Money) int {
	switch {
	case m.amount < other.amount:
		return -1
	case m.amount > other.amount:
		return 1
	default:
		return 0
	}
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Kind marks Money as a transferrable item
func (m Money) Kind() ItemKind {
	return KindMoney
}

// String renders the amount as "$N"
func (m Money) String() string {
	if m.amount < 0 {
		return fmt.Sprintf("-$%d", -m.amount)
	}
	return fmt.Sprintf("$%d", m.amount)
}

// SumMoney adds up every Money value in items, ignoring anything else
func SumMoney(items []Transferrable) Money {
	total := Money{}
	for _, item := range items {
		if m, ok := item.(Money); ok {
			total = total.Add(m)
		}
	}
	return total
}
