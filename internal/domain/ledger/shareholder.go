package ledger

// Shareholder is any party that can take part in a Transaction.
//
// Balances and holdings are never stored: they are folded from the
// transactions the shareholder was party to. Concrete shareholders embed
// Account to satisfy the interface.
type Shareholder interface {
	Name() string
	Balance() Money
	Holdings() []Ownable
	Transactions() []*Transaction
	account() *Account
}

// Account is the transaction log of a single shareholder
type Account struct {
	transactions []*Transaction
}

func (a *Account) account() *Account {
	return a
}

func (a *Account) record(t *Transaction) {
	a.transactions = append(a.transactions, t)
}

// Transactions returns the shareholder's transactions in the order they happened
func (a *Account) Transactions() []*Transaction {
	out := make([]*Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Balance is money credited minus money debited across the log
func (a *Account) Balance() Money {
	balance := Money{}
	for _, t := range a.transactions {
		credits, debits, ok := t.sides(a)
		if !ok {
			continue
		}
		balance = balance.Add(SumMoney(credits)).Sub(SumMoney(debits))
	}
	return balance
}

// Holdings replays the log: items received are added, items given away are
// removed by identity. An item bought, sold and bought again is present once.
func (a *Account) Holdings() []Ownable {
	var held []Ownable
	for _, t := range a.transactions {
		credits, debits, ok := t.sides(a)
		if !ok {
			continue
		}
		for _, item := range credits {
			if o, isOwnable := item.(Ownable); isOwnable {
				held = append(held, o)
			}
		}
		for _, item := range debits {
			if o, isOwnable := item.(Ownable); isOwnable {
				held = removeFirst(held, o)
			}
		}
	}
	return held
}

func removeFirst(items []Ownable, target Ownable) []Ownable {
	for i, item := range items {
		if item == target {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

// sameParty compares shareholders by the identity of their accounts
func sameParty(a, b Shareholder) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.account() == b.account()
}
