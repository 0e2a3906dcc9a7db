package ledger

import (
	"fmt"
	"strings"
)

// Transaction is the single mutation point of ownership.
//
// The buyer receives buyerItems from the seller; the seller receives
// sellerItems from the buyer. A nil seller stands for the external source and
// is only used for grants. Transactions are immutable once created.
type Transaction struct {
	id          TransactionID
	buyer       Shareholder
	buyerItems  []Transferrable
	seller      Shareholder
	sellerItems []Transferrable
}

// NewTransaction validates the exchange, reassigns every ownable item and
// records the transaction on both parties. It either fully succeeds or leaves
// nothing changed.
func NewTransaction(
	buyer Shareholder,
	buyerItems []Transferrable,
	seller Shareholder,
	sellerItems []Transferrable,
) (*Transaction, error) {
	if buyer == nil {
		return nil, &ErrInvalidParty{Reason: "buyer is required"}
	}
	if seller != nil && sameParty(buyer, seller) {
		return nil, &ErrInvalidParty{Party: buyer.Name(), Reason: "buyer and seller must differ"}
	}
	if err := validateItems(buyerItems, sellerItems); err != nil {
		return nil, err
	}
	if err := validateOwnership(buyerItems, seller); err != nil {
		return nil, err
	}
	if err := validateOwnership(sellerItems, buyer); err != nil {
		return nil, err
	}

	t := &Transaction{
		id:          NewTransactionID(),
		buyer:       buyer,
		buyerItems:  cloneItems(buyerItems),
		seller:      seller,
		sellerItems: cloneItems(sellerItems),
	}

	buyer.account().record(t)
	if seller != nil {
		seller.account().record(t)
	}
	reassign(t.buyerItems, buyer)
	reassign(t.sellerItems, seller)

	return t, nil
}

func validateItems(lists ...[]Transferrable) error {
	seen := make(map[Ownable]bool)
	for _, items := range lists {
		for i, item := range items {
			if item == nil {
				return &ErrInvalidItems{Reason: fmt.Sprintf("item %d is nil", i)}
			}
			o, ok := item.(Ownable)
			if !ok {
				continue
			}
			if seen[o] {
				return &ErrInvalidItems{Reason: fmt.Sprintf("%s appears more than once", o)}
			}
			seen[o] = true
		}
	}
	return nil
}

// validateOwnership checks that every ownable item is currently held by giver
func validateOwnership(items []Transferrable, giver Shareholder) error {
	for _, item := range items {
		o, ok := item.(Ownable)
		if !ok {
			continue
		}
		if !sameParty(o.Owner(), giver) {
			return &ErrNotOwner{Item: o.String(), Expected: partyName(giver), Actual: partyName(o.Owner())}
		}
	}
	return nil
}

func reassign(items []Transferrable, to Shareholder) {
	for _, item := range items {
		if o, ok := item.(Ownable); ok {
			o.reassign(to)
		}
	}
}

func cloneItems(items []Transferrable) []Transferrable {
	out := make([]Transferrable, len(items))
	copy(out, items)
	return out
}

func partyName(s Shareholder) string {
	if s == nil {
		return "nobody"
	}
	return s.Name()
}

// Getters

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) Buyer() Shareholder {
	return t.buyer
}

// Seller returns nil for grants from the external source
func (t *Transaction) Seller() Shareholder {
	return t.seller
}

func (t *Transaction) BuyerItems() []Transferrable {
	return cloneItems(t.buyerItems)
}

func (t *Transaction) SellerItems() []Transferrable {
	return cloneItems(t.sellerItems)
}

// IsGrant reports whether the items came from outside the game
func (t *Transaction) IsGrant() bool {
	return t.seller == nil
}

// Credits returns the items s received in this transaction
func (t *Transaction) Credits(s Shareholder) ([]Transferrable, error) {
	if s == nil {
		return nil, &ErrInvalidParty{Reason: "shareholder is required"}
	}
	credits, _, ok := t.sides(s.account())
	if !ok {
		return nil, &ErrInvalidParty{Party: s.Name(), Reason: "not a party to the transaction"}
	}
	return cloneItems(credits), nil
}

// Debits returns the items s gave away in this transaction
func (t *Transaction) Debits(s Shareholder) ([]Transferrable, error) {
	if s == nil {
		return nil, &ErrInvalidParty{Reason: "shareholder is required"}
	}
	_, debits, ok := t.sides(s.account())
	if !ok {
		return nil, &ErrInvalidParty{Party: s.Name(), Reason: "not a party to the transaction"}
	}
	return cloneItems(debits), nil
}

// Incoming returns the credited items of the given kind
func (t *Transaction) Incoming(s Shareholder, kind ItemKind) ([]Transferrable, error) {
	credits, err := t.Credits(s)
	if err != nil {
		return nil, err
	}
	return FilterKind(credits, kind), nil
}

// Outgoing returns the debited items of the given kind
func (t *Transaction) Outgoing(s Shareholder, kind ItemKind) ([]Transferrable, error) {
	debits, err := t.Debits(s)
	if err != nil {
		return nil, err
	}
	return FilterKind(debits, kind), nil
}

func (t *Transaction) sides(a *Account) (credits, debits []Transferrable, ok bool) {
	switch {
	case t.buyer.account() == a:
		return t.buyerItems, t.sellerItems, true
	case t.seller != nil && t.seller.account() == a:
		return t.sellerItems, t.buyerItems, true
	default:
		return nil, nil, false
	}
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s receives [%s] from %s for [%s]",
		t.buyer.Name(), joinItems(t.buyerItems), partyName(t.seller), joinItems(t.sellerItems))
}

func joinItems(items []Transferrable) string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.String()
	}
	return strings.Join(labels, ", ")
}
