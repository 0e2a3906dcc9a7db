package ledger

import "fmt"

// ItemKind identifies the family of a transferrable item
type ItemKind string

const (
	KindMoney       ItemKind = "MONEY"
	KindCertificate ItemKind = "CERTIFICATE"
	KindTrain       ItemKind = "TRAIN"
)

// Transferrable is anything that can change hands in a Transaction
type Transferrable interface {
	fmt.Stringer
	Kind() ItemKind
}

// Ownable is a transferrable item that remembers every shareholder that owned it.
//
// The owner history can only be extended by a Transaction: implementations get
// the unexported reassign method by embedding Ownership.
type Ownable interface {
	Transferrable
	Owner() Shareholder
	OwnerHistory() []Shareholder
	reassign(owner Shareholder)
}

// Ownership is the append-only owner history embedded by ownable items
type Ownership struct {
	owners []Shareholder
}

// Owner returns the current owner, or nil when the item has never been owned
func (o *Ownership) Owner() Shareholder {
	if len(o.owners) == 0 {
		return nil
	}
	return o.owners[len(o.owners)-1]
}

// OwnerHistory returns every owner in the order ownership was acquired
func (o *Ownership) OwnerHistory() []Shareholder {
	history := make([]Shareholder, len(o.owners))
	copy(history, o.owners)
	return history
}

// IsOwnedBy reports whether s is the current owner
func (o *Ownership) IsOwnedBy(s Shareholder) bool {
	return o.Owner() == s
}

func (o *Ownership) reassign(owner Shareholder) {
	o.owners = append(o.owners, owner)
}

// ItemsOf converts loosely typed values into an item list, rejecting anything
// that cannot be transferred.
func ItemsOf(values ...any) ([]Transferrable, error) {
	items := make([]Transferrable, 0, len(values))
	for i, v := range values {
		item, ok := v.(Transferrable)
		if !ok {
			return nil, &ErrNonTransferrable{Index: i, Value: v}
		}
		items = append(items, item)
	}
	return items, nil
}

// FilterKind returns the items of the given kind, preserving order
func FilterKind(items []Transferrable, kind ItemKind) []Transferrable {
	var filtered []Transferrable
	for _, item := range items {
		if item.Kind() == kind {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
