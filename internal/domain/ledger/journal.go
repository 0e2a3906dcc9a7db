package ledger

// Journal is the ordered log of every transaction in one game
type Journal struct {
	entries []*Transaction
}

func NewJournal() *Journal {
	return &Journal{}
}

// Record creates a transaction and appends it to the journal
func (j *Journal) Record(
	buyer Shareholder,
	buyerItems []Transferrable,
	seller Shareholder,
	sellerItems []Transferrable,
) (*Transaction, error) {
	t, err := NewTransaction(buyer, buyerItems, seller, sellerItems)
	if err != nil {
		return nil, err
	}
	j.entries = append(j.entries, t)
	return t, nil
}

// Give moves items from one shareholder to another with nothing in return
func (j *Journal) Give(from, to Shareholder, items ...Transferrable) (*Transaction, error) {
	if from == nil {
		return nil, &ErrInvalidParty{Reason: "giver is required"}
	}
	return j.Record(to, items, from, nil)
}

// Grant brings items into the game from the external source
func (j *Journal) Grant(to Shareholder, items ...Transferrable) (*Transaction, error) {
	return j.Record(to, items, nil, nil)
}

// Entries returns every transaction in order
func (j *Journal) Entries() []*Transaction {
	return j.Since(0)
}

// Since returns the transactions recorded at or after position n
func (j *Journal) Since(n int) []*Transaction {
	if n < 0 {
		n = 0
	}
	if n >= len(j.entries) {
		return nil
	}
	out := make([]*Transaction, len(j.entries)-n)
	copy(out, j.entries[n:])
	return out
}

func (j *Journal) Len() int {
	return len(j.entries)
}
