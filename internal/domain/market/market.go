package market

import (
	"sort"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Market is the stock market: a ladder of legal share prices and the position
// of every company that has been started.
type Market struct {
	values  []ledger.Money
	entries []*entry
}

type entry struct {
	company *company.MajorCompany
	index   int
}

// NewMarket creates a market over the given ladder of ascending price values
func NewMarket(values []ledger.Money) *Market {
	ladder := make([]ledger.Money, len(values))
	copy(ladder, values)
	return &Market{values: ladder}
}

// Values returns the price ladder
func (m *Market) Values() []ledger.Money {
	out := make([]ledger.Money, len(m.values))
	copy(out, m.values)
	return out
}

// AddCompany places a company on the ladder at its starting price
func (m *Market) AddCompany(c *company.MajorCompany, price ledger.Money) error {
	if m.find(c) != nil {
		return &ErrAlreadyListed{Company: c.Abbreviation()}
	}
	index, ok := m.indexOf(price)
	if !ok {
		return &ErrInvalidStartingPrice{Company: c.Abbreviation(), Price: price}
	}
	m.entries = append(m.entries, &entry{company: c, index: index})
	return nil
}

// IsLegalPrice reports whether price is a value on the ladder
func (m *Market) IsLegalPrice(price ledger.Money) bool {
	_, ok := m.indexOf(price)
	return ok
}

// Price returns the current share price of c
func (m *Market) Price(c *company.MajorCompany) (ledger.Money, bool) {
	e := m.find(c)
	if e == nil {
		return ledger.Money{}, false
	}
	return m.values[e.index], true
}

// ChangePrice moves c by steps along the ladder, clamped at both ends.
// Positive steps raise the price.
func (m *Market) ChangePrice(c *company.MajorCompany, steps int) error {
	e := m.find(c)
	if e == nil {
		return &ErrNotListed{Company: c.Abbreviation()}
	}
	e.index += steps
	if e.index < 0 {
		e.index = 0
	}
	if e.index >= len(m.values) {
		e.index = len(m.values) - 1
	}
	return nil
}

// Companies returns listed companies in the order they were added
func (m *Market) Companies() []*company.MajorCompany {
	out := make([]*company.MajorCompany, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.company
	}
	return out
}

// OperatingOrder sorts listed companies by descending price; the company
// added first wins a tie.
func (m *Market) OperatingOrder() []*company.MajorCompany {
	ordered := make([]*entry, len(m.entries))
	copy(ordered, m.entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].index > ordered[j].index
	})
	out := make([]*company.MajorCompany, len(ordered))
	for i, e := range ordered {
		out[i] = e.company
	}
	return out
}

func (m *Market) find(c *company.MajorCompany) *entry {
	for _, e := range m.entries {
		if e.company == c {
			return e
		}
	}
	return nil
}

func (m *Market) indexOf(price ledger.Money) (int, bool) {
	for i, v := range m.values {
		if v == price {
			return i, true
		}
	}
	return 0, false
}
