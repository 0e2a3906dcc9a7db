package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/market"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

func ladder(values ...int) []ledger.Money {
	out := make([]ledger.Money, len(values))
	for i, v := range values {
		out[i] = ledger.NewMoney(v)
	}
	return out
}

func TestMarket_AddCompany(t *testing.T) {
	m := market.NewMarket(ladder(50, 55, 60, 65, 70))
	cn := company.NewMajorCompany("C&N", "Cowes & Newport")

	require.NoError(t, m.AddCompany(cn, ledger.NewMoney(60)))

	price, ok := m.Price(cn)
	assert.True(t, ok)
	assert.Equal(t, ledger.NewMoney(60), price)
}

func TestMarket_AddCompany_RejectsPriceOffTheLadder(t *testing.T) {
	m := market.NewMarket(ladder(50, 55, 60))
	cn := company.NewMajorCompany("C&N", "Cowes & Newport")

	err := m.AddCompany(cn, ledger.NewMoney(57))

	var target *market.ErrInvalidStartingPrice
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "C&N", target.Company)
	kind, ok := shared.ViolationOf(err)
	assert.True(t, ok)
	assert.Equal(t, shared.ViolationValue, kind)
	_, listed := m.Price(cn)
	assert.False(t, listed)
}

func TestMarket_AddCompany_Twice(t *testing.T) {
	m := market.NewMarket(ladder(50, 55, 60))
	cn := company.NewMajorCompany("C&N", "Cowes & Newport")
	require.NoError(t, m.AddCompany(cn, ledger.NewMoney(50)))

	err := m.AddCompany(cn, ledger.NewMoney(55))

	var target *market.ErrAlreadyListed
	assert.ErrorAs(t, err, &target)
}

func TestMarket_ChangePrice(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  int
	}{
		{"one step up", 1, 65},
		{"two steps down", -2, 50},
		{"one step down", -1, 55},
		{"clamped at the top", 10, 70},
		{"clamped at the bottom", -10, 50},
		{"no movement", 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := market.NewMarket(ladder(50, 55, 60, 65, 70))
			cn := company.NewMajorCompany("C&N", "Cowes & Newport")
			require.NoError(t, m.AddCompany(cn, ledger.NewMoney(60)))

			require.NoError(t, m.ChangePrice(cn, tt.steps))

			price, _ := m.Price(cn)
			assert.Equal(t, ledger.NewMoney(tt.want), price)
		})
	}
}

func TestMarket_ChangePrice_UnlistedCompany(t *testing.T) {
	m := market.NewMarket(ladder(50, 55))

	err := m.ChangePrice(company.NewMajorCompany("IOW", "Isle of Wight"), 1)

	var target *market.ErrNotListed
	assert.ErrorAs(t, err, &target)
}

func TestMarket_OperatingOrder(t *testing.T) {
	m := market.NewMarket(ladder(50, 55, 60, 65, 70))
	first := company.NewMajorCompany("C&N", "Cowes & Newport")
	second := company.NewMajorCompany("IOW", "Isle of Wight")
	third := company.NewMajorCompany("FYN", "Freshwater, Yarmouth & Newport")
	require.NoError(t, m.AddCompany(first, ledger.NewMoney(60)))
	require.NoError(t, m.AddCompany(second, ledger.NewMoney(70)))
	require.NoError(t, m.AddCompany(third, ledger.NewMoney(60)))

	order := m.OperatingOrder()

	assert.Equal(t, []*company.MajorCompany{second, first, third}, order)
	assert.Equal(t, []*company.MajorCompany{first, second, third}, m.Companies())
}

func TestMarket_OperatingOrder_TieKeepsInsertionOrderAfterPriceChanges(t *testing.T) {
	m := market.NewMarket(ladder(50, 55, 60, 65, 70))
	first := company.NewMajorCompany("C&N", "Cowes & Newport")
	second := company.NewMajorCompany("IOW", "Isle of Wight")
	require.NoError(t, m.AddCompany(first, ledger.NewMoney(55)))
	require.NoError(t, m.AddCompany(second, ledger.NewMoney(65)))

	require.NoError(t, m.ChangePrice(second, -1))
	require.NoError(t, m.ChangePrice(first, 1))

	assert.Equal(t, []*company.MajorCompany{first, second}, m.OperatingOrder())
}
