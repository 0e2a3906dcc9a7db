package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

func TestNewTransaction_GrantAssignsOwnership(t *testing.T) {
	// Arrange
	bank := newParty("Bank")
	w := &widget{id: 1}

	// Act
	tx, err := ledger.NewTransaction(bank, items(money(100), w), nil, nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, tx.IsGrant())
	assert.Same(t, bank, w.Owner())
	assert.Equal(t, money(100), bank.Balance())
	assert.Len(t, bank.Transactions(), 1)
}

func TestNewTransaction_TransfersBothWays(t *testing.T) {
	buyer := newParty("Bart")
	seller := newParty("Lisa")
	w := &widget{id: 1}
	_, err := ledger.NewTransaction(seller, items(w), nil, nil)
	require.NoError(t, err)
	_, err = ledger.NewTransaction(buyer, items(money(50)), nil, nil)
	require.NoError(t, err)

	tx, err := ledger.NewTransaction(buyer, items(w), seller, items(money(30)))

	require.NoError(t, err)
	assert.Same(t, buyer, w.Owner())
	assert.Len(t, w.OwnerHistory(), 2)
	assert.Equal(t, money(20), buyer.Balance())
	assert.Equal(t, money(30), seller.Balance())
	assert.Contains(t, tx.String(), "Bart receives [widget-1] from Lisa for [$30]")
}

func TestNewTransaction_RejectsItemNotOwnedBySeller(t *testing.T) {
	buyer := newParty("Bart")
	seller := newParty("Lisa")
	w := &widget{id: 1}

	_, err := ledger.NewTransaction(buyer, items(w), seller, items(money(10)))

	var notOwner *ledger.ErrNotOwner
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, "widget-1", notOwner.Item)
	assert.Equal(t, "Lisa", notOwner.Expected)
	assert.Empty(t, buyer.Transactions())
	assert.Empty(t, seller.Transactions())
	assert.Nil(t, w.Owner())
}

func TestNewTransaction_RejectsItemNotOwnedByBuyer(t *testing.T) {
	buyer := newParty("Bart")
	seller := newParty("Lisa")
	w := &widget{id: 1}
	_, err := ledger.NewTransaction(seller, items(w), nil, nil)
	require.NoError(t, err)

	_, err = ledger.NewTransaction(buyer, items(money(5)), seller, items(w))

	var notOwner *ledger.ErrNotOwner
	require.ErrorAs(t, err, &notOwner)
	assert.Same(t, seller, w.Owner())
	v, ok := shared.ViolationOf(err)
	assert.True(t, ok)
	assert.Equal(t, shared.ViolationOwnership, v)
}

func TestNewTransaction_FailsAtomically(t *testing.T) {
	buyer := newParty("Bart")
	seller := newParty("Lisa")
	owned := &widget{id: 1}
	stray := &widget{id: 2}
	_, err := ledger.NewTransaction(seller, items(owned), nil, nil)
	require.NoError(t, err)

	_, err = ledger.NewTransaction(buyer, items(owned, stray), seller, nil)

	require.Error(t, err)
	assert.Same(t, seller, owned.Owner(), "the owned widget must not move when the batch fails")
	assert.Len(t, owned.OwnerHistory(), 1)
	assert.Len(t, seller.Transactions(), 1)
}

func TestNewTransaction_RejectsMalformedItems(t *testing.T) {
	buyer := newParty("Bart")
	w := &widget{id: 1}

	_, err := ledger.NewTransaction(buyer, []ledger.Transferrable{nil}, nil, nil)
	var invalid *ledger.ErrInvalidItems
	require.ErrorAs(t, err, &invalid)

	_, err = ledger.NewTransaction(buyer, items(w, w), nil, nil)
	require.ErrorAs(t, err, &invalid)
	assert.Nil(t, w.Owner())
}

func TestNewTransaction_RejectsInvalidParties(t *testing.T) {
	p := newParty("Bart")

	_, err := ledger.NewTransaction(nil, items(money(1)), p, nil)
	var invalid *ledger.ErrInvalidParty
	require.ErrorAs(t, err, &invalid)

	_, err = ledger.NewTransaction(p, items(money(1)), p, nil)
	require.ErrorAs(t, err, &invalid)
}

func TestItemsOf(t *testing.T) {
	list, err := ledger.ItemsOf(money(5), &widget{id: 3})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = ledger.ItemsOf(money(5), "a string")
	var nonTransferrable *ledger.ErrNonTransferrable
	require.ErrorAs(t, err, &nonTransferrable)
	assert.Equal(t, 1, nonTransferrable.Index)
	v, _ := shared.ViolationOf(err)
	assert.Equal(t, shared.ViolationStructural, v)
}

func TestTransaction_CreditsAndDebits(t *testing.T) {
	buyer := newParty("Bart")
	seller := newParty("Lisa")
	outsider := newParty("Homer")
	w := &widget{id: 1}
	_, err := ledger.NewTransaction(seller, items(w), nil, nil)
	require.NoError(t, err)

	tx, err := ledger.NewTransaction(buyer, items(w), seller, items(money(40)))
	require.NoError(t, err)

	credits, err := tx.Credits(buyer)
	require.NoError(t, err)
	assert.Equal(t, items(w), credits)

	debits, err := tx.Debits(buyer)
	require.NoError(t, err)
	assert.Equal(t, items(money(40)), debits)

	incoming, err := tx.Incoming(seller, ledger.KindMoney)
	require.NoError(t, err)
	assert.Equal(t, items(money(40)), incoming)

	outgoing, err := tx.Outgoing(seller, ledger.KindMoney)
	require.NoError(t, err)
	assert.Empty(t, outgoing)

	_, err = tx.Credits(outsider)
	var invalid *ledger.ErrInvalidParty
	require.ErrorAs(t, err, &invalid)
	_, err = tx.Debits(outsider)
	require.ErrorAs(t, err, &invalid)
}
