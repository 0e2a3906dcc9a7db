package ledger_test

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

type party struct {
	ledger.Account
	name string
}

func newParty(name string) *party {
	return &party{name: name}
}

func (p *party) Name() string {
	return p.name
}

type widget struct {
	ledger.Ownership
	id int
}

func (w *widget) Kind() ledger.ItemKind {
	return ledger.KindCertificate
}

func (w *widget) String() string {
	return fmt.Sprintf("widget-%d", w.id)
}

func items(values ...ledger.Transferrable) []ledger.Transferrable {
	return values
}

func money(amount int) ledger.Money {
	return ledger.NewMoney(amount)
}
