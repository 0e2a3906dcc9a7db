package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/player"
)

var stockActions = []action.Type{
	action.TypeBuyCertificate,
	action.TypeStartCompany,
	action.TypeSellCertificates,
	action.TypePass,
}

// StockTurn lets a player sell any number of certificates and then either
// buy one certificate, start a company or pass.
type StockTurn struct {
	turnLog
	game   *Game
	player *player.Player
	done   bool
}

func newStockTurn(g *Game, p *player.Player) *StockTurn {
	return &StockTurn{game: g, player: p}
}

func (t *StockTurn) Actor() ledger.Shareholder {
	return t.player
}

func (t *StockTurn) Player() *player.Player {
	return t.player
}

func (t *StockTurn) AvailableActions() []action.Type {
	if t.done {
		return nil
	}
	return append([]action.Type(nil), stockActions...)
}

func (t *StockTurn) Done() bool {
	return t.done
}

// Passed is true when the turn ended with a pass and nothing else was done
func (t *StockTurn) Passed() bool {
	return t.done && len(t.taken) > 0 && t.count(action.TypePass) == len(t.taken)
}

func (t *StockTurn) Perform(a action.Action) error {
	return perform(t, &t.turnLog, a, func() error {
		switch act := a.(type) {
		case *action.BuyCertificate:
			return t.buy(act)
		case *action.StartCompany:
			return t.start(act)
		case *action.SellCertificates:
			return t.sell(act)
		case *action.Pass:
			t.done = true
			return nil
		default:
			return &ErrInvalidAction{Type: a.Type(), Allowed: t.AvailableActions()}
		}
	})
}

func (t *StockTurn) buy(b *action.BuyCertificate) error {
	g := t.game
	cert := b.Certificate
	if cert == nil || b.Source == nil {
		return &ErrNotForSale{Item: "certificate", Reason: "certificate and source are required"}
	}
	if !cert.IsOwnedBy(b.Source) {
		return &ledger.ErrNotOwner{Item: cert.String(), Expected: b.Source.Name(), Actual: nameOf(cert.Owner())}
	}
	if b.Price.IsNegative() {
		return &ErrNotForSale{Item: cert.String(), Reason: "price cannot be negative"}
	}
	if b.Source == g.offering || b.Source == g.bank {
		quote, err := g.QuoteCertificate(b.Source, cert)
		if err != nil {
			return err
		}
		if quote.Cmp(b.Price) != 0 {
			return &ErrPriceMismatch{Item: cert.String(), Expected: quote, Offered: b.Price}
		}
	}
	if err := g.checkFunds(t.player, b.Price); err != nil {
		return err
	}

	if _, err := g.journal.Record(t.player, []ledger.Transferrable{cert}, b.Source, []ledger.Transferrable{b.Price}); err != nil {
		return err
	}
	t.done = true
	if major, ok := cert.Company().(*company.MajorCompany); ok {
		return g.checkFloat(major)
	}
	return nil
}

func (t *StockTurn) start(s *action.StartCompany) error {
	g := t.game
	if s.Company == nil {
		return &ErrNotForSale{Item: "company", Reason: "no company given"}
	}
	par := s.ParPrice
	if err := g.checkParPrice(s.Company, &par); err != nil {
		return err
	}
	director := g.controllingCertificate(s.Company)
	if director == nil || !(director.IsOwnedBy(g.pool) || director.IsOwnedBy(g.offering)) {
		return &ErrNotForSale{Item: s.Company.Abbreviation(), Reason: "director's certificate is not available"}
	}
	cost := par.Times(director.NumShares())
	if err := g.checkFunds(t.player, cost); err != nil {
		return err
	}

	if err := g.release(company.CertificatesFor(g.pool, s.Company)); err != nil {
		return err
	}
	if err := g.listCompany(s.Company, par); err != nil {
		return err
	}
	if _, err := g.journal.Record(t.player, []ledger.Transferrable{director}, g.offering, []ledger.Transferrable{cost}); err != nil {
		return err
	}
	t.done = true
	return g.checkFloat(s.Company)
}

func (t *StockTurn) sell(s *action.SellCertificates) error {
	g := t.game
	if len(s.Certificates) == 0 {
		return &ErrNotForSale{Item: "certificates", Reason: "nothing to sell"}
	}

	proceeds := ledger.Money{}
	items := make([]ledger.Transferrable, 0, len(s.Certificates))
	majors := make([]*company.MajorCompany, 0, len(s.Certificates))
	for _, cert := range s.Certificates {
		if cert == nil {
			return &ErrNotForSale{Item: "certificate", Reason: "unknown certificate"}
		}
		if !cert.IsOwnedBy(t.player) {
			return &ledger.ErrNotOwner{Item: cert.String(), Expected: t.player.Name(), Actual: nameOf(cert.Owner())}
		}
		major, ok := cert.Company().(*company.MajorCompany)
		if !ok {
			return &ErrNotForSale{Item: cert.String(), Reason: "private companies cannot be sold to the bank"}
		}
		price, listed := g.market.Price(major)
		if !listed {
			return &ErrNotForSale{Item: cert.String(), Reason: "company has no market price"}
		}
		proceeds = proceeds.Add(price.Times(cert.NumShares()))
		items = append(items, cert)
		majors = append(majors, major)
	}

	if _, err := g.journal.Record(g.bank, items, t.player, []ledger.Transferrable{proceeds}); err != nil {
		return err
	}
	for i, cert := range s.Certificates {
		if err := g.market.ChangePrice(majors[i], -cert.NumShares()); err != nil {
			return err
		}
	}
	return nil
}
