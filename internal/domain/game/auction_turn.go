package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/player"
)

// AuctionTurn auctions the right to pick one certificate from the offering.
// Players bid in rotation; the last player left after everyone else passes
// pays the high bid to the bank and selects a certificate.
type AuctionTurn struct {
	turnLog
	game     *Game
	active   []*player.Player
	bids     []*action.Bid
	paid     bool
	selected *company.Certificate
}

func newAuctionTurn(g *Game, players []*player.Player) *AuctionTurn {
	return &AuctionTurn{
		game:   g,
		active: append([]*player.Player(nil), players...),
	}
}

func (t *AuctionTurn) Actor() ledger.Shareholder {
	if p := t.CurrentPlayer(); p != nil {
		return p
	}
	return nil
}

// CurrentPlayer returns the player expected to act, or nil when everyone passed
func (t *AuctionTurn) CurrentPlayer() *player.Player {
	if len(t.active) == 0 {
		return nil
	}
	return t.active[0]
}

// ActivePlayers returns the players still in the auction, next to act first
func (t *AuctionTurn) ActivePlayers() []*player.Player {
	return append([]*player.Player(nil), t.active...)
}

func (t *AuctionTurn) AvailableActions() []action.Type {
	switch {
	case t.selected != nil:
		return nil
	case t.HasWinner():
		return []action.Type{action.TypeSelectCertificate}
	case len(t.active) == 0:
		return nil
	default:
		return []action.Type{action.TypeBid, action.TypePass}
	}
}

// HasWinner is true when a single player is left and at least one bid was made
func (t *AuctionTurn) HasWinner() bool {
	return len(t.active) == 1 && len(t.bids) > 0
}

// Winner returns the winning player, or nil
func (t *AuctionTurn) Winner() *player.Player {
	if !t.HasWinner() {
		return nil
	}
	return t.active[0]
}

// HighBid returns the current high bid, or nil before any bid
func (t *AuctionTurn) HighBid() *action.Bid {
	if len(t.bids) == 0 {
		return nil
	}
	return t.bids[len(t.bids)-1]
}

// Selected returns the certificate chosen by the winner, or nil
func (t *AuctionTurn) Selected() *company.Certificate {
	return t.selected
}

// Done is true once the winner selected a certificate, or when every player passed without bidding
func (t *AuctionTurn) Done() bool {
	return t.selected != nil || len(t.active) == 0
}

func (t *AuctionTurn) Perform(a action.Action) error {
	return perform(t, &t.turnLog, a, func() error {
		switch act := a.(type) {
		case *action.Bid:
			return t.bid(act)
		case *action.Pass:
			return t.pass()
		case *action.SelectCertificate:
			return t.selectCertificate(act)
		default:
			return &ErrInvalidAction{Type: a.Type(), Allowed: t.AvailableActions()}
		}
	})
}

func (t *AuctionTurn) bid(b *action.Bid) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if high := t.HighBid(); high != nil && !b.Amount.GreaterThan(high.Amount) {
		return &action.ErrIllegalBidAmount{Amount: b.Amount, Reason: "Amount must be greater than previous bids"}
	}
	if cash := b.Player.Balance(); b.Amount.GreaterThan(cash) {
		return &ErrInsufficientFunds{Party: b.Player.Name(), Needed: b.Amount, Available: cash}
	}
	t.active = append(t.active[1:], t.active[0])
	t.bids = append(t.bids, b)
	return t.settle()
}

func (t *AuctionTurn) pass() error {
	t.active = t.active[1:]
	return t.settle()
}

// settle charges the winner the high bid the moment the auction is decided
func (t *AuctionTurn) settle() error {
	if !t.HasWinner() || t.paid {
		return nil
	}
	high := t.HighBid()
	if _, err := t.game.journal.Give(high.Player, t.game.bank, high.Amount); err != nil {
		return err
	}
	t.paid = true
	return nil
}

func (t *AuctionTurn) selectCertificate(s *action.SelectCertificate) error {
	g := t.game
	cert := s.Certificate
	if cert == nil {
		return &ErrNotForSale{Item: "certificate", Reason: "no certificate selected"}
	}
	if !cert.IsOwnedBy(g.offering) {
		return &ledger.ErrNotOwner{Item: cert.String(), Expected: g.offering.Name(), Actual: nameOf(cert.Owner())}
	}

	major, isMajor := cert.Company().(*company.MajorCompany)
	if isMajor {
		if err := g.checkParPrice(major, s.ParPrice); err != nil {
			return err
		}
	}

	if _, err := g.journal.Give(g.offering, s.Player, cert); err != nil {
		return err
	}
	if isMajor && s.ParPrice != nil {
		if err := g.listCompany(major, *s.ParPrice); err != nil {
			return err
		}
	}
	t.selected = cert
	return nil
}
