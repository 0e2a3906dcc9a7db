package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

const maxTilesPerTurn = 2

// OperatingTurn is one major company's turn in an operating round, driven by its director
type OperatingTurn struct {
	turnLog
	game     *Game
	company  *company.MajorCompany
	director ledger.Shareholder
	run      ledger.Money
}

func newOperatingTurn(g *Game, c *company.MajorCompany, director ledger.Shareholder) *OperatingTurn {
	return &OperatingTurn{game: g, company: c, director: director}
}

func (t *OperatingTurn) Actor() ledger.Shareholder {
	return t.director
}

func (t *OperatingTurn) Company() *company.MajorCompany {
	return t.company
}

// Run returns the revenue declared by RunTrains, zero before trains have run
func (t *OperatingTurn) Run() ledger.Money {
	return t.run
}

// AvailableActions is recomputed from the actions taken so far:
// track and tokens come before the run, earnings are declared after a
// positive run, and trains are bought once earnings are declared.
func (t *OperatingTurn) AvailableActions() []action.Type {
	if t.Done() {
		return nil
	}
	if t.count(action.TypeRunTrains) == 0 {
		var available []action.Type
		tokens := t.count(action.TypePlaceToken)
		if t.count(action.TypePlaceTile) < maxTilesPerTurn && tokens == 0 {
			available = append(available, action.TypePlaceTile)
		}
		if tokens == 0 {
			available = append(available, action.TypePlaceToken)
		}
		return append(available, action.TypeRunTrains)
	}
	if !t.EarningsDeclared() {
		return []action.Type{action.TypePayout, action.TypeRetain}
	}
	return []action.Type{action.TypeBuyTrain, action.TypeDone}
}

// EarningsDeclared is true after a payout or retain, or after a run of zero
func (t *OperatingTurn) EarningsDeclared() bool {
	if t.count(action.TypeRunTrains) == 0 {
		return false
	}
	return t.run.IsZero() || t.count(action.TypePayout)+t.count(action.TypeRetain) > 0
}

func (t *OperatingTurn) Done() bool {
	return t.count(action.TypeDone) > 0
}

func (t *OperatingTurn) Perform(a action.Action) error {
	return perform(t, &t.turnLog, a, func() error {
		switch act := a.(type) {
		case *action.PlaceTile:
			return t.game.trackMap.PlaceTile(t.company, act.Tile, act.Hex, act.Orientation)
		case *action.PlaceToken:
			return t.game.trackMap.PlaceToken(t.company, act.Hex)
		case *action.RunTrains:
			return t.runTrains(act)
		case *action.Payout:
			return t.payout()
		case *action.Retain:
			return t.retain()
		case *action.BuyTrain:
			return t.buyTrain(act)
		case *action.Done:
			return nil
		default:
			return &ErrInvalidAction{Type: a.Type(), Allowed: t.AvailableActions()}
		}
	})
}

func (t *OperatingTurn) runTrains(r *action.RunTrains) error {
	if r.Amount.IsNegative() {
		return shared.NewValidationError("amount", "run amount cannot be negative")
	}
	if r.Bonus.IsNegative() {
		return shared.NewValidationError("bonus", "corporate bonus cannot be negative")
	}
	if r.Bonus.GreaterThan(ledger.Money{}) {
		if _, err := t.game.journal.Give(t.game.bank, t.company, r.Bonus); err != nil {
			return err
		}
	}
	t.run = r.Amount
	return nil
}

// payout pays every player their percentage of the run, truncated to whole money
func (t *OperatingTurn) payout() error {
	g := t.game
	for _, p := range g.players {
		share := dividend(t.run, company.PercentageOwned(p, t.company))
		if share.IsZero() {
			continue
		}
		if _, err := g.journal.Give(g.bank, p, share); err != nil {
			return err
		}
	}
	return t.movePrice(1)
}

func (t *OperatingTurn) retain() error {
	g := t.game
	if _, err := g.journal.Give(g.bank, t.company, t.run); err != nil {
		return err
	}
	return t.movePrice(-1)
}

func (t *OperatingTurn) movePrice(steps int) error {
	if _, listed := t.game.market.Price(t.company); !listed {
		return nil
	}
	return t.game.market.ChangePrice(t.company, steps)
}

func (t *OperatingTurn) buyTrain(b *action.BuyTrain) error {
	g := t.game
	if b.Train == nil || b.Source == nil {
		return &ErrNotForSale{Item: "train", Reason: "train and source are required"}
	}
	if !b.Train.IsOwnedBy(b.Source) {
		return &ledger.ErrNotOwner{Item: b.Train.String(), Expected: b.Source.Name(), Actual: nameOf(b.Train.Owner())}
	}
	if b.Price.IsNegative() {
		return &ErrNotForSale{Item: b.Train.String(), Reason: "price cannot be negative"}
	}
	// Trains from the offering or the bank sell at face value; between companies the price is agreed
	if (b.Source == g.offering || b.Source == g.bank) && b.Train.FaceValue().Cmp(b.Price) != 0 {
		return &ErrPriceMismatch{Item: b.Train.String(), Expected: b.Train.FaceValue(), Offered: b.Price}
	}
	if err := g.checkFunds(t.company, b.Price); err != nil {
		return err
	}

	if _, err := g.journal.Record(t.company, []ledger.Transferrable{b.Train}, b.Source, []ledger.Transferrable{b.Price}); err != nil {
		return err
	}
	if len(train.Trains(g.offering)) == 0 {
		return g.releaseTrains()
	}
	return nil
}

func dividend(run ledger.Money, owned company.Portion) ledger.Money {
	return ledger.NewMoney(run.Amount() * int(owned) / 100)
}

// directorOrBank resolves who drives a company's operating turn
func directorOrBank(g *Game, c *company.MajorCompany) ledger.Shareholder {
	if p := g.Director(c); p != nil {
		return p
	}
	return g.bank
}
