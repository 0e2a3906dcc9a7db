package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/player"
)

// InitialAuction sells the auctionable companies one auction at a time until
// the offering is empty
type InitialAuction struct {
	game       *Game
	order      []*player.Player
	current    *AuctionTurn
	auctions   int
	lastWinner *player.Player
	finished   bool
}

func newInitialAuction(g *Game) *InitialAuction {
	return &InitialAuction{game: g, order: g.Players()}
}

func (r *InitialAuction) Kind() RoundKind {
	return RoundInitialAuction
}

func (r *InitialAuction) Name() string {
	return "Initial Auction"
}

// start releases the controlling certificate of every auctionable company
func (r *InitialAuction) start() error {
	g := r.game
	var certs []*company.Certificate
	for _, abbr := range g.rules.AuctionCompanies() {
		c, ok := g.Company(abbr)
		if !ok {
			continue
		}
		if cert := g.pool.ControllingCertificate(c); cert != nil {
			certs = append(certs, cert)
		}
	}
	if err := g.release(certs); err != nil {
		return err
	}
	if r.offeringEmpty() {
		r.finished = true
		return nil
	}
	r.newAuction()
	return nil
}

func (r *InitialAuction) newAuction() {
	r.current = newAuctionTurn(r.game, r.order)
	r.auctions++
}

func (r *InitialAuction) offeringEmpty() bool {
	return len(company.Certificates(r.game.offering)) == 0
}

// Over is true once every certificate in the offering has been auctioned. It
// stays true after later rounds put certificates back into the offering.
func (r *InitialAuction) Over() bool {
	return r.finished
}

func (r *InitialAuction) CurrentTurn() Turn {
	if r.Over() || r.current == nil {
		return nil
	}
	return r.current
}

// CurrentAuction returns the auction in progress, or nil once the round is over
func (r *InitialAuction) CurrentAuction() *AuctionTurn {
	if r.Over() {
		return nil
	}
	return r.current
}

// Auctions returns how many auctions have been opened
func (r *InitialAuction) Auctions() int {
	return r.auctions
}

func (r *InitialAuction) Perform(a action.Action) error {
	if err := performInRound(r, a); err != nil {
		return err
	}
	if !r.current.Done() {
		return nil
	}
	if winner := r.current.Winner(); winner != nil {
		r.lastWinner = winner
		players := r.game.Players()
		r.order = player.Rotate(players, player.IndexOf(players, winner)+1)
	}
	if r.offeringEmpty() {
		r.finished = true
		return nil
	}
	r.newAuction()
	return nil
}

// NextPriorityDeal is the player seated after the last auction winner
func (r *InitialAuction) NextPriorityDeal() (*player.Player, error) {
	if !r.Over() {
		return nil, &ErrRoundNotOver{Round: r.Name()}
	}
	players := r.game.Players()
	if r.lastWinner == nil {
		return players[0], nil
	}
	return player.Rotate(players, player.IndexOf(players, r.lastWinner)+1)[0], nil
}
