package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/player"
)

// StockRound gives players turns in rotation, starting with the priority
// deal, until every player passes in succession
type StockRound struct {
	game     *Game
	rotation []*player.Player
	next     int
	turns    []*StockTurn
}

func newStockRound(g *Game, priorityDeal *player.Player) *StockRound {
	players := g.Players()
	start := player.IndexOf(players, priorityDeal)
	if start < 0 {
		start = 0
	}
	return &StockRound{game: g, rotation: player.Rotate(players, start)}
}

func (r *StockRound) Kind() RoundKind {
	return RoundStock
}

func (r *StockRound) Name() string {
	return "Stock Round"
}

// start releases every director's certificate, plus the remaining shares of
// companies that already have a player as director
func (r *StockRound) start() error {
	g := r.game
	var directors []*company.Certificate
	for _, cert := range company.Certificates(g.pool) {
		if cert.IsDirector() {
			directors = append(directors, cert)
		}
	}
	if err := g.release(directors); err != nil {
		return err
	}

	var shares []*company.Certificate
	for _, cert := range company.Certificates(g.pool) {
		if g.Director(cert.Company()) != nil {
			shares = append(shares, cert)
		}
	}
	if err := g.release(shares); err != nil {
		return err
	}

	r.nextTurn()
	return nil
}

func (r *StockRound) nextTurn() {
	p := r.rotation[r.next%len(r.rotation)]
	r.next++
	r.turns = append(r.turns, newStockTurn(r.game, p))
}

// Over is true once the last turn of every player in a row was a pass
func (r *StockRound) Over() bool {
	n := len(r.rotation)
	if len(r.turns) < n {
		return false
	}
	for _, t := range r.turns[len(r.turns)-n:] {
		if !t.Passed() {
			return false
		}
	}
	return true
}

func (r *StockRound) CurrentTurn() Turn {
	if r.Over() || len(r.turns) == 0 {
		return nil
	}
	return r.turns[len(r.turns)-1]
}

// Turns returns every turn taken or in progress
func (r *StockRound) Turns() []*StockTurn {
	return append([]*StockTurn(nil), r.turns...)
}

func (r *StockRound) Perform(a action.Action) error {
	if err := performInRound(r, a); err != nil {
		return err
	}
	if r.turns[len(r.turns)-1].Done() && !r.Over() {
		r.nextTurn()
	}
	return nil
}

// NextPriorityDeal is the player whose turn began the final run of passes
func (r *StockRound) NextPriorityDeal() (*player.Player, error) {
	if !r.Over() {
		return nil, &ErrRoundNotOver{Round: r.Name()}
	}
	return r.turns[len(r.turns)-len(r.rotation)].Player(), nil
}
