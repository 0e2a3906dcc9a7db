package game

import "github.com/andrescamacho/baron-go/internal/domain/player"

// RoundFlow owns the current round and the queue of rounds that follow it
type RoundFlow struct {
	game     *Game
	current  Round
	upcoming []Round
	started  int
}

func newRoundFlow(g *Game) (*RoundFlow, error) {
	f := &RoundFlow{game: g}
	if err := f.begin(newInitialAuction(g)); err != nil {
		return nil, err
	}
	return f, f.advance()
}

func (f *RoundFlow) Current() Round {
	return f.current
}

// Started returns how many rounds have begun, the current one included
func (f *RoundFlow) Started() int {
	return f.started
}

// Upcoming returns the rounds already queued behind the current one
func (f *RoundFlow) Upcoming() []Round {
	return append([]Round(nil), f.upcoming...)
}

// Finished is true when the current round is over and nothing follows it
func (f *RoundFlow) Finished() bool {
	return f.current.Over() && len(f.upcoming) == 0 && f.game.Over()
}

func (f *RoundFlow) begin(r Round) error {
	f.current = r
	f.started++
	return r.start()
}

// advance moves past every finished round. When the game is over no more
// rounds are queued and the last round stays current.
func (f *RoundFlow) advance() error {
	for f.current.Over() {
		if len(f.upcoming) == 0 {
			f.upcoming = f.followingRounds()
		}
		if len(f.upcoming) == 0 {
			return nil
		}
		next := f.upcoming[0]
		f.upcoming = f.upcoming[1:]
		if err := f.begin(next); err != nil {
			return err
		}
	}
	return nil
}

func (f *RoundFlow) followingRounds() []Round {
	g := f.game
	if _, ok := f.current.(*InitialAuction); ok {
		return []Round{newStockRound(g, f.priorityDeal())}
	}
	if g.Over() {
		return nil
	}
	n := g.rules.OperatingRounds(g.Phase())
	rounds := make([]Round, 0, n+1)
	for i := 1; i <= n; i++ {
		rounds = append(rounds, newOperatingRound(g, i))
	}
	return append(rounds, newStockRound(g, f.priorityDeal()))
}

func (f *RoundFlow) priorityDeal() *player.Player {
	if dealer, ok := f.current.(PriorityDealer); ok {
		if p, err := dealer.NextPriorityDeal(); err == nil {
			return p
		}
	}
	return f.game.players[0]
}
