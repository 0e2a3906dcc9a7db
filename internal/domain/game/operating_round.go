package game

import (
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
)

// OperatingRound gives each floated major company one turn, in market order
type OperatingRound struct {
	game    *Game
	number  int
	queue   []*OperatingTurn
	current *OperatingTurn
}

func newOperatingRound(g *Game, number int) *OperatingRound {
	return &OperatingRound{game: g, number: number}
}

func (r *OperatingRound) Kind() RoundKind {
	return RoundOperating
}

func (r *OperatingRound) Name() string {
	return "Operating Round"
}

// Number is the position of this round within its set of operating rounds, starting at 1
func (r *OperatingRound) Number() int {
	return r.number
}

// start pays private company revenue and queues the company turns
func (r *OperatingRound) start() error {
	g := r.game
	for _, p := range g.players {
		for _, cert := range company.PrivateCertificates(p) {
			private, ok := cert.Company().(*company.PrivateCompany)
			if !ok || private.Revenue().IsZero() {
				continue
			}
			if _, err := g.journal.Give(g.bank, p, private.Revenue()); err != nil {
				return err
			}
		}
	}

	for _, c := range g.market.OperatingOrder() {
		if !c.IsFloated() {
			continue
		}
		r.queue = append(r.queue, newOperatingTurn(g, c, directorOrBank(g, c)))
	}
	r.advance()
	return nil
}

func (r *OperatingRound) advance() {
	if len(r.queue) == 0 {
		r.current = nil
		return
	}
	r.current, r.queue = r.queue[0], r.queue[1:]
}

// Over is true once every company has operated
func (r *OperatingRound) Over() bool {
	return r.current == nil
}

func (r *OperatingRound) CurrentTurn() Turn {
	if r.current == nil {
		return nil
	}
	return r.current
}

func (r *OperatingRound) Perform(a action.Action) error {
	if err := performInRound(r, a); err != nil {
		return err
	}
	if r.current.Done() {
		r.advance()
	}
	return nil
}
