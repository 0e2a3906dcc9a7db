package player

import "github.com/andrescamacho/baron-go/internal/domain/ledger"

// Player is a human participant; their cash and portfolio are derived from the ledger
type Player struct {
	ledger.Account
	name string
}

// NewPlayer creates a new player
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) String() string {
	return p.name
}

// Rotate returns a copy of players starting at index start
func Rotate(players []*Player, start int) []*Player {
	n := len(players)
	out := make([]*Player, 0, n)
	if n == 0 {
		return out
	}
	start = ((start % n) + n) % n
	out = append(out, players[start:]...)
	return append(out, players[:start]...)
}

// IndexOf returns the position of p in players, or -1
func IndexOf(players []*Player, p *Player) int {
	for i, candidate := range players {
		if candidate == p {
			return i
		}
	}
	return -1
}
