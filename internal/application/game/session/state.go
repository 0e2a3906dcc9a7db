package session

import (
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

// GameState is a read-only snapshot of a game for clients
type GameState struct {
	ID           string         `json:"id"`
	Variant      string         `json:"variant"`
	Status       string         `json:"status"`
	Over         bool           `json:"over"`
	Phase        int            `json:"phase"`
	Round        RoundState     `json:"round"`
	Bank         int            `json:"bank"`
	Offering     HoldingState   `json:"offering"`
	Pool         HoldingState   `json:"pool"`
	Players      []HoldingState `json:"players"`
	Privates     []PrivateState `json:"privates"`
	Majors       []MajorState   `json:"majors"`
	Actions      int            `json:"actions"`
	Transactions int            `json:"transactions"`
}

// RoundState describes the current round and who acts next
type RoundState struct {
	Kind             string        `json:"kind"`
	Name             string        `json:"name"`
	Number           int           `json:"number,omitempty"`
	Actor            string        `json:"actor,omitempty"`
	AvailableActions []string      `json:"available_actions"`
	Auction          *AuctionState `json:"auction,omitempty"`
	Operating        string        `json:"operating,omitempty"`
}

// AuctionState is the state of the auction in progress
type AuctionState struct {
	HighBid int      `json:"high_bid"`
	Bidder  string   `json:"bidder,omitempty"`
	Active  []string `json:"active"`
	Winner  string   `json:"winner,omitempty"`
}

// HoldingState lists what one shareholder holds
type HoldingState struct {
	Name         string   `json:"name"`
	Cash         int      `json:"cash"`
	Certificates []string `json:"certificates"`
	Trains       []string `json:"trains,omitempty"`
}

// PrivateState describes a private company
type PrivateState struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	FaceValue    int    `json:"face_value"`
	Revenue      int    `json:"revenue"`
	Owner        string `json:"owner"`
}

// MajorState describes a major company
type MajorState struct {
	Abbreviation string   `json:"abbreviation"`
	Name         string   `json:"name"`
	Director     string   `json:"director,omitempty"`
	ParPrice     *int     `json:"par_price,omitempty"`
	Price        *int     `json:"price,omitempty"`
	Floated      bool     `json:"floated"`
	Treasury     int      `json:"treasury"`
	Trains       []string `json:"trains"`
}

// NewGameState builds a snapshot of g
func NewGameState(record *game.GameRecord, g *game.Game, actions int) *GameState {
	state := &GameState{
		ID:           record.ID,
		Variant:      record.Variant,
		Status:       string(record.Status),
		Over:         g.Over(),
		Phase:        g.Phase(),
		Round:        roundState(g),
		Bank:         g.Bank().Balance().Amount(),
		Offering:     holdingState(g.InitialOffering()),
		Pool:         holdingState(g.UnavailablePool()),
		Actions:      actions,
		Transactions: g.Journal().Len(),
	}

	for _, p := range g.Players() {
		state.Players = append(state.Players, holdingState(p))
	}
	for _, c := range g.PrivateCompanies() {
		state.Privates = append(state.Privates, PrivateState{
			Abbreviation: c.Abbreviation(),
			Name:         c.Name(),
			FaceValue:    c.FaceValue().Amount(),
			Revenue:      c.Revenue().Amount(),
			Owner:        ownerOf(g, c),
		})
	}
	for _, c := range g.MajorCompanies() {
		major := MajorState{
			Abbreviation: c.Abbreviation(),
			Name:         c.Name(),
			Floated:      c.IsFloated(),
			Treasury:     c.Balance().Amount(),
			Trains:       trainIDs(c),
		}
		if d := g.Director(c); d != nil {
			major.Director = d.Name()
		}
		if par, ok := g.InitialOffering().ParPrice(c); ok {
			major.ParPrice = amountOf(par)
		}
		if price, ok := g.Market().Price(c); ok {
			major.Price = amountOf(price)
		}
		state.Majors = append(state.Majors, major)
	}
	return state
}

func roundState(g *game.Game) RoundState {
	round := g.CurrentRound()
	state := RoundState{
		Kind:             string(round.Kind()),
		Name:             round.Name(),
		AvailableActions: []string{},
	}
	if actor := g.CurrentActor(); actor != nil {
		state.Actor = actor.Name()
	}
	if turn := g.CurrentTurn(); turn != nil {
		for _, t := range turn.AvailableActions() {
			state.AvailableActions = append(state.AvailableActions, t.String())
		}
	}

	switch r := round.(type) {
	case *game.InitialAuction:
		if auction := r.CurrentAuction(); auction != nil {
			state.Auction = auctionState(auction)
		}
	case *game.OperatingRound:
		state.Number = r.Number()
		if turn, ok := r.CurrentTurn().(*game.OperatingTurn); ok {
			state.Operating = turn.Company().Abbreviation()
		}
	}
	return state
}

func auctionState(t *game.AuctionTurn) *AuctionState {
	state := &AuctionState{Active: []string{}}
	if bid := t.HighBid(); bid != nil {
		state.HighBid = bid.Amount.Amount()
		state.Bidder = bid.Player.Name()
	}
	for _, p := range t.ActivePlayers() {
		state.Active = append(state.Active, p.Name())
	}
	if t.HasWinner() {
		state.Winner = t.Winner().Name()
	}
	return state
}

func holdingState(s ledger.Shareholder) HoldingState {
	state := HoldingState{
		Name:         s.Name(),
		Cash:         s.Balance().Amount(),
		Certificates: []string{},
		Trains:       trainIDs(s),
	}
	for _, cert := range company.Certificates(s) {
		state.Certificates = append(state.Certificates, cert.ID())
	}
	return state
}

func trainIDs(s ledger.Shareholder) []string {
	ids := []string{}
	for _, t := range train.Trains(s) {
		ids = append(ids, t.ID())
	}
	return ids
}

func ownerOf(g *game.Game, c company.Company) string {
	for _, cert := range g.Certificates() {
		if cert.Company() == c && cert.IsControlling() && cert.Owner() != nil {
			return cert.Owner().Name()
		}
	}
	return ""
}

func amountOf(m ledger.Money) *int {
	n := m.Amount()
	return &n
}
