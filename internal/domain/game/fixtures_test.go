package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/player"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
)

func newTestRules(t *testing.T, mutate ...func(d *rules.Definition)) *rules.Rules {
	t.Helper()
	def := rules.Definition{
		Name:             "test",
		BankCash:         100000,
		StartingCash:     map[int]int{2: 1000, 3: 670, 4: 500},
		ShareSplit:       []rules.ShareSplit{{Portion: 20, Count: 1}, {Portion: 10, Count: 8}},
		MarketValues:     []int{0, 50, 55, 60, 65, 70, 75, 80, 90, 100},
		AuctionCompanies: []string{"BHC", "YHC"},
		Privates: []rules.PrivateDefinition{
			{Abbreviation: "BHC", Name: "Brading Harbour Company", FaceValue: 30, Revenue: 5},
			{Abbreviation: "YHC", Name: "Yarmouth Harbour Company", FaceValue: 50, Revenue: 10},
		},
		Majors: []rules.MajorDefinition{
			{Abbreviation: "C&N", Name: "Cowes & Newport"},
			{Abbreviation: "IOW", Name: "Isle of Wight (Eastern Section)"},
		},
		Trains: []rules.TrainDefinition{
			{Type: "2+1", Count: 2, FaceValue: 250, RustedBy: "4+2"},
			{Type: "3+2", Count: 2, FaceValue: 300},
		},
		OperatingRounds: map[int]int{2: 1, 3: 2},
	}
	for _, m := range mutate {
		m(&def)
	}
	r, err := rules.New(def)
	require.NoError(t, err)
	return r
}

func newTestGame(t *testing.T, r *rules.Rules, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(r, []string{"alice", "bob", "carol"}, opts...)
	require.NoError(t, err)
	return g
}

func act(t *testing.T, g *game.Game, a action.Action) {
	t.Helper()
	require.NoError(t, g.Perform(a))
}

func playerNamed(t *testing.T, g *game.Game, name string) *player.Player {
	t.Helper()
	p, ok := g.Player(name)
	require.True(t, ok, "player %s", name)
	return p
}

func certificate(t *testing.T, g *game.Game, id string) *company.Certificate {
	t.Helper()
	cert, ok := g.Certificate(id)
	require.True(t, ok, "certificate %s", id)
	return cert
}

func majorCompany(t *testing.T, g *game.Game, abbr string) *company.MajorCompany {
	t.Helper()
	c, ok := g.MajorCompany(abbr)
	require.True(t, ok, "company %s", abbr)
	return c
}

func money(amount int) ledger.Money {
	return ledger.NewMoney(amount)
}

// winAuction lets the player to act bid and everyone else pass, then selects certID
func winAuction(t *testing.T, g *game.Game, amount int, certID string, par *ledger.Money) *player.Player {
	t.Helper()
	round, ok := g.CurrentRound().(*game.InitialAuction)
	require.True(t, ok, "expected the initial auction, got %s", g.CurrentRound().Name())
	auction := round.CurrentAuction()
	bidder := auction.CurrentPlayer()

	act(t, g, &action.Bid{Player: bidder, Amount: money(amount)})
	for !auction.HasWinner() {
		act(t, g, &action.Pass{Player: auction.CurrentPlayer()})
	}
	act(t, g, &action.SelectCertificate{Player: bidder, Certificate: certificate(t, g, certID), ParPrice: par})
	return bidder
}

// newStockRoundGame plays the initial auction: alice buys BHC for 30 and bob
// buys YHC for 50, so the first stock round starts with carol.
func newStockRoundGame(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()
	g := newTestGame(t, newTestRules(t), opts...)
	winAuction(t, g, 30, "BHC-0", nil)
	winAuction(t, g, 50, "YHC-0", nil)
	require.Equal(t, game.RoundStock, g.CurrentRound().Kind())
	return g
}

func buyFromOffering(t *testing.T, g *game.Game, name, certID string) {
	t.Helper()
	cert := certificate(t, g, certID)
	price, err := g.QuoteCertificate(g.InitialOffering(), cert)
	require.NoError(t, err)
	act(t, g, &action.BuyCertificate{
		Player:      playerNamed(t, g, name),
		Source:      g.InitialOffering(),
		Certificate: cert,
		Price:       price,
	})
}

func pass(t *testing.T, g *game.Game, name string) {
	t.Helper()
	act(t, g, &action.Pass{Player: playerNamed(t, g, name)})
}

// newOperatingRoundGame ends the first stock round with alice holding 60% of
// C&N at par 60 and bob 10%, so C&N has floated and operates next.
func newOperatingRoundGame(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()
	g := newStockRoundGame(t, opts...)

	pass(t, g, "carol")
	act(t, g, &action.StartCompany{Player: playerNamed(t, g, "alice"), Company: majorCompany(t, g, "C&N"), ParPrice: money(60)})
	buyFromOffering(t, g, "bob", "C&N-1")
	pass(t, g, "carol")
	buyFromOffering(t, g, "alice", "C&N-2")
	pass(t, g, "bob")
	pass(t, g, "carol")
	buyFromOffering(t, g, "alice", "C&N-3")
	pass(t, g, "bob")
	pass(t, g, "carol")
	buyFromOffering(t, g, "alice", "C&N-4")
	pass(t, g, "bob")
	pass(t, g, "carol")
	buyFromOffering(t, g, "alice", "C&N-5")
	pass(t, g, "bob")
	pass(t, g, "carol")
	pass(t, g, "alice")

	require.Equal(t, game.RoundOperating, g.CurrentRound().Kind())
	return g
}
