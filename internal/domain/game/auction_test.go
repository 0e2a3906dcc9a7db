package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/market"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

func currentAuction(t *testing.T, g *game.Game) *game.AuctionTurn {
	t.Helper()
	round, ok := g.CurrentRound().(*game.InitialAuction)
	require.True(t, ok)
	return round.CurrentAuction()
}

func TestAuction_InitialState(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	auction := currentAuction(t, g)

	assert.Equal(t, "alice", auction.CurrentPlayer().Name())
	assert.Equal(t, []action.Type{action.TypeBid, action.TypePass}, auction.AvailableActions())
	assert.False(t, auction.HasWinner())
	assert.Nil(t, auction.HighBid())
	assert.False(t, auction.Done())
}

func TestAuction_BidRotatesBidderToTheBack(t *testing.T) {
	g := newTestGame(t, newTestRules(t))
	auction := currentAuction(t, g)

	act(t, g, &action.Bid{Player: playerNamed(t, g, "alice"), Amount: money(0)})

	names := []string{}
	for _, p := range auction.ActivePlayers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"bob", "carol", "alice"}, names)
	assert.Equal(t, money(0), auction.HighBid().Amount)
}

func TestAuction_BidLegality(t *testing.T) {
	tests := []struct {
		name   string
		amount int
	}{
		{"not a multiple of five", 7},
		{"equal to the high bid", 30},
		{"below the high bid", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, newTestRules(t))
			act(t, g, &action.Bid{Player: playerNamed(t, g, "alice"), Amount: money(30)})

			err := g.Perform(&action.Bid{Player: playerNamed(t, g, "bob"), Amount: money(tt.amount)})

			var target *action.ErrIllegalBidAmount
			require.ErrorAs(t, err, &target)
			assert.Equal(t, money(30), currentAuction(t, g).HighBid().Amount)
			assert.Equal(t, "bob", currentAuction(t, g).CurrentPlayer().Name())
		})
	}
}

func TestAuction_BidAboveCash(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	err := g.Perform(&action.Bid{Player: playerNamed(t, g, "alice"), Amount: money(675)})

	var target *game.ErrInsufficientFunds
	assert.ErrorAs(t, err, &target)
}

func TestAuction_WrongTurn(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	err := g.Perform(&action.Bid{Player: playerNamed(t, g, "bob"), Amount: money(10)})

	require.Error(t, err)
	assert.Equal(t, "bob attempted to act, but it is alice's turn", err.Error())
	kind, _ := shared.ViolationOf(err)
	assert.Equal(t, shared.ViolationProtocol, kind)
	assert.Nil(t, currentAuction(t, g).HighBid())
}

func TestAuction_SelectBeforeWinnerIsInvalid(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	err := g.Perform(&action.SelectCertificate{Player: playerNamed(t, g, "alice"), Certificate: certificate(t, g, "BHC-0")})

	var target *game.ErrInvalidAction
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Attempted to perform select_certificate, Allowed Actions: (bid, pass)", err.Error())
}

func TestAuction_PassesReachAWinnerWhoPaysTheBank(t *testing.T) {
	g := newTestGame(t, newTestRules(t))
	auction := currentAuction(t, g)
	alice := playerNamed(t, g, "alice")
	bankBefore := g.Bank().Balance()

	act(t, g, &action.Bid{Player: alice, Amount: money(35)})
	assert.Len(t, auction.ActivePlayers(), 3)
	act(t, g, &action.Pass{Player: playerNamed(t, g, "bob")})
	assert.Len(t, auction.ActivePlayers(), 2)
	assert.False(t, auction.HasWinner())
	act(t, g, &action.Pass{Player: playerNamed(t, g, "carol")})

	assert.True(t, auction.HasWinner())
	assert.Same(t, alice, auction.Winner())
	assert.Equal(t, money(635), alice.Balance())
	assert.Equal(t, bankBefore.Add(money(35)), g.Bank().Balance())
	assert.Equal(t, []action.Type{action.TypeSelectCertificate}, auction.AvailableActions())
}

func TestAuction_SelectionTransfersCertificateAndStartsNextAuction(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	winner := winAuction(t, g, 30, "YHC-0", nil)

	assert.Equal(t, "alice", winner.Name())
	assert.Same(t, winner, certificate(t, g, "YHC-0").Owner())
	assert.Equal(t, money(640), winner.Balance())
	round := g.CurrentRound().(*game.InitialAuction)
	assert.Equal(t, 2, round.Auctions())
	assert.Equal(t, "bob", round.CurrentAuction().CurrentPlayer().Name())
}

func TestAuction_AllPassWithoutBids(t *testing.T) {
	g := newTestGame(t, newTestRules(t))
	bankBefore := g.Bank().Balance()

	pass(t, g, "alice")
	pass(t, g, "bob")
	pass(t, g, "carol")

	round := g.CurrentRound().(*game.InitialAuction)
	assert.Equal(t, 2, round.Auctions())
	assert.Equal(t, "alice", round.CurrentAuction().CurrentPlayer().Name())
	assert.Equal(t, bankBefore, g.Bank().Balance())
	assert.Len(t, g.Journal().Entries(), 1+3+1+1+1+1)
}

func TestAuction_MajorCompanyNeedsParPrice(t *testing.T) {
	r := newTestRules(t, func(d *rules.Definition) {
		d.AuctionCompanies = []string{"C&N"}
	})
	g := newTestGame(t, r)
	act(t, g, &action.Bid{Player: playerNamed(t, g, "alice"), Amount: money(100)})
	pass(t, g, "bob")
	pass(t, g, "carol")
	alice := playerNamed(t, g, "alice")
	director := certificate(t, g, "C&N-0")

	err := g.Perform(&action.SelectCertificate{Player: alice, Certificate: director})
	var notSet *market.ErrParPriceNotSet
	require.ErrorAs(t, err, &notSet)

	offLadder := money(57)
	err = g.Perform(&action.SelectCertificate{Player: alice, Certificate: director, ParPrice: &offLadder})
	var invalid *market.ErrInvalidStartingPrice
	require.ErrorAs(t, err, &invalid)
	assert.Same(t, g.InitialOffering(), director.Owner())

	par := money(65)
	act(t, g, &action.SelectCertificate{Player: alice, Certificate: director, ParPrice: &par})

	assert.Same(t, alice, director.Owner())
	price, listed := g.Market().Price(majorCompany(t, g, "C&N"))
	assert.True(t, listed)
	assert.Equal(t, par, price)
	assert.Equal(t, game.RoundStock, g.CurrentRound().Kind())
}

func TestInitialAuction_NextPriorityDeal(t *testing.T) {
	g := newTestGame(t, newTestRules(t))
	round := g.CurrentRound().(*game.InitialAuction)

	_, err := round.NextPriorityDeal()
	var notOver *game.ErrRoundNotOver
	require.ErrorAs(t, err, &notOver)

	winAuction(t, g, 30, "BHC-0", nil)
	winAuction(t, g, 50, "YHC-0", nil)

	next, err := round.NextPriorityDeal()
	require.NoError(t, err)
	assert.Equal(t, "carol", next.Name())
	stock := g.CurrentRound().(*game.StockRound)
	assert.Equal(t, "carol", stock.CurrentTurn().Actor().Name())
}

func TestInitialAuction_StaysOverOnceTheOfferingRefills(t *testing.T) {
	g := newTestGame(t, newTestRules(t))
	round := g.CurrentRound().(*game.InitialAuction)
	winAuction(t, g, 30, "BHC-0", nil)
	winAuction(t, g, 50, "YHC-0", nil)
	require.True(t, round.Over())

	// the stock round releases director certificates into the offering
	require.NotEmpty(t, company.Certificates(g.InitialOffering()))
	act(t, g, &action.StartCompany{Player: playerNamed(t, g, "carol"), Company: majorCompany(t, g, "IOW"), ParPrice: money(70)})

	assert.True(t, round.Over())
	assert.Nil(t, round.CurrentTurn())
	assert.Nil(t, round.CurrentAuction())
	next, err := round.NextPriorityDeal()
	require.NoError(t, err)
	assert.Equal(t, "carol", next.Name())
}

func TestInitialAuction_WithoutAuctionCompaniesIsOverAtOnce(t *testing.T) {
	r := newTestRules(t, func(d *rules.Definition) { d.AuctionCompanies = nil })
	g := newTestGame(t, r)

	assert.Equal(t, game.RoundStock, g.CurrentRound().Kind())
	assert.Equal(t, "alice", g.CurrentActor().Name())
}
