package game_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

func TestNew_SetsUpTheTable(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	assert.Equal(t, money(100000-3*670), g.Bank().Balance())
	for _, p := range g.Players() {
		assert.Equal(t, money(670), p.Balance(), p.Name())
	}
	assert.Len(t, g.Certificates(), 2+2*9)
	assert.Len(t, company.Certificates(g.UnavailablePool()), 18)
	assert.Len(t, company.Certificates(g.InitialOffering()), 2, "the auctioned companies are on offer")
	assert.Len(t, train.Trains(g.InitialOffering()), 2)
	assert.Len(t, train.Trains(g.UnavailablePool()), 2)
	assert.Equal(t, 2, g.Phase())
	assert.False(t, g.Over())
	assert.Equal(t, game.RoundInitialAuction, g.CurrentRound().Kind())
	assert.Equal(t, "alice", g.CurrentActor().Name())
	assert.Equal(t, 1, g.Flow().Started())
}

func TestNew_RejectsBadPlayerLists(t *testing.T) {
	r := newTestRules(t)

	tests := []struct {
		name  string
		names []string
	}{
		{"unsupported count", []string{"alice"}},
		{"duplicate", []string{"alice", "alice"}},
		{"empty name", []string{"alice", ""}},
		{"reserved name", []string{"alice", "Bank"}},
		{"company name", []string{"alice", "C&N"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.New(r, tt.names)

			assert.Error(t, err)
		})
	}
}

func TestGame_Lookups(t *testing.T) {
	g := newTestGame(t, newTestRules(t))

	holder, ok := g.Shareholder("Bank")
	assert.True(t, ok)
	assert.Same(t, g.Bank(), holder)

	holder, ok = g.Shareholder("Initial Offering")
	assert.True(t, ok)
	assert.Same(t, g.InitialOffering(), holder)

	holder, ok = g.Shareholder("bob")
	assert.True(t, ok)
	assert.Equal(t, "bob", holder.Name())

	holder, ok = g.Shareholder("IOW")
	assert.True(t, ok)
	assert.Same(t, majorCompany(t, g, "IOW"), holder)

	_, ok = g.Shareholder("nobody")
	assert.False(t, ok)

	c, ok := g.Company("BHC")
	assert.True(t, ok)
	assert.Equal(t, "Brading Harbour Company", c.Name())

	_, ok = g.Train("3+2T#1")
	assert.True(t, ok)
	assert.Len(t, g.Shareholders(), 3+3+2)
}

func TestGame_QuoteCertificate(t *testing.T) {
	g := newOperatingRoundGame(t)
	cn := majorCompany(t, g, "C&N")

	fromOffering, err := g.QuoteCertificate(g.InitialOffering(), certificate(t, g, "C&N-6"))
	require.NoError(t, err)
	assert.Equal(t, money(60), fromOffering)

	require.NoError(t, g.Market().ChangePrice(cn, 2))
	fromBank, err := g.QuoteCertificate(g.Bank(), certificate(t, g, "C&N-0"))
	require.NoError(t, err)
	assert.Equal(t, money(140), fromBank)

	private, err := g.QuoteCertificate(playerNamed(t, g, "alice"), certificate(t, g, "BHC-0"))
	require.NoError(t, err)
	assert.Equal(t, money(30), private)

	_, err = g.QuoteCertificate(g.Bank(), certificate(t, g, "IOW-1"))
	assert.Error(t, err)
}

func TestGame_ConservesMoney(t *testing.T) {
	g := newOperatingRoundGame(t)
	alice := playerNamed(t, g, "alice")
	act(t, g, &action.RunTrains{Director: alice, Amount: money(100), Bonus: money(10)})
	act(t, g, &action.Payout{Director: alice})

	total := ledger.Money{}
	for _, s := range g.Shareholders() {
		total = total.Add(s.Balance())
	}

	assert.Equal(t, g.Rules().BankCash(), total)
}

func TestGame_EveryItemHasOneHolder(t *testing.T) {
	g := newOperatingRoundGame(t)

	holders := make(map[ledger.Ownable][]string)
	for _, s := range g.Shareholders() {
		for _, item := range s.Holdings() {
			holders[item] = append(holders[item], s.Name())
		}
	}

	for _, cert := range g.Certificates() {
		require.Len(t, holders[cert], 1, cert.ID())
		assert.Equal(t, cert.Owner().Name(), holders[cert][0])
	}
	for _, tr := range g.Trains() {
		require.Len(t, holders[tr], 1, tr.ID())
	}
}

func TestGame_DerivedQueriesAreIdempotent(t *testing.T) {
	g := newOperatingRoundGame(t)
	alice := playerNamed(t, g, "alice")

	first := company.Certificates(alice)
	balance := alice.Balance()
	directorships := company.Directorships(alice)

	assert.Equal(t, first, company.Certificates(alice))
	assert.Equal(t, balance, alice.Balance())
	assert.Equal(t, directorships, company.Directorships(alice))
}

func TestRoundFlow_QueuesOperatingRoundsByPhase(t *testing.T) {
	g := newOperatingRoundGame(t)

	upcoming := g.Flow().Upcoming()

	require.Len(t, upcoming, 1)
	assert.Equal(t, game.RoundStock, upcoming[0].Kind())
	assert.Equal(t, 1, g.CurrentRound().(*game.OperatingRound).Number())
}

func TestRoundFlow_LastRoundStaysCurrentWhenGameIsOver(t *testing.T) {
	r := newTestRules(t, func(d *rules.Definition) {
		d.BankCash = 3 * 670
		d.AuctionCompanies = nil
	})
	g := newTestGame(t, r)
	require.True(t, g.Over())
	require.Equal(t, game.RoundStock, g.CurrentRound().Kind())
	round := g.CurrentRound()

	pass(t, g, "alice")
	pass(t, g, "bob")
	pass(t, g, "carol")

	assert.Same(t, round, g.CurrentRound())
	assert.True(t, g.Flow().Finished())
	assert.Nil(t, g.CurrentTurn())
	assert.Nil(t, g.CurrentActor())
	err := g.Perform(&action.Pass{Player: playerNamed(t, g, "alice")})
	var over *game.ErrGameOver
	assert.ErrorAs(t, err, &over)
}

type recordingMap struct {
	tiles  []string
	tokens []string
}

func (m *recordingMap) PlaceTile(c *company.MajorCompany, tile, hex string, _ int) error {
	m.tiles = append(m.tiles, c.Abbreviation()+":"+tile+"@"+hex)
	return nil
}

func (m *recordingMap) PlaceToken(c *company.MajorCompany, hex string) error {
	m.tokens = append(m.tokens, c.Abbreviation()+"@"+hex)
	return nil
}

func TestGame_TrackMapReceivesPlacements(t *testing.T) {
	trackMap := &recordingMap{}
	g := newOperatingRoundGame(t, game.WithTrackMap(trackMap))
	alice := playerNamed(t, g, "alice")

	act(t, g, &action.PlaceTile{Director: alice, Tile: "57", Hex: "F8", Orientation: 2})
	act(t, g, &action.PlaceToken{Director: alice, Hex: "F8"})

	assert.Equal(t, []string{"C&N:57@F8"}, trackMap.tiles)
	assert.Equal(t, []string{"C&N@F8"}, trackMap.tokens)
}

type rejectingMap struct{}

func (rejectingMap) PlaceTile(*company.MajorCompany, string, string, int) error {
	return errors.New("hex is not connected")
}

func (rejectingMap) PlaceToken(*company.MajorCompany, string) error {
	return errors.New("no free city slot")
}

func TestGame_RejectedPlacementIsNotRecorded(t *testing.T) {
	g := newOperatingRoundGame(t, game.WithTrackMap(rejectingMap{}))
	alice := playerNamed(t, g, "alice")

	err := g.Perform(&action.PlaceTile{Director: alice, Tile: "57", Hex: "A1"})

	assert.EqualError(t, err, "hex is not connected")
	assert.Empty(t, g.CurrentTurn().History())
}
