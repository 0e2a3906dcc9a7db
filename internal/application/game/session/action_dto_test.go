package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/test/helpers"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(helpers.NewTestRules(t), []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	return g
}

func intPtr(n int) *int {
	return &n
}

func TestResolve_BuildsEachActionType(t *testing.T) {
	g := newGame(t)

	tests := []struct {
		dto  session.ActionDTO
		want action.Type
	}{
		{session.ActionDTO{Type: "bid", Actor: "alice", Amount: 25}, action.TypeBid},
		{session.ActionDTO{Type: "pass", Actor: "bob"}, action.TypePass},
		{session.ActionDTO{Type: "select_certificate", Actor: "alice", Certificate: "C&N-0", ParPrice: intPtr(60)}, action.TypeSelectCertificate},
		{session.ActionDTO{Type: "buy_certificate", Actor: "alice", Source: "Initial Offering", Certificate: "C&N-1", Price: 60}, action.TypeBuyCertificate},
		{session.ActionDTO{Type: "sell_certificates", Actor: "alice", Certificates: []string{"C&N-1", "C&N-2"}}, action.TypeSellCertificates},
		{session.ActionDTO{Type: "start_company", Actor: "alice", Company: "IOW", ParPrice: intPtr(70)}, action.TypeStartCompany},
		{session.ActionDTO{Type: "place_tile", Actor: "alice", Tile: "7", Hex: "F2", Orientation: 3}, action.TypePlaceTile},
		{session.ActionDTO{Type: "place_token", Actor: "alice", Hex: "F2"}, action.TypePlaceToken},
		{session.ActionDTO{Type: "run_trains", Actor: "alice", Amount: 100, Bonus: 10}, action.TypeRunTrains},
		{session.ActionDTO{Type: "payout", Actor: "alice"}, action.TypePayout},
		{session.ActionDTO{Type: "retain", Actor: "alice"}, action.TypeRetain},
		{session.ActionDTO{Type: "buy_train", Actor: "alice", Source: "Initial Offering", Train: "2+1T#0", Price: 250}, action.TypeBuyTrain},
		{session.ActionDTO{Type: "done", Actor: "alice"}, action.TypeDone},
	}

	for _, tt := range tests {
		t.Run(tt.dto.Type, func(t *testing.T) {
			a, err := session.Resolve(g, tt.dto)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Type())
			assert.Equal(t, tt.dto.Actor, a.Actor().Name())
		})
	}
}

func TestResolve_ParPriceIsOptionalForSelection(t *testing.T) {
	g := newGame(t)

	a, err := session.Resolve(g, session.ActionDTO{Type: "select_certificate", Actor: "alice", Certificate: "BHC-0"})
	require.NoError(t, err)

	sel, ok := a.(*action.SelectCertificate)
	require.True(t, ok)
	assert.Nil(t, sel.ParPrice)
	assert.Equal(t, "BHC-0", sel.Certificate.ID())
}

func TestResolve_RejectsBadReferences(t *testing.T) {
	g := newGame(t)

	tests := []struct {
		name string
		dto  session.ActionDTO
	}{
		{"unknown certificate", session.ActionDTO{Type: "select_certificate", Actor: "alice", Certificate: "XYZ-0"}},
		{"unknown source", session.ActionDTO{Type: "buy_certificate", Actor: "alice", Source: "Nowhere", Certificate: "C&N-1"}},
		{"unknown company", session.ActionDTO{Type: "start_company", Actor: "alice", Company: "XYZ", ParPrice: intPtr(60)}},
		{"start without par", session.ActionDTO{Type: "start_company", Actor: "alice", Company: "IOW"}},
		{"sell nothing", session.ActionDTO{Type: "sell_certificates", Actor: "alice"}},
		{"unknown train", session.ActionDTO{Type: "buy_train", Actor: "alice", Source: "Bank", Train: "9+9#0"}},
		{"tile without hex", session.ActionDTO{Type: "place_tile", Actor: "alice", Tile: "7"}},
		{"negative amount", session.ActionDTO{Type: "run_trains", Actor: "alice", Amount: -10}},
		{"bad orientation", session.ActionDTO{Type: "place_tile", Actor: "alice", Tile: "7", Hex: "F2", Orientation: 6}},
		{"bid by holding area", session.ActionDTO{Type: "bid", Actor: "Bank", Amount: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Resolve(g, tt.dto)
			assert.Error(t, err)
		})
	}
}

func TestActionDTO_EncodeDecode(t *testing.T) {
	dto := session.ActionDTO{Type: "sell_certificates", Actor: "alice", Certificates: []string{"C&N-1"}}

	payload, err := dto.Encode()
	require.NoError(t, err)
	decoded, err := session.DecodeActionDTO(payload)
	require.NoError(t, err)

	assert.Equal(t, dto, decoded)
}
