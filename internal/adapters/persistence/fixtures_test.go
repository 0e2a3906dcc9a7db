package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/test/helpers"
)

func newStoredGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(helpers.NewTestRules(t), []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	return g
}
