package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

func TestLoadRules_Builtin1860(t *testing.T) {
	r, err := LoadRules("1860", "")
	require.NoError(t, err)

	assert.Equal(t, "1860", r.Name())
	assert.Len(t, r.Privates(), 5)
	assert.Len(t, r.Majors(), 8)
	assert.Equal(t, 10, r.TotalShares())
	assert.Len(t, r.MarketValues(), 55)
	assert.Equal(t, []int{2, 3, 4}, r.PlayerCounts())

	cash, err := r.StartingCash(3)
	require.NoError(t, err)
	assert.Equal(t, 670, cash.Amount())

	trains := 0
	for _, batch := range r.Trains() {
		trains += batch.Count
	}
	assert.Equal(t, 34, trains)

	assert.Equal(t, 1, r.OperatingRounds(2))
	assert.Equal(t, 2, r.OperatingRounds(4))
	assert.Equal(t, 3, r.OperatingRounds(9))
}

func TestLoadRules_UnknownVariant(t *testing.T) {
	_, err := LoadRules("1830", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rules variant")
}

func TestLoadRules_DirectoryOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	variant := `
name: tiny
bank_cash: 12000
starting_cash:
  "2": 600
share_split:
  - portion: 20
    count: 1
  - portion: 10
    count: 8
stock_market:
  values: [0, 50, 60, 70]
auction: [BHC]
companies:
  private:
    - abbreviation: BHC
      name: Brading Harbour Company
      face_value: 30
      revenue: 5
  major:
    - abbreviation: C&N
      name: Cowes & Newport
trains:
  - type: "2+1"
    count: 2
    face_value: 250
operating_rounds:
  "2": 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(variant), 0644))

	r, err := LoadRules("tiny", dir)
	require.NoError(t, err)
	assert.Equal(t, "tiny", r.Name())
	assert.Equal(t, 12000, r.BankCash().Amount())
	assert.Len(t, r.Majors(), 1)

	variants, err := AvailableVariants(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"1860", "tiny"}, variants)

	// The built-in variant is still reachable through the same directory
	_, err = LoadRules("1860", dir)
	assert.NoError(t, err)
}

func TestLoadRules_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	variant := `
name: broken
bank_cash: 0
starting_cash:
  "2": 600
share_split:
  - portion: 20
    count: 1
stock_market:
  values: [0, 50]
companies:
  major:
    - abbreviation: C&N
      name: Cowes & Newport
trains:
  - type: "2+1"
    count: 1
    face_value: 250
operating_rounds:
  "2": 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(variant), 0644))

	_, err := LoadRules("broken", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules broken")
}

func TestRulesFile_DefinitionRejectsNonNumericKeys(t *testing.T) {
	file := &RulesFile{
		StartingCash:    map[string]int{"two": 1000},
		OperatingRounds: map[string]int{"2": 1},
	}

	_, err := file.Definition()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting_cash")
}

func TestNewGame_With1860Rules(t *testing.T) {
	r, err := LoadRules("1860", "")
	require.NoError(t, err)

	g, err := game.New(r, []string{"alice", "bob"})
	require.NoError(t, err)

	assert.Equal(t, 99998000, g.Bank().Balance().Amount())
	for _, p := range g.Players() {
		assert.Equal(t, 1000, p.Balance().Amount())
	}

	// Six auction companies are up for auction, the rest wait in the pool
	inPool := len(company.Certificates(g.UnavailablePool()))
	inOffering := len(company.Certificates(g.InitialOffering()))
	assert.Equal(t, 77, inPool+inOffering)
	assert.Equal(t, 6, inOffering)

	assert.Len(t, train.Trains(g.InitialOffering()), 5)
	assert.Len(t, train.Trains(g.UnavailablePool()), 29)
	assert.Equal(t, 2, g.Phase())
}
