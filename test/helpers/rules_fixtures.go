package helpers

import (
	"testing"

	"github.com/andrescamacho/baron-go/internal/domain/rules"
)

// TestVariant is the name the test rules are registered under
const TestVariant = "test"

// TestRulesDefinition is a small two-private, two-major variant: the
// initial auction covers BHC and YHC, and the market ladder runs 0 to 100.
func TestRulesDefinition() rules.Definition {
	return rules.Definition{
		Name:             TestVariant,
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
}

// NewTestRules builds the test variant
func NewTestRules(t *testing.T) *rules.Rules {
	r, err := rules.New(TestRulesDefinition())
	if err != nil {
		t.Fatalf("failed to build test rules: %v", err)
	}
	return r
}

// TestRulesLoader resolves only the test variant
func TestRulesLoader(variant string) (*rules.Rules, error) {
	if variant != TestVariant {
		return nil, &rules.ErrInvalidRules{Reason: "unknown variant " + variant}
	}
	return rules.New(TestRulesDefinition())
}
