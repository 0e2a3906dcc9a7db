package rules

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

// TrainBatch is a number of identical trains of one type
type TrainBatch struct {
	Type  *train.Type
	Count int
}

// Rules is the validated, read-only rule set of one game variant
type Rules struct {
	name             string
	bankCash         ledger.Money
	startingCash     map[int]ledger.Money
	shareSplit       []company.Portion
	marketValues     []ledger.Money
	auctionCompanies []string
	privates         []PrivateDefinition
	majors           []MajorDefinition
	trains           []TrainBatch
	operatingRounds  map[int]int
}

// New validates a definition and builds the rules from it
func New(def Definition) (*Rules, error) {
	if def.Name == "" {
		return nil, &ErrInvalidRules{Reason: "variant name is required"}
	}
	if def.BankCash <= 0 {
		return nil, &ErrInvalidRules{Reason: "bank cash must be positive"}
	}
	if len(def.StartingCash) == 0 {
		return nil, &ErrInvalidRules{Reason: "starting cash needs at least one player count"}
	}
	if len(def.OperatingRounds) == 0 {
		return nil, &ErrInvalidRules{Reason: "operating rounds need at least one phase"}
	}

	r := &Rules{
		name:             def.Name,
		bankCash:         ledger.NewMoney(def.BankCash),
		startingCash:     make(map[int]ledger.Money, len(def.StartingCash)),
		auctionCompanies: append([]string(nil), def.AuctionCompanies...),
		privates:         append([]PrivateDefinition(nil), def.Privates...),
		majors:           append([]MajorDefinition(nil), def.Majors...),
		operatingRounds:  make(map[int]int, len(def.OperatingRounds)),
	}

	for players, cash := range def.StartingCash {
		if players <= 0 || cash <= 0 {
			return nil, &ErrInvalidRules{Reason: fmt.Sprintf("invalid starting cash %d for %d players", cash, players)}
		}
		r.startingCash[players] = ledger.NewMoney(cash)
	}
	for phase, rounds := range def.OperatingRounds {
		if rounds <= 0 {
			return nil, &ErrInvalidRules{Reason: fmt.Sprintf("phase %d must have at least one operating round", phase)}
		}
		r.operatingRounds[phase] = rounds
	}

	if err := r.buildShareSplit(def.ShareSplit); err != nil {
		return nil, err
	}
	if err := r.buildMarket(def.MarketValues); err != nil {
		return nil, err
	}
	if err := r.buildTrains(def.Trains); err != nil {
		return nil, err
	}
	if err := r.checkCompanies(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rules) buildShareSplit(split []ShareSplit) error {
	total := 0
	for _, s := range split {
		if s.Portion <= 0 || s.Count <= 0 {
			return &ErrInvalidRules{Reason: fmt.Sprintf("invalid share split entry %d x %d%%", s.Count, s.Portion)}
		}
		for i := 0; i < s.Count; i++ {
			r.shareSplit = append(r.shareSplit, company.Portion(s.Portion))
		}
		total += s.Portion * s.Count
	}
	if total != int(company.WholeCompany) {
		return &ErrInvalidRules{Reason: fmt.Sprintf("share split must sum to 100%%, got %d%%", total)}
	}
	if r.shareSplit[0] != company.DirectorPortion {
		return &ErrInvalidRules{Reason: "share split must start with the director's certificate"}
	}
	return nil
}

func (r *Rules) buildMarket(values []int) error {
	if len(values) == 0 {
		return &ErrInvalidRules{Reason: "market needs at least one value"}
	}
	for i, v := range values {
		if v < 0 || (i > 0 && v <= values[i-1]) {
			return &ErrInvalidRules{Reason: "market values must be ascending and not negative"}
		}
		r.marketValues = append(r.marketValues, ledger.NewMoney(v))
	}
	return nil
}

func (r *Rules) buildTrains(defs []TrainDefinition) error {
	if len(defs) == 0 {
		return &ErrInvalidRules{Reason: "train roster is empty"}
	}
	for _, d := range defs {
		t, err := train.ParseType(d.Type, ledger.NewMoney(d.FaceValue), d.RustedBy)
		if err != nil {
			return &ErrInvalidRules{Reason: err.Error()}
		}
		if d.Count <= 0 {
			return &ErrInvalidRules{Reason: fmt.Sprintf("train %s needs a positive count", t)}
		}
		r.trains = append(r.trains, TrainBatch{Type: t, Count: d.Count})
	}
	return nil
}

func (r *Rules) checkCompanies() error {
	seen := make(map[string]bool)
	for _, p := range r.privates {
		if p.Abbreviation == "" || seen[p.Abbreviation] {
			return &ErrInvalidRules{Reason: fmt.Sprintf("duplicate or empty company %q", p.Abbreviation)}
		}
		seen[p.Abbreviation] = true
	}
	for _, m := range r.majors {
		if m.Abbreviation == "" || seen[m.Abbreviation] {
			return &ErrInvalidRules{Reason: fmt.Sprintf("duplicate or empty company %q", m.Abbreviation)}
		}
		seen[m.Abbreviation] = true
	}
	for _, abbr := range r.auctionCompanies {
		if !seen[abbr] {
			return &ErrInvalidRules{Reason: fmt.Sprintf("auction lists unknown company %q", abbr)}
		}
	}
	return nil
}

func (r *Rules) Name() string {
	return r.name
}

func (r *Rules) BankCash() ledger.Money {
	return r.bankCash
}

// StartingCash returns each player's starting money for the given table size
func (r *Rules) StartingCash(players int) (ledger.Money, error) {
	cash, ok := r.startingCash[players]
	if !ok {
		return ledger.Money{}, &ErrUnsupportedPlayerCount{Variant: r.name, Players: players, Supported: r.PlayerCounts()}
	}
	return cash, nil
}

// PlayerCounts returns the supported table sizes in ascending order
func (r *Rules) PlayerCounts() []int {
	counts := make([]int, 0, len(r.startingCash))
	for n := range r.startingCash {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

// ShareSplit returns the portion of each certificate of a major company, director first
func (r *Rules) ShareSplit() []company.Portion {
	return append([]company.Portion(nil), r.shareSplit...)
}

// TotalShares is the number of shares a major company's split adds up to
func (r *Rules) TotalShares() int {
	total := 0
	for _, p := range r.shareSplit {
		total += company.NumSharesFor(p)
	}
	return total
}

func (r *Rules) MarketValues() []ledger.Money {
	return append([]ledger.Money(nil), r.marketValues...)
}

func (r *Rules) AuctionCompanies() []string {
	return append([]string(nil), r.auctionCompanies...)
}

func (r *Rules) Privates() []PrivateDefinition {
	return append([]PrivateDefinition(nil), r.privates...)
}

func (r *Rules) Majors() []MajorDefinition {
	return append([]MajorDefinition(nil), r.majors...)
}

// Trains returns the train roster in purchase order
func (r *Rules) Trains() []TrainBatch {
	return append([]TrainBatch(nil), r.trains...)
}

// OperatingRounds returns how many operating rounds follow a stock round in
// the given phase: the entry for the greatest phase not above it, or the
// earliest entry when the phase precedes them all.
func (r *Rules) OperatingRounds(phase int) int {
	phases := make([]int, 0, len(r.operatingRounds))
	for p := range r.operatingRounds {
		phases = append(phases, p)
	}
	sort.Ints(phases)

	rounds := r.operatingRounds[phases[0]]
	for _, p := range phases {
		if p > phase {
			break
		}
		rounds = r.operatingRounds[p]
	}
	return rounds
}
