package rules

// Definition is the raw, variant-specific data a game is built from.
// It is produced by the configuration layer and validated by New.
type Definition struct {
	Name             string
	BankCash         int
	StartingCash     map[int]int
	ShareSplit       []ShareSplit
	MarketValues     []int
	AuctionCompanies []string
	Privates         []PrivateDefinition
	Majors           []MajorDefinition
	Trains           []TrainDefinition
	OperatingRounds  map[int]int
}

// ShareSplit is a run of identical certificates in a major company's split
type ShareSplit struct {
	Portion int
	Count   int
}

type PrivateDefinition struct {
	Abbreviation string
	Name         string
	FaceValue    int
	Revenue      int
}

type MajorDefinition struct {
	Abbreviation string
	Name         string
}

type TrainDefinition struct {
	Type      string
	Count     int
	FaceValue int
	RustedBy  string
}
