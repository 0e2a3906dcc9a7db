package train

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Type describes a class of trains, e.g. "2+1T": two major and one minor station
type Type struct {
	majorStations int
	minorStations int
	faceValue     ledger.Money
	rustedBy      string
}

func NewType(majorStations, minorStations int, faceValue ledger.Money, rustedBy string) (*Type, error) {
	if majorStations <= 0 {
		return nil, fmt.Errorf("major station allowance must be positive, got %d", majorStations)
	}
	if minorStations < 0 {
		return nil, fmt.Errorf("minor station allowance cannot be negative, got %d", minorStations)
	}
	return &Type{
		majorStations: majorStations,
		minorStations: minorStations,
		faceValue:     faceValue,
		rustedBy:      rustedBy,
	}, nil
}

// ParseType reads the "N" or "N+M" notation used in rule files
func ParseType(notation string, faceValue ledger.Money, rustedBy string) (*Type, error) {
	majorPart, minorPart, hasMinor := strings.Cut(strings.TrimSuffix(notation, "T"), "+")
	major, err := strconv.Atoi(majorPart)
	if err != nil {
		return nil, fmt.Errorf("invalid train type %q: %w", notation, err)
	}
	minor := 0
	if hasMinor {
		if minor, err = strconv.Atoi(minorPart); err != nil {
			return nil, fmt.Errorf("invalid train type %q: %w", notation, err)
		}
	}
	return NewType(major, minor, faceValue, rustedBy)
}

func (t *Type) MajorStations() int {
	return t.majorStations
}

func (t *Type) MinorStations() int {
	return t.minorStations
}

func (t *Type) FaceValue() ledger.Money {
	return t.faceValue
}

// RustedBy names the train type whose first purchase retires this one; empty if never
func (t *Type) RustedBy() string {
	return t.rustedBy
}

func (t *Type) String() string {
	if t.minorStations == 0 {
		return fmt.Sprintf("%dT", t.majorStations)
	}
	return fmt.Sprintf("%d+%dT", t.majorStations, t.minorStations)
}

// Train is a single piece of rolling stock
type Train struct {
	ledger.Ownership
	id        string
	trainType *Type
}

// New creates the index-th train of the given type
func New(t *Type, index int) *Train {
	return &Train{id: fmt.Sprintf("%s#%d", t, index), trainType: t}
}

func (t *Train) ID() string {
	return t.id
}

func (t *Train) Type() *Type {
	return t.trainType
}

func (t *Train) FaceValue() ledger.Money {
	return t.trainType.faceValue
}

func (t *Train) Kind() ledger.ItemKind {
	return ledger.KindTrain
}

func (t *Train) String() string {
	return t.id
}

// Trains returns the trains currently held by s
func Trains(s ledger.Shareholder) []*Train {
	var trains []*Train
	for _, item := range s.Holdings() {
		if t, ok := item.(*Train); ok {
			trains = append(trains, t)
		}
	}
	return trains
}

// Largest returns the train with the biggest major station allowance held by s, or nil
func Largest(s ledger.Shareholder) *Train {
	var largest *Train
	for _, t := range Trains(s) {
		if largest == nil || t.trainType.majorStations > largest.trainType.majorStations {
			largest = t
		}
	}
	return largest
}

// NextBatch returns the trains held by s that share the smallest major station allowance
func NextBatch(s ledger.Shareholder) []*Train {
	var batch []*Train
	for _, t := range Trains(s) {
		switch {
		case len(batch) == 0 || t.trainType.majorStations < batch[0].trainType.majorStations:
			batch = []*Train{t}
		case t.trainType.majorStations == batch[0].trainType.majorStations:
			batch = append(batch, t)
		}
	}
	return batch
}
