package company

import "github.com/andrescamacho/baron-go/internal/domain/ledger"

// Company is a private or major railway company
type Company interface {
	Abbreviation() string
	Name() string
	String() string
}

// PrivateCompany has a fixed face value and pays a fixed revenue every operating round
type PrivateCompany struct {
	abbreviation string
	name         string
	faceValue    ledger.Money
	revenue      ledger.Money
}

func NewPrivateCompany(abbreviation, name string, faceValue, revenue ledger.Money) *PrivateCompany {
	return &PrivateCompany{
		abbreviation: abbreviation,
		name:         name,
		faceValue:    faceValue,
		revenue:      revenue,
	}
}

func (c *PrivateCompany) Abbreviation() string {
	return c.abbreviation
}

func (c *PrivateCompany) Name() string {
	return c.name
}

func (c *PrivateCompany) FaceValue() ledger.Money {
	return c.faceValue
}

func (c *PrivateCompany) Revenue() ledger.Money {
	return c.revenue
}

func (c *PrivateCompany) String() string {
	return c.abbreviation
}

// MajorCompany is a public company that holds its own treasury and trains.
// Its par price lives in the initial offering.
type MajorCompany struct {
	ledger.Account
	abbreviation string
	name         string
}

func NewMajorCompany(abbreviation, name string) *MajorCompany {
	return &MajorCompany{abbreviation: abbreviation, name: name}
}

func (c *MajorCompany) Abbreviation() string {
	return c.abbreviation
}

// Name returns the company's full name; it also names the company as a shareholder
func (c *MajorCompany) Name() string {
	return c.name
}

// IsFloated reports whether the company has received its starting capital
func (c *MajorCompany) IsFloated() bool {
	return len(c.Transactions()) > 0
}

func (c *MajorCompany) String() string {
	return c.abbreviation
}
