package company

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Portion is a share of a company's equity in whole percent
type Portion int

const (
	// DirectorPortion is the size of a major company's director certificate
	DirectorPortion Portion = 20
	// WholeCompany is the portion of a private company's single certificate
	WholeCompany Portion = 100
)

func (p Portion) String() string {
	return fmt.Sprintf("%d%%", int(p))
}

// NumSharesFor returns how many shares a certificate of the given portion counts as
func NumSharesFor(p Portion) int {
	if p == DirectorPortion {
		return 2
	}
	return 1
}

// Certificate is a fractional ownership unit of a company.
// Certificates are created once at setup and only ever change owner.
type Certificate struct {
	ledger.Ownership
	id      string
	company Company
	portion Portion
}

// NewCertificate creates the index-th certificate of a company's share split
func NewCertificate(c Company, portion Portion, index int) *Certificate {
	return &Certificate{
		id:      fmt.Sprintf("%s-%d", c.Abbreviation(), index),
		company: c,
		portion: portion,
	}
}

func (c *Certificate) ID() string {
	return c.id
}

func (c *Certificate) Company() Company {
	return c.company
}

func (c *Certificate) Portion() Portion {
	return c.portion
}

func (c *Certificate) NumShares() int {
	return NumSharesFor(c.portion)
}

// IsDirector is true for the two-share certificate and for single-certificate companies
func (c *Certificate) IsDirector() bool {
	return c.NumShares() == 2 || c.portion == WholeCompany
}

func (c *Certificate) IsControlling() bool {
	return c.IsDirector() || c.portion == WholeCompany
}

// IsPrivate reports whether the certificate belongs to a private company
func (c *Certificate) IsPrivate() bool {
	_, ok := c.company.(*PrivateCompany)
	return ok
}

func (c *Certificate) Kind() ledger.ItemKind {
	return ledger.KindCertificate
}

func (c *Certificate) String() string {
	return c.id
}

// Describe renders the certificate for humans, e.g. "20% C&N"
func (c *Certificate) Describe() string {
	return fmt.Sprintf("%s %s", c.portion, c.company.Abbreviation())
}
