package market

import (
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Bank is the game's cash reserve and the buyer of sold shares
type Bank struct {
	ledger.Account
}

func NewBank() *Bank {
	return &Bank{}
}

func (b *Bank) Name() string {
	return "Bank"
}

// UnavailablePool holds certificates and trains that have not been released into play
type UnavailablePool struct {
	ledger.Account
}

func NewUnavailablePool() *UnavailablePool {
	return &UnavailablePool{}
}

func (p *UnavailablePool) Name() string {
	return "Unavailable Pool"
}

// ControllingCertificate returns the pool's controlling certificate of c, or nil
func (p *UnavailablePool) ControllingCertificate(c company.Company) *company.Certificate {
	for _, cert := range company.CertificatesFor(p, c) {
		if cert.IsControlling() {
			return cert
		}
	}
	return nil
}

// InitialOffering holds certificates available for purchase at par and
// remembers each major company's par price.
type InitialOffering struct {
	ledger.Account
	parPrices map[*company.MajorCompany]ledger.Money
}

func NewInitialOffering() *InitialOffering {
	return &InitialOffering{parPrices: make(map[*company.MajorCompany]ledger.Money)}
}

func (o *InitialOffering) Name() string {
	return "Initial Offering"
}

// SetParPrice fixes the par price of c; it can only be set once
func (o *InitialOffering) SetParPrice(c *company.MajorCompany, price ledger.Money) error {
	if _, ok := o.parPrices[c]; ok {
		return &ErrParPriceAlreadySet{Company: c.Abbreviation()}
	}
	o.parPrices[c] = price
	return nil
}

// ParPrice returns the par price of c, if set
func (o *InitialOffering) ParPrice(c *company.MajorCompany) (ledger.Money, bool) {
	price, ok := o.parPrices[c]
	return price, ok
}

// Cost is what the offering charges for a certificate: the face value of a
// private company, or par times the number of shares for a major company.
func (o *InitialOffering) Cost(cert *company.Certificate) (ledger.Money, error) {
	switch c := cert.Company().(type) {
	case *company.PrivateCompany:
		return c.FaceValue(), nil
	case *company.MajorCompany:
		par, ok := o.parPrices[c]
		if !ok {
			return ledger.Money{}, &ErrParPriceNotSet{Company: c.Abbreviation()}
		}
		return par.Times(cert.NumShares()), nil
	default:
		return ledger.Money{}, &ErrParPriceNotSet{Company: cert.Company().Abbreviation()}
	}
}
