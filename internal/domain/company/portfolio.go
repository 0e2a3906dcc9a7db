package company

import "github.com/andrescamacho/baron-go/internal/domain/ledger"

// Certificates returns the certificates currently held by s
func Certificates(s ledger.Shareholder) []*Certificate {
	var certs []*Certificate
	for _, item := range s.Holdings() {
		if cert, ok := item.(*Certificate); ok {
			certs = append(certs, cert)
		}
	}
	return certs
}

// CertificatesFor returns the certificates of company c held by s
func CertificatesFor(s ledger.Shareholder, c Company) []*Certificate {
	var certs []*Certificate
	for _, cert := range Certificates(s) {
		if cert.Company() == c {
			certs = append(certs, cert)
		}
	}
	return certs
}

// PercentageOwned sums the portions of c held by s
func PercentageOwned(s ledger.Shareholder, c Company) Portion {
	var total Portion
	for _, cert := range CertificatesFor(s, c) {
		total += cert.Portion()
	}
	return total
}

// Directorships returns the director certificates held by s
func Directorships(s ledger.Shareholder) []*Certificate {
	var certs []*Certificate
	for _, cert := range Certificates(s) {
		if cert.IsDirector() {
			certs = append(certs, cert)
		}
	}
	return certs
}

// PrivateCertificates returns the private company certificates held by s
func PrivateCertificates(s ledger.Shareholder) []*Certificate {
	var certs []*Certificate
	for _, cert := range Certificates(s) {
		if cert.IsPrivate() {
			certs = append(certs, cert)
		}
	}
	return certs
}

// Companies returns the distinct companies s holds certificates in, in acquisition order
func Companies(s ledger.Shareholder) []Company {
	var companies []Company
	seen := make(map[Company]bool)
	for _, cert := range Certificates(s) {
		if !seen[cert.Company()] {
			seen[cert.Company()] = true
			companies = append(companies, cert.Company())
		}
	}
	return companies
}
