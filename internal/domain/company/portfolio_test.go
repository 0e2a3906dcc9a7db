package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

type holder struct {
	ledger.Account
	name string
}

func (h *holder) Name() string {
	return h.name
}

func TestPortfolio_Queries(t *testing.T) {
	// Arrange
	journal := ledger.NewJournal()
	alice := &holder{name: "Alice"}
	bob := &holder{name: "Bob"}
	major := company.NewMajorCompany("C&N", "Cowes & Newport")
	other := company.NewMajorCompany("IOW", "Isle of Wight")
	private := company.NewPrivateCompany("YHC", "Yarmouth Harbour Company", ledger.NewMoney(50), ledger.NewMoney(10))

	director := company.NewCertificate(major, 20, 0)
	share := company.NewCertificate(major, 10, 1)
	otherShare := company.NewCertificate(other, 10, 1)
	privateCert := company.NewCertificate(private, 100, 0)
	_, err := journal.Grant(alice, director, share, otherShare, privateCert)
	require.NoError(t, err)

	// Act
	_, err = journal.Give(alice, bob, share)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []*company.Certificate{director, otherShare, privateCert}, company.Certificates(alice))
	assert.Equal(t, []*company.Certificate{director}, company.CertificatesFor(alice, major))
	assert.Equal(t, company.Portion(20), company.PercentageOwned(alice, major))
	assert.Equal(t, company.Portion(10), company.PercentageOwned(bob, major))
	assert.Equal(t, company.Portion(0), company.PercentageOwned(bob, other))
	assert.Equal(t, []*company.Certificate{director, privateCert}, company.Directorships(alice))
	assert.Equal(t, []*company.Certificate{privateCert}, company.PrivateCertificates(alice))
	assert.Equal(t, []company.Company{major, other, private}, company.Companies(alice))
	assert.Empty(t, company.Directorships(bob))
}
