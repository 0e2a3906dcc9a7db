package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

func TestCertificate_DerivedFacts(t *testing.T) {
	major := company.NewMajorCompany("C&N", "Cowes & Newport")
	private := company.NewPrivateCompany("BHC", "Brading Harbour Company", ledger.NewMoney(30), ledger.NewMoney(5))

	tests := []struct {
		name        string
		cert        *company.Certificate
		shares      int
		director    bool
		controlling bool
		private     bool
	}{
		{"director share", company.NewCertificate(major, 20, 0), 2, true, true, false},
		{"ordinary share", company.NewCertificate(major, 10, 1), 1, false, false, false},
		{"private company", company.NewCertificate(private, 100, 0), 1, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shares, tt.cert.NumShares())
			assert.Equal(t, tt.director, tt.cert.IsDirector())
			assert.Equal(t, tt.controlling, tt.cert.IsControlling())
			assert.Equal(t, tt.private, tt.cert.IsPrivate())
			assert.Equal(t, ledger.KindCertificate, tt.cert.Kind())
		})
	}
}

func TestCertificate_Identity(t *testing.T) {
	major := company.NewMajorCompany("IOW", "Isle of Wight")

	cert := company.NewCertificate(major, 10, 3)

	assert.Equal(t, "IOW-3", cert.ID())
	assert.Equal(t, "IOW-3", cert.String())
	assert.Equal(t, "10% IOW", cert.Describe())
	assert.Same(t, major, cert.Company())
	assert.Nil(t, cert.Owner())
}

func TestMajorCompany_FloatsOnFirstTransaction(t *testing.T) {
	journal := ledger.NewJournal()
	major := company.NewMajorCompany("FYN", "Freshwater, Yarmouth & Newport")
	assert.False(t, major.IsFloated())

	_, err := journal.Grant(major, ledger.NewMoney(900))

	assert.NoError(t, err)
	assert.True(t, major.IsFloated())
	assert.Equal(t, ledger.NewMoney(900), major.Balance())
	assert.Equal(t, "Freshwater, Yarmouth & Newport", major.Name())
}
