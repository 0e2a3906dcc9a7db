package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/baron-go/internal/adapters/persistence"
	"github.com/andrescamacho/baron-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when t ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}

// GormRepositories are the game, action and transaction stores over one database
type GormRepositories struct {
	DB           *gorm.DB
	Games        *persistence.GormGameRepository
	Actions      *persistence.GormActionRepository
	Transactions *persistence.GormTransactionRepository
}

// NewGormRepositories wires every GORM repository to db
func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{
		DB:           db,
		Games:        persistence.NewGormGameRepository(db),
		Actions:      persistence.NewGormActionRepository(db),
		Transactions: persistence.NewGormTransactionRepository(db),
	}
}

// NewTestRepositories wires every GORM repository to a fresh NewTestDB
func NewTestRepositories(t *testing.T) *GormRepositories {
	t.Helper()
	return NewGormRepositories(NewTestDB(t))
}
