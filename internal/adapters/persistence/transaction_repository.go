package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append persists entries in a single database transaction
func (r *GormTransactionRepository) Append(ctx context.Context, entries []*ledger.TransactionEntry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]*TransactionModel, len(entries))
	for i, e := range entries {
		model, err := transactionToModel(e)
		if err != nil {
			return fmt.Errorf("failed to convert transaction to model: %w", err)
		}
		models[i] = model
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to append transactions: %w", err)
		}
		return nil
	})
}

// FindByGame retrieves a game's transactions in journal order
func (r *GormTransactionRepository) FindByGame(ctx context.Context, gameID string, opts ledger.QueryOptions) ([]*ledger.TransactionEntry, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Where("game_id = ?", gameID), opts)
	query = query.Order("sequence ASC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	entries := make([]*ledger.TransactionEntry, len(models))
	for i := range models {
		entry, err := modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		entries[i] = entry
	}
	return entries, nil
}

// CountByGame returns how many transactions a game has
func (r *GormTransactionRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&TransactionModel{}).Where("game_id = ?", gameID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", result.Error)
	}
	return int(count), nil
}

// applyFilters applies query options to a GORM query
func (r *GormTransactionRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.Party != "" {
		query = query.Where("buyer = ? OR seller = ?", opts.Party, opts.Party)
	}
	return query
}

func transactionToModel(e *ledger.TransactionEntry) (*TransactionModel, error) {
	buyerItems, err := json.Marshal(e.BuyerItems)
	if err != nil {
		return nil, err
	}
	sellerItems, err := json.Marshal(e.SellerItems)
	if err != nil {
		return nil, err
	}
	return &TransactionModel{
		ID:          e.TransactionID,
		GameID:      e.GameID,
		Sequence:    e.Sequence,
		Buyer:       e.Buyer,
		Seller:      e.Seller,
		BuyerItems:  string(buyerItems),
		SellerItems: string(sellerItems),
		RecordedAt:  e.RecordedAt,
	}, nil
}

func modelToTransaction(m *TransactionModel) (*ledger.TransactionEntry, error) {
	entry := &ledger.TransactionEntry{
		GameID:        m.GameID,
		Sequence:      m.Sequence,
		TransactionID: m.ID,
		Buyer:         m.Buyer,
		Seller:        m.Seller,
		RecordedAt:    m.RecordedAt,
	}
	if err := json.Unmarshal([]byte(m.BuyerItems), &entry.BuyerItems); err != nil {
		return nil, fmt.Errorf("invalid buyer items: %w", err)
	}
	if err := json.Unmarshal([]byte(m.SellerItems), &entry.SellerItems); err != nil {
		return nil, fmt.Errorf("invalid seller items: %w", err)
	}
	return entry, nil
}
