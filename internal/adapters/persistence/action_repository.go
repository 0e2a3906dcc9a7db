package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/baron-go/internal/domain/game"
)

// GormActionRepository implements game.ActionRepository using GORM
type GormActionRepository struct {
	db *gorm.DB
}

// NewGormActionRepository creates a new GORM action repository
func NewGormActionRepository(db *gorm.DB) *GormActionRepository {
	return &GormActionRepository{db: db}
}

// Append stores an accepted action. The (game, sequence) pair is unique, so a
// stale session cannot write over actions stored by another.
func (r *GormActionRepository) Append(ctx context.Context, entry *game.ActionEntry) error {
	model := &ActionModel{
		GameID:     entry.GameID,
		Sequence:   entry.Sequence,
		Type:       entry.Type,
		Actor:      entry.Actor,
		Payload:    string(entry.Payload),
		RecordedAt: entry.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append action %d: %w", entry.Sequence, err)
	}
	return nil
}

// FindByGame returns a game's actions in the order they were accepted
func (r *GormActionRepository) FindByGame(ctx context.Context, gameID string) ([]*game.ActionEntry, error) {
	var models []ActionModel
	result := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("sequence ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find actions: %w", result.Error)
	}

	entries := make([]*game.ActionEntry, len(models))
	for i, m := range models {
		entries[i] = &game.ActionEntry{
			GameID:     m.GameID,
			Sequence:   m.Sequence,
			Type:       m.Type,
			Actor:      m.Actor,
			Payload:    []byte(m.Payload),
			RecordedAt: m.RecordedAt,
		}
	}
	return entries, nil
}
