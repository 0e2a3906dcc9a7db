package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/baron-go/internal/domain/game"
)

// GormGameRepository implements game.GameRepository using GORM
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// Save inserts or updates a game record
func (r *GormGameRepository) Save(ctx context.Context, record *game.GameRecord) error {
	model, err := gameToModel(record)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// FindByID retrieves a game record
func (r *GormGameRepository) FindByID(ctx context.Context, id string) (*game.GameRecord, error) {
	var model GameModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &game.ErrGameNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}
	return modelToGame(&model)
}

// List returns games oldest first, restricted to status unless it is empty
func (r *GormGameRepository) List(ctx context.Context, status game.Status) ([]*game.GameRecord, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var models []GameModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	records := make([]*game.GameRecord, 0, len(models))
	for i := range models {
		record, err := modelToGame(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func gameToModel(record *game.GameRecord) (*GameModel, error) {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal players: %w", err)
	}
	return &GameModel{
		ID:        record.ID,
		Variant:   record.Variant,
		Players:   string(players),
		Status:    string(record.Status),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func modelToGame(model *GameModel) (*game.GameRecord, error) {
	var players []string
	if err := json.Unmarshal([]byte(model.Players), &players); err != nil {
		return nil, fmt.Errorf("invalid players of game %s: %w", model.ID, err)
	}
	return &game.GameRecord{
		ID:        model.ID,
		Variant:   model.Variant,
		Players:   players,
		Status:    game.Status(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
