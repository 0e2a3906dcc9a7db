package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status of a stored game
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
)

// GameRecord is the stored description of a game; its state is rebuilt by
// replaying the game's actions against the rules it was created with
type GameRecord struct {
	ID        string
	Variant   string
	Players   []string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGameID generates a new game identifier
func NewGameID() string {
	return uuid.NewString()
}

// GameRepository stores game records
type GameRepository interface {
	Save(ctx context.Context, record *GameRecord) error
	FindByID(ctx context.Context, id string) (*GameRecord, error)
	List(ctx context.Context, status Status) ([]*GameRecord, error)
}

// ActionEntry is one accepted action in a game's append-only action log
type ActionEntry struct {
	GameID     string
	Sequence   int
	Type       string
	Actor      string
	Payload    []byte
	RecordedAt time.Time
}

// ActionRepository stores the action log of every game
type ActionRepository interface {
	Append(ctx context.Context, entry *ActionEntry) error
	FindByGame(ctx context.Context, gameID string) ([]*ActionEntry, error)
}

// ErrGameNotFound is returned when no game is stored under ID
type ErrGameNotFound struct {
	ID string
}

func (e *ErrGameNotFound) Error() string {
	return fmt.Sprintf("game %s not found", e.ID)
}
