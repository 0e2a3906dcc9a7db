package persistence

import "time"

// GameModel represents the games table
type GameModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Variant   string    `gorm:"column:variant;not null"`
	Players   string    `gorm:"column:players;type:jsonb;not null"` // JSON array of names in seating order
	Status    string    `gorm:"column:status;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (GameModel) TableName() string {
	return "games"
}

// ActionModel represents the actions table, the append-only log a game is replayed from
type ActionModel struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	GameID     string    `gorm:"column:game_id;not null;uniqueIndex:idx_actions_game_sequence"`
	Sequence   int       `gorm:"column:sequence;not null;uniqueIndex:idx_actions_game_sequence"`
	Type       string    `gorm:"column:type;not null"`
	Actor      string    `gorm:"column:actor;not null"`
	Payload    string    `gorm:"column:payload;type:jsonb;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (ActionModel) TableName() string {
	return "actions"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	GameID      string    `gorm:"column:game_id;not null;uniqueIndex:idx_transactions_game_sequence"`
	Sequence    int       `gorm:"column:sequence;not null;uniqueIndex:idx_transactions_game_sequence"`
	Buyer       string    `gorm:"column:buyer;not null;index"`
	Seller      string    `gorm:"column:seller;index"` // empty for grants
	BuyerItems  string    `gorm:"column:buyer_items;type:jsonb"`
	SellerItems string    `gorm:"column:seller_items;type:jsonb"`
	RecordedAt  time.Time `gorm:"column:recorded_at;not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}
