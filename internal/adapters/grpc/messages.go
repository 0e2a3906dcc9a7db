package grpc

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// Messages travel as google.protobuf.Struct values. The typed forms below
// are converted through their JSON encoding on both ends of the wire.

type CreateGameRequest struct {
	Variant string   `json:"variant,omitempty"`
	Players []string `json:"players"`
}

type CreateGameReply struct {
	GameID string             `json:"game_id"`
	State  *session.GameState `json:"state"`
}

type PerformActionRequest struct {
	GameID string            `json:"game_id"`
	Action session.ActionDTO `json:"action"`
}

type PerformActionReply struct {
	Sequence     int                `json:"sequence"`
	Transactions []TransactionView  `json:"transactions"`
	State        *session.GameState `json:"state"`
}

type GetGameStateRequest struct {
	GameID string `json:"game_id"`
}

type GetGameStateReply struct {
	State *session.GameState `json:"state"`
}

type GetLedgerRequest struct {
	GameID string `json:"game_id"`
	Party  string `json:"party,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type GetLedgerReply struct {
	Transactions []TransactionView `json:"transactions"`
	Total        int               `json:"total"`
}

type ListGamesRequest struct {
	Status string `json:"status,omitempty"`
}

type ListGamesReply struct {
	Games []GameView `json:"games"`
}

// TransactionView is a stored transaction as sent to clients
type TransactionView struct {
	Sequence    int       `json:"sequence"`
	ID          string    `json:"id"`
	Buyer       string    `json:"buyer"`
	Seller      string    `json:"seller,omitempty"`
	BuyerItems  []string  `json:"buyer_items"`
	SellerItems []string  `json:"seller_items"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// GameView is a stored game record as sent to clients
type GameView struct {
	ID        string    `json:"id"`
	Variant   string    `json:"variant"`
	Players   []string  `json:"players"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func transactionViews(entries []*ledger.TransactionEntry) []TransactionView {
	views := make([]TransactionView, 0, len(entries))
	for _, e := range entries {
		views = append(views, TransactionView{
			Sequence:    e.Sequence,
			ID:          e.TransactionID,
			Buyer:       e.Buyer,
			Seller:      e.Seller,
			BuyerItems:  e.BuyerItems,
			SellerItems: e.SellerItems,
			RecordedAt:  e.RecordedAt,
		})
	}
	return views
}

func gameViews(records []*game.GameRecord) []GameView {
	views := make([]GameView, 0, len(records))
	for _, r := range records {
		views = append(views, GameView{
			ID:        r.ID,
			Variant:   r.Variant,
			Players:   r.Players,
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return views
}

// toStruct encodes a typed message as a Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return out, nil
}

// fromStruct decodes a Struct into a typed message
func fromStruct(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
