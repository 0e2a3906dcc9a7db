package action

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/player"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

// Type names a kind of action; turns advertise the types they accept
type Type string

const (
	TypeBid               Type = "bid"
	TypePass              Type = "pass"
	TypeSelectCertificate Type = "select_certificate"
	TypeBuyCertificate    Type = "buy_certificate"
	TypeSellCertificates  Type = "sell_certificates"
	TypeStartCompany      Type = "start_company"
	TypePlaceTile         Type = "place_tile"
	TypePlaceToken        Type = "place_token"
	TypeRunTrains         Type = "run_trains"
	TypePayout            Type = "payout"
	TypeRetain            Type = "retain"
	TypeBuyTrain          Type = "buy_train"
	TypeDone              Type = "done"
)

var allTypes = []Type{
	TypeBid, TypePass, TypeSelectCertificate, TypeBuyCertificate, TypeSellCertificates,
	TypeStartCompany, TypePlaceTile, TypePlaceToken, TypeRunTrains, TypePayout,
	TypeRetain, TypeBuyTrain, TypeDone,
}

// ParseType converts a wire name to a Type
func ParseType(s string) (Type, error) {
	for _, t := range allTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown action type %q", s)
}

// Types returns every action type
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

func (t Type) String() string {
	return string(t)
}

// Action is a single command submitted to the current turn
type Action interface {
	Type() Type
	// Actor is the shareholder performing the action: a player, or a
	// company's director during its operating turn.
	Actor() ledger.Shareholder
}

// Bid raises the price of the certificate being auctioned
type Bid struct {
	Player *player.Player
	Amount ledger.Money
}

// NewBid creates a bid; amounts must be non-negative multiples of 5
func NewBid(p *player.Player, amount ledger.Money) (*Bid, error) {
	b := &Bid{Player: p, Amount: amount}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bid) Validate() error {
	if b.Amount.IsNegative() || b.Amount.Amount()%5 != 0 {
		return &ErrIllegalBidAmount{Amount: b.Amount, Reason: "Amount must be a non-negative multiple of 5"}
	}
	return nil
}

func (b *Bid) Type() Type                { return TypeBid }
func (b *Bid) Actor() ledger.Shareholder { return b.Player }

// Pass gives up the current opportunity to act
type Pass struct {
	Player *player.Player
}

func (p *Pass) Type() Type                { return TypePass }
func (p *Pass) Actor() ledger.Shareholder { return p.Player }

// SelectCertificate is the auction winner's choice. ParPrice is required
// when the certificate belongs to a major company without a par price.
type SelectCertificate struct {
	Player      *player.Player
	Certificate *company.Certificate
	ParPrice    *ledger.Money
}

func (s *SelectCertificate) Type() Type                { return TypeSelectCertificate }
func (s *SelectCertificate) Actor() ledger.Shareholder { return s.Player }

// BuyCertificate buys a single certificate from Source for Price
type BuyCertificate struct {
	Player      *player.Player
	Source      ledger.Shareholder
	Certificate *company.Certificate
	Price       ledger.Money
}

func (b *BuyCertificate) Type() Type                { return TypeBuyCertificate }
func (b *BuyCertificate) Actor() ledger.Shareholder { return b.Player }

// SellCertificates sells certificates to the bank at market price
type SellCertificates struct {
	Player       *player.Player
	Certificates []*company.Certificate
}

func (s *SellCertificates) Type() Type                { return TypeSellCertificates }
func (s *SellCertificates) Actor() ledger.Shareholder { return s.Player }

// StartCompany sets a major company's par price and buys its director's certificate
type StartCompany struct {
	Player   *player.Player
	Company  *company.MajorCompany
	ParPrice ledger.Money
}

func (s *StartCompany) Type() Type                { return TypeStartCompany }
func (s *StartCompany) Actor() ledger.Shareholder { return s.Player }

// PlaceTile lays track on the map
type PlaceTile struct {
	Director    ledger.Shareholder
	Tile        string
	Hex         string
	Orientation int
}

func (p *PlaceTile) Type() Type                { return TypePlaceTile }
func (p *PlaceTile) Actor() ledger.Shareholder { return p.Director }

// PlaceToken places a station token on a hex
type PlaceToken struct {
	Director ledger.Shareholder
	Hex      string
}

func (p *PlaceToken) Type() Type                { return TypePlaceToken }
func (p *PlaceToken) Actor() ledger.Shareholder { return p.Director }

// RunTrains declares the company's revenue for this turn. Bonus is paid to
// the company regardless of how the revenue is distributed.
type RunTrains struct {
	Director ledger.Shareholder
	Amount   ledger.Money
	Bonus    ledger.Money
}

func (r *RunTrains) Type() Type                { return TypeRunTrains }
func (r *RunTrains) Actor() ledger.Shareholder { return r.Director }

// Payout distributes the run to shareholders
type Payout struct {
	Director ledger.Shareholder
}

func (p *Payout) Type() Type                { return TypePayout }
func (p *Payout) Actor() ledger.Shareholder { return p.Director }

// Retain keeps the run in the company treasury
type Retain struct {
	Director ledger.Shareholder
}

func (r *Retain) Type() Type                { return TypeRetain }
func (r *Retain) Actor() ledger.Shareholder { return r.Director }

// BuyTrain buys a train for the operating company from Source
type BuyTrain struct {
	Director ledger.Shareholder
	Source   ledger.Shareholder
	Train    *train.Train
	Price    ledger.Money
}

func (b *BuyTrain) Type() Type                { return TypeBuyTrain }
func (b *BuyTrain) Actor() ledger.Shareholder { return b.Director }

// Done ends a company's operating turn
type Done struct {
	Director ledger.Shareholder
}

func (d *Done) Type() Type                { return TypeDone }
func (d *Done) Actor() ledger.Shareholder { return d.Director }
