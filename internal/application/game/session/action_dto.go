package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/player"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// ActionDTO is the wire and storage form of an action. Shareholders,
// certificates and trains are referred to by name or identifier.
type ActionDTO struct {
	Type         string   `json:"type" validate:"required"`
	Actor        string   `json:"actor" validate:"required"`
	Amount       int      `json:"amount,omitempty" validate:"gte=0"`
	Bonus        int      `json:"bonus,omitempty" validate:"gte=0"`
	Price        int      `json:"price,omitempty" validate:"gte=0"`
	ParPrice     *int     `json:"par_price,omitempty" validate:"omitempty,gte=0"`
	Source       string   `json:"source,omitempty"`
	Certificate  string   `json:"certificate,omitempty"`
	Certificates []string `json:"certificates,omitempty" validate:"dive,required"`
	Company      string   `json:"company,omitempty"`
	Train        string   `json:"train,omitempty"`
	Tile         string   `json:"tile,omitempty"`
	Hex          string   `json:"hex,omitempty"`
	Orientation  int      `json:"orientation,omitempty" validate:"gte=0,lte=5"`
}

// DecodeActionDTO parses a stored action payload
func DecodeActionDTO(payload []byte) (ActionDTO, error) {
	var dto ActionDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return ActionDTO{}, fmt.Errorf("failed to decode action: %w", err)
	}
	return dto, nil
}

// Encode returns the stored payload of the action
func (d ActionDTO) Encode() ([]byte, error) {
	return json.Marshal(d)
}

var validate = validator.New()

// Resolve turns a DTO into an action against the game's shareholders and items.
// Unknown references are value violations; whether the action is legal now is
// left to the game.
func Resolve(g *game.Game, d ActionDTO) (action.Action, error) {
	if err := validate.Struct(d); err != nil {
		return nil, invalidDTO(err)
	}
	typ, err := action.ParseType(d.Type)
	if err != nil {
		return nil, shared.NewValidationError("type", err.Error())
	}

	switch typ {
	case action.TypeBid:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		bid, err := action.NewBid(p, ledger.NewMoney(d.Amount))
		if err != nil {
			return nil, err
		}
		return bid, nil

	case action.TypePass:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		return &action.Pass{Player: p}, nil

	case action.TypeSelectCertificate:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		cert, err := resolveCertificate(g, d.Certificate)
		if err != nil {
			return nil, err
		}
		s := &action.SelectCertificate{Player: p, Certificate: cert}
		if d.ParPrice != nil {
			par := ledger.NewMoney(*d.ParPrice)
			s.ParPrice = &par
		}
		return s, nil

	case action.TypeBuyCertificate:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		source, err := resolveShareholder(g, "source", d.Source)
		if err != nil {
			return nil, err
		}
		cert, err := resolveCertificate(g, d.Certificate)
		if err != nil {
			return nil, err
		}
		return &action.BuyCertificate{Player: p, Source: source, Certificate: cert, Price: ledger.NewMoney(d.Price)}, nil

	case action.TypeSellCertificates:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		if len(d.Certificates) == 0 {
			return nil, shared.NewValidationError("certificates", "at least one certificate is required")
		}
		certs := make([]*company.Certificate, 0, len(d.Certificates))
		for _, id := range d.Certificates {
			cert, err := resolveCertificate(g, id)
			if err != nil {
				return nil, err
			}
			certs = append(certs, cert)
		}
		return &action.SellCertificates{Player: p, Certificates: certs}, nil

	case action.TypeStartCompany:
		p, err := resolvePlayer(g, d.Actor)
		if err != nil {
			return nil, err
		}
		c, ok := g.MajorCompany(d.Company)
		if !ok {
			return nil, unknown("company", d.Company)
		}
		if d.ParPrice == nil {
			return nil, shared.NewValidationError("par_price", "a par price is required to start a company")
		}
		return &action.StartCompany{Player: p, Company: c, ParPrice: ledger.NewMoney(*d.ParPrice)}, nil
	}

	director, err := resolveShareholder(g, "actor", d.Actor)
	if err != nil {
		return nil, err
	}

	switch typ {
	case action.TypePlaceTile:
		if d.Tile == "" || d.Hex == "" {
			return nil, shared.NewValidationError("tile", "a tile and a hex are required")
		}
		return &action.PlaceTile{Director: director, Tile: d.Tile, Hex: d.Hex, Orientation: d.Orientation}, nil
	case action.TypePlaceToken:
		if d.Hex == "" {
			return nil, shared.NewValidationError("hex", "a hex is required")
		}
		return &action.PlaceToken{Director: director, Hex: d.Hex}, nil
	case action.TypeRunTrains:
		return &action.RunTrains{Director: director, Amount: ledger.NewMoney(d.Amount), Bonus: ledger.NewMoney(d.Bonus)}, nil
	case action.TypePayout:
		return &action.Payout{Director: director}, nil
	case action.TypeRetain:
		return &action.Retain{Director: director}, nil
	case action.TypeBuyTrain:
		source, err := resolveShareholder(g, "source", d.Source)
		if err != nil {
			return nil, err
		}
		t, ok := g.Train(d.Train)
		if !ok {
			return nil, unknown("train", d.Train)
		}
		return &action.BuyTrain{Director: director, Source: source, Train: t, Price: ledger.NewMoney(d.Price)}, nil
	case action.TypeDone:
		return &action.Done{Director: director}, nil
	}
	return nil, shared.NewValidationError("type", fmt.Sprintf("unsupported action type %q", d.Type))
}

func resolvePlayer(g *game.Game, name string) (*player.Player, error) {
	p, ok := g.Player(name)
	if !ok {
		return nil, unknown("player", name)
	}
	return p, nil
}

func resolveShareholder(g *game.Game, field, name string) (ledger.Shareholder, error) {
	s, ok := g.Shareholder(name)
	if !ok {
		return nil, unknown(field, name)
	}
	return s, nil
}

func resolveCertificate(g *game.Game, id string) (*company.Certificate, error) {
	cert, ok := g.Certificate(id)
	if !ok {
		return nil, unknown("certificate", id)
	}
	return cert, nil
}

func unknown(field, name string) error {
	if name == "" {
		return shared.NewValidationError(field, "is required")
	}
	return shared.NewValidationError(field, fmt.Sprintf("unknown %s %q", field, name))
}

func invalidDTO(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, len(errs))
		for i, e := range errs {
			fields[i] = fmt.Sprintf("%s (%s)", e.Field(), e.Tag())
		}
		return shared.NewValidationError("action", "invalid fields: "+strings.Join(fields, ", "))
	}
	return shared.NewValidationError("action", err.Error())
}
