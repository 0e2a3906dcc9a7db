package game

import "github.com/andrescamacho/baron-go/internal/domain/company"

// TrackMap validates and records map placements during operating turns
type TrackMap interface {
	PlaceTile(c *company.MajorCompany, tile, hex string, orientation int) error
	PlaceToken(c *company.MajorCompany, hex string) error
}

// NoopTrackMap accepts every placement
type NoopTrackMap struct{}

func (NoopTrackMap) PlaceTile(*company.MajorCompany, string, string, int) error {
	return nil
}

func (NoopTrackMap) PlaceToken(*company.MajorCompany, string) error {
	return nil
}
