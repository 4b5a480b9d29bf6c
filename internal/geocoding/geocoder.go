package geocoding

import (
	"context"
	"errors"
)

var (
	// ErrNoResult is returned when the provider has no place for a coordinate
	ErrNoResult = errors.New("no geocoding result")
	// ErrInvalidCoordinate is returned for NaN, infinite or out of range input
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Place is one reverse geocoding result. City and Region are independently optional.
type Place struct {
	Address string
	City    *string
	Region  *string
}

// Reverser resolves a coordinate to a Place
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
}

// Geocoder is the lookup surface the report engine needs
type Geocoder interface {
	AddressOf(ctx context.Context, lat, lon float64) (string, error)
	CityRegionOf(ctx context.Context, lat, lon float64) (city, region *string, err error)
}

type reverseGeocoder struct {
	reverser Reverser
}

// NewGeocoder exposes a Reverser as a Geocoder
func NewGeocoder(r Reverser) Geocoder {
	return &reverseGeocoder{reverser: r}
}

func (g *reverseGeocoder) AddressOf(ctx context.Context, lat, lon float64) (string, error) {
	place, err := g.reverser.Reverse(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	if place.Address == "" {
		return "", ErrNoResult
	}
	return place.Address, nil
}

func (g *reverseGeocoder) CityRegionOf(ctx context.Context, lat, lon float64) (*string, *string, error) {
	place, err := g.reverser.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, nil, err
	}
	return place.City, place.Region, nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
