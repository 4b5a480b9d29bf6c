package report

import (
	"context"
	"fmt"
)

// CoordinateLocator is the Locator used when none is supplied.
// Addresses are the formatted coordinates and city/region are always absent.
type CoordinateLocator struct{}

func (CoordinateLocator) Address(_ context.Context, lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}

func (CoordinateLocator) CityRegion(context.Context, float64, float64) (*string, *string) {
	return nil, nil
}
