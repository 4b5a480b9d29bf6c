package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jengzang/travel-report-go/internal/metrics"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

const (
	opAddress    = "address"
	opCityRegion = "city_region"
)

// SafeGeocoder adapts a Geocoder to the never-failing lookups report generation
// uses. Every failure degrades to a placeholder address or absent city/region.
type SafeGeocoder struct {
	geocoder Geocoder
	timeout  time.Duration
	metrics  *metrics.Collector
}

// NewSafeGeocoder wraps g. A nil g yields placeholders for every lookup; a zero
// timeout leaves the caller's deadline in charge.
func NewSafeGeocoder(g Geocoder, timeout time.Duration, m *metrics.Collector) *SafeGeocoder {
	return &SafeGeocoder{geocoder: g, timeout: timeout, metrics: m}
}

// Placeholder formats the address used when a lookup fails
func Placeholder(reason string) string {
	return fmt.Sprintf("Address unavailable (%s)", reason)
}

func (s *SafeGeocoder) Address(ctx context.Context, lat, lon float64) string {
	if s.geocoder == nil {
		return Placeholder("no geocoder configured")
	}
	if !spatial.ValidCoordinate(lat, lon) {
		s.fail(opAddress, lat, lon, ErrInvalidCoordinate)
		return Placeholder(reason(ErrInvalidCoordinate))
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	addr, err := s.geocoder.AddressOf(ctx, lat, lon)
	if err == nil && strings.TrimSpace(addr) == "" {
		err = ErrNoResult
	}
	if err != nil {
		s.fail(opAddress, lat, lon, err)
		return Placeholder(reason(err))
	}
	return addr
}

func (s *SafeGeocoder) CityRegion(ctx context.Context, lat, lon float64) (*string, *string) {
	if s.geocoder == nil {
		return nil, nil
	}
	if !spatial.ValidCoordinate(lat, lon) {
		s.fail(opCityRegion, lat, lon, ErrInvalidCoordinate)
		return nil, nil
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	city, region, err := s.geocoder.CityRegionOf(ctx, lat, lon)
	if err != nil {
		s.fail(opCityRegion, lat, lon, err)
		return nil, nil
	}
	return city, region
}

func (s *SafeGeocoder) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func (s *SafeGeocoder) fail(op string, lat, lon float64, err error) {
	log.Printf("[Geocoder] %s lookup failed for (%.5f, %.5f): %v", op, lat, lon, err)
	s.metrics.GeocodeFailed(op)
}

func reason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "lookup timed out"
	case errors.Is(err, context.Canceled):
		return "lookup canceled"
	case errors.Is(err, ErrNoResult):
		return "no result"
	case errors.Is(err, ErrInvalidCoordinate):
		return "invalid coordinates"
	default:
		return "lookup failed"
	}
}
