package report

import (
	"context"
	"fmt"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

const (
	second = int64(1000)
	minute = 60 * second
	base   = int64(1_700_000_000_000)
)

type fakeLocator struct {
	addressCalls int
	cityCalls    int
}

func (f *fakeLocator) Address(_ context.Context, lat, lon float64) string {
	f.addressCalls++
	return fmt.Sprintf("%.5f,%.5f", lat, lon)
}

func (f *fakeLocator) CityRegion(_ context.Context, lat, lon float64) (*string, *string) {
	f.cityCalls++
	city := fmt.Sprintf("city(%.3f,%.3f)", lat, lon)
	region := "PA"
	return &city, &region
}

func newTestEngine() (*Engine, *fakeLocator) {
	loc := &fakeLocator{}
	return NewEngine(DefaultThresholds(), spatial.HaversineDistance, loc), loc
}

func sample(lat, lon float64, ts int64) models.LocationSample {
	return models.LocationSample{EntityID: "entity-1", Latitude: lat, Longitude: lon, Timestamp: ts}
}

// cluster returns count samples jittered a few meters around lat/lon, step apart
func cluster(lat, lon float64, start int64, count int, step int64) []models.LocationSample {
	out := make([]models.LocationSample, 0, count)
	for k := 0; k < count; k++ {
		jLat, jLon := spatial.DestinationPoint(lat, lon, float64(k*36), 3)
		out = append(out, sample(jLat, jLon, start+int64(k)*step))
	}
	return out
}

// leg returns steps+1 samples moving along bearing, covering meters in total
func leg(lat, lon, bearing, meters float64, start int64, steps int, step int64) ([]models.LocationSample, float64, float64) {
	out := []models.LocationSample{sample(lat, lon, start)}
	curLat, curLon := lat, lon
	for k := 1; k <= steps; k++ {
		curLat, curLon = spatial.DestinationPoint(curLat, curLon, bearing, meters/float64(steps))
		out = append(out, sample(curLat, curLon, start+int64(k)*step))
	}
	return out, curLat, curLon
}

func kinds(entries []models.ReportEntry) []models.EntryKind {
	out := make([]models.EntryKind, len(entries))
	for i, e := range entries {
		out[i] = e.Kind
	}
	return out
}

func concat(parts ...[]models.LocationSample) []models.LocationSample {
	var out []models.LocationSample
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
