package report

import (
	"context"
	"sort"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

// Locator resolves human readable places for coordinates.
// Implementations never fail: lookup errors degrade to a placeholder
// address or nil city/region.
type Locator interface {
	Address(ctx context.Context, lat, lon float64) string
	CityRegion(ctx context.Context, lat, lon float64) (city, region *string)
}

// Segmenter partitions a sample sequence into stationary, travel and data gap entries
type Segmenter struct {
	thresholds Thresholds
	distance   spatial.DistanceFunc
	locator    Locator
}

// NewSegmenter creates a new segmenter. A nil locator falls back to CoordinateLocator.
func NewSegmenter(thresholds Thresholds, distance spatial.DistanceFunc, locator Locator) *Segmenter {
	if distance == nil {
		distance = spatial.HaversineDistance
	}
	if locator == nil {
		locator = CoordinateLocator{}
	}
	return &Segmenter{
		thresholds: thresholds,
		distance:   distance,
		locator:    locator,
	}
}

// SortSamples returns a copy of samples ordered by timestamp.
// Samples with equal timestamps keep their input order.
func SortSamples(samples []models.LocationSample) []models.LocationSample {
	sorted := make([]models.LocationSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}

// Segment runs the first pass over samples, which need not be sorted
func (s *Segmenter) Segment(ctx context.Context, samples []models.LocationSample) []models.ReportEntry {
	points := SortSamples(samples)
	n := len(points)
	out := newEntryBuilder(n / 2)

	maxGap := s.thresholds.maxGapMs()

	i := 0
	for i < n {
		if i > 0 {
			prev, cur := points[i-1], points[i]
			if cur.Timestamp-prev.Timestamp > maxGap {
				out.Append(models.NewDataGapEntry(prev.Timestamp, cur.Timestamp))
			}
		}

		if end, ok := s.stationaryCluster(points, i); ok {
			out.Append(s.stationaryEntry(ctx, points[i:end]))
			i = end
			continue
		}

		end, meters := s.travelRun(points, i)
		if entry, ok := s.travelEntry(ctx, points[i:end], meters); ok {
			out.Append(entry)
		}
		i = end
	}

	return out.Entries()
}

// stationaryCluster grows a cluster from points[start] and returns its
// exclusive end when it qualifies as a stationary period
func (s *Segmenter) stationaryCluster(points []models.LocationSample, start int) (int, bool) {
	anchor := points[start]
	maxGap := s.thresholds.maxGapMs()

	end := start + 1
	for end < len(points) {
		next := points[end]
		if s.distance(anchor.Latitude, anchor.Longitude, next.Latitude, next.Longitude) > s.thresholds.StationaryRadius {
			break
		}
		if next.Timestamp-points[end-1].Timestamp > maxGap {
			break
		}
		end++
	}

	if end-start < 2 {
		return start, false
	}
	if points[end-1].Timestamp-anchor.Timestamp < s.thresholds.minStationaryMs() {
		return start, false
	}
	return end, true
}

func (s *Segmenter) stationaryEntry(ctx context.Context, cluster []models.LocationSample) models.ReportEntry {
	var sumLat, sumLon float64
	for _, p := range cluster {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}
	lat := sumLat / float64(len(cluster))
	lon := sumLon / float64(len(cluster))

	return models.NewStationaryEntry(cluster[0].Timestamp, cluster[len(cluster)-1].Timestamp, models.StationaryInfo{
		Latitude:    lat,
		Longitude:   lon,
		Address:     s.locator.Address(ctx, lat, lon),
		SampleCount: len(cluster),
	})
}

// travelRun extends a gap-free run from points[start] and returns its
// exclusive end and the summed distance between consecutive samples
func (s *Segmenter) travelRun(points []models.LocationSample, start int) (int, float64) {
	maxGap := s.thresholds.maxGapMs()

	meters := 0.0
	end := start + 1
	for end < len(points) {
		prev, next := points[end-1], points[end]
		if next.Timestamp-prev.Timestamp > maxGap {
			break
		}
		meters += s.distance(prev.Latitude, prev.Longitude, next.Latitude, next.Longitude)
		end++
	}
	return end, meters
}

// travelEntry builds a travel entry for run unless it is trivial
func (s *Segmenter) travelEntry(ctx context.Context, run []models.LocationSample, meters float64) (models.ReportEntry, bool) {
	first, last := run[0], run[len(run)-1]
	duration := last.Timestamp - first.Timestamp

	if meters <= s.thresholds.StationaryRadius && duration < s.thresholds.minStationaryMs() {
		return models.ReportEntry{}, false
	}

	startCity, startRegion := s.locator.CityRegion(ctx, first.Latitude, first.Longitude)
	endCity, endRegion := s.locator.CityRegion(ctx, last.Latitude, last.Longitude)

	return models.NewTravelEntry(first.Timestamp, last.Timestamp, models.TravelInfo{
		StartLat:      first.Latitude,
		StartLon:      first.Longitude,
		EndLat:        last.Latitude,
		EndLon:        last.Longitude,
		DistanceMiles: spatial.MetersToMiles(meters),
		AvgSpeedMPH:   spatial.AverageSpeedMPH(meters, duration),
		StartCity:     startCity,
		StartRegion:   startRegion,
		EndCity:       endCity,
		EndRegion:     endRegion,
	}), true
}
