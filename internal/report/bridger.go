package report

import (
	"context"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

// Bridger merges data gaps with neighbouring entries that continue the same activity
type Bridger struct {
	thresholds Thresholds
	distance   spatial.DistanceFunc
	locator    Locator
}

// NewBridger creates a new gap bridger
func NewBridger(thresholds Thresholds, distance spatial.DistanceFunc, locator Locator) *Bridger {
	if distance == nil {
		distance = spatial.HaversineDistance
	}
	if locator == nil {
		locator = CoordinateLocator{}
	}
	return &Bridger{
		thresholds: thresholds,
		distance:   distance,
		locator:    locator,
	}
}

// Bridge runs the second pass over first pass entries and returns a new list.
// Each data gap is tried once against the last placed entry and the entry
// following it; a merge replaces the placed entry and consumes both the gap
// and its successor.
func (b *Bridger) Bridge(ctx context.Context, entries []models.ReportEntry) []models.ReportEntry {
	out, _ := b.bridge(ctx, entries)
	return out
}

// bridge is Bridge that also counts merges by the kind of the merged entry
func (b *Bridger) bridge(ctx context.Context, entries []models.ReportEntry) ([]models.ReportEntry, map[models.EntryKind]int) {
	out := newEntryBuilder(len(entries))
	merges := make(map[models.EntryKind]int)

	i := 0
	for i < len(entries) {
		entry := entries[i]
		if !entry.IsDataGap() {
			out.Append(entry)
			i++
			continue
		}

		prev, hasPrev := out.Last()
		if !hasPrev || i+1 >= len(entries) {
			out.Append(entry)
			i++
			continue
		}

		if merged, ok := b.merge(ctx, prev, entry, entries[i+1]); ok {
			out.ReplaceLast(merged)
			merges[merged.Kind]++
			i += 2
			continue
		}

		out.Append(entry)
		i++
	}

	return out.Entries(), merges
}

func (b *Bridger) merge(ctx context.Context, prev, gap, next models.ReportEntry) (models.ReportEntry, bool) {
	switch {
	case prev.IsStationary() && next.IsStationary():
		return b.mergeStationary(ctx, prev, next)
	case prev.IsTravel() && next.IsTravel():
		return b.mergeTravel(prev, gap, next)
	default:
		return models.ReportEntry{}, false
	}
}

func (b *Bridger) mergeStationary(ctx context.Context, prev, next models.ReportEntry) (models.ReportEntry, bool) {
	p, n := prev.Stationary, next.Stationary
	if b.distance(p.Latitude, p.Longitude, n.Latitude, n.Longitude) > b.thresholds.StationaryBridgeRadius {
		return models.ReportEntry{}, false
	}

	lat := (p.Latitude + n.Latitude) / 2
	lon := (p.Longitude + n.Longitude) / 2

	return models.NewStationaryEntry(prev.StartTime, next.EndTime, models.StationaryInfo{
		Latitude:    lat,
		Longitude:   lon,
		Address:     b.locator.Address(ctx, lat, lon),
		SampleCount: p.SampleCount + n.SampleCount,
	}), true
}

func (b *Bridger) mergeTravel(prev, gap, next models.ReportEntry) (models.ReportEntry, bool) {
	p, n := prev.Travel, next.Travel
	if b.distance(p.EndLat, p.EndLon, n.StartLat, n.StartLon) > b.thresholds.TravelBridgeMaxTeleportDistance {
		return models.ReportEntry{}, false
	}
	if gap.Duration > b.thresholds.travelBridgeGapMs() {
		return models.ReportEntry{}, false
	}

	miles := p.DistanceMiles + n.DistanceMiles
	duration := next.EndTime - prev.StartTime

	return models.NewTravelEntry(prev.StartTime, next.EndTime, models.TravelInfo{
		StartLat:      p.StartLat,
		StartLon:      p.StartLon,
		EndLat:        n.EndLat,
		EndLon:        n.EndLon,
		DistanceMiles: miles,
		AvgSpeedMPH:   spatial.AverageSpeedMPH(spatial.MilesToMeters(miles), duration),
		StartCity:     p.StartCity,
		StartRegion:   p.StartRegion,
		EndCity:       n.EndCity,
		EndRegion:     n.EndRegion,
	}), true
}
