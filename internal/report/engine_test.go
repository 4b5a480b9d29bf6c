package report

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

func TestGenerateBridgesStayAcrossGap(t *testing.T) {
	engine, _ := newTestEngine()
	qLat, qLon := spatial.DestinationPoint(40.0, -75.0, 90, 30)
	samples := concat(
		cluster(40.0, -75.0, base, 11, minute),
		cluster(qLat, qLon, base+30*minute, 11, minute),
	)

	result := engine.Run(context.Background(), samples)
	assert.Equal(t, []models.EntryKind{
		models.EntryKindStationary,
		models.EntryKindDataGap,
		models.EntryKindStationary,
	}, kinds(result.Provisional))

	require.Len(t, result.Entries, 1)
	merged := result.Entries[0]
	assert.True(t, merged.IsStationary())
	assert.Equal(t, base, merged.StartTime)
	assert.Equal(t, base+40*minute, merged.EndTime)
	assert.Equal(t, 22, merged.Stationary.SampleCount)
	assert.Equal(t, 1, result.BridgedGaps())
	assert.Equal(t, map[models.EntryKind]int{models.EntryKindStationary: 1}, result.Merges)
}

func TestGenerateKeepsDistantStaysApart(t *testing.T) {
	engine, _ := newTestEngine()
	qLat, qLon := spatial.DestinationPoint(40.0, -75.0, 90, 500)
	samples := concat(
		cluster(40.0, -75.0, base, 11, minute),
		cluster(qLat, qLon, base+30*minute, 11, minute),
	)

	entries := engine.Generate(context.Background(), samples)
	assert.Equal(t, []models.EntryKind{
		models.EntryKindStationary,
		models.EntryKindDataGap,
		models.EntryKindStationary,
	}, kinds(entries))
	assert.Equal(t, base+10*minute, entries[1].StartTime)
	assert.Equal(t, base+30*minute, entries[1].EndTime)
}

func TestGenerateContinuousTravelAcrossShortGap(t *testing.T) {
	engine, _ := newTestEngine()
	first, breakLat, breakLon := leg(40.0, -75.0, 90, spatial.MilesToMeters(5), base, 10, minute)
	resumeLat, resumeLon := spatial.DestinationPoint(breakLat, breakLon, 90, 400)
	second, _, _ := leg(resumeLat, resumeLon, 90, spatial.MilesToMeters(5), base+20*minute, 10, minute)

	entries := engine.Generate(context.Background(), concat(first, second))
	require.Len(t, entries, 1)

	e := entries[0]
	require.True(t, e.IsTravel())
	assert.Equal(t, base, e.StartTime)
	assert.Equal(t, base+30*minute, e.EndTime)
	assert.InDelta(t, 10, e.Travel.DistanceMiles, 0.3)
	assert.InDelta(t, e.Travel.DistanceMiles/0.5, e.Travel.AvgSpeedMPH, 1e-6)
}

func TestGenerateBridgesTravelAcrossDataGap(t *testing.T) {
	engine, _ := newTestEngine()
	first, breakLat, breakLon := leg(40.0, -75.0, 90, spatial.MilesToMeters(5), base, 10, minute)
	resumeLat, resumeLon := spatial.DestinationPoint(breakLat, breakLon, 90, 400)
	second, endLat, endLon := leg(resumeLat, resumeLon, 90, spatial.MilesToMeters(5), base+30*minute, 10, minute)

	result := engine.Run(context.Background(), concat(first, second))
	assert.Equal(t, []models.EntryKind{
		models.EntryKindTravel,
		models.EntryKindDataGap,
		models.EntryKindTravel,
	}, kinds(result.Provisional))

	require.Len(t, result.Entries, 1)
	e := result.Entries[0]
	require.True(t, e.IsTravel())
	assert.Equal(t, 40*minute, e.Duration)
	assert.InDelta(t, 10, e.Travel.DistanceMiles, 1e-3)
	assert.InDelta(t, 15, e.Travel.AvgSpeedMPH, 1e-3)
	assert.Equal(t, 40.0, e.Travel.StartLat)
	assert.Equal(t, endLat, e.Travel.EndLat)
	assert.Equal(t, endLon, e.Travel.EndLon)
	assert.Equal(t, result.Provisional[0].Travel.StartCity, e.Travel.StartCity)
	assert.Equal(t, result.Provisional[2].Travel.EndCity, e.Travel.EndCity)
	assert.Equal(t, map[models.EntryKind]int{models.EntryKindTravel: 1}, result.Merges)
}

func TestNilLocatorFallsBackToCoordinates(t *testing.T) {
	engine := NewEngine(DefaultThresholds(), nil, nil)
	trip, _, _ := leg(40.0, -75.0, 90, spatial.MilesToMeters(5), base+30*minute, 10, minute)
	samples := concat(cluster(40.0, -75.0, base, 11, minute), trip)

	var entries []models.ReportEntry
	require.NotPanics(t, func() { entries = engine.Generate(context.Background(), samples) })
	require.Equal(t, []models.EntryKind{
		models.EntryKindStationary,
		models.EntryKindDataGap,
		models.EntryKindTravel,
	}, kinds(entries))

	stay := entries[0].Stationary
	assert.Equal(t, CoordinateLocator{}.Address(context.Background(), stay.Latitude, stay.Longitude), stay.Address)
	assert.Nil(t, entries[2].Travel.StartCity)
	assert.Nil(t, entries[2].Travel.EndRegion)
}

func TestEmptyInputYieldsEmptyEntries(t *testing.T) {
	engine, _ := newTestEngine()
	result := engine.Run(context.Background(), nil)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Merges)
	assert.Equal(t, 0, result.BridgedGaps())
}

func TestRebridgingIsIdempotent(t *testing.T) {
	engine, loc := newTestEngine()
	bridger := NewBridger(DefaultThresholds(), spatial.HaversineDistance, loc)

	nearLat, nearLon := spatial.DestinationPoint(40.0, -75.0, 90, 30)
	farLat, farLon := spatial.DestinationPoint(40.0, -75.0, 90, 500)
	drive, breakLat, breakLon := leg(40.01, -75.0, 0, 8000, base+120*minute, 8, minute)
	resume, _, _ := leg(breakLat, breakLon, 0, 8000, base+148*minute, 8, minute)

	samples := concat(
		cluster(40.0, -75.0, base, 11, minute),
		cluster(nearLat, nearLon, base+30*minute, 11, minute),
		cluster(farLat, farLon, base+60*minute, 11, minute),
		drive,
		resume,
	)

	once := engine.Generate(context.Background(), samples)
	twice := bridger.Bridge(context.Background(), once)
	assert.Equal(t, once, twice)
	assert.Equal(t, []models.EntryKind{
		models.EntryKindStationary,
		models.EntryKindDataGap,
		models.EntryKindStationary,
		models.EntryKindDataGap,
		models.EntryKindTravel,
	}, kinds(once))
}

// randomWalk builds a timeline of parked, driving and silent periods
func randomWalk(seed int64) []models.LocationSample {
	rng := rand.New(rand.NewSource(seed))
	lat, lon := 40.0, -75.0
	ts := base
	var out []models.LocationSample

	for phase := 0; phase < 40; phase++ {
		switch rng.Intn(5) {
		case 0, 1:
			n := 2 + rng.Intn(20)
			step := int64(30+rng.Intn(90)) * second
			out = append(out, cluster(lat, lon, ts, n, step)...)
			ts += int64(n) * step
		case 2, 3:
			steps := 1 + rng.Intn(15)
			meters := float64(2000 + rng.Intn(20000))
			samples, endLat, endLon := leg(lat, lon, float64(rng.Intn(360)), meters, ts, steps, minute)
			out = append(out, samples...)
			lat, lon = endLat, endLon
			ts += int64(steps+1) * minute
		default:
			ts += int64(1+rng.Intn(60)) * minute
			if rng.Intn(2) == 0 {
				lat, lon = spatial.DestinationPoint(lat, lon, float64(rng.Intn(360)), float64(1000+rng.Intn(3000)))
			}
		}
	}
	return out
}

func TestGenerateProperties(t *testing.T) {
	thresholds := DefaultThresholds()
	maxGap := thresholds.MaxAcceptableGap.Milliseconds()
	minStay := thresholds.MinStationaryDuration.Milliseconds()

	for seed := int64(1); seed <= 25; seed++ {
		engine, loc := newTestEngine()
		bridger := NewBridger(thresholds, spatial.HaversineDistance, loc)
		samples := SortSamples(randomWalk(seed))
		require.NotEmpty(t, samples)

		result := engine.Run(context.Background(), samples)
		first, last := samples[0].Timestamp, samples[len(samples)-1].Timestamp

		for _, entries := range [][]models.ReportEntry{result.Provisional, result.Entries} {
			for i, e := range entries {
				require.NoError(t, e.Validate(), "seed %d entry %d", seed, i)
				assert.GreaterOrEqual(t, e.StartTime, first, "seed %d", seed)
				assert.LessOrEqual(t, e.EndTime, last, "seed %d", seed)
				if i > 0 {
					assert.GreaterOrEqual(t, e.StartTime, entries[i-1].EndTime, "seed %d entry %d overlaps", seed, i)
				}
				if e.IsStationary() {
					assert.GreaterOrEqual(t, e.Duration, minStay, "seed %d", seed)
					assert.GreaterOrEqual(t, e.Stationary.SampleCount, 2, "seed %d", seed)
				}
			}
		}

		// Every oversized delta shows up as a gap of exactly that span
		gaps := map[[2]int64]bool{}
		var covered int64
		for _, e := range result.Provisional {
			covered += e.Duration
			if e.IsDataGap() {
				gaps[[2]int64{e.StartTime, e.EndTime}] = true
			}
		}
		expected := 0
		for i := 1; i < len(samples); i++ {
			if samples[i].Timestamp-samples[i-1].Timestamp > maxGap {
				expected++
				assert.True(t, gaps[[2]int64{samples[i-1].Timestamp, samples[i].Timestamp}], "seed %d missing gap at %d", seed, i)
			}
		}
		assert.Len(t, gaps, expected, "seed %d", seed)
		assert.LessOrEqual(t, covered, last-first, "seed %d", seed)

		// No sample is claimed by two stationary or travel entries
		for _, s := range samples {
			claims := 0
			for _, e := range result.Entries {
				if !e.IsDataGap() && s.Timestamp >= e.StartTime && s.Timestamp <= e.EndTime {
					claims++
				}
			}
			assert.LessOrEqual(t, claims, 1, "seed %d sample %d", seed, s.Timestamp)
		}

		assert.Equal(t, result.Entries, bridger.Bridge(context.Background(), result.Entries), "seed %d", seed)
	}
}
