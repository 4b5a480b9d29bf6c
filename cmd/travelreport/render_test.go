package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/report"
	"github.com/jengzang/travel-report-go/internal/service"
)

func TestRender(t *testing.T) {
	color.NoColor = true
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli()
	minute := int64(60_000)
	city, region := "Camden", "NJ"

	entries := []models.ReportEntry{
		models.NewStationaryEntry(base, base+10*minute, models.StationaryInfo{Latitude: 40, Longitude: -75, Address: "Home", SampleCount: 11}),
		models.NewDataGapEntry(base+10*minute, base+30*minute),
		models.NewTravelEntry(base+30*minute, base+60*minute, models.TravelInfo{
			StartLat: 40, StartLon: -75, EndLat: 39.9, EndLon: -75.1,
			DistanceMiles: 12.5, AvgSpeedMPH: 25, EndCity: &city, EndRegion: &region,
		}),
	}
	rpt := &models.TravelReport{
		EntityID: "car-1", SampleCount: 42, WindowStart: base, WindowEnd: base + 60*minute,
		Entries: entries, Summary: models.Summarize(entries),
	}

	var buf bytes.Buffer
	render(&buf, rpt, time.UTC)
	out := buf.String()

	assert.Contains(t, out, "Travel report for car-1")
	assert.Contains(t, out, "42 samples, 2024-03-01 09:00 to 2024-03-01 10:00")
	assert.Contains(t, out, "09:00 - 09:10    10m0s  STAY    Home (11 samples)")
	assert.Contains(t, out, "09:10 - 09:30    20m0s  NO DATA")
	assert.Contains(t, out, "(40.0000, -75.0000) -> Camden, NJ, 12.5 mi SW @ 25.0 mph")
	assert.Contains(t, out, "1 stays (10m0s), 1 trips (30m0s, 12.5 mi), 1 gaps (20m0s)")
}

func TestReadBatchFormats(t *testing.T) {
	dir := t.TempDir()

	arrayPath := filepath.Join(dir, "array.json")
	require.NoError(t, os.WriteFile(arrayPath, []byte(`[{"latitude": 40, "longitude": -75, "timestamp": 1}]`), 0o600))
	batch, err := readBatch(arrayPath)
	require.NoError(t, err)
	assert.Len(t, batch.Samples, 1)
	assert.Empty(t, batch.EntityID)

	objectPath := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(objectPath, []byte(`{"entityId": "van", "samples": [{"latitude": 40, "longitude": -75, "timestamp": 1}]}`), 0o600))
	batch, err = readBatch(objectPath)
	require.NoError(t, err)
	assert.Equal(t, "van", batch.EntityID)

	_, err = readBatch(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestBuildReportRaw(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli()
	minute := int64(60_000)

	// Two ten minute stays at the same spot with a twenty minute hole between them
	var samples []models.LocationSample
	for _, start := range []int64{base, base + 30*minute} {
		for k := int64(0); k <= 10; k++ {
			samples = append(samples, models.LocationSample{Latitude: 40, Longitude: -75, Timestamp: start + k*minute})
		}
	}
	batch := models.SampleBatch{EntityID: "van", Samples: samples}
	svc := service.NewReportService(nil, report.NewEngine(report.DefaultThresholds(), nil, nil), nil)

	rpt, err := buildReport(context.Background(), svc, batch, true)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rpt.ID)
	assert.False(t, rpt.Bridged)
	assert.Equal(t, 22, rpt.SampleCount)
	assert.Equal(t, base, rpt.WindowStart)
	assert.Equal(t, base+40*minute, rpt.WindowEnd)
	require.Len(t, rpt.Entries, 3)
	assert.True(t, rpt.Entries[1].IsDataGap())
	assert.Equal(t, "40.00000, -75.00000", rpt.Entries[0].Stationary.Address)

	rpt, err = buildReport(context.Background(), svc, batch, false)
	require.NoError(t, err)
	assert.True(t, rpt.Bridged)
	require.Len(t, rpt.Entries, 1)
	assert.True(t, rpt.Entries[0].IsStationary())

	rpt, err = buildReport(context.Background(), svc, models.SampleBatch{EntityID: "van"}, true)
	require.NoError(t, err)
	assert.Empty(t, rpt.Entries)
}
