package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/travel-report-go/internal/metrics"
	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/report"
)

// SampleSource loads the samples of one entity within a time window
type SampleSource interface {
	GetSamples(ctx context.Context, entityID string, start, end int64) ([]models.LocationSample, error)
}

// ReportService generates travel reports
type ReportService struct {
	source  SampleSource
	engine  *report.Engine
	metrics *metrics.Collector
}

// NewReportService creates a new report service
func NewReportService(source SampleSource, engine *report.Engine, m *metrics.Collector) *ReportService {
	return &ReportService{source: source, engine: engine, metrics: m}
}

// GenerateForEntity builds a report over the stored samples of filter.EntityID
func (s *ReportService) GenerateForEntity(ctx context.Context, filter models.ReportFilter) (*models.TravelReport, error) {
	if filter.EntityID == "" {
		s.metrics.ReportFailed("invalid")
		return nil, fmt.Errorf("%w: entity id is required", ErrInvalidSample)
	}
	if filter.StartTime < 0 || filter.EndTime < 0 ||
		(filter.StartTime > 0 && filter.EndTime > 0 && filter.EndTime < filter.StartTime) {
		s.metrics.ReportFailed("invalid")
		return nil, fmt.Errorf("%w: start %d, end %d", ErrInvalidWindow, filter.StartTime, filter.EndTime)
	}

	samples, err := s.source.GetSamples(ctx, filter.EntityID, filter.StartTime, filter.EndTime)
	if err != nil {
		s.metrics.ReportFailed("load")
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	return s.generate(ctx, "stored", filter.EntityID, samples, !filter.Raw), nil
}

// GenerateFromSamples builds a report over caller supplied samples, which must
// all belong to one entity. No samples yields an empty report.
func (s *ReportService) GenerateFromSamples(ctx context.Context, entityID string, samples []models.LocationSample) (*models.TravelReport, error) {
	return s.fromSamples(ctx, entityID, samples, true)
}

// GenerateRawFromSamples is GenerateFromSamples without gap bridging
func (s *ReportService) GenerateRawFromSamples(ctx context.Context, entityID string, samples []models.LocationSample) (*models.TravelReport, error) {
	return s.fromSamples(ctx, entityID, samples, false)
}

func (s *ReportService) fromSamples(ctx context.Context, entityID string, samples []models.LocationSample, bridge bool) (*models.TravelReport, error) {
	if len(samples) == 0 {
		return s.generate(ctx, "posted", entityID, nil, bridge), nil
	}
	entityID, batch, err := PrepareBatch(entityID, samples)
	if err != nil {
		s.metrics.ReportFailed("invalid")
		return nil, err
	}
	return s.generate(ctx, "posted", entityID, batch, bridge), nil
}

func (s *ReportService) generate(ctx context.Context, source, entityID string, samples []models.LocationSample, bridge bool) *models.TravelReport {
	started := time.Now()

	var entries []models.ReportEntry
	var merges map[models.EntryKind]int
	if bridge {
		result := s.engine.Run(ctx, samples)
		entries = result.Entries
		merges = result.Merges
	} else {
		entries = s.engine.Segment(ctx, samples)
	}

	var windowStart, windowEnd int64
	if len(samples) > 0 {
		windowStart, windowEnd = samples[0].Timestamp, samples[0].Timestamp
		for _, p := range samples[1:] {
			windowStart = min(windowStart, p.Timestamp)
			windowEnd = max(windowEnd, p.Timestamp)
		}
	}

	elapsed := time.Since(started)
	s.metrics.ObserveReport(source, elapsed, len(samples), entries, merges)
	log.Printf("[ReportService] entity %s: %d samples -> %d entries (%d gaps bridged) in %v",
		entityID, len(samples), len(entries), sumMerges(merges), elapsed)

	return &models.TravelReport{
		ID:          uuid.New(),
		EntityID:    entityID,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		SampleCount: len(samples),
		Bridged:     bridge,
		Entries:     entries,
		Summary:     models.Summarize(entries),
		GeneratedAt: time.Now().UTC(),
	}
}

func sumMerges(merges map[models.EntryKind]int) int {
	n := 0
	for _, c := range merges {
		n += c
	}
	return n
}
