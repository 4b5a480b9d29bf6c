package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jengzang/travel-report-go/internal/metrics"
	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

// MaxBatchSize bounds the samples accepted in one request
const MaxBatchSize = 50_000

// SampleStore persists location samples
type SampleStore interface {
	InsertSamples(ctx context.Context, samples []models.LocationSample) error
	ListEntities(ctx context.Context) ([]models.EntitySummary, error)
}

// SampleService handles validation and ingest of location samples
type SampleService struct {
	store   SampleStore
	metrics *metrics.Collector
}

// NewSampleService creates a new sample service
func NewSampleService(store SampleStore, m *metrics.Collector) *SampleService {
	return &SampleService{store: store, metrics: m}
}

// ValidateSample checks a single sample's coordinates and timestamp
func ValidateSample(s models.LocationSample) error {
	if s.EntityID == "" {
		return fmt.Errorf("%w: entity id is required", ErrInvalidSample)
	}
	if !spatial.ValidCoordinate(s.Latitude, s.Longitude) {
		return fmt.Errorf("%w: coordinate (%v, %v) out of range", ErrInvalidSample, s.Latitude, s.Longitude)
	}
	if s.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp must be positive, got %d", ErrInvalidSample, s.Timestamp)
	}
	return nil
}

// PrepareBatch assigns entityID to samples that omit it and validates the batch.
// An empty entityID is taken from the first sample. The input is not modified.
func PrepareBatch(entityID string, samples []models.LocationSample) (string, []models.LocationSample, error) {
	if len(samples) == 0 {
		return "", nil, ErrNoSamples
	}
	if len(samples) > MaxBatchSize {
		return "", nil, fmt.Errorf("%w: %d samples, limit is %d", ErrBatchTooLarge, len(samples), MaxBatchSize)
	}
	if entityID == "" {
		entityID = samples[0].EntityID
	}

	out := make([]models.LocationSample, len(samples))
	for i, s := range samples {
		if s.EntityID == "" {
			s.EntityID = entityID
		}
		if s.EntityID != entityID {
			return "", nil, fmt.Errorf("%w: %q and %q", ErrMixedEntities, entityID, s.EntityID)
		}
		if err := ValidateSample(s); err != nil {
			return "", nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = s
	}
	return entityID, out, nil
}

// Ingest validates and stores samples for one entity
func (s *SampleService) Ingest(ctx context.Context, entityID string, samples []models.LocationSample) (int, error) {
	_, batch, err := PrepareBatch(entityID, samples)
	if err != nil {
		return 0, err
	}

	if err := s.store.InsertSamples(ctx, batch); err != nil {
		return 0, fmt.Errorf("failed to store samples: %w", err)
	}

	s.metrics.SamplesStored(len(batch))
	log.Printf("[SampleService] stored %d samples for entity %s", len(batch), batch[0].EntityID)
	return len(batch), nil
}

// ListEntities returns the entities that have stored samples
func (s *SampleService) ListEntities(ctx context.Context) ([]models.EntitySummary, error) {
	entities, err := s.store.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}
