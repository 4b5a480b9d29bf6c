package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/travel-report-go/internal/database"
	"github.com/jengzang/travel-report-go/internal/models"
)

// LocationRepository handles database operations for location samples
type LocationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// GetSamples returns the samples of one entity ordered by timestamp then id.
// A zero start or end leaves that side of the window open.
func (r *LocationRepository) GetSamples(ctx context.Context, entityID string, start, end int64) ([]models.LocationSample, error) {
	query := `SELECT id, entity_id, latitude, longitude, timestamp_ms, speed, bearing
		FROM location_samples`

	conditions := []string{"entity_id = ?"}
	args := []interface{}{entityID}

	if start > 0 {
		conditions = append(conditions, "timestamp_ms >= ?")
		args = append(args, start)
	}
	if end > 0 {
		conditions = append(conditions, "timestamp_ms <= ?")
		args = append(args, end)
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY timestamp_ms, id"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query location samples: %w", err)
	}
	defer rows.Close()

	samples := []models.LocationSample{}
	for rows.Next() {
		var s models.LocationSample
		var speed, bearing sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.EntityID, &s.Latitude, &s.Longitude, &s.Timestamp, &speed, &bearing); err != nil {
			return nil, fmt.Errorf("failed to scan location sample: %w", err)
		}
		if speed.Valid {
			s.Speed = &speed.Float64
		}
		if bearing.Valid {
			s.Bearing = &bearing.Float64
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location samples: %w", err)
	}

	return samples, nil
}

// InsertSamples stores samples in a single transaction
func (r *LocationRepository) InsertSamples(ctx context.Context, samples []models.LocationSample) error {
	if len(samples) == 0 {
		return nil
	}

	query := r.db.Rebind(`INSERT INTO location_samples
		(entity_id, latitude, longitude, timestamp_ms, speed, bearing)
		VALUES (?, ?, ?, ?, ?, ?)`)

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range samples {
			if _, err := stmt.ExecContext(ctx, s.EntityID, s.Latitude, s.Longitude, s.Timestamp,
				nullFloat(s.Speed), nullFloat(s.Bearing)); err != nil {
				return fmt.Errorf("failed to insert location sample: %w", err)
			}
		}
		return nil
	})
}

// ListEntities returns one summary per entity with stored samples
func (r *LocationRepository) ListEntities(ctx context.Context) ([]models.EntitySummary, error) {
	query := `SELECT entity_id, COUNT(*), MIN(timestamp_ms), MAX(timestamp_ms)
		FROM location_samples
		GROUP BY entity_id
		ORDER BY entity_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	entities := []models.EntitySummary{}
	for rows.Next() {
		var e models.EntitySummary
		if err := rows.Scan(&e.EntityID, &e.SampleCount, &e.FirstTime, &e.LastTime); err != nil {
			return nil, fmt.Errorf("failed to scan entity summary: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}

	return entities, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
