package models

// LocationSample represents one raw location ping for an entity
type LocationSample struct {
	ID        int64    `json:"id,omitempty" db:"id" msgpack:"id,omitempty"`
	EntityID  string   `json:"entityId" db:"entity_id" msgpack:"entityId"`
	Latitude  float64  `json:"latitude" db:"latitude" msgpack:"latitude"`
	Longitude float64  `json:"longitude" db:"longitude" msgpack:"longitude"`
	Timestamp int64    `json:"timestamp" db:"timestamp_ms" msgpack:"timestamp"` // Unix timestamp in milliseconds
	Speed     *float64 `json:"speed,omitempty" db:"speed" msgpack:"speed,omitempty"`       // Meters per second
	Bearing   *float64 `json:"bearing,omitempty" db:"bearing" msgpack:"bearing,omitempty"` // Degrees
}

// EntitySummary describes the samples stored for one entity
type EntitySummary struct {
	EntityID    string `json:"entityId" db:"entity_id"`
	SampleCount int64  `json:"sampleCount" db:"sample_count"`
	FirstTime   int64  `json:"firstTime" db:"first_time"` // Unix timestamp in milliseconds
	LastTime    int64  `json:"lastTime" db:"last_time"`   // Unix timestamp in milliseconds
}

// SampleBatch is the request body for ingesting or reporting over posted samples
type SampleBatch struct {
	EntityID string           `json:"entityId" msgpack:"entityId"`
	Samples  []LocationSample `json:"samples" msgpack:"samples"`
}
