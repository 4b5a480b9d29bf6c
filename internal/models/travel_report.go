package models

import (
	"time"

	"github.com/google/uuid"
)

// TravelReport is the generated timeline for one entity over a time window
type TravelReport struct {
	ID          uuid.UUID     `json:"id" msgpack:"id"`
	EntityID    string        `json:"entityId" msgpack:"entityId"`
	WindowStart int64         `json:"windowStart" msgpack:"windowStart"` // First sample timestamp in milliseconds
	WindowEnd   int64         `json:"windowEnd" msgpack:"windowEnd"`     // Last sample timestamp in milliseconds
	SampleCount int           `json:"sampleCount" msgpack:"sampleCount"`
	Bridged     bool          `json:"bridged" msgpack:"bridged"` // False when only the first pass was run
	Entries     []ReportEntry `json:"entries" msgpack:"entries"`
	Summary     ReportSummary `json:"summary" msgpack:"summary"`
	GeneratedAt time.Time     `json:"generatedAt" msgpack:"generatedAt"`
}

// ReportSummary aggregates the entries of a report
type ReportSummary struct {
	StationaryCount    int     `json:"stationaryCount" msgpack:"stationaryCount"`
	TravelCount        int     `json:"travelCount" msgpack:"travelCount"`
	DataGapCount       int     `json:"dataGapCount" msgpack:"dataGapCount"`
	StationaryDuration int64   `json:"stationaryDuration" msgpack:"stationaryDuration"` // Milliseconds
	TravelDuration     int64   `json:"travelDuration" msgpack:"travelDuration"`         // Milliseconds
	DataGapDuration    int64   `json:"dataGapDuration" msgpack:"dataGapDuration"`       // Milliseconds
	TotalDistanceMiles float64 `json:"totalDistanceMiles" msgpack:"totalDistanceMiles"`
}

// Summarize computes the summary of a list of entries
func Summarize(entries []ReportEntry) ReportSummary {
	var s ReportSummary
	for _, e := range entries {
		switch e.Kind {
		case EntryKindStationary:
			s.StationaryCount++
			s.StationaryDuration += e.Duration
		case EntryKindTravel:
			s.TravelCount++
			s.TravelDuration += e.Duration
			s.TotalDistanceMiles += e.Travel.DistanceMiles
		case EntryKindDataGap:
			s.DataGapCount++
			s.DataGapDuration += e.Duration
		}
	}
	return s
}
