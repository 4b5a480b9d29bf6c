package models

import "fmt"

// EntryKind identifies the variant of a ReportEntry
type EntryKind string

// EntryKind constants
const (
	EntryKindStationary EntryKind = "stationary"
	EntryKindTravel     EntryKind = "travel"
	EntryKindDataGap    EntryKind = "data_gap"
)

// ReportEntry is one period of a travel report.
// Exactly one payload matches Kind: Stationary for stationary entries,
// Travel for travel entries, and neither for data gaps.
type ReportEntry struct {
	Kind      EntryKind `json:"kind" msgpack:"kind"`
	StartTime int64     `json:"startTime" msgpack:"startTime"` // Unix timestamp in milliseconds
	EndTime   int64     `json:"endTime" msgpack:"endTime"`     // Unix timestamp in milliseconds
	Duration  int64     `json:"duration" msgpack:"duration"`   // Milliseconds

	Stationary *StationaryInfo `json:"stationary,omitempty" msgpack:"stationary,omitempty"`
	Travel     *TravelInfo     `json:"travel,omitempty" msgpack:"travel,omitempty"`
}

// StationaryInfo holds the payload of a stationary entry
type StationaryInfo struct {
	Latitude    float64 `json:"latitude" msgpack:"latitude"`
	Longitude   float64 `json:"longitude" msgpack:"longitude"`
	Address     string  `json:"address" msgpack:"address"`
	SampleCount int     `json:"sampleCount" msgpack:"sampleCount"`
}

// TravelInfo holds the payload of a travel entry
type TravelInfo struct {
	StartLat      float64 `json:"startLat" msgpack:"startLat"`
	StartLon      float64 `json:"startLon" msgpack:"startLon"`
	EndLat        float64 `json:"endLat" msgpack:"endLat"`
	EndLon        float64 `json:"endLon" msgpack:"endLon"`
	DistanceMiles float64 `json:"distanceMiles" msgpack:"distanceMiles"`
	AvgSpeedMPH   float64 `json:"avgSpeedMph" msgpack:"avgSpeedMph"`

	// Reverse geocoded endpoints, nil when the lookup failed
	StartCity   *string `json:"startCity" msgpack:"startCity"`
	StartRegion *string `json:"startRegion" msgpack:"startRegion"`
	EndCity     *string `json:"endCity" msgpack:"endCity"`
	EndRegion   *string `json:"endRegion" msgpack:"endRegion"`
}

// NewStationaryEntry creates a stationary entry spanning start to end
func NewStationaryEntry(start, end int64, info StationaryInfo) ReportEntry {
	return ReportEntry{
		Kind:       EntryKindStationary,
		StartTime:  start,
		EndTime:    end,
		Duration:   end - start,
		Stationary: &info,
	}
}

// NewTravelEntry creates a travel entry spanning start to end
func NewTravelEntry(start, end int64, info TravelInfo) ReportEntry {
	return ReportEntry{
		Kind:      EntryKindTravel,
		StartTime: start,
		EndTime:   end,
		Duration:  end - start,
		Travel:    &info,
	}
}

// NewDataGapEntry creates a data gap spanning start to end
func NewDataGapEntry(start, end int64) ReportEntry {
	return ReportEntry{
		Kind:      EntryKindDataGap,
		StartTime: start,
		EndTime:   end,
		Duration:  end - start,
	}
}

// IsStationary reports whether the entry is a stationary period
func (e ReportEntry) IsStationary() bool { return e.Kind == EntryKindStationary }

// IsTravel reports whether the entry is a travel segment
func (e ReportEntry) IsTravel() bool { return e.Kind == EntryKindTravel }

// IsDataGap reports whether the entry is a data gap
func (e ReportEntry) IsDataGap() bool { return e.Kind == EntryKindDataGap }

// Validate checks that the tag, payload and timing of the entry agree
func (e ReportEntry) Validate() error {
	if e.EndTime < e.StartTime {
		return fmt.Errorf("entry ends before it starts: %d < %d", e.EndTime, e.StartTime)
	}
	if e.Duration != e.EndTime-e.StartTime {
		return fmt.Errorf("entry duration %d does not match span %d", e.Duration, e.EndTime-e.StartTime)
	}

	switch e.Kind {
	case EntryKindStationary:
		if e.Stationary == nil || e.Travel != nil {
			return fmt.Errorf("stationary entry must carry only a stationary payload")
		}
	case EntryKindTravel:
		if e.Travel == nil || e.Stationary != nil {
			return fmt.Errorf("travel entry must carry only a travel payload")
		}
	case EntryKindDataGap:
		if e.Stationary != nil || e.Travel != nil {
			return fmt.Errorf("data gap entry must not carry a payload")
		}
	default:
		return fmt.Errorf("unknown entry kind: %q", e.Kind)
	}

	return nil
}
