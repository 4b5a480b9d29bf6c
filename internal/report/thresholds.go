package report

import (
	"fmt"
	"time"
)

// Thresholds are the policy knobs of segmentation and gap bridging
type Thresholds struct {
	// Max drift from a cluster's first sample that still counts as stationary
	StationaryRadius float64 `yaml:"stationary_radius_m"`
	// Minimum span for a cluster to become a stationary entry
	MinStationaryDuration time.Duration `yaml:"min_stationary_duration"`
	// Any delta between consecutive samples above this is a data gap
	MaxAcceptableGap time.Duration `yaml:"max_acceptable_gap"`
	// Max distance between two stationary anchors to bridge across a gap
	StationaryBridgeRadius float64 `yaml:"stationary_bridge_radius_m"`
	// Max jump between travel end and travel start to bridge across a gap
	TravelBridgeMaxTeleportDistance float64 `yaml:"travel_bridge_max_teleport_distance_m"`
	// Max gap duration eligible for travel bridging
	TravelBridgeMaxGapDuration time.Duration `yaml:"travel_bridge_max_gap_duration"`
}

// DefaultThresholds returns the standard thresholds.
// MinStationaryDuration is five minutes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StationaryRadius:                50,
		MinStationaryDuration:           5 * time.Minute,
		MaxAcceptableGap:                15 * time.Minute,
		StationaryBridgeRadius:          100,
		TravelBridgeMaxTeleportDistance: 2000,
		TravelBridgeMaxGapDuration:      30 * time.Minute,
	}
}

// Validate checks that every threshold is strictly positive
func (t Thresholds) Validate() error {
	if t.StationaryRadius <= 0 {
		return fmt.Errorf("stationary radius must be positive, got %v", t.StationaryRadius)
	}
	if t.MinStationaryDuration <= 0 {
		return fmt.Errorf("min stationary duration must be positive, got %v", t.MinStationaryDuration)
	}
	if t.MaxAcceptableGap <= 0 {
		return fmt.Errorf("max acceptable gap must be positive, got %v", t.MaxAcceptableGap)
	}
	if t.StationaryBridgeRadius <= 0 {
		return fmt.Errorf("stationary bridge radius must be positive, got %v", t.StationaryBridgeRadius)
	}
	if t.TravelBridgeMaxTeleportDistance <= 0 {
		return fmt.Errorf("travel bridge teleport distance must be positive, got %v", t.TravelBridgeMaxTeleportDistance)
	}
	if t.TravelBridgeMaxGapDuration <= 0 {
		return fmt.Errorf("travel bridge max gap duration must be positive, got %v", t.TravelBridgeMaxGapDuration)
	}
	return nil
}

func (t Thresholds) minStationaryMs() int64 { return t.MinStationaryDuration.Milliseconds() }
func (t Thresholds) maxGapMs() int64        { return t.MaxAcceptableGap.Milliseconds() }
func (t Thresholds) travelBridgeGapMs() int64 {
	return t.TravelBridgeMaxGapDuration.Milliseconds()
}
