package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jengzang/travel-report-go/internal/report"
)

// LoadThresholds reads a YAML thresholds file. Keys left out keep their
// default values. Distances are meters, durations are Go duration strings.
//
//	stationary_radius_m: 50
//	min_stationary_duration: 5m
//	max_acceptable_gap: 15m
func LoadThresholds(path string) (report.Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.Thresholds{}, fmt.Errorf("failed to read thresholds file: %w", err)
	}
	return ParseThresholds(data)
}

// ParseThresholds decodes YAML over the default thresholds and validates the result
func ParseThresholds(data []byte) (report.Thresholds, error) {
	t := report.DefaultThresholds()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return report.Thresholds{}, fmt.Errorf("failed to parse thresholds: %w", err)
	}

	if err := t.Validate(); err != nil {
		return report.Thresholds{}, fmt.Errorf("invalid thresholds: %w", err)
	}
	return t, nil
}
