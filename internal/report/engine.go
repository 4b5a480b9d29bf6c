package report

import (
	"context"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

// Engine runs the two pass report pipeline for one entity at a time.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	thresholds Thresholds
	segmenter  *Segmenter
	bridger    *Bridger
}

// Result holds the output of both passes
type Result struct {
	Provisional []models.ReportEntry     // First pass output
	Entries     []models.ReportEntry     // Final output after gap bridging
	Merges      map[models.EntryKind]int // Gaps bridged, by kind of the merged entry
}

// BridgedGaps returns how many gaps were merged away by the second pass
func (r Result) BridgedGaps() int {
	return (len(r.Provisional) - len(r.Entries)) / 2
}

// NewEngine creates a new engine. A nil distance function falls back to
// HaversineDistance and a nil locator to CoordinateLocator.
func NewEngine(thresholds Thresholds, distance spatial.DistanceFunc, locator Locator) *Engine {
	if distance == nil {
		distance = spatial.HaversineDistance
	}
	return &Engine{
		thresholds: thresholds,
		segmenter:  NewSegmenter(thresholds, distance, locator),
		bridger:    NewBridger(thresholds, distance, locator),
	}
}

// Thresholds returns the thresholds the engine was built with
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Segment runs only the first pass
func (e *Engine) Segment(ctx context.Context, samples []models.LocationSample) []models.ReportEntry {
	return e.segmenter.Segment(ctx, samples)
}

// Run runs both passes and returns the intermediate and final entry lists
func (e *Engine) Run(ctx context.Context, samples []models.LocationSample) Result {
	provisional := e.segmenter.Segment(ctx, samples)
	entries, merges := e.bridger.bridge(ctx, provisional)
	return Result{
		Provisional: provisional,
		Entries:     entries,
		Merges:      merges,
	}
}

// Generate runs both passes and returns the final report entries
func (e *Engine) Generate(ctx context.Context, samples []models.LocationSample) []models.ReportEntry {
	return e.Run(ctx, samples).Entries
}
