package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/travel-report-go/internal/models"
)

// Collector holds the service metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	reg *prometheus.Registry

	ReportsGenerated *prometheus.CounterVec // source label: stored|posted
	ReportErrors     *prometheus.CounterVec // reason label: invalid|load
	EntriesEmitted   *prometheus.CounterVec // kind label: stationary|travel|data_gap
	GapsBridged      *prometheus.CounterVec // kind label: stationary|travel
	SamplesProcessed prometheus.Counter
	SamplesIngested  prometheus.Counter

	GeocodeFailures    *prometheus.CounterVec // op label: address|city_region
	GeocodeCacheHits   prometheus.Counter
	GeocodeCacheMisses prometheus.Counter

	GenerateDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_report_reports_generated_total",
			Help: "Total travel reports generated.",
		}, []string{"source"}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_report_report_errors_total",
			Help: "Total report requests that failed before generation.",
		}, []string{"reason"}),
		EntriesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_report_entries_total",
			Help: "Total report entries emitted after gap bridging.",
		}, []string{"kind"}),
		GapsBridged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_report_gaps_bridged_total",
			Help: "Total data gaps merged away by gap bridging, by kind of the merged entry.",
		}, []string{"kind"}),
		SamplesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_report_samples_processed_total",
			Help: "Total location samples fed to the report engine.",
		}),
		SamplesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_report_samples_ingested_total",
			Help: "Total location samples stored.",
		}),
		GeocodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_report_geocode_failures_total",
			Help: "Total reverse geocoding lookups that degraded to a placeholder.",
		}, []string{"op"}),
		GeocodeCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_report_geocode_cache_hits_total",
			Help: "Total reverse geocoding lookups served from cache.",
		}),
		GeocodeCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travel_report_geocode_cache_misses_total",
			Help: "Total reverse geocoding lookups that missed the cache.",
		}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "travel_report_generate_duration_seconds",
			Help:    "Duration of report generation including geocoding.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
	}

	reg.MustRegister(
		c.ReportsGenerated, c.ReportErrors, c.EntriesEmitted,
		c.GapsBridged, c.SamplesProcessed, c.SamplesIngested,
		c.GeocodeFailures, c.GeocodeCacheHits, c.GeocodeCacheMisses,
		c.GenerateDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Registry exposes the underlying registry, mainly for tests
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// ObserveReport records one generated report
func (c *Collector) ObserveReport(source string, elapsed time.Duration, samples int, entries []models.ReportEntry, merges map[models.EntryKind]int) {
	if c == nil {
		return
	}
	c.ReportsGenerated.WithLabelValues(source).Inc()
	c.GenerateDuration.Observe(elapsed.Seconds())
	c.SamplesProcessed.Add(float64(samples))
	for kind, n := range merges {
		c.GapsBridged.WithLabelValues(string(kind)).Add(float64(n))
	}
	for _, e := range entries {
		c.EntriesEmitted.WithLabelValues(string(e.Kind)).Inc()
	}
}

func (c *Collector) ReportFailed(reason string) {
	if c == nil {
		return
	}
	c.ReportErrors.WithLabelValues(reason).Inc()
}

func (c *Collector) SamplesStored(n int) {
	if c == nil {
		return
	}
	c.SamplesIngested.Add(float64(n))
}

func (c *Collector) GeocodeFailed(op string) {
	if c == nil {
		return
	}
	c.GeocodeFailures.WithLabelValues(op).Inc()
}

func (c *Collector) CacheHit() {
	if c == nil {
		return
	}
	c.GeocodeCacheHits.Inc()
}

func (c *Collector) CacheMiss() {
	if c == nil {
		return
	}
	c.GeocodeCacheMisses.Inc()
}
