package geocoding

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/jengzang/travel-report-go/internal/metrics"
)

// CachedReverser memoizes successful lookups keyed by the coordinate rounded
// to five decimal places (about one meter). Failures are not cached.
type CachedReverser struct {
	next    Reverser
	cache   *otter.Cache[string, Place]
	metrics *metrics.Collector
}

func NewCachedReverser(next Reverser, size int, ttl time.Duration, m *metrics.Collector) *CachedReverser {
	if size <= 0 {
		size = 10_000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cache := otter.Must(&otter.Options[string, Place]{
		MaximumSize:      size,
		ExpiryCalculator: otter.ExpiryWriting[string, Place](ttl),
	})
	return &CachedReverser{next: next, cache: cache, metrics: m}
}

func (c *CachedReverser) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	key := cacheKey(lat, lon)
	if place, ok := c.cache.GetIfPresent(key); ok {
		c.metrics.CacheHit()
		return &place, nil
	}
	c.metrics.CacheMiss()

	place, err := c.next.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, *place)
	return place, nil
}

// Size returns the approximate number of cached places
func (c *CachedReverser) Size() int {
	return c.cache.EstimatedSize()
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.5f,%.5f", round5(lat), round5(lon))
}

func round5(v float64) float64 {
	r := math.Round(v*1e5) / 1e5
	if r == 0 {
		return 0 // fold -0
	}
	return r
}
