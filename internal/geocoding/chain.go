package geocoding

import (
	"log"
	"time"

	"github.com/jengzang/travel-report-go/internal/metrics"
)

// ChainConfig selects and tunes the geocoder chain
type ChainConfig struct {
	URL       string // empty uses StaticReverser
	UserAgent string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

// NewChain builds Nominatim -> cache -> SafeGeocoder, or a static offline
// geocoder when no URL is configured
func NewChain(cfg ChainConfig, m *metrics.Collector) *SafeGeocoder {
	var r Reverser = StaticReverser{}
	if cfg.URL != "" {
		client := NewNominatimClient(NominatimConfig{BaseURL: cfg.URL, UserAgent: cfg.UserAgent})
		r = NewCachedReverser(client, cfg.CacheSize, cfg.CacheTTL, m)
		log.Printf("[Geocoder] using %s (cache %d entries, ttl %v, timeout %v)", cfg.URL, cfg.CacheSize, cfg.CacheTTL, cfg.Timeout)
	} else {
		log.Printf("[Geocoder] no GEOCODER_URL set, using offline coordinates")
	}
	return NewSafeGeocoder(NewGeocoder(r), cfg.Timeout, m)
}
