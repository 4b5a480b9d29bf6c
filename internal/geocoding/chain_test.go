package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewChainOffline(t *testing.T) {
	g := NewChain(ChainConfig{}, nil)
	assert.Equal(t, "40.00000, -75.00000", g.Address(context.Background(), 40, -75))
	city, region := g.CityRegion(context.Background(), 40, -75)
	assert.Nil(t, city)
	assert.Nil(t, region)
}

func TestNewChainCachesNominatim(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(philly))
	}))
	defer srv.Close()

	g := NewChain(ChainConfig{URL: srv.URL, Timeout: time.Second, CacheSize: 10, CacheTTL: time.Minute}, nil)

	assert.Contains(t, g.Address(context.Background(), 39.9526, -75.1652), "Philadelphia")
	city, region := g.CityRegion(context.Background(), 39.9526, -75.1652)
	assert.Equal(t, "Philadelphia", *city)
	assert.Equal(t, "Pennsylvania", *region)
	assert.Equal(t, int32(1), calls.Load())
}
