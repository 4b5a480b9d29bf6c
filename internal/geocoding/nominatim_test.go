package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const philly = `{
  "display_name": "1 Penn Square, Philadelphia, Pennsylvania, 19107, United States",
  "address": {"city": "Philadelphia", "state": "Pennsylvania", "country": "United States"}
}`

func newTestClient(url string) *NominatimClient {
	return NewNominatimClient(NominatimConfig{
		BaseURL:  url,
		Attempts: 3,
		Delay:    time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	})
}

func TestNominatimReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "39.952600", r.URL.Query().Get("lat"))
		assert.Equal(t, "-75.165200", r.URL.Query().Get("lon"))
		assert.Equal(t, "travel-report-go", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(philly))
	}))
	defer srv.Close()

	place, err := newTestClient(srv.URL).Reverse(context.Background(), 39.9526, -75.1652)
	require.NoError(t, err)
	assert.Contains(t, place.Address, "Philadelphia")
	require.NotNil(t, place.City)
	require.NotNil(t, place.Region)
	assert.Equal(t, "Philadelphia", *place.City)
	assert.Equal(t, "Pennsylvania", *place.Region)
}

func TestNominatimCityFallsBackToTown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"display_name": "Main St, Smallville", "address": {"town": "Smallville"}}`))
	}))
	defer srv.Close()

	place, err := newTestClient(srv.URL).Reverse(context.Background(), 40, -75)
	require.NoError(t, err)
	require.NotNil(t, place.City)
	assert.Equal(t, "Smallville", *place.City)
	assert.Nil(t, place.Region)
}

func TestNominatimNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Reverse(context.Background(), 0, -160)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestNominatimRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(philly))
	}))
	defer srv.Close()

	place, err := newTestClient(srv.URL).Reverse(context.Background(), 39.9526, -75.1652)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "Philadelphia", *place.City)
}

func TestNominatimDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Reverse(context.Background(), 39.9526, -75.1652)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNominatimGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Reverse(context.Background(), 39.9526, -75.1652)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(3), calls.Load())
}
