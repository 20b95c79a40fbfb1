package forecast_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smukkama/weather-advisor/internal/forecast"
	"github.com/smukkama/weather-advisor/pkg/config"
)

const forecastBody = `{
	"cod": "200",
	"message": 0,
	"city": {"name": "Tokyo"},
	"list": [
		{
			"dt": 1752544800,
			"main": {"temp": 27.3},
			"weather": [{"main": "Rain", "description": "light rain"}],
			"pop": 0.6,
			"rain": {"3h": 1.4}
		},
		{
			"dt": 1752555600,
			"main": {},
			"weather": [],
			"rain": {"1h": 0.2}
		}
	]
}`

func TestFetch_MapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := forecast.NewClientWithURL(srv.URL, "test-key")

	set, err := c.Fetch(context.Background(), 35.6895, 139.6917)
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", set.Location)
	require.Len(t, set.Points, 2)

	first := set.Points[0]
	assert.Equal(t, int64(1752544800), first.Timestamp)
	require.NotNil(t, first.Temp)
	assert.Equal(t, 27.3, *first.Temp)
	assert.Equal(t, "Rain", first.Category)
	assert.Equal(t, "light rain", first.Description)
	require.NotNil(t, first.Pop)
	assert.Equal(t, 0.6, *first.Pop)
	assert.Equal(t, 1.4, first.Volume())

	// Empty weather array and missing temp become absent, not zero
	second := set.Points[1]
	assert.Nil(t, second.Temp)
	assert.Empty(t, second.Category)
	assert.Nil(t, second.Pop)
	assert.Equal(t, 0.2, second.Volume(), "1h volume is the fallback")
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := forecast.NewClientWithURL(srv.URL, "test-key")

	_, err := c.Fetch(context.Background(), 35.0, 139.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetch_ProviderErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	c := forecast.NewClientWithURL(srv.URL, "bad-key")

	_, err := c.Fetch(context.Background(), 35.0, 139.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := forecast.NewClientWithURL(srv.URL, "test-key")

	_, err := c.Fetch(context.Background(), 35.0, 139.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestFetch_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := forecast.NewClient(config.OpenWeatherConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Retries: 2,
	})

	set, err := c.Fetch(context.Background(), 35.0, 139.0)
	require.NoError(t, err)
	assert.Len(t, set.Points, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := forecast.NewClient(config.OpenWeatherConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Retries: 2,
	})

	_, err := c.Fetch(context.Background(), 35.0, 139.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), calls.Load())
}
