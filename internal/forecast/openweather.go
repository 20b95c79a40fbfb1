package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/smukkama/weather-advisor/pkg/config"
)

// Client fetches 5-day/3-hour forecasts from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	retries int
	http    *http.Client
}

// NewClient creates a forecast client from configuration.
func NewClient(cfg config.OpenWeatherConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		retries: cfg.Retries,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewClientWithURL creates a client pointed at a custom endpoint, for tests.
func NewClientWithURL(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		retries: 1,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// forecastResponse mirrors the OpenWeatherMap /data/2.5/forecast payload.
// The cod field is a string on success ("200") but a bare number on some
// error payloads, so it stays raw until checked.
type forecastResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message json.RawMessage `json:"message"` // number on success, string on error
	City    struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Pop  *float64 `json:"pop"`
		Rain struct {
			ThreeHour *float64 `json:"3h"`
			OneHour   *float64 `json:"1h"`
		} `json:"rain"`
	} `json:"list"`
}

// Fetch retrieves the short-range forecast for a point. It retries
// transient failures a bounded number of times before giving up.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (Set, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return Set{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		set, err := c.fetchOnce(ctx, lat, lon)
		if err == nil {
			return set, nil
		}
		lastErr = err
		fmt.Printf("Forecast fetch attempt %d/%d failed: %v\n", attempt, c.retries, err)
	}
	return Set{}, fmt.Errorf("forecast fetch failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, lat, lon float64) (Set, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Set{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Set{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Set{}, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var forecastResp forecastResponse
	if err := json.Unmarshal(rawData, &forecastResp); err != nil {
		return Set{}, fmt.Errorf("failed to parse API response: %w", err)
	}

	if err := checkProviderCode(forecastResp.Cod, forecastResp.Message); err != nil {
		return Set{}, err
	}

	set := Set{
		Location: forecastResp.City.Name,
		Points:   make([]Point, 0, len(forecastResp.List)),
	}

	for _, item := range forecastResp.List {
		point := Point{
			Timestamp: item.Dt,
			Temp:      item.Main.Temp,
			Pop:       item.Pop,
			Rain3h:    item.Rain.ThreeHour,
			Rain1h:    item.Rain.OneHour,
		}
		// The weather array is occasionally empty; treat it as absent
		// rather than failing the whole fetch.
		if len(item.Weather) > 0 {
			point.Category = item.Weather[0].Main
			point.Description = item.Weather[0].Description
		}
		set.Points = append(set.Points, point)
	}

	return set, nil
}

// checkProviderCode rejects payloads that carry an OpenWeatherMap error
// code in the body despite an HTTP 200 transport status.
func checkProviderCode(cod, message json.RawMessage) error {
	if len(cod) == 0 {
		return nil
	}

	var codStr string
	if err := json.Unmarshal(cod, &codStr); err != nil {
		var codNum int
		if err := json.Unmarshal(cod, &codNum); err != nil {
			return nil
		}
		codStr = fmt.Sprintf("%d", codNum)
	}

	if codStr == "200" {
		return nil
	}

	var msg string
	_ = json.Unmarshal(message, &msg)
	if msg == "" {
		msg = "no message"
	}
	return fmt.Errorf("provider error %s: %s", codStr, msg)
}
