// Package weather wraps the current-weather provider (OpenWeatherMap wire
// format), always in imperial units.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Snapshot is one city's current conditions.
type Snapshot struct {
	PlaceName   string
	Condition   string
	TempMin     float64
	TempMax     float64
	TempCurrent float64
	HumidityPct float64
	CloudPct    float64
	WindSpeed   float64 // mph
}

type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Client calls the weather API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// New creates a weather client.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		apiKey: apiKey,
	}
}

// Current resolves the city name and returns its current conditions.
func (c *Client) Current(ctx context.Context, city string) (*Snapshot, error) {
	var out weatherResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"APPID": c.apiKey,
			"q":     city,
			"units": "imperial",
		}).
		SetResult(&out).
		Get("/data/2.5/weather")
	if err != nil {
		return nil, fmt.Errorf("querying weather: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("weather lookup returned status %d: %s", resp.StatusCode(), resp.String())
	}

	snap := &Snapshot{
		PlaceName:   out.Name,
		TempMin:     out.Main.TempMin,
		TempMax:     out.Main.TempMax,
		TempCurrent: out.Main.Temp,
		HumidityPct: out.Main.Humidity,
		CloudPct:    out.Clouds.All,
		WindSpeed:   out.Wind.Speed,
	}
	if len(out.Weather) > 0 {
		snap.Condition = out.Weather[0].Description
	}
	return snap, nil
}
