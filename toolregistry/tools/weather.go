// Package tools implements the native, in-process tools the Chat Agent can
// call directly: current weather, and skill read/write against the caller's
// skill catalog.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// WeatherArgs is the reflected parameter shape for get_current_weather.
type WeatherArgs struct {
	Latitude  float64 `json:"latitude" jsonschema:"description=Latitude of the location to get weather for."`
	Longitude float64 `json:"longitude" jsonschema:"description=Longitude of the location to get weather for."`
}

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Weather calls the Open-Meteo forecast API for the given coordinates.
type Weather struct {
	HTTPClient  *http.Client
	ForecastURL string
}

func NewWeather(client *http.Client) *Weather {
	if client == nil {
		client = http.DefaultClient
	}
	return &Weather{HTTPClient: client, ForecastURL: defaultForecastURL}
}

func (w *Weather) Name() string { return "get_current_weather" }

func (w *Weather) Description() string {
	return "Get the current weather, hourly, and daily forecast for a location given its latitude and longitude."
}

func (w *Weather) Args() any { return &WeatherArgs{} }

func (w *Weather) Call(ctx context.Context, raw json.RawMessage) (any, error) {
	var args WeatherArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("get_current_weather: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", args.Latitude))
	q.Set("longitude", fmt.Sprintf("%g", args.Longitude))
	q.Set("current", "temperature_2m")
	q.Set("hourly", "temperature_2m")
	q.Set("daily", "sunrise,sunset")
	q.Set("timezone", "auto")

	reqURL := w.ForecastURL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("get_current_weather: %w", err)
	}

	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		// Mirrors the source's best-effort behaviour on network failure:
		// the tool reports nil rather than aborting the agent loop.
		return nil, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, nil
	}
	return result, nil
}
