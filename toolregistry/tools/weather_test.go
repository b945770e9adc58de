package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeatherCallParsesForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("latitude"))
		require.Equal(t, "2", r.URL.Query().Get("longitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":21.5}}`))
	}))
	defer srv.Close()

	weather := NewWeather(srv.Client())
	weather.ForecastURL = srv.URL

	args, err := json.Marshal(WeatherArgs{Latitude: 1, Longitude: 2})
	require.NoError(t, err)

	out, err := weather.Call(context.Background(), args)
	require.NoError(t, err)

	result, ok := out.(map[string]any)
	require.True(t, ok)
	current, ok := result["current"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 21.5, current["temperature_2m"])
}

func TestWeatherCallRejectsBadArguments(t *testing.T) {
	weather := NewWeather(nil)
	_, err := weather.Call(context.Background(), json.RawMessage(`not json`))
	require.Error(t, err)
}

func TestWeatherCallReturnsNilOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	weather := NewWeather(srv.Client())
	weather.ForecastURL = srv.URL

	args, err := json.Marshal(WeatherArgs{Latitude: 1, Longitude: 2})
	require.NoError(t, err)

	out, err := weather.Call(context.Background(), args)
	require.NoError(t, err)
	require.Nil(t, out)
}
