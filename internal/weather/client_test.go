package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conditionsJSON = `{
	"name": "Boston",
	"weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds"}],
	"main": {"temp": 52.1, "temp_min": 41, "temp_max": 58.3, "humidity": 63},
	"clouds": {"all": 40},
	"wind": {"speed": 12.5}
}`

func TestCurrent(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/data/2.5/weather", r.URL.Path)

		gotQuery = map[string]string{
			"APPID": r.URL.Query().Get("APPID"),
			"q":     r.URL.Query().Get("q"),
			"units": r.URL.Query().Get("units"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(conditionsJSON))
	}))
	defer srv.Close()

	c := New(srv.URL, "weather-key", 5*time.Second)
	snap, err := c.Current(context.Background(), "Boston")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"APPID": "weather-key", "q": "Boston", "units": "imperial"}, gotQuery)

	assert.Equal(t, "Boston", snap.PlaceName)
	assert.Equal(t, "scattered clouds", snap.Condition)
	assert.Equal(t, 41.0, snap.TempMin)
	assert.Equal(t, 58.3, snap.TempMax)
	assert.Equal(t, 52.1, snap.TempCurrent)
	assert.Equal(t, 63.0, snap.HumidityPct)
	assert.Equal(t, 40.0, snap.CloudPct)
	assert.Equal(t, 12.5, snap.WindSpeed)
}

func TestCurrentNoConditionBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Boston", "weather": [], "main": {"temp": 50}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "weather-key", 5*time.Second)
	snap, err := c.Current(context.Background(), "Boston")
	require.NoError(t, err)
	assert.Empty(t, snap.Condition)
}

func TestCurrentUnknownCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod": "404", "message": "city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "weather-key", 5*time.Second)
	_, err := c.Current(context.Background(), "Nowhereville")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
