package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/config"
	"github.com/weberbot/weber/internal/router"
	"github.com/weberbot/weber/internal/search"
	"github.com/weberbot/weber/internal/weather"
)

type stubSearch struct {
	results []search.Result
	err     error
}

func (s *stubSearch) Search(context.Context, string, string, int) ([]search.Result, error) {
	return s.results, s.err
}

type stubWeather struct {
	snap *weather.Snapshot
	err  error
}

func (s *stubWeather) Current(context.Context, string) (*weather.Snapshot, error) {
	return s.snap, s.err
}

type stubChat struct{}

func (stubChat) SmallTalk(context.Context, string, string) (string, error) {
	return "", nil
}

func newTestServer(s *stubSearch, w *stubWeather) *httptest.Server {
	if s == nil {
		s = &stubSearch{results: []search.Result{
			{Name: "Regina Pizzeria", Price: "$$", Rating: 4.5, ReviewCount: 2100, URL: "https://example.com/regina"},
		}}
	}
	if w == nil {
		w = &stubWeather{snap: &weather.Snapshot{
			PlaceName: "Boston", Condition: "scattered clouds",
			TempMin: 41, TempMax: 58.3, TempCurrent: 52.1,
			HumidityPct: 63, CloudPct: 40, WindSpeed: 12.5,
		}}
	}

	rt := router.New(s, w, stubChat{}, config.HelpMenu, zap.NewNop())
	h := NewHandler(rt, zap.NewNop())

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return httptest.NewServer(r)
}

func TestQueryWeather(t *testing.T) {
	srv := newTestServer(nil, nil)
	defer srv.Close()

	body := `{"result": {"action": "weather", "parameters": {"geo-city": "Boston"}}}`
	resp, err := http.Post(srv.URL+"/ai", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out queryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "weather", out.Source)
	assert.Equal(t, out.Speech, out.DisplayText)
	assert.Contains(t, out.Speech, "Boston")
	assert.Contains(t, out.Speech, "scattered clouds")
}

func TestQuerySearch(t *testing.T) {
	srv := newTestServer(nil, nil)
	defer srv.Close()

	body := `{"result": {"action": "foodtype", "parameters": {"geo-city": "Boston", "food-type": "pizza"}}}`
	resp, err := http.Post(srv.URL+"/ai", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out queryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "foodtype", out.Source)
	assert.Contains(t, out.Speech, "The top pizza restaurants in the city of Boston are: ")
}

func TestQueryLookupFailure(t *testing.T) {
	srv := newTestServer(nil, &stubWeather{err: errors.New("city not found")})
	defer srv.Close()

	body := `{"result": {"action": "weather", "parameters": {"geo-city": "Nowhereville"}}}`
	resp, err := http.Post(srv.URL+"/ai", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out queryError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, http.StatusBadRequest, out.Status.Code)
	assert.Equal(t, "I failed to look up the city name.", out.Status.ErrorType)
}

func TestQueryUnknownAction(t *testing.T) {
	srv := newTestServer(nil, nil)
	defer srv.Close()

	body := `{"result": {"action": "karaoke", "parameters": {}}}`
	resp, err := http.Post(srv.URL+"/ai", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out queryError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Status.ErrorType, "karaoke")
}

func TestQueryMalformedBody(t *testing.T) {
	srv := newTestServer(nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ai", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out queryError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "I could not understand the request.", out.Status.ErrorType)
}
