package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	s := New(Config{ListenAddr: ":0"}, zap.NewNop())
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestIndexGreeting(t *testing.T) {
	s := New(Config{ListenAddr: ":0"}, zap.NewNop())
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Weber")
}

func TestFeatureRoutesMount(t *testing.T) {
	s := New(Config{ListenAddr: ":0"}, zap.NewNop())
	s.Router().Get("/extra", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mounted"))
	})

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/extra")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mounted", body)
}
