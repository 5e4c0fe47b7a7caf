package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanops/skimmer/chatmod/config"
)

const testToken = "test-admin-token"

var (
	testSrvOnce sync.Once
	testSrv     *Server
)

// the prometheus middleware registers global collectors, so every test shares
// one server and works against its own channel IDs
func testServer(t *testing.T) *Server {
	testSrvOnce.Do(func() {
		srv, err := NewServer(Config{
			Logger:     slog.Default(),
			Bind:       ":0",
			AdminToken: testToken,
			Configs:    config.NewMemStore(),
		})
		if err != nil {
			panic(err)
		}
		testSrv = srv
	})
	return testSrv
}

func doRequest(srv *Server, method, path string, body []byte, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	srv := testServer(t)

	// no auth needed
	rec := doRequest(srv, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAdminAuth(t *testing.T) {
	assert := assert.New(t)
	srv := testServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/channels", nil, "")
	assert.Equal(http.StatusForbidden, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/channels", nil, "wrong-token")
	assert.Equal(http.StatusForbidden, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/channels", nil, testToken)
	assert.Equal(http.StatusOK, rec.Code)
}

func TestConfigRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	srv := testServer(t)

	// nothing stored yet
	rec := doRequest(srv, http.MethodGet, "/api/channels/1111/moderation", nil, testToken)
	assert.Equal(http.StatusNotFound, rec.Code)

	cfg := config.DefaultConfig()
	cfg.Caps.MaxPercent = 72
	body, err := json.Marshal(cfg)
	require.NoError(err)

	rec = doRequest(srv, http.MethodPut, "/api/channels/1111/moderation", body, testToken)
	require.Equal(http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = doRequest(srv, http.MethodGet, "/api/channels/1111/moderation", nil, testToken)
	require.Equal(http.StatusOK, rec.Code)
	var got config.ChannelConfig
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(float64(72), got.Caps.MaxPercent)
	assert.True(got.Caps.Enabled)

	rec = doRequest(srv, http.MethodGet, "/api/channels", nil, testToken)
	require.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), `"1111"`)

	rec = doRequest(srv, http.MethodDelete, "/api/channels/1111/moderation", nil, testToken)
	assert.Equal(http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodDelete, "/api/channels/1111/moderation", nil, testToken)
	assert.Equal(http.StatusNotFound, rec.Code)
}

func TestPutConfigValidation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	srv := testServer(t)

	cfg := config.DefaultConfig()
	cfg.Caps.MaxPercent = 120
	body, err := json.Marshal(cfg)
	require.NoError(err)

	rec := doRequest(srv, http.MethodPut, "/api/channels/2222/moderation", body, testToken)
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "caps.maxPercent")

	rec = doRequest(srv, http.MethodPut, "/api/channels/2222/moderation", []byte("{nope"), testToken)
	assert.Equal(http.StatusBadRequest, rec.Code)

	// the invalid writes must not have landed
	rec = doRequest(srv, http.MethodGet, "/api/channels/2222/moderation", nil, testToken)
	assert.Equal(http.StatusNotFound, rec.Code)
}
