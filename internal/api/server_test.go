package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-ciq/brand-assets-server/internal/cache"
	"github.com/b-ciq/brand-assets-server/internal/catalog"
	"github.com/b-ciq/brand-assets-server/internal/colors"
	"github.com/b-ciq/brand-assets-server/internal/defaults"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// setupTestServer builds a server over the embedded inventory with rate
// limiting disabled
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := catalog.NewStore(catalog.NewFileSource(""), observability.NewNoopLogger())
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))

	engine := defaults.NewEngine(defaults.DefaultConfig(), nil)

	palette, err := colors.LoadPalette(nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.RateLimit.Enabled = false

	return NewServer(cfg, store, engine, palette, cache.NewNoopCache(), observability.NewNoopLogger())
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Components["catalog"])
	assert.Equal(t, "healthy", body.Components["defaults"])
	assert.Equal(t, "healthy", body.Components["colors"])
}

func TestHealthEndpointUnhealthyCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Store never loaded: catalog reports unhealthy
	store, err := catalog.NewStore(catalog.NewFileSource(""), observability.NewNoopLogger())
	require.NoError(t, err)

	engine := defaults.NewEngine(defaults.DefaultConfig(), nil)
	palette, err := colors.LoadPalette(nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.RateLimit.Enabled = false
	server := NewServer(cfg, store, engine, palette, cache.NewNoopCache(), observability.NewNoopLogger())

	w := doRequest(server, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRootEndpointLinks(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, httptest.NewRequest("GET", "/api/v1/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Links map[string]string `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Contains(t, body.Links, "search")
	assert.Contains(t, body.Links, "defaults")
	assert.Contains(t, body.Links, "colors")
}

func TestColorsOverview(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, httptest.NewRequest("GET", "/api/v1/colors", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalProperties int            `json:"totalProperties"`
		Categories      map[string]int `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Greater(t, body.TotalProperties, 0)
	assert.Contains(t, body.Categories, "brand")
}

func TestColorsFamily(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, httptest.NewRequest("GET", "/api/v1/colors/families/blue", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Family      string `json:"family"`
		TotalShades int    `json:"totalShades"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "blue", body.Family)
	assert.Greater(t, body.TotalShades, 0)
}

func TestColorsFamilyUnknown(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, httptest.NewRequest("GET", "/api/v1/colors/families/magenta", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := catalog.NewStore(catalog.NewFileSource(""), observability.NewNoopLogger())
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))

	engine := defaults.NewEngine(defaults.DefaultConfig(), nil)
	palette, err := colors.LoadPalette(nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: true, Limit: 1, Burst: 1, Expiration: DefaultConfig().RateLimit.Expiration}
	server := NewServer(cfg, store, engine, palette, cache.NewNoopCache(), observability.NewNoopLogger())

	first := doRequest(server, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := doRequest(server, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
