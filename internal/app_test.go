package internal

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listing-service/internal/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *configs.AppConfig {
	cfg := &configs.AppConfig{AppName: "listing-service-test"}
	cfg.Rest.PORT = "0"
	cfg.Rest.AllowedOrigins = []string{"*"}
	cfg.StdoutLogger.Level = "error"
	return cfg
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestNewAppServesEmbeddedFixture(t *testing.T) {
	app, err := newAppFromConfig(testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"bed":"4+"}`))
	rec := httptest.NewRecorder()
	app.apiServer.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":4`)
}

func TestNewAppStrictFilters(t *testing.T) {
	cfg := testConfig()
	cfg.Listings.StrictFilters = true

	app, err := newAppFromConfig(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"bed":"abc+"}`))
	rec := httptest.NewRecorder()
	app.apiServer.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewAppFixtureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 10, "address": "1 Test Way, Austin, TX", "price": 100000, "sqft": 900,
		 "bedrooms": 2, "bathrooms": 1, "type": "For Rent", "agent": "Ann Lee",
		 "listingAge": "1 day ago", "image": "https://example.com/a.jpg"}
	]`), 0o600))

	cfg := testConfig()
	cfg.Listings.FixturePath = path

	app, err := newAppFromConfig(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.apiServer.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Austin")
}

func TestNewAppFailsOnMissingFixture(t *testing.T) {
	cfg := testConfig()
	cfg.Listings.FixturePath = filepath.Join(t.TempDir(), "nope.json")

	_, err := newAppFromConfig(cfg)
	assert.Error(t, err)
}

func TestNewAppFailsOnBadAuthURL(t *testing.T) {
	cfg := testConfig()
	cfg.ApiClient.AuthServiceURL = "auth-service:8081"

	_, err := newAppFromConfig(cfg)
	assert.Error(t, err)
}

func TestNewAppGuardsAISearchWithJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "secret"

	app, err := newAppFromConfig(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-search", strings.NewReader(`{"query":"pool"}`))
	rec := httptest.NewRecorder()
	app.apiServer.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
