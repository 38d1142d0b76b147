package server

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"eli5-bot/internal/bootstrap"
	"eli5-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			ActivityLogPath:    filepath.Join(dir, "activity.log"),
			CorsAllowedOrigins: "*",
			IdentityCacheTTL:   60,
		},
		Ai: config.AIConfig{LLMProvider: "gemini"},
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=eli5 dbname=eli5 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/health", nil))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestGenerateWithoutProviderConfigured(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"hi","history":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, 500, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestChatsRejectAnonymousCallers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/chats", nil))

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
