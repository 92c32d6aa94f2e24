package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausegenie/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "gemini-2.5-flash", cfg.Analyzer.DefaultModel)
	assert.Equal(t, 3, cfg.Analyzer.MaxRetries)
	assert.Equal(t, 0.1, cfg.Analyzer.Temperature)
	assert.False(t, cfg.Archive.Enabled())
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLAUSEGENIE_SERVER_PORT", ":9090")
	t.Setenv("CLAUSEGENIE_ANALYZER_API_KEY", "test-key")
	t.Setenv("CLAUSEGENIE_ARCHIVE_BUCKET", "docs-bucket")
	t.Setenv("CLAUSEGENIE_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Analyzer.APIKey)
	assert.True(t, cfg.Archive.Enabled())
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{
		Host: "db.internal", Port: 5433, User: "app", Password: "pw",
		Name: "clausegenie_db", SSLMode: "require",
	}

	assert.Equal(t, "postgres://app:pw@db.internal:5433/clausegenie_db?sslmode=require", db.DSN())
}
