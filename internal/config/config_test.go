package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "CORS_ALLOWED_ORIGINS", "REDIS_DB", "MINIO_USE_SSL", "MINIO_BUCKET",
		"PRODUCT_LOOKUP_TIMEOUT_SECONDS", "CATALOG_EXPORT_INTERVAL_MINUTES", "CATALOG_RETAIN_SNAPSHOTS",
		"API_SUNSET", "API_DEPRECATION_MESSAGE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("8081")

	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ProductLookupTimeout())
	assert.Equal(t, time.Hour, cfg.CatalogExportInterval())
	assert.Equal(t, "dataware-catalog", cfg.MinIO.Bucket)
	assert.Equal(t, 24, cfg.Jobs.CatalogRetainSnapshots)
	_, deprecated := cfg.Server.Sunset()
	assert.False(t, deprecated)
}

func TestLoad_APISunset(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_SUNSET", "2027-01-01T00:00:00Z")
	t.Setenv("API_DEPRECATION_MESSAGE", "use v2")

	cfg, err := Load("8081")

	require.NoError(t, err)
	sunset, deprecated := cfg.Server.Sunset()
	assert.True(t, deprecated)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), sunset)
	assert.Equal(t, "use v2", cfg.Server.APIDeprecationMessage)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataware.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "9000"
cors_allowed_origins = ["https://shop.example.com"]

[redis]
addr = "cache:6379"
db = 2

[services]
product_service_url = "http://products.internal"
product_lookup_timeout_seconds = 3
`), 0o600))

	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load("8081")

	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "http://products.internal", cfg.Services.ProductServiceURL)
	assert.Equal(t, 3*time.Second, cfg.ProductLookupTimeout())
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric redis db", key: "REDIS_DB", value: "one"},
		{name: "zero timeout", key: "PRODUCT_LOOKUP_TIMEOUT_SECONDS", value: "0"},
		{name: "negative interval", key: "CATALOG_EXPORT_INTERVAL_MINUTES", value: "-5"},
		{name: "bad bool", key: "MINIO_USE_SSL", value: "maybe"},
		{name: "negative retention", key: "CATALOG_RETAIN_SNAPSHOTS", value: "-1"},
		{name: "unparseable sunset", key: "API_SUNSET", value: "next year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("8082")

			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	_, err := Load("8090")

	assert.ErrorContains(t, err, "failed to load config file")
}
