package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "counties.geojson", cfg.Data.Source)
	assert.Empty(t, cfg.Partners.CatalogPath)
	assert.InDelta(t, -1.286389, cfg.Map.CenterLat, 0.000001)
	assert.InDelta(t, 36.817223, cfg.Map.CenterLng, 0.000001)
	assert.Equal(t, 6, cfg.Map.Zoom)
	assert.Equal(t, 19, cfg.Map.MaxZoom)
	assert.Equal(t, "https://tile.openstreetmap.org", cfg.Basemap.OSMURL)
	assert.Equal(t, "https://tile.opentopomap.org", cfg.Basemap.TopoURL)
	assert.Equal(t, "png", cfg.Basemap.Format)
	assert.Equal(t, 5000, cfg.Basemap.CacheEntries)
	assert.Equal(t, time.Hour, cfg.Basemap.CacheTTL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  source: data/kenya.shp
map:
  zoom: 7
log:
  level: debug
  format: console
server:
  port: 9090
basemap:
  cache_ttl: 30m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/kenya.shp", cfg.Data.Source)
	assert.Equal(t, 7, cfg.Map.Zoom)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Basemap.CacheTTL)
	// Defaults still apply for unset values
	assert.Equal(t, 19, cfg.Map.MaxZoom)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  source: from-file.geojson
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("PARTNERMAP_DATA_SOURCE", "from-env.geojson")
	t.Setenv("PARTNERMAP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "from-env.geojson", cfg.Data.Source)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PARTNERMAP_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.Source = "counties.geojson"
	cfg.Map.Zoom = 6
	cfg.Map.MaxZoom = 19
	cfg.Basemap.RatePerSec = 10
	cfg.Basemap.CacheEntries = 100
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateServe(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Server.Port = 0
	cfg.Map.Zoom = 25
	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
	assert.Contains(t, err.Error(), "map.zoom")
}

func TestValidateServe_Basemap(t *testing.T) {
	cfg := validDefaults()
	cfg.Basemap.RatePerSec = 0
	cfg.Basemap.CacheEntries = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "basemap.rate_per_sec")
	assert.Contains(t, err.Error(), "basemap.cache_entries")
}

func TestValidateFilter(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("filter"))

	cfg.Data.Source = ""
	err := cfg.Validate("filter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.source is required")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
