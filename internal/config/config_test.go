package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalog.BaseURL)
	assert.Equal(t, "es-ES", cfg.Catalog.Language)
	assert.Equal(t, "netflix_clone_favorites", cfg.Favorites.StorageKey)
	assert.Equal(t, "reel.db", filepath.Base(cfg.Favorites.DBPath))
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `catalog:
  api_key: abc123
  language: en-US
  cache_ttl: 90s
favorites:
  db_path: ""
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, "en-US", cfg.Catalog.Language)
	assert.Equal(t, 90*time.Second, cfg.Catalog.CacheTTL)
	assert.Empty(t, cfg.Favorites.DBPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep defaults
	assert.Equal(t, "w500", cfg.UI.PosterSize)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("REEL_CATALOG_API_KEY", "from-env")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Catalog.APIKey)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Catalog.APIKey = "saved"
	cfg.Favorites.StorageKey = "custom"

	require.NoError(t, SaveConfigTo(cfg, dir))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
