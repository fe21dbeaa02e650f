package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/reel/internal/favorites"
)

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds TMDB API configuration
type CatalogConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	BaseURL           string  `mapstructure:"base_url"`
	ImageBaseURL      string  `mapstructure:"image_base_url"`
	Language          string  `mapstructure:"language"`            // e.g. "es-ES"
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 = unlimited
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`           // 0 = no caching
}

// FavoritesConfig holds favorites persistence configuration
type FavoritesConfig struct {
	DBPath     string `mapstructure:"db_path"` // Empty = memory-only
	StorageKey string `mapstructure:"storage_key"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	PosterSize string `mapstructure:"poster_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			Language:          "es-ES",
			RequestsPerSecond: 20,
			CacheTTL:          10 * time.Minute,
		},
		Favorites: FavoritesConfig{
			DBPath:     filepath.Join(defaultDataPath(), "reel.db"),
			StorageKey: favorites.DefaultStorageKey,
		},
		UI: UIConfig{
			PosterSize: "w500",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return load(viper.GetViper(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration using only the given directories
func LoadConfigFrom(dirs ...string) (*Config, error) {
	return load(viper.New(), dirs...)
}

func load(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides (REEL_CATALOG_API_KEY, ...)
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindEnv registers every key so AutomaticEnv applies during Unmarshal
// even when the key is absent from the file.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"catalog.api_key",
		"catalog.base_url",
		"catalog.image_base_url",
		"catalog.language",
		"catalog.requests_per_second",
		"catalog.cache_ttl",
		"favorites.db_path",
		"favorites.storage_key",
		"ui.poster_size",
		"logging.file",
		"logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

// SaveConfig saves the current configuration to the default location
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo saves the configuration as config.yaml in dir
func SaveConfigTo(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.api_key", cfg.Catalog.APIKey)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.Set("catalog.language", cfg.Catalog.Language)
	v.Set("catalog.requests_per_second", cfg.Catalog.RequestsPerSecond)
	v.Set("catalog.cache_ttl", cfg.Catalog.CacheTTL.String())

	v.Set("favorites.db_path", cfg.Favorites.DBPath)
	v.Set("favorites.storage_key", cfg.Favorites.StorageKey)

	v.Set("ui.poster_size", cfg.UI.PosterSize)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.APIKey != ""
}
