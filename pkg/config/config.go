// Package config loads travel client configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvBaseURL    = "TRAVEL_API_URL"
	EnvTimeout    = "TRAVEL_API_TIMEOUT_SECONDS"
	EnvStorageDir = "TRAVEL_STORAGE_DIR"
	EnvRedisAddr  = "TRAVEL_REDIS_ADDR"
	EnvLogLevel   = "TRAVEL_LOG_LEVEL"
)

// Config is the travel client configuration.
type Config struct {
	API     API     `toml:"api"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// API holds backend connection settings.
type API struct {
	// BaseURL is the backend API root.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds bounds each HTTP call. Zero means the client default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Storage holds durable cache settings. When RedisAddr is set the redis
// backend is used; otherwise Dir selects the file backend.
type Storage struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Log holds logging settings.
type Log struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		API:     API{BaseURL: "http://localhost:8080/api"},
		Storage: Storage{Dir: ".travel-cache"},
		Log:     Log{Level: "info"},
	}
}

// Load reads a TOML config file, falling back to Default when the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to disk as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg fields from the environment. Unset variables
// leave the corresponding field untouched.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvStorageDir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return cfg
}

// Timeout returns the configured API timeout as a duration, or zero when
// unset.
func (a API) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}
