// Package config provides configuration for the realty client,
// loaded from environment variables and an optional JSON config file.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the address of the realty backend.
	BaseURL string `json:"base_url" env:"REALTY_API_BASE_URL" env-default:"http://localhost:8000"`

	// Timeout bounds every HTTP call, including token refreshes.
	Timeout time.Duration `json:"timeout" env:"REALTY_HTTP_TIMEOUT" env-default:"10s"`

	// StoragePath is the token storage file location.
	StoragePath string `json:"storage_path" env:"REALTY_STORAGE_PATH" env-default:"tokens.json"`

	// LogLevel sets the logger verbosity: debug, info, warn, or error.
	LogLevel string `json:"log_level" env:"REALTY_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment. When path is
// non-empty the JSON file at that location is read first, with
// environment variables taking precedence over file values.
func Load(path string) (*Options, error) {
	var opts Options
	if path != "" {
		if err := cleanenv.ReadConfig(path, &opts); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		return &opts, nil
	}
	if err := cleanenv.ReadEnv(&opts); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	return &opts, nil
}
