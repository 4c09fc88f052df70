package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"ytwebhook/pkg/models"
)

var (
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
	ErrNoStagingRoot  = errors.New("staging root must not be empty")
)

// Environment variable names recognized by Load.
const (
	EnvListenAddr     = "YTW_LISTEN_ADDR"
	EnvStagingRoot    = "YTW_STAGING_ROOT"
	EnvYtdlpPath      = "YTW_YTDLP_PATH"
	EnvCookieSource   = "YTW_COOKIE_SOURCE"
	EnvUserAgent      = "YTW_USER_AGENT"
	EnvAcceptLanguage = "YTW_ACCEPT_LANGUAGE"
	EnvPlayerClient   = "YTW_PLAYER_CLIENT"
	EnvRequestTimeout = "YTW_REQUEST_TIMEOUT"
)

// Load builds the configuration from environment variables,
// falling back to defaults for anything unset
func Load() (*models.Config, error) {
	cfg := models.DefaultConfig()

	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvStagingRoot); v != "" {
		cfg.StagingRoot = v
	}
	if v := os.Getenv(EnvYtdlpPath); v != "" {
		cfg.YtdlpPath = v
	}
	if v := os.Getenv(EnvCookieSource); v != "" {
		cfg.CookieSource = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvAcceptLanguage); v != "" {
		cfg.AcceptLanguage = v
	}
	if v := os.Getenv(EnvPlayerClient); v != "" {
		cfg.PlayerClient = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func Validate(cfg *models.Config) error {
	if cfg.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if cfg.StagingRoot == "" {
		return ErrNoStagingRoot
	}
	return nil
}
