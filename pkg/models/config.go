package models

import (
	"os"
	"path/filepath"
	"time"
)

// Config represents the process-wide service configuration
type Config struct {
	ListenAddr     string
	StagingRoot    string
	YtdlpPath      string
	CookieSource   string
	UserAgent      string
	AcceptLanguage string
	PlayerClient   string
	RequestTimeout time.Duration
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":5000",
		StagingRoot:    filepath.Join(os.TempDir(), "ytwebhook"),
		YtdlpPath:      "yt-dlp",
		CookieSource:   "",
		UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1",
		AcceptLanguage: "en-US,en;q=0.9",
		PlayerClient:   "ios",
		RequestTimeout: 120 * time.Second,
	}
}
