package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytwebhook/pkg/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvListenAddr, EnvStagingRoot, EnvYtdlpPath, EnvCookieSource,
		EnvUserAgent, EnvAcceptLanguage, EnvPlayerClient, EnvRequestTimeout,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	defaults := models.DefaultConfig()
	assert.Equal(t, defaults.ListenAddr, cfg.ListenAddr)
	assert.Equal(t, defaults.StagingRoot, cfg.StagingRoot)
	assert.Equal(t, defaults.YtdlpPath, cfg.YtdlpPath)
	assert.Equal(t, "ios", cfg.PlayerClient)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.CookieSource)
	assert.NotEmpty(t, cfg.UserAgent)
	assert.NotEmpty(t, cfg.AcceptLanguage)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvListenAddr, "127.0.0.1:8123")
	t.Setenv(EnvStagingRoot, "/var/lib/ytwebhook")
	t.Setenv(EnvYtdlpPath, "/opt/yt-dlp")
	t.Setenv(EnvCookieSource, "cookie blob")
	t.Setenv(EnvUserAgent, "test-agent")
	t.Setenv(EnvAcceptLanguage, "de-DE")
	t.Setenv(EnvPlayerClient, "android")
	t.Setenv(EnvRequestTimeout, "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8123", cfg.ListenAddr)
	assert.Equal(t, "/var/lib/ytwebhook", cfg.StagingRoot)
	assert.Equal(t, "/opt/yt-dlp", cfg.YtdlpPath)
	assert.Equal(t, "cookie blob", cfg.CookieSource)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, "de-DE", cfg.AcceptLanguage)
	assert.Equal(t, "android", cfg.PlayerClient)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestLoadBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRequestTimeout, "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *models.Config) {},
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *models.Config) { cfg.RequestTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "empty staging root",
			mutate:  func(cfg *models.Config) { cfg.StagingRoot = "" },
			wantErr: ErrNoStagingRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
