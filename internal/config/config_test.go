// FilePath: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultsConfig(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	setDefaults()
	var cfg Config
	require.NoError(t, viper.Unmarshal(&cfg))
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultsConfig(t)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, DevTokenSecret, cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenValidity)
	assert.Equal(t, "X-Auth-Token", cfg.Auth.LegacyHeader)
	assert.Equal(t, "$", cfg.Auth.LegacySentinel)

	assert.Equal(t, int64(10*1024*1024), cfg.ImageStore.MaxImageSize)
	assert.Equal(t, []string{"image/jpeg", "image/png"}, cfg.ImageStore.AllowedMimeTypes)
}

func TestValidateConfig(t *testing.T) {
	cfg := defaultsConfig(t)

	// Defaults alone are not enough: the database host must be set.
	require.Error(t, validateConfig(cfg))

	cfg.Database.AppDB.Host = "localhost"
	require.NoError(t, validateConfig(cfg))

	cfg.Auth.TokenSecret = ""
	require.Error(t, validateConfig(cfg))

	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.TokenValidity = 0
	require.Error(t, validateConfig(cfg))
}
