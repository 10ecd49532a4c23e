package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-studentservices/pkg/theming"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Form.RequireSubtypes)
	assert.Equal(t, "studentservices", cfg.Form.Theme)
	assert.Equal(t, "light", cfg.Form.Variant)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STUDENTSERVICES_SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("STUDENTSERVICES_FORM_REQUIRE_SUBTYPES", "true")
	t.Setenv("STUDENTSERVICES_SERVER_READ_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.True(t, cfg.Form.RequireSubtypes)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_FileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "form:\n  variant: dark\nlog:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(WithFile(path), WithOverride("log.level", "debug"))
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Form.Variant)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	_, err = Load(WithOverride("log.level", "loud"))
	assert.ErrorContains(t, err, "invalid log level")

	_, err = Load(WithOverride("log.environment", "staging"))
	assert.ErrorContains(t, err, "invalid log environment")

	_, err = Load(WithOverride("server.address", " "))
	assert.ErrorContains(t, err, "server address is required")
}

func TestLoad_UnknownTheme(t *testing.T) {
	_, err := Load(WithOverride("form.variant", "sepia"))
	require.Error(t, err)
	assert.ErrorIs(t, err, theming.ErrVariantNotFound)
	assert.ErrorContains(t, err, "invalid form theme")

	_, err = Load(WithOverride("form.theme", "campus"))
	assert.ErrorIs(t, err, theming.ErrThemeNotFound)
}
