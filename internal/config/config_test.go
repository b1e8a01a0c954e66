package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, DefaultWelcome, cfg.Welcome)
	assert.Empty(t, cfg.ExportDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FLOATCHAT_SERVER_URL", "http://ocean:9000")
	t.Setenv("FLOATCHAT_TIMEOUT", "30s")
	t.Setenv("FLOATCHAT_PAGE_SIZE", "25")
	t.Setenv("FLOATCHAT_WELCOME", "hello sailor")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://ocean:9000", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "hello sailor", cfg.Welcome)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("FLOATCHAT_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCorrectsNonPositivePageSize(t *testing.T) {
	t.Setenv("FLOATCHAT_PAGE_SIZE", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
}
