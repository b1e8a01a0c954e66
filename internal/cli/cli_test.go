package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagsBeatEnvironment(t *testing.T) {
	t.Setenv("FLOATCHAT_SERVER_URL", "http://from-env:8000")

	cfg, err := loadConfig("http://from-flag:9000", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:9000", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	cfg, err = loadConfig("", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000", cfg.ServerURL)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}

func TestWriteCSVCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")

	err := writeCSV(path, []string{"n"}, []map[string]any{{"n": float64(1)}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"n\"\n\"1\"\n", string(data))
}
