package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 85, cfg.FuzzyThreshold)
	assert.Equal(t, "merged_loan_data", cfg.ExportFilePrefix)
	assert.False(t, cfg.StrictSheets)
	assert.True(t, cfg.TimestampExports)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_port: \"9090\"\nfuzzy_threshold: 90\nstrict_sheets: true\nexport_file_prefix: loans\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("TIMESTAMP_EXPORTS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, 90, cfg.FuzzyThreshold)
	assert.True(t, cfg.StrictSheets)
	assert.Equal(t, "loans", cfg.ExportFilePrefix)
	assert.False(t, cfg.TimestampExports)
}

func TestLoadConfigRejectsBadThreshold(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FUZZY_THRESHOLD", "150")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: [unclosed"), 0644))
	t.Setenv("CONFIG_PATH", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}
