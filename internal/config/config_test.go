package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "memory", cfg.Catalog.Backend)
	assert.Equal(t, 3, cfg.Rules.StartingPP)
	assert.Equal(t, 4, cfg.Rules.OpeningHandSize)
	assert.Equal(t, 4, cfg.Rules.LeaderCount)
	assert.True(t, cfg.Rules.EnforceTacticsCount)
	assert.True(t, cfg.Rules.EnforceMainDeckCount)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  address: ":9999"
logging:
  level: debug
  format: json
catalog:
  backend: postgres
  dsn: "postgres://localhost/crossstars"
rules:
  starting_pp: 5
  opening_hand_size: 6
  enforce_main_deck_count: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres", cfg.Catalog.Backend)
	assert.Equal(t, 5, cfg.Rules.StartingPP)
	assert.Equal(t, 6, cfg.Rules.OpeningHandSize)
	// Unset keys keep their defaults.
	assert.Equal(t, 50, cfg.Rules.MainDeckCount)
	assert.False(t, cfg.Rules.EnforceMainDeckCount)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
