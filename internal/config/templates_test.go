package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/cotyledon/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteTemplate(path, "server", false))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cotyledon", cfg.Name)
	assert.False(t, cfg.StrictEmptyPlot)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Names(), cat.Names())
}

func TestCatalogTemplateMatchesDefault(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "plants.toml")
	require.NoError(t, WriteTemplate(catalogPath, "catalog", false))

	cfg := DefaultServerConfig()
	cfg.CatalogPath = catalogPath
	cat, err := cfg.Catalog()
	require.NoError(t, err)
	for _, entry := range catalog.Default().Entries() {
		got, ok := cat.Lookup(entry.Name)
		require.True(t, ok, entry.Name)
		assert.Equal(t, entry.GrowTime, got, entry.Name)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))

	assert.Error(t, WriteTemplate(path, "server", false))
	require.NoError(t, WriteTemplate(path, "server", true))

	_, err := Template("ghost")
	assert.Error(t, err)
}
