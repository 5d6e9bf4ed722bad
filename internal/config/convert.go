package config

import (
	"github.com/danmuck/cotyledon/internal/catalog"
	"github.com/danmuck/cotyledon/internal/garden"
)

// Catalog loads the configured growth table, or the built-in one when
// catalog_path is empty.
func (cfg ServerConfig) Catalog() (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

func (cfg ServerConfig) SignerOptions() []garden.SignerOption {
	return []garden.SignerOption{
		garden.WithStrictEmptyPlot(cfg.StrictEmptyPlot),
	}
}
