// Package store provides the persistence backends behind core.Store:
// PostgreSQL when a database URL is configured, a local YAML catalog file
// otherwise, and an in-memory store for tests and ephemeral runs.
//
// All three backends implement the same contract: InsertRows stamps every
// row with its import record's ID and timestamp, ScanAll returns the catalog
// in insertion order, and RollbackImport removes a batch's rows while
// keeping its history record with a rolled_back status.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hvactools/chillerselect/internal/config"
	"github.com/hvactools/chillerselect/internal/core"
)

// DefaultCatalogPath returns the catalog file used when no explicit path is
// configured: <home>/.chillerselect/catalog.yaml.
func DefaultCatalogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".chillerselect", "catalog.yaml"), nil
}

// Open selects a backend from the configuration: PostgreSQL when a database
// URL is set, the local catalog file otherwise.
func Open(ctx context.Context, cfg *config.Config) (core.Store, error) {
	if cfg.Database.URL != "" {
		return OpenPostgres(ctx, cfg.Database)
	}

	path := cfg.Catalog.Path
	if path == "" {
		p, err := DefaultCatalogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return OpenFile(path)
}
