package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hvactools/chillerselect/internal/core"
)

// fileDoc is the on-disk shape of the catalog file: one YAML document
// holding the import history and every catalog row.
type fileDoc struct {
	Imports []core.ImportRecord `yaml:"imports"`
	Rows    []core.CatalogRow   `yaml:"rows"`
}

// File is a catalog store backed by a single YAML file. The whole catalog
// is held in memory and rewritten on every mutation, which is fine at
// catalog scale (thousands of rows, not millions).
//
// One process owns the file; concurrent writers are not coordinated.
type File struct {
	mu   sync.RWMutex
	path string
	doc  fileDoc
}

// OpenFile loads the catalog file at path, creating an empty store when the
// file does not exist yet. The file itself is only written on first mutation.
func OpenFile(path string) (*File, error) {
	f := &File{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f.doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return f, nil
}

// Path returns the backing file's location.
func (f *File) Path() string { return f.path }

func (f *File) InsertRows(ctx context.Context, rec core.ImportRecord, rows []core.CatalogRow) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range rows {
		rows[i].ImportID = rec.ID
		rows[i].CreatedAt = rec.CreatedAt
	}
	f.doc.Rows = append(f.doc.Rows, rows...)
	f.doc.Imports = append(f.doc.Imports, rec)

	if err := f.save(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (f *File) ScanAll(ctx context.Context) ([]core.CatalogRow, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.doc.Rows), nil
}

func (f *File) ListImports(ctx context.Context) ([]core.ImportRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]core.ImportRecord, 0, len(f.doc.Imports))
	for i := len(f.doc.Imports) - 1; i >= 0; i-- {
		out = append(out, f.doc.Imports[i])
	}
	return out, nil
}

func (f *File) RollbackImport(ctx context.Context, importID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.doc.Imports {
		if f.doc.Imports[i].ID != importID {
			continue
		}
		if f.doc.Imports[i].Status == core.ImportStatusRolledBack {
			return 0, core.ErrAlreadyRolledBack
		}
		f.doc.Imports[i].Status = core.ImportStatusRolledBack

		deleted := 0
		kept := f.doc.Rows[:0]
		for _, r := range f.doc.Rows {
			if r.ImportID == importID {
				deleted++
				continue
			}
			kept = append(kept, r)
		}
		f.doc.Rows = kept

		if err := f.save(); err != nil {
			return 0, err
		}
		return deleted, nil
	}
	return 0, core.ErrImportNotFound
}

func (f *File) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = fileDoc{}
	return f.save()
}

func (f *File) Ping(ctx context.Context) error { return nil }

// Close is a no-op: every mutation is persisted synchronously.
func (f *File) Close() {}

// save writes the catalog atomically: marshal to a temp file in the same
// directory, then rename over the target so a crash mid-write never leaves
// a half-written catalog behind. Callers hold f.mu.
func (f *File) save() error {
	data, err := yaml.Marshal(f.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog to YAML: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := tmp.Chmod(0640); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set catalog file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close catalog file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace catalog file %s: %w", f.path, err)
	}
	return nil
}
