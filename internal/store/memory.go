package store

import (
	"context"
	"slices"
	"sync"

	"github.com/hvactools/chillerselect/internal/core"
)

// Memory is an in-memory catalog store. Nothing survives process exit; it
// backs tests and throwaway sessions.
type Memory struct {
	mu      sync.RWMutex
	rows    []core.CatalogRow
	records []core.ImportRecord // insertion order, oldest first
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) InsertRows(ctx context.Context, rec core.ImportRecord, rows []core.CatalogRow) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range rows {
		rows[i].ImportID = rec.ID
		rows[i].CreatedAt = rec.CreatedAt
	}
	m.rows = append(m.rows, rows...)
	m.records = append(m.records, rec)
	return len(rows), nil
}

// ScanAll returns a snapshot; callers may reorder it freely.
func (m *Memory) ScanAll(ctx context.Context) ([]core.CatalogRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rows), nil
}

func (m *Memory) ListImports(ctx context.Context) ([]core.ImportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.ImportRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *Memory) RollbackImport(ctx context.Context, importID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID != importID {
			continue
		}
		if m.records[i].Status == core.ImportStatusRolledBack {
			return 0, core.ErrAlreadyRolledBack
		}
		m.records[i].Status = core.ImportStatusRolledBack

		deleted := 0
		kept := m.rows[:0]
		for _, r := range m.rows {
			if r.ImportID == importID {
				deleted++
				continue
			}
			kept = append(kept, r)
		}
		m.rows = kept
		return deleted, nil
	}
	return 0, core.ErrImportNotFound
}

func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows, m.records = nil, nil
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() {}
