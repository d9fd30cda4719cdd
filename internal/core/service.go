package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence boundary for catalog rows and import history.
// Implementations live in internal/store; the core treats them uniformly
// and never sees their connection details.
type Store interface {
	// InsertRows stores a committed batch and its history record, stamping
	// each row with the record's ID. Returns the number of rows written.
	InsertRows(ctx context.Context, rec ImportRecord, rows []CatalogRow) (int, error)

	// ScanAll returns the full catalog snapshot in insertion order.
	// Rolled-back rows are gone, not filtered.
	ScanAll(ctx context.Context) ([]CatalogRow, error)

	// ListImports returns the import history, newest first.
	ListImports(ctx context.Context) ([]ImportRecord, error)

	// RollbackImport removes the rows of one batch and marks its record
	// rolled back. Returns the number of rows removed, ErrImportNotFound
	// for an unknown ID, or ErrAlreadyRolledBack.
	RollbackImport(ctx context.Context, importID string) (int, error)

	// Reset removes every catalog row and import record.
	Reset(ctx context.Context) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close()
}

// Service ties the importer and selector to a row store. It is the single
// entry point for every frontend: CLI, web, and tests.
type Service struct {
	store Store
}

// NewService creates a new Service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Import parses req.Text and, unless req.Preview is set, commits the valid
// rows to the store under a fresh import ID. The result always carries both
// the parsed rows and the per-row failures so callers can show what was and
// was not accepted.
//
// Fatal parse problems (empty input, missing required columns) return an
// error and no result. A commit with zero valid rows returns
// ErrNoValidRows; a preview of the same input succeeds.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	start := time.Now()

	batch, err := ParseBatch(req.Text, req.Conditions)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Source:     req.Source,
		Label:      req.Label,
		Conditions: batch.Conditions,
		TotalRows:  batch.TotalRows,
		Rows:       batch.Rows,
		Failed:     batch.Failed,
		Preview:    req.Preview,
	}

	if req.Preview {
		result.Duration = time.Since(start)
		return result, nil
	}

	if len(batch.Rows) == 0 {
		return nil, ErrNoValidRows
	}

	rec := ImportRecord{
		ID:         uuid.New().String(),
		Label:      req.Label,
		Source:     req.Source,
		RowCount:   len(batch.Rows),
		Conditions: batch.Conditions,
		Status:     ImportStatusActive,
		CreatedAt:  time.Now().UTC(),
	}

	inserted, err := s.store.InsertRows(ctx, rec, batch.Rows)
	if err != nil {
		return nil, fmt.Errorf("store rows: %w", err)
	}

	result.ImportID = rec.ID
	result.Inserted = inserted
	result.Duration = time.Since(start)

	slog.Info("import committed",
		"import_id", rec.ID,
		"rows", inserted,
		"failed", len(batch.Failed),
		"condition", ConditionLabel(batch.Conditions),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// Search loads the catalog snapshot and runs the selector over it. When the
// requested ambient has no rows at all, the response carries per-ambient
// fallback suggestions alongside the ranked results.
func (s *Service) Search(ctx context.Context, q Query) (*SearchResponse, error) {
	if q.TargetTons <= 0 {
		return nil, fmt.Errorf("target capacity must be positive, got %v", q.TargetTons)
	}

	catalog, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	results := Search(catalog, q)

	resp := &SearchResponse{Results: results}
	if results.Outcome == OutcomeNoAmbientMatch {
		resp.Suggestions = ProbeAmbients(catalog, q.TargetTons)
	}
	return resp, nil
}

// Stats summarizes the current catalog.
func (s *Service) Stats(ctx context.Context) (*CatalogStats, error) {
	catalog, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	stats := ComputeStats(catalog)
	return &stats, nil
}

// Ambients returns the distinct ambient temperatures in the catalog,
// ascending.
func (s *Service) Ambients(ctx context.Context) ([]float64, error) {
	catalog, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	return DistinctAmbients(catalog), nil
}

// Imports returns the import history, newest first.
func (s *Service) Imports(ctx context.Context) ([]ImportRecord, error) {
	return s.store.ListImports(ctx)
}

// Rollback removes all rows created by one import batch.
func (s *Service) Rollback(ctx context.Context, importID string) (*RollbackResult, error) {
	deleted, err := s.store.RollbackImport(ctx, importID)
	if err != nil {
		return nil, err
	}

	slog.Info("import rolled back", "import_id", importID, "rows_deleted", deleted)

	return &RollbackResult{ImportID: importID, RowsDeleted: deleted}, nil
}

// Reset deletes the entire catalog and its import history.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	slog.Warn("catalog reset")
	return nil
}

// Ping verifies the backing store is reachable. Used by health checks.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
