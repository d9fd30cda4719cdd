package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeStore is an in-memory Store for exercising the service layer.
type fakeStore struct {
	rows    []CatalogRow
	records []ImportRecord

	insertCalls int
	insertErr   error
	scanErr     error
}

func (f *fakeStore) InsertRows(ctx context.Context, rec ImportRecord, rows []CatalogRow) (int, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	for i := range rows {
		rows[i].ImportID = rec.ID
	}
	f.rows = append(f.rows, rows...)
	f.records = append([]ImportRecord{rec}, f.records...)
	return len(rows), nil
}

func (f *fakeStore) ScanAll(ctx context.Context) ([]CatalogRow, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.rows, nil
}

func (f *fakeStore) ListImports(ctx context.Context) ([]ImportRecord, error) {
	return f.records, nil
}

func (f *fakeStore) RollbackImport(ctx context.Context, importID string) (int, error) {
	for i := range f.records {
		if f.records[i].ID != importID {
			continue
		}
		if f.records[i].Status == ImportStatusRolledBack {
			return 0, ErrAlreadyRolledBack
		}
		f.records[i].Status = ImportStatusRolledBack
		deleted := 0
		kept := f.rows[:0]
		for _, r := range f.rows {
			if r.ImportID == importID {
				deleted++
				continue
			}
			kept = append(kept, r)
		}
		f.rows = kept
		return deleted, nil
	}
	return 0, ErrImportNotFound
}

func (f *fakeStore) Reset(ctx context.Context) error {
	f.rows, f.records = nil, nil
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) Close() {}

const sampleTSV = "Model\tTons\tkW/Ton\nACHX-B 90S\t80.6\t1.258\nACHX-B 90T\t75.8\t1.210\n"

// ---- Import ----

func TestService_ImportCommit(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	res, err := svc.Import(context.Background(), ImportRequest{
		Text:       sampleTSV,
		Source:     "paste",
		Label:      "achx catalog",
		Conditions: Conditions{AmbientF: 95, EWTC: 12, LWTC: 7},
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if res.ImportID == "" {
		t.Error("ImportID is empty, want a generated ID")
	}
	if res.Inserted != 2 || res.TotalRows != 2 {
		t.Errorf("Inserted/TotalRows = %d/%d, want 2/2", res.Inserted, res.TotalRows)
	}
	if len(res.Rows) != 2 || len(res.Failed) != 0 {
		t.Errorf("rows/failed = %d/%d, want 2/0", len(res.Rows), len(res.Failed))
	}

	if len(store.rows) != 2 {
		t.Fatalf("store holds %d rows, want 2", len(store.rows))
	}
	for i, r := range store.rows {
		if r.ImportID != res.ImportID {
			t.Errorf("stored row %d ImportID = %q, want %q", i, r.ImportID, res.ImportID)
		}
	}
	if len(store.records) != 1 {
		t.Fatalf("store holds %d records, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.ID != res.ImportID || rec.RowCount != 2 || rec.Status != ImportStatusActive {
		t.Errorf("record = %+v", rec)
	}
	if rec.Label != "achx catalog" || rec.Source != "paste" {
		t.Errorf("record label/source = %q/%q", rec.Label, rec.Source)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("record CreatedAt is zero")
	}
}

func TestService_ImportPreview(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	res, err := svc.Import(context.Background(), ImportRequest{
		Text:       sampleTSV,
		Conditions: Conditions{AmbientF: 95, EWTC: 12, LWTC: 7},
		Preview:    true,
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if !res.Preview || res.ImportID != "" || res.Inserted != 0 {
		t.Errorf("preview result = %+v, want no commit fields", res)
	}
	if len(res.Rows) != 2 {
		t.Errorf("len(Rows) = %d, want 2", len(res.Rows))
	}
	if store.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0", store.insertCalls)
	}
}

func TestService_ImportNoValidRows(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	badText := "Model\tTons\tkW/Ton\nACHX-B 90S\tabc\t1.258\n"

	// Committing a batch with zero valid rows is refused.
	_, err := svc.Import(context.Background(), ImportRequest{Text: badText})
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("Import() error = %v, want ErrNoValidRows", err)
	}
	if store.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0", store.insertCalls)
	}

	// Previewing the same input succeeds and reports the failures.
	res, err := svc.Import(context.Background(), ImportRequest{Text: badText, Preview: true})
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	if len(res.Failed) != 1 || res.TotalRows != 1 {
		t.Errorf("preview = %+v, want one failed row", res)
	}
}

func TestService_ImportParseError(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.Import(context.Background(), ImportRequest{Text: "   "})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Import() error = %v, want ErrEmptyInput", err)
	}
}

func TestService_ImportStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&fakeStore{insertErr: boom})

	_, err := svc.Import(context.Background(), ImportRequest{Text: sampleTSV})
	if !errors.Is(err, boom) {
		t.Errorf("Import() error = %v, want wrapped %v", err, boom)
	}
}

// ---- Search ----

func TestService_Search(t *testing.T) {
	store := &fakeStore{rows: achxCatalog()}
	svc := NewService(store)

	resp, err := svc.Search(context.Background(), ratedQuery(100))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Results.Outcome != OutcomeMatched {
		t.Errorf("Outcome = %q, want %q", resp.Results.Outcome, OutcomeMatched)
	}
	if resp.Suggestions != nil {
		t.Errorf("Suggestions = %+v, want nil on a match", resp.Suggestions)
	}
}

func TestService_SearchSuggestionsOnUnknownAmbient(t *testing.T) {
	store := &fakeStore{rows: achxCatalog()}
	svc := NewService(store)

	resp, err := svc.Search(context.Background(), Query{
		TargetTons: 100, AmbientF: 105, EWTC: 12, LWTC: 7,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Results.Outcome != OutcomeNoAmbientMatch {
		t.Fatalf("Outcome = %q, want %q", resp.Results.Outcome, OutcomeNoAmbientMatch)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].AmbientF != 95 {
		t.Errorf("Suggestions = %+v, want one at 95°F", resp.Suggestions)
	}
}

func TestService_SearchInvalidTarget(t *testing.T) {
	// scanErr would surface if the store were touched before validation.
	svc := NewService(&fakeStore{scanErr: errors.New("should not be called")})

	for _, target := range []float64{0, -5} {
		_, err := svc.Search(context.Background(), Query{TargetTons: target, AmbientF: 95})
		if err == nil || !strings.Contains(err.Error(), "must be positive") {
			t.Errorf("Search(target=%v) error = %v, want positive-target error", target, err)
		}
	}
}

// ---- History, rollback, reset ----

func TestService_RollbackLifecycle(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	res, err := svc.Import(ctx, ImportRequest{
		Text:       sampleTSV,
		Conditions: Conditions{AmbientF: 95, EWTC: 12, LWTC: 7},
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	rb, err := svc.Rollback(ctx, res.ImportID)
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if rb.RowsDeleted != 2 || rb.ImportID != res.ImportID {
		t.Errorf("Rollback() = %+v, want 2 rows for %s", rb, res.ImportID)
	}
	if len(store.rows) != 0 {
		t.Errorf("store still holds %d rows", len(store.rows))
	}

	// History keeps the record, marked rolled back.
	recs, err := svc.Imports(ctx)
	if err != nil {
		t.Fatalf("Imports() error = %v", err)
	}
	if len(recs) != 1 || recs[0].Status != ImportStatusRolledBack {
		t.Errorf("Imports() = %+v, want one rolled_back record", recs)
	}

	// Rolling back twice fails.
	if _, err := svc.Rollback(ctx, res.ImportID); !errors.Is(err, ErrAlreadyRolledBack) {
		t.Errorf("second Rollback() error = %v, want ErrAlreadyRolledBack", err)
	}
	// Unknown IDs fail.
	if _, err := svc.Rollback(ctx, "nope"); !errors.Is(err, ErrImportNotFound) {
		t.Errorf("Rollback(nope) error = %v, want ErrImportNotFound", err)
	}
}

func TestService_StatsAndAmbients(t *testing.T) {
	store := &fakeStore{rows: achxCatalog()}
	svc := NewService(store)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalRows != 16 || stats.DistinctModels != 16 {
		t.Errorf("rows/models = %d/%d, want 16/16", stats.TotalRows, stats.DistinctModels)
	}

	ambients, err := svc.Ambients(ctx)
	if err != nil {
		t.Fatalf("Ambients() error = %v", err)
	}
	if len(ambients) != 1 || ambients[0] != 95 {
		t.Errorf("Ambients() = %v, want [95]", ambients)
	}
}

func TestService_Reset(t *testing.T) {
	store := &fakeStore{rows: achxCatalog()}
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalRows != 0 {
		t.Errorf("TotalRows = %d after reset, want 0", stats.TotalRows)
	}
}
