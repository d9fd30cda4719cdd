package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hvactools/chillerselect/internal/config"
	"github.com/hvactools/chillerselect/internal/core"
)

// Statements run one at a time: multi-statement strings need the simple
// protocol, which the pool is not configured for.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS catalog_imports (
		id         UUID PRIMARY KEY,
		label      TEXT NOT NULL DEFAULT '',
		source     TEXT NOT NULL DEFAULT '',
		row_count  INTEGER NOT NULL,
		ambient_f  DOUBLE PRECISION NOT NULL,
		ewt_c      DOUBLE PRECISION NOT NULL,
		lwt_c      DOUBLE PRECISION NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS chillers (
		id                 BIGSERIAL PRIMARY KEY,
		model              TEXT NOT NULL,
		manufacturer       TEXT NOT NULL DEFAULT '',
		capacity_tons      DOUBLE PRECISION NOT NULL,
		ambient_f          DOUBLE PRECISION NOT NULL,
		ewt_c              DOUBLE PRECISION NOT NULL,
		lwt_c              DOUBLE PRECISION NOT NULL,
		efficiency         DOUBLE PRECISION NOT NULL,
		iplv               DOUBLE PRECISION,
		waterflow          DOUBLE PRECISION,
		unit_kw            DOUBLE PRECISION,
		compressor_kw      DOUBLE PRECISION,
		fan_kw             DOUBLE PRECISION,
		pressure_drop_psi  DOUBLE PRECISION,
		pressure_drop_ftwg DOUBLE PRECISION,
		mca                DOUBLE PRECISION,
		length             DOUBLE PRECISION,
		width              DOUBLE PRECISION,
		height             DOUBLE PRECISION,
		dim_unit           TEXT NOT NULL DEFAULT '',
		import_id          UUID NOT NULL REFERENCES catalog_imports(id) ON DELETE CASCADE,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS chillers_ambient_idx ON chillers (ambient_f)`,
	`CREATE INDEX IF NOT EXISTS chillers_import_idx ON chillers (import_id)`,
}

// Postgres is a catalog store backed by a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database, verifies the connection, and
// creates the catalog tables when they do not exist yet.
func OpenPostgres(ctx context.Context, dbCfg config.DatabaseConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(dbCfg.MaxConns)
	poolConfig.MinConns = int32(dbCfg.MinConns)
	poolConfig.MaxConnLifetime = dbCfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbCfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) InsertRows(ctx context.Context, rec core.ImportRecord, rows []core.CatalogRow) (int, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	_, err = tx.Exec(ctx,
		`INSERT INTO catalog_imports (id, label, source, row_count, ambient_f, ewt_c, lwt_c, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Label, rec.Source, rec.RowCount,
		rec.Conditions.AmbientF, rec.Conditions.EWTC, rec.Conditions.LWTC,
		rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert import record: %w", err)
	}

	for i := range rows {
		rows[i].ImportID = rec.ID
		rows[i].CreatedAt = rec.CreatedAt

		r := &rows[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO chillers (
				model, manufacturer, capacity_tons, ambient_f, ewt_c, lwt_c,
				efficiency, iplv, waterflow, unit_kw, compressor_kw, fan_kw,
				pressure_drop_psi, pressure_drop_ftwg, mca,
				length, width, height, dim_unit, import_id, created_at
			 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			r.Model, r.Manufacturer, r.CapacityTons, r.AmbientF, r.EWTC, r.LWTC,
			r.Efficiency, r.IPLV, r.Waterflow, r.UnitKW, r.CompressorKW, r.FanKW,
			r.PressureDropPSI, r.PressureDropFtWG, r.MCA,
			r.Length, r.Width, r.Height, r.DimUnit, r.ImportID, r.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert row %q: %w", r.Model, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(rows), nil
}

func (p *Postgres) ScanAll(ctx context.Context) ([]core.CatalogRow, error) {
	dbRows, err := p.pool.Query(ctx,
		`SELECT model, manufacturer, capacity_tons, ambient_f, ewt_c, lwt_c,
		        efficiency, iplv, waterflow, unit_kw, compressor_kw, fan_kw,
		        pressure_drop_psi, pressure_drop_ftwg, mca,
		        length, width, height, dim_unit, import_id, created_at
		 FROM chillers
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer dbRows.Close()

	var out []core.CatalogRow
	for dbRows.Next() {
		var r core.CatalogRow
		err := dbRows.Scan(
			&r.Model, &r.Manufacturer, &r.CapacityTons, &r.AmbientF, &r.EWTC, &r.LWTC,
			&r.Efficiency, &r.IPLV, &r.Waterflow, &r.UnitKW, &r.CompressorKW, &r.FanKW,
			&r.PressureDropPSI, &r.PressureDropFtWG, &r.MCA,
			&r.Length, &r.Width, &r.Height, &r.DimUnit, &r.ImportID, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		out = append(out, r)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}
	return out, nil
}

func (p *Postgres) ListImports(ctx context.Context) ([]core.ImportRecord, error) {
	dbRows, err := p.pool.Query(ctx,
		`SELECT id, label, source, row_count, ambient_f, ewt_c, lwt_c, status, created_at
		 FROM catalog_imports
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer dbRows.Close()

	var out []core.ImportRecord
	for dbRows.Next() {
		var rec core.ImportRecord
		err := dbRows.Scan(
			&rec.ID, &rec.Label, &rec.Source, &rec.RowCount,
			&rec.Conditions.AmbientF, &rec.Conditions.EWTC, &rec.Conditions.LWTC,
			&rec.Status, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		out = append(out, rec)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import records: %w", err)
	}
	return out, nil
}

func (p *Postgres) RollbackImport(ctx context.Context, importID string) (int, error) {
	// Non-UUID input can never name a batch; skip the round trip.
	if _, err := uuid.Parse(importID); err != nil {
		return 0, core.ErrImportNotFound
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM catalog_imports WHERE id = $1 FOR UPDATE`,
		importID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, core.ErrImportNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up import %s: %w", importID, err)
	}
	if status == core.ImportStatusRolledBack {
		return 0, core.ErrAlreadyRolledBack
	}

	tag, err := tx.Exec(ctx, `DELETE FROM chillers WHERE import_id = $1`, importID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rows for import %s: %w", importID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE catalog_imports SET status = $1 WHERE id = $2`,
		core.ImportStatusRolledBack, importID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark import %s rolled back: %w", importID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (p *Postgres) Reset(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `TRUNCATE chillers, catalog_imports`); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}
