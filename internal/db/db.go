// Package db provides a pgxpool-based connection pool with schema migration,
// prepared statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/gvg-tracker/internal/config"
)

// ChangeChannel is the NOTIFY channel fired after every write statement on
// the records table.
const ChangeChannel = "match_records_changed"

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New migrates the schema, then creates and validates a connection pool.
// The schema has to exist before the pool opens because every new
// connection prepares statements against it.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := Migrate(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// --------------------------------------------------------------------------
// Schema
// --------------------------------------------------------------------------

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + config.RecordsTable + ` (
		id             TEXT PRIMARY KEY,
		attackers      TEXT[] NOT NULL,
		defenders      TEXT[] NOT NULL,
		attacker_key   TEXT NOT NULL,
		defender_key   TEXT NOT NULL,
		result         TEXT NOT NULL CHECK (result IN ('WIN', 'LOSS')),
		attacker_picks JSONB NOT NULL DEFAULT '[]',
		defender_picks JSONB NOT NULL DEFAULT '[]',
		notes          TEXT NOT NULL DEFAULT '',
		tags           TEXT[] NOT NULL DEFAULT '{}',
		created_at     BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_records_defender_key
		ON ` + config.RecordsTable + ` (defender_key)`,
	`CREATE INDEX IF NOT EXISTS idx_match_records_created_at
		ON ` + config.RecordsTable + ` (created_at DESC)`,
	`CREATE OR REPLACE FUNCTION notify_match_records_changed() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('` + ChangeChannel + `', json_build_object(
			'op', TG_OP,
			'ts', (extract(epoch FROM clock_timestamp()) * 1000)::bigint
		)::text);
		RETURN NULL;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS match_records_changed ON ` + config.RecordsTable,
	`CREATE TRIGGER match_records_changed
		AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON ` + config.RecordsTable + `
		FOR EACH STATEMENT EXECUTE FUNCTION notify_match_records_changed()`,
}

// Migrate creates the records table, its indexes and the change trigger on a
// one-off connection. Safe to run repeatedly.
func Migrate(ctx context.Context, dbURL string) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent migrations from several processes.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", config.RecordsTable); err != nil {
		return fmt.Errorf("lock migration: %w", err)
	}
	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i, err)
		}
	}
	return tx.Commit(ctx)
}

// --------------------------------------------------------------------------
// Prepared statements
// --------------------------------------------------------------------------

const recordColumns = "id, attackers, defenders, result, attacker_picks, defender_picks, notes, tags, created_at"

// registerPreparedStatements registers every statement the record store
// uses, on each new pool connection.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		"records_list": "SELECT " + recordColumns + " FROM " + config.RecordsTable +
			" ORDER BY created_at DESC, id ASC",
		"records_by_defender": "SELECT " + recordColumns + " FROM " + config.RecordsTable +
			" WHERE defender_key = $1 ORDER BY created_at DESC, id ASC",
		"record_get": "SELECT " + recordColumns + " FROM " + config.RecordsTable + " WHERE id = $1",
		"record_insert": "INSERT INTO " + config.RecordsTable +
			" (id, attackers, defenders, attacker_key, defender_key, result, attacker_picks, defender_picks, notes, tags, created_at)" +
			" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) ON CONFLICT (id) DO NOTHING",
		"record_delete":      "DELETE FROM " + config.RecordsTable + " WHERE id = $1",
		"records_delete_all": "DELETE FROM " + config.RecordsTable,
		"records_summary": "SELECT COUNT(*), COALESCE(MAX(created_at), 0)," +
			" COALESCE(md5(string_agg(id || ':' || created_at::text, ',' ORDER BY id)), '')" +
			" FROM " + config.RecordsTable,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
