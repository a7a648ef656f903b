package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
)

// SQLite is the default local store: one file, pure Go driver, no server.
// Team and pick lists are kept as JSON text.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS ` + config.RecordsTable + ` (
		id             TEXT PRIMARY KEY,
		attackers      TEXT NOT NULL,
		defenders      TEXT NOT NULL,
		attacker_key   TEXT NOT NULL,
		defender_key   TEXT NOT NULL,
		result         TEXT NOT NULL CHECK (result IN ('WIN', 'LOSS')),
		attacker_picks TEXT NOT NULL DEFAULT '[]',
		defender_picks TEXT NOT NULL DEFAULT '[]',
		notes          TEXT NOT NULL DEFAULT '',
		tags           TEXT NOT NULL DEFAULT '[]',
		created_at     INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_match_records_defender_key ON ` + config.RecordsTable + ` (defender_key);
	CREATE INDEX IF NOT EXISTS idx_match_records_created_at ON ` + config.RecordsTable + ` (created_at DESC);
`

const sqliteSelect = `SELECT id, attackers, defenders, result, attacker_picks, defender_picks, notes, tags, created_at FROM ` + config.RecordsTable

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; also keeps ":memory:" on a single shared connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) List(ctx context.Context) ([]match.Record, error) {
	return s.query(ctx, sqliteSelect+` ORDER BY created_at DESC, id ASC`)
}

func (s *SQLite) ListByDefender(ctx context.Context, key string) ([]match.Record, error) {
	return s.query(ctx, sqliteSelect+` WHERE defender_key = ? ORDER BY created_at DESC, id ASC`, key)
}

func (s *SQLite) query(ctx context.Context, q string, args ...any) ([]match.Record, error) {
	return querySQLite(ctx, s.db, q, args...)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func querySQLite(ctx context.Context, qr querier, q string, args ...any) ([]match.Record, error) {
	rows, err := qr.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := []match.Record{}
	for rows.Next() {
		rec, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row scanner) (match.Record, error) {
	var (
		rec                         match.Record
		atk, def, atkPk, defPk, tgs string
		result                      string
	)
	if err := row.Scan(&rec.ID, &atk, &def, &result, &atkPk, &defPk, &rec.Notes, &tgs, &rec.CreatedAt); err != nil {
		return match.Record{}, err
	}
	rec.Result = match.Result(result)
	for _, f := range []struct {
		raw string
		dst any
	}{
		{atk, &rec.Attackers},
		{def, &rec.Defenders},
		{atkPk, &rec.AttackerPicks},
		{defPk, &rec.DefenderPicks},
		{tgs, &rec.Tags},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return match.Record{}, fmt.Errorf("decode record %q: %w", rec.ID, err)
		}
	}
	if len(rec.AttackerPicks) == 0 {
		rec.AttackerPicks = nil
	}
	if len(rec.DefenderPicks) == 0 {
		rec.DefenderPicks = nil
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return rec, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (match.Record, error) {
	rec, err := scanSQLite(s.db.QueryRowContext(ctx, sqliteSelect+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return match.Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return match.Record{}, fmt.Errorf("get %q: %w", id, err)
	}
	return rec, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSQLite(ctx context.Context, ex execer, rec match.Record) (bool, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO `+config.RecordsTable+` (
			id, attackers, defenders, attacker_key, defender_key, result,
			attacker_picks, defender_picks, notes, tags, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		jsonText(rec.Attackers), jsonText(rec.Defenders),
		rec.AttackerKey(), rec.DefenderKey(), string(rec.Result),
		jsonText(picksOrEmpty(rec.AttackerPicks)), jsonText(picksOrEmpty(rec.DefenderPicks)),
		rec.Notes, jsonText(tagsOrEmpty(rec.Tags)), rec.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert %q: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) Create(ctx context.Context, rec match.Record) error {
	inserted, err := insertSQLite(ctx, s.db, rec)
	if err != nil {
		return err
	}
	if !inserted {
		return fmt.Errorf("create %q: %w", rec.ID, ErrDuplicate)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+config.RecordsTable+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLite) Replace(ctx context.Context, recs []match.Record) error {
	return s.Update(ctx, func([]match.Record) ([]match.Record, error) { return recs, nil })
}

// Update runs the read and the rewrite in one transaction. The pool holds a
// single connection, so writers in this process queue behind it. A write
// from another process in between makes the commit fail with SQLITE_BUSY.
func (s *SQLite) Update(ctx context.Context, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	existing, err := querySQLite(ctx, tx, sqliteSelect+` ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return err
	}
	next, err := fn(existing)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+config.RecordsTable); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for _, rec := range next {
		if _, err := insertSQLite(ctx, tx, rec); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Summary(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at FROM `+config.RecordsTable)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var recs []match.Record
	for rows.Next() {
		var r match.Record
		if err := rows.Scan(&r.ID, &r.CreatedAt); err != nil {
			return Summary{}, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}
	return summarize(recs), nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func jsonText(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func picksOrEmpty(p []roster.Pick) []roster.Pick {
	if p == nil {
		return []roster.Pick{}
	}
	return p
}

func tagsOrEmpty(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
