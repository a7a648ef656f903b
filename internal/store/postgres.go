package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/db"
	"github.com/albapepper/gvg-tracker/internal/match"
)

// Postgres is the shared remote store. Every query runs through a statement
// prepared on connect (see db.registerPreparedStatements); writes fire the
// change trigger the listener consumes.
type Postgres struct {
	pool *db.Pool
}

func NewPostgres(pool *db.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Pool exposes the underlying pool for health checks.
func (p *Postgres) Pool() *db.Pool { return p.pool }

func (p *Postgres) List(ctx context.Context) ([]match.Record, error) {
	return p.query(ctx, "records_list")
}

func (p *Postgres) ListByDefender(ctx context.Context, key string) ([]match.Record, error) {
	return p.query(ctx, "records_by_defender", key)
}

func (p *Postgres) query(ctx context.Context, stmt string, args ...any) ([]match.Record, error) {
	return queryPostgres(ctx, p.pool, stmt, args...)
}

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryPostgres(ctx context.Context, q pgQuerier, stmt string, args ...any) ([]match.Record, error) {
	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	out := []match.Record{}
	for rows.Next() {
		rec, err := scanPostgres(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanPostgres(row pgx.Row) (match.Record, error) {
	var (
		rec          match.Record
		result       string
		atkPk, defPk []byte
	)
	err := row.Scan(&rec.ID, &rec.Attackers, &rec.Defenders, &result,
		&atkPk, &defPk, &rec.Notes, &rec.Tags, &rec.CreatedAt)
	if err != nil {
		return match.Record{}, err
	}
	rec.Result = match.Result(result)
	if err := json.Unmarshal(atkPk, &rec.AttackerPicks); err != nil {
		return match.Record{}, fmt.Errorf("decode attacker picks of %q: %w", rec.ID, err)
	}
	if err := json.Unmarshal(defPk, &rec.DefenderPicks); err != nil {
		return match.Record{}, fmt.Errorf("decode defender picks of %q: %w", rec.ID, err)
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

func (p *Postgres) Get(ctx context.Context, id string) (match.Record, error) {
	rec, err := scanPostgres(p.pool.QueryRow(ctx, "record_get", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return match.Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return match.Record{}, fmt.Errorf("get %q: %w", id, err)
	}
	return rec, nil
}

func insertArgs(rec match.Record) []any {
	return []any{
		rec.ID, rec.Attackers, rec.Defenders,
		rec.AttackerKey(), rec.DefenderKey(), string(rec.Result),
		jsonText(picksOrEmpty(rec.AttackerPicks)), jsonText(picksOrEmpty(rec.DefenderPicks)),
		rec.Notes, tagsOrEmpty(rec.Tags), rec.CreatedAt,
	}
}

func (p *Postgres) Create(ctx context.Context, rec match.Record) error {
	tag, err := p.pool.Exec(ctx, "record_insert", insertArgs(rec)...)
	if err != nil {
		return fmt.Errorf("create %q: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("create %q: %w", rec.ID, ErrDuplicate)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, "record_delete", id)
	if err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	return nil
}

// Replace clears and refills the table in one transaction, so readers and the
// change feed see a single swap.
func (p *Postgres) Replace(ctx context.Context, recs []match.Record) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return rewrite(ctx, tx, recs)
	})
}

// Update locks the table against other writers (readers still proceed),
// reads it, and rewrites it in the same transaction.
func (p *Postgres) Update(ctx context.Context, fn UpdateFunc) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "LOCK TABLE "+config.RecordsTable+" IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("lock records: %w", err)
		}
		existing, err := queryPostgres(ctx, tx, "records_list")
		if err != nil {
			return err
		}
		next, err := fn(existing)
		if err != nil {
			return err
		}
		return rewrite(ctx, tx, next)
	})
}

func rewrite(ctx context.Context, tx pgx.Tx, recs []match.Record) error {
	if _, err := tx.Exec(ctx, "records_delete_all"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue("record_insert", insertArgs(rec)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert records: %w", err)
	}
	return nil
}

func (p *Postgres) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	var count int64
	if err := p.pool.QueryRow(ctx, "records_summary").Scan(&count, &s.LatestAt, &s.Checksum); err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	s.Count = int(count)
	return s, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.HealthCheck(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
