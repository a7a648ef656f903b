// Package store persists match records. Every implementation hands out
// records newest first and copies on the way in and out, so callers may
// mutate what they receive.
package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/db"
	"github.com/albapepper/gvg-tracker/internal/match"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record id already exists")
)

// Summary fingerprints the stored set. Two equal summaries mean nothing was
// added, removed or replaced in between.
type Summary struct {
	Count    int    `json:"count"`
	LatestAt int64  `json:"latestAt"`
	Checksum string `json:"checksum"`
}

// UpdateFunc computes the next record set from the current one.
type UpdateFunc func(existing []match.Record) ([]match.Record, error)

// Store is the record repository used by the API, the CLI and the importer.
type Store interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]match.Record, error)
	// ListByDefender returns the records whose Defender Team Key equals key.
	ListByDefender(ctx context.Context, key string) ([]match.Record, error)
	Get(ctx context.Context, id string) (match.Record, error)
	// Create inserts one validated record; ErrDuplicate if the id is taken.
	Create(ctx context.Context, rec match.Record) error
	Delete(ctx context.Context, id string) error
	// Replace swaps the whole set atomically. An empty slice clears it.
	Replace(ctx context.Context, recs []match.Record) error
	// Update reads the whole set, newest first, and stores what fn returns
	// in its place. No other write lands between the read and the write.
	// fn must not call back into the store. If fn fails nothing changes.
	Update(ctx context.Context, fn UpdateFunc) error
	Summary(ctx context.Context) (Summary, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open picks the implementation named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Info("Using in-memory record store")
		return NewMemory(), nil
	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite record store opened", "path", cfg.SQLitePath)
		return s, nil
	case config.DriverPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		return NewPostgres(pool), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Recent returns at most n records, newest first. n <= 0 means all.
func Recent(ctx context.Context, s Store, n int) ([]match.Record, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}

// summarize computes the same fingerprint the Postgres summary query does:
// md5 over "id:createdAt" pairs ordered by id.
func summarize(recs []match.Record) Summary {
	s := Summary{Count: len(recs)}
	if len(recs) == 0 {
		return s
	}
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		s.LatestAt = max(s.LatestAt, r.CreatedAt)
		parts = append(parts, r.ID+":"+strconv.FormatInt(r.CreatedAt, 10))
	}
	slices.Sort(parts)
	sum := md5.Sum([]byte(strings.Join(parts, ",")))
	s.Checksum = hex.EncodeToString(sum[:])
	return s
}

func cloneRecord(r match.Record) match.Record {
	r.Attackers = slices.Clone(r.Attackers)
	r.Defenders = slices.Clone(r.Defenders)
	r.AttackerPicks = slices.Clone(r.AttackerPicks)
	r.DefenderPicks = slices.Clone(r.DefenderPicks)
	r.Tags = slices.Clone(r.Tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}
