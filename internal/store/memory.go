package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/albapepper/gvg-tracker/internal/match"
)

// Memory keeps records in process memory. Used by tests and by
// STORE_DRIVER=memory for throwaway sessions.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]match.Record
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]match.Record)}
}

func (m *Memory) List(ctx context.Context) ([]match.Record, error) {
	return m.filter(func(match.Record) bool { return true }), nil
}

func (m *Memory) ListByDefender(ctx context.Context, key string) ([]match.Record, error) {
	return m.filter(func(r match.Record) bool { return r.DefenderKey() == key }), nil
}

func (m *Memory) filter(keep func(match.Record) bool) []match.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]match.Record, 0, len(m.recs))
	for _, r := range m.recs {
		if keep(r) {
			out = append(out, cloneRecord(r))
		}
	}
	match.SortNewestFirst(out)
	return out
}

func (m *Memory) Get(ctx context.Context, id string) (match.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recs[id]
	if !ok {
		return match.Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return cloneRecord(r), nil
}

func (m *Memory) Create(ctx context.Context, rec match.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.ID]; ok {
		return fmt.Errorf("create %q: %w", rec.ID, ErrDuplicate)
	}
	m.recs[rec.ID] = cloneRecord(rec)
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(m.recs, id)
	return nil
}

func (m *Memory) Replace(ctx context.Context, recs []match.Record) error {
	next := indexByID(recs)
	m.mu.Lock()
	m.recs = next
	m.mu.Unlock()
	return nil
}

func (m *Memory) Update(ctx context.Context, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make([]match.Record, 0, len(m.recs))
	for _, r := range m.recs {
		existing = append(existing, cloneRecord(r))
	}
	match.SortNewestFirst(existing)

	next, err := fn(existing)
	if err != nil {
		return err
	}
	m.recs = indexByID(next)
	return nil
}

// indexByID keeps the first record seen for each id, like the SQL stores'
// ON CONFLICT DO NOTHING.
func indexByID(recs []match.Record) map[string]match.Record {
	out := make(map[string]match.Record, len(recs))
	for _, r := range recs {
		if _, ok := out[r.ID]; !ok {
			out[r.ID] = cloneRecord(r)
		}
	}
	return out
}

func (m *Memory) Summary(ctx context.Context) (Summary, error) {
	recs, _ := m.List(ctx)
	return summarize(recs), nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
