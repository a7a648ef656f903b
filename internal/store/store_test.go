package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
)

func mustRecord(t *testing.T, id string, atk, def []string, createdAt int64) match.Record {
	t.Helper()
	rec, err := match.New(match.Draft{
		ID:            id,
		Attackers:     atk,
		Defenders:     def,
		Result:        match.Win,
		AttackerPicks: []roster.Pick{{Character: atk[0], Option: "S1"}},
		Notes:         "note " + id,
		Tags:          []string{"Tank"},
		CreatedAt:     createdAt,
	}, time.Now())
	if err != nil {
		t.Fatalf("match.New: %v", err)
	}
	return rec
}

var (
	atkTeam = []string{"Vanessa", "Eileene", "Rudy"}
	defA    = []string{"Orkah", "Jave", "Karin"}
	defB    = []string{"Kris", "Dellons", "Aris"}
)

// exerciseStore runs the behavior every implementation must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	r1 := mustRecord(t, "r1", atkTeam, defA, 100)
	r2 := mustRecord(t, "r2", atkTeam, defB, 300)
	r3 := mustRecord(t, "r3", atkTeam, defA, 200)

	t.Run("Empty store", func(t *testing.T) {
		recs, err := s.List(ctx)
		if err != nil || len(recs) != 0 {
			t.Fatalf("List = %v, %v", recs, err)
		}
		sum, err := s.Summary(ctx)
		if err != nil || sum.Count != 0 || sum.Checksum != "" {
			t.Fatalf("Summary = %+v, %v", sum, err)
		}
	})

	t.Run("Create and list newest first", func(t *testing.T) {
		for _, r := range []match.Record{r1, r2, r3} {
			if err := s.Create(ctx, r); err != nil {
				t.Fatalf("Create %s: %v", r.ID, err)
			}
		}
		recs, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		var ids []string
		for _, r := range recs {
			ids = append(ids, r.ID)
		}
		if !slices.Equal(ids, []string{"r2", "r3", "r1"}) {
			t.Fatalf("ids = %v", ids)
		}
	})

	t.Run("Round trip keeps every field", func(t *testing.T) {
		got, err := s.Get(ctx, "r1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.AttackerKey() != r1.AttackerKey() || got.DefenderKey() != r1.DefenderKey() ||
			got.Result != r1.Result || got.Notes != r1.Notes || got.CreatedAt != r1.CreatedAt ||
			got.AttackerPickKey() != r1.AttackerPickKey() || got.DefenderPicks != nil ||
			!slices.Equal(got.Tags, r1.Tags) {
			t.Fatalf("got %+v, want %+v", got, r1)
		}
	})

	t.Run("Duplicate id is rejected", func(t *testing.T) {
		if err := s.Create(ctx, r1); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("List by defender", func(t *testing.T) {
		recs, err := s.ListByDefender(ctx, roster.TeamKey(defA))
		if err != nil {
			t.Fatalf("ListByDefender: %v", err)
		}
		if len(recs) != 2 || recs[0].ID != "r3" || recs[1].ID != "r1" {
			t.Fatalf("got %+v", recs)
		}
	})

	t.Run("Summary changes with the set", func(t *testing.T) {
		before, err := s.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		if before.Count != 3 || before.LatestAt != 300 || before.Checksum == "" {
			t.Fatalf("Summary = %+v", before)
		}
		if err := s.Delete(ctx, "r3"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		after, _ := s.Summary(ctx)
		if after.Count != 2 || after.Checksum == before.Checksum {
			t.Fatalf("Summary after delete = %+v", after)
		}
	})

	t.Run("Missing ids report ErrNotFound", func(t *testing.T) {
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get: expected ErrNotFound, got %v", err)
		}
		if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update rewrites from the current set", func(t *testing.T) {
		r5 := mustRecord(t, "r5", atkTeam, defA, 500)
		err := s.Update(ctx, func(existing []match.Record) ([]match.Record, error) {
			var ids []string
			for _, r := range existing {
				ids = append(ids, r.ID)
			}
			if !slices.Equal(ids, []string{"r2", "r1"}) {
				t.Errorf("Update saw %v", ids)
			}
			return append(existing, r5), nil
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		recs, _ := s.List(ctx)
		if len(recs) != 3 || recs[0].ID != "r5" {
			t.Fatalf("after update: %+v", recs)
		}
	})

	t.Run("Unhappy path - failed Update changes nothing", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.Update(ctx, func([]match.Record) ([]match.Record, error) { return nil, boom })
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if recs, _ := s.List(ctx); len(recs) != 3 {
			t.Fatalf("store changed: %d records", len(recs))
		}
	})

	t.Run("Replace swaps the whole set", func(t *testing.T) {
		r4 := mustRecord(t, "r4", atkTeam, defB, 400)
		if err := s.Replace(ctx, []match.Record{r4}); err != nil {
			t.Fatalf("Replace: %v", err)
		}
		recs, _ := s.List(ctx)
		if len(recs) != 1 || recs[0].ID != "r4" {
			t.Fatalf("after replace: %+v", recs)
		}
		if err := s.Replace(ctx, nil); err != nil {
			t.Fatalf("Replace(nil): %v", err)
		}
		if recs, _ := s.List(ctx); len(recs) != 0 {
			t.Fatalf("expected empty store, got %d", len(recs))
		}
	})

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Create(ctx, mustRecord(t, "r1", atkTeam, defA, 1)); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(ctx, "r1")
	got.Attackers[0] = "Changed"
	again, _ := s.Get(ctx, "r1")
	if again.Attackers[0] == "Changed" {
		t.Fatal("store shares slices with callers")
	}
}

func TestMemoryUpdateHoldsOffWriters(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	mine := mustRecord(t, "mine", atkTeam, defA, 1)
	late := mustRecord(t, "late", atkTeam, defB, 2)

	done := make(chan error, 1)
	err := s.Update(ctx, func(existing []match.Record) ([]match.Record, error) {
		go func() { done <- s.Create(ctx, late) }()
		select {
		case err := <-done:
			t.Errorf("Create finished inside Update: %v", err)
			done <- err
		case <-time.After(20 * time.Millisecond):
		}
		return append(existing, mine), nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Create after Update: %v", err)
	}
	recs, _ := s.List(ctx)
	if len(recs) != 2 {
		t.Fatalf("expected both records, got %+v", recs)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "matches.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "matches.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Create(ctx, mustRecord(t, "r1", atkTeam, defA, 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "r1"); err != nil {
		t.Fatalf("record lost across reopen: %v", err)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		if err := s.Create(ctx, mustRecord(t, id, atkTeam, defA, int64(i+1))); err != nil {
			t.Fatal(err)
		}
	}
	got, err := Recent(ctx, s, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != "e" {
		t.Fatalf("Recent = %+v", got)
	}
	all, _ := Recent(ctx, s, 0)
	if len(all) != 5 {
		t.Fatalf("Recent(0) returned %d", len(all))
	}
}

func TestSummarizeMatchesAcrossOrder(t *testing.T) {
	a := mustRecord(t, "a", atkTeam, defA, 1)
	b := mustRecord(t, "b", atkTeam, defB, 2)
	if summarize([]match.Record{a, b}) != summarize([]match.Record{b, a}) {
		t.Fatal("summary depends on order")
	}
}
