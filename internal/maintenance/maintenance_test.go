package maintenance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/store"
)

type countingPurger struct{ n int }

func (p *countingPurger) Purge() { p.n++ }

func TestSweep(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	p := &countingPurger{}
	sw := NewSweeper(st, p, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if sw.Sweep(ctx) {
		t.Fatal("first sweep should only record a baseline")
	}
	if sw.Sweep(ctx) {
		t.Fatal("unchanged store reported as changed")
	}

	rec, err := match.New(match.Draft{
		Attackers: []string{"Vanessa", "Eileene", "Rudy"},
		Defenders: []string{"Orkah", "Jave", "Karin"},
		Result:    match.Win,
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if !sw.Sweep(ctx) {
		t.Fatal("expected change after create")
	}
	if sw.Sweep(ctx) {
		t.Fatal("change reported twice")
	}
	if p.n != 1 {
		t.Fatalf("expected 1 purge, got %d", p.n)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Start(ctx, store.NewMemory(), &countingPurger{}, Config{CatchUpInterval: time.Hour}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
