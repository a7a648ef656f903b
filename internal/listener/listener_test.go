package listener

import (
	"io"
	"log/slog"
	"testing"
)

type countingPurger struct{ n int }

func (p *countingPurger) Purge() { p.n++ }

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent(`{"op":"INSERT","ts":1700000000000}`)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.Op != "INSERT" || ev.Timestamp != 1700000000000 {
		t.Fatalf("got %+v", ev)
	}
	if _, err := ParseEvent("not json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestHandlePurgesOnEveryEvent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := &countingPurger{}
	handle(`{"op":"DELETE","ts":1}`, p, logger)
	handle(`garbage`, p, logger)
	if p.n != 2 {
		t.Fatalf("expected 2 purges, got %d", p.n)
	}
}
