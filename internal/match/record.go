// Package match defines the Match Record and the ingestion boundary that
// guards it: creation from user input, coercion of untrusted JSON,
// validation and merge-deduplication.
//
// A Record that leaves this package has passed Validate; the aggregator and
// the stores assume that and never re-check.
package match

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/gvg-tracker/internal/roster"
)

// MaxPicks is the largest Pick Set allowed per side per match.
const MaxPicks = 3

// Result is the outcome from the attacking side's point of view.
type Result string

const (
	Win  Result = "WIN"
	Loss Result = "LOSS"
)

// ParseResult accepts "win"/"loss" in any case.
func ParseResult(s string) (Result, error) {
	switch Result(strings.ToUpper(strings.TrimSpace(s))) {
	case Win:
		return Win, nil
	case Loss:
		return Loss, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidResult, s)
}

// Record is one logged battle. Attackers and Defenders hold normalized,
// sorted names. CreatedAt is Unix milliseconds, matching the export format.
type Record struct {
	ID            string        `json:"id"`
	Attackers     []string      `json:"attackers"`
	Defenders     []string      `json:"defenders"`
	Result        Result        `json:"result"`
	AttackerPicks []roster.Pick `json:"attackerPicks,omitempty"`
	DefenderPicks []roster.Pick `json:"defenderPicks,omitempty"`
	Notes         string        `json:"notes"`
	Tags          []string      `json:"tags"`
	CreatedAt     int64         `json:"createdAt"`
}

// AttackerKey is the attacking team's Team Key.
func (r Record) AttackerKey() string { return roster.TeamKey(r.Attackers) }

// DefenderKey is the defending team's Team Key.
func (r Record) DefenderKey() string { return roster.TeamKey(r.Defenders) }

// AttackerPickKey is the Pick Set Key of the attacker picks ("" if none).
func (r Record) AttackerPickKey() string {
	return roster.PickSetKey(roster.PickStrings(r.AttackerPicks))
}

// DefenderPickKey is the Pick Set Key of the defender picks ("" if none).
func (r Record) DefenderPickKey() string {
	return roster.PickSetKey(roster.PickStrings(r.DefenderPicks))
}

// Draft is raw user input for a new record. Names, picks, notes and tags
// may be in any shape a person types; New cleans them up.
type Draft struct {
	ID            string
	Attackers     []string
	Defenders     []string
	Result        Result
	AttackerPicks []roster.Pick
	DefenderPicks []roster.Pick
	Notes         string
	Tags          []string
	CreatedAt     int64
}

// New normalizes a draft into a Record and validates it. A missing ID gets a
// fresh UUID and a zero CreatedAt becomes now.
func New(d Draft, now time.Time) (Record, error) {
	rec := Record{
		ID:            strings.TrimSpace(d.ID),
		Attackers:     roster.NormalizeTeam(d.Attackers),
		Defenders:     roster.NormalizeTeam(d.Defenders),
		Result:        d.Result,
		AttackerPicks: normalizePicks(d.AttackerPicks),
		DefenderPicks: normalizePicks(d.DefenderPicks),
		Notes:         roster.CleanWhitespace(d.Notes),
		Tags:          CleanTags(d.Tags),
		CreatedAt:     d.CreatedAt,
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt <= 0 {
		rec.CreatedAt = now.UnixMilli()
	}
	if err := Validate(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// normalizePicks canonicalizes each pick, drops blank ones and collapses
// exact duplicates. Returns nil when nothing is left.
func normalizePicks(picks []roster.Pick) []roster.Pick {
	var out []roster.Pick
	for _, p := range picks {
		p = p.Normalize()
		if p.Character == "" || p.Option == "" {
			continue
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// ParseTags splits a comma separated tag string.
func ParseTags(raw string) []string {
	return CleanTags(strings.Split(raw, ","))
}

// CleanTags whitespace-cleans tags, drops empty ones and deduplicates while
// keeping first-seen order. Never returns nil.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = roster.CleanWhitespace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
