// Package scout answers "what has worked against this defense?": it filters
// match history to one defending trio and aggregates it per attacking team.
//
// Query is a pure function of its inputs. It never mutates the records it is
// given and keeps no state between calls, so concurrent queries over the same
// snapshot need no locking.
package scout

import (
	"cmp"
	"slices"

	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
)

// Combo is a Pick Set Key with the number of matches it was recorded in.
type Combo struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Row summarizes every match one attacking team played against the queried
// defense.
type Row struct {
	AttackerKey      string   `json:"attackerKey"`
	Attackers        []string `json:"attackers"`
	Total            int      `json:"total"`
	Wins             int      `json:"wins"`
	WinRate          float64  `json:"winRate"`
	Notes            []string `json:"notes"`
	Tags             []string `json:"tags"`
	LastAt           int64    `json:"lastAt"`
	TopAttackerCombo *Combo   `json:"topAttackerCombo,omitempty"`
	TopDefenderCombo *Combo   `json:"topDefenderCombo,omitempty"`
}

// Result is the answer to one defensive query.
type Result struct {
	QueryKey   string   `json:"queryKey"`
	Defenders  []string `json:"defenders"`
	MatchCount int      `json:"matchCount"`
	Rows       []Row    `json:"rows"`
}

type bucket struct {
	row       Row
	notes     []string
	tags      []string
	atkCombos map[string]int
	defCombos map[string]int
}

// Query aggregates records against the defending team named by defenders.
//
// It returns nil when fewer than three names resolve: the query is
// incomplete, which is not the same as a complete query with no matches
// (a non-nil Result with MatchCount 0).
func Query(records []match.Record, defenders []string) *Result {
	qNames := roster.NormalizeTeam(defenders)
	if len(qNames) < roster.TeamSize {
		return nil
	}
	qKey := roster.TeamKey(defenders)

	res := &Result{QueryKey: qKey, Defenders: qNames, Rows: []Row{}}
	buckets := make(map[string]*bucket)
	var order []string

	for _, m := range records {
		if m.DefenderKey() != qKey {
			continue
		}
		res.MatchCount++

		aKey := m.AttackerKey()
		b, ok := buckets[aKey]
		if !ok {
			b = &bucket{
				row: Row{
					AttackerKey: aKey,
					Attackers:   roster.NormalizeTeam(m.Attackers),
				},
				atkCombos: make(map[string]int),
				defCombos: make(map[string]int),
			}
			buckets[aKey] = b
			order = append(order, aKey)
		}

		b.row.Total++
		if m.Result == match.Win {
			b.row.Wins++
		}
		if m.Notes != "" {
			b.notes = append(b.notes, m.Notes)
		}
		b.tags = append(b.tags, m.Tags...)
		b.row.LastAt = max(b.row.LastAt, m.CreatedAt)
		if k := m.AttackerPickKey(); k != "" {
			b.atkCombos[k]++
		}
		if k := m.DefenderPickKey(); k != "" {
			b.defCombos[k]++
		}
	}

	for _, aKey := range order {
		b := buckets[aKey]
		row := b.row
		if row.Total > 0 {
			row.WinRate = float64(row.Wins) / float64(row.Total)
		}
		row.Notes = uniq(b.notes)
		row.Tags = uniq(b.tags)
		row.TopAttackerCombo = topCombo(b.atkCombos)
		row.TopDefenderCombo = topCombo(b.defCombos)
		res.Rows = append(res.Rows, row)
	}

	slices.SortFunc(res.Rows, compareRows)
	return res
}

// compareRows orders by match count, then win rate, then recency, all
// descending. The attacker key makes the order total.
func compareRows(a, b Row) int {
	if c := cmp.Compare(b.Total, a.Total); c != 0 {
		return c
	}
	if c := cmp.Compare(b.WinRate, a.WinRate); c != 0 {
		return c
	}
	if c := cmp.Compare(b.LastAt, a.LastAt); c != 0 {
		return c
	}
	return cmp.Compare(a.AttackerKey, b.AttackerKey)
}

// topCombo picks the most frequent key; ties go to the lexicographically
// smallest key so the answer does not depend on record order.
func topCombo(counts map[string]int) *Combo {
	var best *Combo
	for k, n := range counts {
		if best == nil || n > best.Count || (n == best.Count && k < best.Key) {
			best = &Combo{Key: k, Count: n}
		}
	}
	return best
}

// uniq drops repeats, keeping first-seen order. Never returns nil.
func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
