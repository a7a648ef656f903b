package match

import (
	"cmp"
	"slices"
	"strings"
)

// Signature identifies a record for merge deduplication. Two records with
// the same teams, pick sets, result and notes are the same logged battle
// even when their IDs differ.
func Signature(r Record) string {
	return strings.Join([]string{
		r.AttackerKey(),
		r.DefenderKey(),
		r.AttackerPickKey(),
		r.DefenderPickKey(),
		string(r.Result),
		r.Notes,
	}, "\x1f")
}

// Merge combines two record collections, keeping one record per Signature.
// The record with the larger CreatedAt wins; on a tie the first one seen
// (existing before incoming) is kept. The result is newest first.
func Merge(existing, incoming []Record) []Record {
	bySig := make(map[string]int, len(existing)+len(incoming))
	out := make([]Record, 0, len(existing)+len(incoming))

	add := func(r Record) {
		sig := Signature(r)
		i, ok := bySig[sig]
		if !ok {
			bySig[sig] = len(out)
			out = append(out, r)
			return
		}
		if r.CreatedAt > out[i].CreatedAt {
			out[i] = r
		}
	}
	for _, r := range existing {
		add(r)
	}
	for _, r := range incoming {
		add(r)
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders records by CreatedAt descending, then ID.
func SortNewestFirst(recs []Record) {
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
