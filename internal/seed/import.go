package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/gvg-tracker/internal/exchange"
	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/store"
)

// Mode selects how imported records combine with the stored ones.
type Mode string

const (
	// Merge keeps existing records and adds the imported ones,
	// deduplicated by battle signature.
	Merge Mode = "merge"
	// Replace discards the stored set in favor of the import.
	Replace Mode = "replace"
)

// ParseMode accepts "merge" (also the empty default) or "replace".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Merge:
		return Merge, nil
	case Replace:
		return Replace, nil
	}
	return "", fmt.Errorf("unknown import mode %q (want merge or replace)", s)
}

// Import decodes payload and writes the result to st. Reading the stored
// set and writing the merged one happen in a single store Update, so a
// write landing meanwhile is neither lost nor clobbered, and a failed import
// leaves the store untouched. Decode errors (empty, nothing valid,
// malformed) are returned as is; the Result is still filled in as far as
// decoding got.
func Import(ctx context.Context, st store.Store, payload io.Reader, mode Mode, now time.Time, logger *slog.Logger) (*Result, error) {
	res := &Result{Mode: mode, Errors: []exchange.Rejection{}}
	if mode != Merge && mode != Replace {
		return res, fmt.Errorf("unknown import mode %q", mode)
	}

	decoded, err := exchange.Decode(payload, now)
	if decoded != nil {
		res.Read = decoded.Total
		for _, rj := range decoded.Rejected {
			res.AddError(rj.Index, rj.Reason)
		}
	}
	if err != nil {
		return res, err
	}
	res.Accepted = len(decoded.Records)

	err = st.Update(ctx, func(existing []match.Record) ([]match.Record, error) {
		// Replace still collapses duplicates within the file itself.
		if mode == Replace {
			existing = nil
		}
		incoming := withFreshIDs(existing, decoded.Records)
		next := match.Merge(existing, incoming)
		res.Duplicates = len(existing) + len(incoming) - len(next)
		res.Stored = len(next)
		return next, nil
	})
	if err != nil {
		res.Duplicates, res.Stored = 0, 0
		return res, fmt.Errorf("store imported records: %w", err)
	}

	logger.Info("Import finished", "summary", res.Summary())
	for _, e := range res.Errors {
		logger.Warn("Import rejected record", "index", e.Index, "reason", e.Reason)
	}
	return res, nil
}

// withFreshIDs returns a copy of incoming in which every record whose id is
// already held by a different battle (a stored record, or an earlier
// incoming one) gets a new id, so an import never takes over the id of a
// stored record. A record that repeats the holder's battle keeps the id and
// Merge collapses the two.
func withFreshIDs(existing, incoming []match.Record) []match.Record {
	owner := make(map[string]string, len(existing)+len(incoming))
	for _, r := range existing {
		owner[r.ID] = match.Signature(r)
	}
	out := make([]match.Record, len(incoming))
	for i, r := range incoming {
		sig := match.Signature(r)
		if held, ok := owner[r.ID]; ok && held != sig {
			r.ID = uuid.NewString()
		}
		if _, ok := owner[r.ID]; !ok {
			owner[r.ID] = sig
		}
		out[i] = r
	}
	return out
}
