// Package seed loads records into a store in bulk: file imports in merge or
// replace mode, and the demo data set.
package seed

import (
	"fmt"

	"github.com/albapepper/gvg-tracker/internal/exchange"
)

// Result tracks counts and errors from one import.
type Result struct {
	Mode       Mode                 `json:"mode"`
	Read       int                  `json:"read"`
	Accepted   int                  `json:"accepted"`
	Rejected   int                  `json:"rejected"`
	Duplicates int                  `json:"duplicates"`
	Stored     int                  `json:"stored"`
	Errors     []exchange.Rejection `json:"errors"`
}

// AddError records a rejected input element.
func (r *Result) AddError(index int, reason string) {
	r.Rejected++
	r.Errors = append(r.Errors, exchange.Rejection{Index: index, Reason: reason})
}

// Summary returns a human-readable summary of the import.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"mode=%s read=%d accepted=%d rejected=%d duplicates=%d stored=%d",
		r.Mode, r.Read, r.Accepted, r.Rejected, r.Duplicates, r.Stored,
	)
}
