// Package exchange reads and writes the portable JSON file format: an
// envelope {schema, exportedAt, matches} on export, and either that envelope
// or a bare array of records on import.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
)

// Schema tags every exported file.
const Schema = "skrb_gvg_3v3_v1"

var (
	ErrMalformed    = errors.New("import is not a JSON array or export envelope")
	ErrEmptyImport  = errors.New("import contains no records")
	ErrNothingValid = errors.New("import contains no valid records")
)

// Envelope is the export file layout.
type Envelope struct {
	Schema     string         `json:"schema"`
	ExportedAt string         `json:"exportedAt"`
	Matches    []match.Record `json:"matches"`
}

// Export writes recs as an indented envelope stamped with now.
func Export(w io.Writer, recs []match.Record, now time.Time) error {
	if recs == nil {
		recs = []match.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope{
		Schema:     Schema,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Matches:    recs,
	})
}

// Rejection explains why one input element was dropped.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Decoded is the outcome of reading one import payload.
type Decoded struct {
	Schema   string
	Total    int
	Records  []match.Record
	Rejected []Rejection
}

// Decode parses an import payload and coerces each element with
// match.Coerce. Invalid elements are recorded in Rejected and never abort
// the batch. It fails with ErrEmptyImport when the list is empty and with
// ErrNothingValid when every element was rejected.
func Decode(r io.Reader, now time.Time) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	items, schema, err := split(data)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyImport
	}

	out := &Decoded{Schema: schema, Total: len(items), Records: []match.Record{}}
	for i, item := range items {
		raw, err := decodeObject(item)
		if err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}
		rec, err := match.Coerce(raw, now)
		if err != nil {
			out.Rejected = append(out.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}
		out.Records = append(out.Records, rec)
	}
	if len(out.Records) == 0 {
		return out, ErrNothingValid
	}
	return out, nil
}

// split returns the raw list elements and the envelope schema, if any.
func split(data []byte) ([]json.RawMessage, string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, "", ErrMalformed
	}
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return items, "", nil
	case '{':
		var env struct {
			Schema  string            `json:"schema"`
			Matches []json.RawMessage `json:"matches"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if env.Matches == nil {
			return nil, "", fmt.Errorf("%w: envelope has no matches list", ErrMalformed)
		}
		return env.Matches, env.Schema, nil
	}
	return nil, "", ErrMalformed
}

func decodeObject(item json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, errors.New("element is not a JSON object")
	}
	return raw, nil
}
