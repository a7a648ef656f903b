package match

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/gvg-tracker/internal/roster"
)

// Coerce turns one loosely shaped JSON object (as decoded into
// map[string]any) into a validated Record. Missing or mistyped fields are
// defaulted where a sensible default exists:
//
//   - id: any string or number; missing gets a new UUID
//   - result: anything other than "LOSS" (any case) is WIN
//   - createdAt: number or numeric string in Unix ms; otherwise now
//   - tags: array of strings or one comma separated string
//   - attackerPicks/defenderPicks: "Name:Option" strings or
//     {"character","option"} objects
//
// Everything else that cannot be coerced rejects the record.
func Coerce(raw map[string]any, now time.Time) (Record, error) {
	atkPicks, err := coercePicks(raw["attackerPicks"])
	if err != nil {
		return Record{}, fmt.Errorf("attacker picks: %w", err)
	}
	defPicks, err := coercePicks(raw["defenderPicks"])
	if err != nil {
		return Record{}, fmt.Errorf("defender picks: %w", err)
	}

	result := Win
	if s, ok := raw["result"].(string); ok && strings.EqualFold(strings.TrimSpace(s), string(Loss)) {
		result = Loss
	}

	return New(Draft{
		ID:            coerceID(raw["id"]),
		Attackers:     coerceStrings(raw["attackers"]),
		Defenders:     coerceStrings(raw["defenders"]),
		Result:        result,
		AttackerPicks: atkPicks,
		DefenderPicks: defPicks,
		Notes:         coerceString(raw["notes"]),
		Tags:          coerceTags(raw["tags"]),
		CreatedAt:     coerceMillis(raw["createdAt"]),
	}, now)
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func coerceID(v any) string {
	return strings.TrimSpace(coerceString(v))
}

func coerceStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func coerceTags(v any) []string {
	if s, ok := v.(string); ok {
		return ParseTags(s)
	}
	return CleanTags(coerceStrings(v))
}

func coerceMillis(v any) int64 {
	switch x := v.(type) {
	case float64:
		return floatMillis(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return floatMillis(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// floatMillis truncates f, or returns 0 (treated as missing) when f is not
// finite or falls outside int64.
func floatMillis(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func coercePicks(v any) ([]roster.Pick, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list", ErrInvalidPick)
	}
	picks := make([]roster.Pick, 0, len(arr))
	for _, item := range arr {
		switch x := item.(type) {
		case string:
			p, err := roster.ParsePick(x)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPick, err)
			}
			picks = append(picks, p)
		case map[string]any:
			p := roster.Pick{
				Character: coerceString(x["character"]),
				Option:    coerceString(x["option"]),
			}.Normalize()
			if p.Character == "" || p.Option == "" {
				return nil, fmt.Errorf("%w: character and option are required", ErrInvalidPick)
			}
			picks = append(picks, p)
		default:
			return nil, fmt.Errorf("%w: unsupported entry %v", ErrInvalidPick, item)
		}
	}
	return picks, nil
}
