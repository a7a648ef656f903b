package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestExport(t *testing.T) {
	rec, err := match.New(match.Draft{
		ID:        "x1",
		Attackers: []string{"Vanessa", "Eileene", "Rudy"},
		Defenders: []string{"Orkah", "Jave", "Karin"},
		Result:    match.Win,
		CreatedAt: 5,
	}, testNow)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, []match.Record{rec}, testNow); err != nil {
		t.Fatalf("Export: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if env.Schema != Schema || env.ExportedAt != "2025-03-01T12:00:00Z" || len(env.Matches) != 1 {
		t.Fatalf("envelope = %+v", env)
	}

	t.Run("Exported file imports back", func(t *testing.T) {
		got, err := Decode(&buf, testNow)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Schema != Schema || len(got.Records) != 1 || got.Records[0].ID != "x1" || got.Records[0].CreatedAt != 5 {
			t.Fatalf("decoded = %+v", got)
		}
	})

	t.Run("Empty export has an empty list", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Export(&buf, nil, testNow); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"matches": []`) {
			t.Fatalf("got %s", buf.String())
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("Happy path - bare array with a bad element", func(t *testing.T) {
		payload := `[
			{"attackers": ["van","eileene","rudy"], "defenders": ["orkah","jave","karin"], "result": "LOSS"},
			{"attackers": ["a","b"], "defenders": ["orkah","jave","karin"]},
			"not an object",
			{"attackers": ["Spike","Rin","Rudy"], "defenders": ["Kris","Dellons","Aris"], "createdAt": 1700000000000}
		]`
		got, err := Decode(strings.NewReader(payload), testNow)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Total != 4 || len(got.Records) != 2 || len(got.Rejected) != 2 {
			t.Fatalf("total=%d records=%d rejected=%d", got.Total, len(got.Records), len(got.Rejected))
		}
		if got.Rejected[0].Index != 1 || got.Rejected[1].Index != 2 {
			t.Fatalf("rejections = %+v", got.Rejected)
		}
		if got.Records[0].Result != match.Loss || got.Records[1].CreatedAt != 1700000000000 {
			t.Fatalf("records = %+v", got.Records)
		}
	})

	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"Empty array", `[]`, ErrEmptyImport},
		{"Empty envelope", `{"schema":"skrb_gvg_3v3_v1","matches":[]}`, ErrEmptyImport},
		{"Nothing valid", `[{"attackers":["a"]}, 3]`, ErrNothingValid},
		{"Object without matches", `{"foo": 1}`, ErrMalformed},
		{"Scalar", `42`, ErrMalformed},
		{"Broken JSON", `[{`, ErrMalformed},
		{"Blank", `   `, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run("Unhappy path - "+tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.payload), testNow)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
