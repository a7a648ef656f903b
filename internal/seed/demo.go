package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/store"
)

var demoDrafts = []match.Draft{
	{
		Attackers: []string{"Vanessa", "Eileene", "Rudy"},
		Defenders: []string{"Orkah", "Jave", "Karin"},
		Result:    match.Win,
		Notes:     "ต้อง C6+ ใส่เซ็ตต้าน 100%",
		Tags:      []string{"Archetype:ถึก", "Reflect"},
	},
	{
		Attackers: []string{"Vanessa", "Eileene", "Rudy"},
		Defenders: []string{"Orkah", "Jave", "Karin"},
		Result:    match.Loss,
		Notes:     "โดนสวนแรง",
		Tags:      []string{"Reflect"},
	},
	{
		Attackers: []string{"Vanessa", "Eileene", "Rudy"},
		Defenders: []string{"Kris", "Dellons", "Aris"},
		Result:    match.Win,
		Tags:      []string{"Archetype:ดาเมจเร็ว"},
	},
	{
		Attackers: []string{"Spike", "Rin", "Rudy"},
		Defenders: []string{"Kris", "Dellons", "Aris"},
		Result:    match.Loss,
		Notes:     "ขาดต้านสถานะ",
		Tags:      []string{"ควรใส่ต้าน"},
	},
}

// Demo builds the demo record set: fresh ids, one minute apart, the first
// one stamped now.
func Demo(now time.Time) []match.Record {
	out := make([]match.Record, 0, len(demoDrafts))
	for i, d := range demoDrafts {
		d.CreatedAt = now.Add(-time.Duration(i) * time.Minute).UnixMilli()
		rec, err := match.New(d, now)
		if err != nil {
			panic(fmt.Sprintf("demo record %d is invalid: %v", i, err))
		}
		out = append(out, rec)
	}
	return out
}

// SeedDemo adds the demo set on top of whatever is stored.
func SeedDemo(ctx context.Context, st store.Store, now time.Time, logger *slog.Logger) (int, error) {
	recs := Demo(now)
	for _, rec := range recs {
		if err := st.Create(ctx, rec); err != nil {
			return 0, fmt.Errorf("seed demo: %w", err)
		}
	}
	logger.Info("Demo data seeded", "records", len(recs))
	return len(recs), nil
}
