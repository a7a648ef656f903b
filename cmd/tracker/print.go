package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
	"github.com/albapepper/gvg-tracker/internal/scout"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSearch(w io.Writer, res *scout.Result) {
	fmt.Fprintf(w, "Defense %s: %d recorded matches\n", strings.Join(res.Defenders, " | "), res.MatchCount)
	if len(res.Rows) == 0 {
		fmt.Fprintln(w, "No attacking team has been recorded against this defense yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTACKERS\tMATCHES\tWINS\tWIN%\tLAST\tTOP ATK PICKS\tTOP DEF PICKS")
	for _, row := range res.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\t%s\t%s\t%s\n",
			strings.Join(row.Attackers, " | "),
			row.Total, row.Wins, row.WinRate*100,
			formatMillis(row.LastAt),
			formatCombo(row.TopAttackerCombo),
			formatCombo(row.TopDefenderCombo))
	}
	tw.Flush()

	for _, row := range res.Rows {
		if len(row.Notes) == 0 && len(row.Tags) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", strings.Join(row.Attackers, " | "))
		if len(row.Tags) > 0 {
			fmt.Fprintf(w, "  tags:  %s\n", strings.Join(row.Tags, ", "))
		}
		for _, n := range row.Notes {
			fmt.Fprintf(w, "  note:  %s\n", n)
		}
	}
}

func printRecent(w io.Writer, recs []match.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No matches recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tATTACKERS\tDEFENDERS\tRESULT\tPICKS\tID")
	for _, r := range recs {
		picks := strings.Join(roster.PickStrings(r.AttackerPicks), ", ")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			formatMillis(r.CreatedAt),
			strings.Join(r.Attackers, " | "),
			strings.Join(r.Defenders, " | "),
			r.Result, picks, r.ID)
	}
	tw.Flush()
}

func formatCombo(c *scout.Combo) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s (x%d)", c.Key, c.Count)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
