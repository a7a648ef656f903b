// Command tracker is the GvG 3v3 Tracker command line client. It works on
// the same store the API uses (STORE_DRIVER, SQLITE_PATH, DATABASE_URL).
//
// Usage:
//
//	gvg-tracker add --atk "Vanessa,Eileene,Rudy" --def "Orkah,Jave,Karin" --result win --atk-pick Vanessa:S1
//	gvg-tracker search Orkah Jave Karin
//	gvg-tracker recent --limit 10
//	gvg-tracker export backup.json
//	gvg-tracker import backup.json --mode merge
//	gvg-tracker seed-demo
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/exchange"
	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
	"github.com/albapepper/gvg-tracker/internal/scout"
	"github.com/albapepper/gvg-tracker/internal/seed"
	"github.com/albapepper/gvg-tracker/internal/store"
)

// Logs go to stderr so export output on stdout stays clean.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gvg-tracker",
		Short:        "Record 3v3 guild-war battles and look up what beats a defense",
		SilenceUsage: true,
	}

	root.AddCommand(addCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(recentCmd())
	root.AddCommand(deleteCmd())
	root.AddCommand(clearCmd())
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(seedDemoCmd())
	root.AddCommand(heroesCmd())
	return root
}

// --------------------------------------------------------------------------
// add / delete / clear
// --------------------------------------------------------------------------

func addCmd() *cobra.Command {
	var (
		atk, def, result, notes, tags string
		atkPicks, defPicks            []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one match",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := match.ParseResult(result)
			if err != nil {
				return err
			}
			ap, err := parsePicks(atkPicks)
			if err != nil {
				return fmt.Errorf("--atk-pick: %w", err)
			}
			dp, err := parsePicks(defPicks)
			if err != nil {
				return fmt.Errorf("--def-pick: %w", err)
			}
			rec, err := match.New(match.Draft{
				Attackers:     splitNames(atk),
				Defenders:     splitNames(def),
				Result:        res,
				AttackerPicks: ap,
				DefenderPicks: dp,
				Notes:         notes,
				Tags:          match.ParseTags(tags),
			}, time.Now())
			if err != nil {
				return err
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				if err := st.Create(ctx, rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s vs %s (%s)\n",
					rec.ID, rec.AttackerKey(), rec.DefenderKey(), rec.Result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&atk, "atk", "", "Attacking team, comma separated (required)")
	cmd.Flags().StringVar(&def, "def", "", "Defending team, comma separated (required)")
	cmd.Flags().StringVar(&result, "result", "", "win or loss (required)")
	cmd.Flags().StringArrayVar(&atkPicks, "atk-pick", nil, "Attacker pick Name:Option (repeatable, max 3)")
	cmd.Flags().StringArrayVar(&defPicks, "def-pick", nil, "Defender pick Name:Option (repeatable, max 3)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	cmd.MarkFlagRequired("atk")
	cmd.MarkFlagRequired("def")
	cmd.MarkFlagRequired("result")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one match by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete everything without --yes")
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				sum, err := st.Summary(ctx)
				if err != nil {
					return err
				}
				if err := st.Replace(ctx, nil); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d matches\n", sum.Count)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every match")
	return cmd
}

// --------------------------------------------------------------------------
// search / recent / heroes
// --------------------------------------------------------------------------

func searchCmd() *cobra.Command {
	var def string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search [defender...]",
		Short: "Show which attacking teams were used against a defense",
		Long:  "Pass the three defenders as arguments or as --def \"a,b,c\". Order and spelling variants do not matter.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append(splitNames(def), args...)
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				if len(roster.NormalizeTeam(names)) < roster.TeamSize {
					fmt.Fprintf(cmd.OutOrStdout(), "Need 3 defenders, got %v\n", roster.NormalizeTeam(names))
					return nil
				}
				recs, err := st.ListByDefender(ctx, roster.TeamKey(names))
				if err != nil {
					return err
				}
				res := scout.Query(recs, names)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				printSearch(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&def, "def", "", "Defending team, comma separated")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw aggregation as JSON")
	return cmd
}

func recentCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				recs, err := store.Recent(ctx, st, limit)
				if err != nil {
					return err
				}
				printRecent(cmd.OutOrStdout(), recs)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 30, "How many matches to show (0 = all)")
	return cmd
}

func heroesCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "heroes [query]",
		Short: "Suggest hero names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := roster.Heroes()
			if !all {
				q := ""
				if len(args) == 1 {
					q = args[0]
				}
				names = roster.Suggest(q, limit)
			}
			for _, h := range names {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", roster.DefaultSuggestLimit, "Max suggestions")
	cmd.Flags().BoolVar(&all, "all", false, "List the whole roster, ignoring query and limit")
	return cmd
}

// --------------------------------------------------------------------------
// import / export / seed-demo
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import an exported file or a JSON array of matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := seed.ParseMode(mode)
			if err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				start := time.Now()
				res, err := seed.Import(ctx, st, in, m, time.Now(), logger)
				if err != nil {
					return err
				}
				logger.Info("Import complete", "duration", time.Since(start).Round(time.Millisecond))
				fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(seed.Merge), "merge or replace")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export every match as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				recs, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					return exchange.Export(cmd.OutOrStdout(), recs, time.Now())
				}
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := exchange.Export(f, recs, time.Now()); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				logger.Info("Exported matches", "file", args[0], "count", len(recs))
				return nil
			})
		},
	}
}

func seedDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Add four demo matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				n, err := seed.SeedDemo(ctx, st, time.Now(), logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d demo matches\n", n)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, store opening, and context cancellation.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, st store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return fn(ctx, cfg, st)
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parsePicks(raw []string) ([]roster.Pick, error) {
	picks := make([]roster.Pick, 0, len(raw))
	for _, s := range raw {
		p, err := roster.ParsePick(s)
		if err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	return picks, nil
}
