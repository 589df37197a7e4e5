// Command ingest is the Basketball Reference scrape CLI.
//
// Usage:
//
//	bref-ingest boxscores --season 2024 [--days 7] [--limit 10]
//	bref-ingest backfill-playoffs --season 2024 [--limit 10]
//	bref-ingest rosters --season 2025 [--team BOS] [--averages]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hoopfeed/bref-ingest/internal/bref"
	"github.com/hoopfeed/bref-ingest/internal/config"
	"github.com/hoopfeed/bref-ingest/internal/db"
	"github.com/hoopfeed/bref-ingest/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "bref-ingest",
		Short: "Basketball Reference scrape CLI",
	}

	root.AddCommand(boxScoresCmd())
	root.AddCommand(backfillPlayoffsCmd())
	root.AddCommand(rostersCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func boxScoresCmd() *cobra.Command {
	var season, days, limit int
	cmd := &cobra.Command{
		Use:   "boxscores",
		Short: "Scrape box scores for final games missing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := bref.NewClient(cfg.BrefBaseURL, cfg.UserAgent, cfg.RequestsPerMinute, logger)
				start := time.Now()
				result, err := seed.SeedBoxScores(ctx, pool.Pool, client, season, days, limit, logger)
				if err != nil {
					return err
				}
				logResult("box score scrape", result, start)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (e.g. 2024 for 2024-25)")
	cmd.Flags().IntVar(&days, "days", 0, "Only scrape games from the last N days")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max number of games to scrape")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func backfillPlayoffsCmd() *cobra.Command {
	var season, limit int
	cmd := &cobra.Command{
		Use:   "backfill-playoffs",
		Short: "Re-scrape playoff games missing their round label",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := bref.NewClient(cfg.BrefBaseURL, cfg.UserAgent, cfg.RequestsPerMinute, logger)
				start := time.Now()
				result, err := seed.BackfillPlayoffRounds(ctx, pool.Pool, client, season, limit, logger)
				if err != nil {
					return err
				}
				logResult("playoff backfill", result, start)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (e.g. 2024 for 2024-25)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max number of games to backfill")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

func rostersCmd() *cobra.Command {
	var (
		season   int
		team     string
		averages bool
	)
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "Scrape team rosters (and optionally season averages)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := bref.NewClient(cfg.BrefBaseURL, cfg.UserAgent, cfg.RequestsPerMinute, logger)
				start := time.Now()
				players, result, err := seed.SeedRosters(ctx, pool.Pool, client, season, team, logger)
				if err != nil {
					return err
				}
				logResult("roster scrape", result, start)

				if averages && len(players) > 0 {
					start = time.Now()
					avgResult, err := seed.SeedAverages(ctx, pool.Pool, client, season, players, logger)
					if err != nil {
						return err
					}
					logResult("season averages scrape", avgResult, start)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (e.g. 2024 for 2024-25)")
	cmd.Flags().StringVar(&team, "team", "", "Single team abbreviation (e.g. BOS); default all teams")
	cmd.Flags().BoolVar(&averages, "averages", false, "Also scrape per-game season averages for each player")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}

// logResult prints the phase summary plus any accumulated per-unit errors.
func logResult(phase string, result seed.Result, start time.Time) {
	logger.Info(phase+" finished",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error(phase+" error", "error", e)
	}
}

// runScrape handles config loading, DB connection, and context cancellation.
func runScrape(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
