package seed

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/bref"
)

// BackfillPlayoffRounds re-scrapes already-ingested postseason games whose
// playoff_round is still missing, reading only the page title.
func BackfillPlayoffRounds(ctx context.Context, pool *pgxpool.Pool, client *bref.Client, season, limit int, logger *slog.Logger) (Result, error) {
	var result Result

	seasonID, err := SeasonIDByYear(ctx, pool, season)
	if err != nil {
		return result, err
	}

	games, err := PlayoffGamesMissingRound(ctx, pool, seasonID, limit)
	if err != nil {
		return result, err
	}
	logger.Info("found playoff games to backfill", "count", len(games))

	for _, game := range games {
		if ctx.Err() != nil {
			result.AddErrorf("run cancelled: %v", ctx.Err())
			break
		}
		logger.Info("backfilling game", "game_id", game.ID, "date", game.Date.Format("2006-01-02"))

		doc, err := client.BoxScorePage(ctx, game.HomeAbbrev, game.Date)
		if err != nil {
			result.AddErrorf("game %s: fetch page: %v", game.ID, err)
			continue
		}

		round := bref.ParsePlayoffRound(doc)
		if round == "" {
			logger.Warn("no playoff round found in title", "game_id", game.ID)
			continue
		}

		if err := UpdatePlayoffRound(ctx, pool, game.ID, round); err != nil {
			result.AddErrorf("game %s: update playoff round: %v", game.ID, err)
			continue
		}
		logger.Info("set playoff round", "game_id", game.ID, "round", round)
		result.PlayoffRoundsSet++
	}

	logger.Info("playoff backfill finished",
		"updated", result.PlayoffRoundsSet, "attempted", len(games))
	return result, nil
}
