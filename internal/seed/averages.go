package seed

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/bref"
)

// SeedAverages fetches each scraped player's page and upserts their
// per-game averages for the season in a single batch at the end. Players
// missing from the database or without a season row are logged and skipped.
func SeedAverages(ctx context.Context, pool *pgxpool.Pool, client *bref.Client, season int, players []ScrapedPlayer, logger *slog.Logger) (Result, error) {
	var result Result

	seasonID, err := SeasonIDByYear(ctx, pool, season)
	if err != nil {
		return result, err
	}

	providerIDs := make([]int64, 0, len(players))
	for _, p := range players {
		providerIDs = append(providerIDs, bref.PlayerProviderID(p.Slug))
	}
	playerIDs, err := PlayerIDsByProviderIDs(ctx, pool, providerIDs)
	if err != nil {
		return result, err
	}

	logger.Info("scraping season averages", "players", len(players), "season", bref.SeasonLabel(season))

	var averages []SeasonAverage
	for i, p := range players {
		if ctx.Err() != nil {
			result.AddErrorf("run cancelled: %v", ctx.Err())
			break
		}

		playerID, ok := playerIDs[bref.PlayerProviderID(p.Slug)]
		if !ok {
			logger.Warn("player not found in database, skipping",
				"player", p.FirstName+" "+p.LastName, "slug", p.Slug)
			continue
		}

		logger.Info("scraping player averages",
			"progress", i+1, "total", len(players),
			"player", p.FirstName+" "+p.LastName)

		doc, err := client.PlayerPage(ctx, p.Slug)
		if err != nil {
			result.AddErrorf("player %s: fetch page: %v", p.Slug, err)
			continue
		}

		avgs := bref.ParseSeasonAverages(doc, season)
		if avgs == nil {
			logger.Warn("no averages found for season",
				"player", p.Slug, "season", bref.SeasonLabel(season))
			continue
		}

		averages = append(averages, SeasonAverage{
			PlayerID:       playerID,
			SeasonID:       seasonID,
			SeasonAverages: *avgs,
		})
	}

	if len(averages) == 0 {
		logger.Info("no averages to insert")
		return result, nil
	}

	if err := UpsertSeasonAverages(ctx, pool, averages); err != nil {
		result.AddErrorf("upsert season averages: %v", err)
		return result, nil
	}
	result.AveragesUpserted = len(averages)
	logger.Info("upserted season average rows", "count", len(averages))

	return result, nil
}
