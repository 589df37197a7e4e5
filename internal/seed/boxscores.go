package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/bref"
)

// SeedBoxScores scrapes box scores for every final game of the season that
// has none yet. Games are processed strictly in sequence; a failed game is
// logged and skipped, and the run continues. The returned error is non-nil
// only for fatal startup conditions (season lookup, work-list query).
func SeedBoxScores(ctx context.Context, pool *pgxpool.Pool, client *bref.Client, season, days, limit int, logger *slog.Logger) (Result, error) {
	var result Result

	seasonID, err := SeasonIDByYear(ctx, pool, season)
	if err != nil {
		return result, err
	}

	games, err := GamesWithoutBoxScores(ctx, pool, seasonID, days, limit)
	if err != nil {
		return result, err
	}
	logger.Info("found games to scrape", "count", len(games), "season", season)

	for _, game := range games {
		if ctx.Err() != nil {
			result.AddErrorf("run cancelled: %v", ctx.Err())
			break
		}
		if err := scrapeGame(ctx, pool, client, game, &result, logger); err != nil {
			result.AddErrorf("game %s (%s): %v", game.ID, game.Date.Format("2006-01-02"), err)
			continue
		}
		result.GamesScraped++
	}

	logger.Info("box score scrape finished",
		"scraped", result.GamesScraped, "attempted", len(games))
	return result, nil
}

// scrapeGame fetches one game page and writes everything it yields: the
// merged box score rows for both teams, then the quarter scores, arena,
// attendance, and playoff round back onto the game row.
func scrapeGame(ctx context.Context, pool *pgxpool.Pool, client *bref.Client, game Game, result *Result, logger *slog.Logger) error {
	logger.Info("scraping game",
		"away", game.AwayAbbrev, "home", game.HomeAbbrev,
		"date", game.Date.Format("2006-01-02"))

	doc, err := client.BoxScorePage(ctx, game.HomeAbbrev, game.Date)
	if err != nil {
		return fmt.Errorf("fetch box score page: %w", err)
	}

	var scores []BoxScore
	sides := []struct {
		teamBref string
		teamID   string
	}{
		{bref.ToBref(game.AwayAbbrev), game.AwayTeamID},
		{bref.ToBref(game.HomeAbbrev), game.HomeTeamID},
	}
	for _, side := range sides {
		rows := bref.ParseTeamBoxScore(doc, side.teamBref)
		if rows == nil {
			logger.Warn("no basic box score table", "team", side.teamBref)
			continue
		}
		for _, row := range rows {
			scores = append(scores, BoxScore{
				GameID:      game.ID,
				TeamID:      side.teamID,
				BoxScoreRow: row,
			})
		}
	}
	if len(scores) == 0 {
		return fmt.Errorf("no box score rows parsed")
	}

	if err := UpsertBoxScores(ctx, pool, scores); err != nil {
		return fmt.Errorf("upsert box scores: %w", err)
	}
	result.BoxScoresUpserted += len(scores)
	logger.Info("inserted box score rows", "count", len(scores))

	arena, attendance := bref.ParseArenaAttendance(doc)
	update := GameUpdate{
		Quarters:     bref.ParseQuarterScores(doc),
		Arena:        arena,
		Attendance:   attendance,
		PlayoffRound: bref.ParsePlayoffRound(doc),
	}
	if update.IsEmpty() {
		return nil
	}

	// A failed game update does not fail the unit; the box scores are
	// already committed.
	if err := UpdateGame(ctx, pool, game.ID, update); err != nil {
		logger.Error("update game", "game_id", game.ID, "error", err)
		result.AddErrorf("update game %s: %v", game.ID, err)
		return nil
	}
	result.GamesUpdated++
	return nil
}
