package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/config"
)

// defaultGameLimit caps a work list when no --limit flag is given.
const defaultGameLimit = 2000

// Game is one unit of box score work: a final game joined to both team
// abbreviations so the page URL and table IDs can be built.
type Game struct {
	ID         string
	Date       time.Time
	HomeTeamID string
	HomeAbbrev string
	AwayTeamID string
	AwayAbbrev string
}

// SeasonIDByYear resolves the season row for a year. A missing season is
// the one fatal condition in the pipeline.
func SeasonIDByYear(ctx context.Context, pool *pgxpool.Pool, year int) (string, error) {
	var id string
	if err := pool.QueryRow(ctx, "season_by_year", year).Scan(&id); err != nil {
		return "", fmt.Errorf("no season found for year %d: %w", year, err)
	}
	return id, nil
}

// LoadTeams returns all teams as an abbreviation -> id map.
func LoadTeams(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, "teams_all")
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()

	teams := map[string]string{}
	for rows.Next() {
		var id, abbrev string
		if err := rows.Scan(&id, &abbrev); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams[abbrev] = id
	}
	return teams, rows.Err()
}

// GamesWithoutBoxScores returns final games for the season that have no
// quarter scores yet (home_q1 IS NULL = not scraped). days > 0 restricts
// the window to games since now-days; limit 0 means the default cap.
func GamesWithoutBoxScores(ctx context.Context, pool *pgxpool.Pool, seasonID string, days, limit int) ([]Game, error) {
	var cutoff interface{}
	if days > 0 {
		cutoff = dayCutoff(time.Now(), days)
	}
	if limit <= 0 {
		limit = defaultGameLimit
	}

	rows, err := pool.Query(ctx, "games_without_box_scores", seasonID, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query games without box scores: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

// dayCutoff returns midnight of the day N days before now, so the window
// keeps every game played on the boundary day.
func dayCutoff(now time.Time, days int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -days)
}

// PlayoffGamesMissingRound returns already-scraped postseason games that
// still lack a playoff_round label.
func PlayoffGamesMissingRound(ctx context.Context, pool *pgxpool.Pool, seasonID string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = defaultGameLimit
	}

	rows, err := pool.Query(ctx, "playoff_games_missing_round", seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("query playoff games missing round: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func scanGames(rows pgx.Rows) ([]Game, error) {
	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(
			&g.ID, &g.Date,
			&g.HomeTeamID, &g.HomeAbbrev,
			&g.AwayTeamID, &g.AwayAbbrev,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// PlayerIDsByProviderIDs resolves player uuids for a set of provider
// checksum IDs, returning a provider_player_id -> uuid map.
func PlayerIDsByProviderIDs(ctx context.Context, pool *pgxpool.Pool, providerIDs []int64) (map[int64]string, error) {
	rows, err := pool.Query(ctx, "players_by_provider_ids", config.Provider, providerIDs)
	if err != nil {
		return nil, fmt.Errorf("query players by provider IDs: %w", err)
	}
	defer rows.Close()

	ids := map[int64]string{}
	for rows.Next() {
		var uuid string
		var providerID int64
		if err := rows.Scan(&uuid, &providerID); err != nil {
			return nil, fmt.Errorf("scan player ID: %w", err)
		}
		ids[providerID] = uuid
	}
	return ids, rows.Err()
}
