package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/bref"
)

// ScrapedPlayer is a parsed roster row tagged with its team's id, carried
// forward so the averages phase can resolve player uuids by slug.
type ScrapedPlayer struct {
	bref.RosterPlayer
	TeamID string
}

// SeedRosters scrapes each team's roster page (or one team with teamFilter)
// and upserts all players in a single batch at the end. The returned slice
// feeds SeedAverages when --averages is set.
func SeedRosters(ctx context.Context, pool *pgxpool.Pool, client *bref.Client, season int, teamFilter string, logger *slog.Logger) ([]ScrapedPlayer, Result, error) {
	var result Result

	teams, err := LoadTeams(ctx, pool)
	if err != nil {
		return nil, result, err
	}
	if len(teams) == 0 {
		return nil, result, fmt.Errorf("no teams found in database")
	}

	if teamFilter != "" {
		id, ok := teams[teamFilter]
		if !ok {
			return nil, result, fmt.Errorf("team %q not found, available: %v", teamFilter, sortedKeys(teams))
		}
		teams = map[string]string{teamFilter: id}
	}

	logger.Info("scraping rosters",
		"teams", len(teams), "season", bref.SeasonLabel(season))

	var scraped []ScrapedPlayer
	for _, abbrev := range sortedKeys(teams) {
		if ctx.Err() != nil {
			result.AddErrorf("run cancelled: %v", ctx.Err())
			break
		}
		teamBref := bref.ToBref(abbrev)
		logger.Info("scraping team roster", "team", abbrev, "bref", teamBref)

		doc, err := client.RosterPage(ctx, teamBref, season)
		if err != nil {
			result.AddErrorf("team %s: fetch roster page: %v", abbrev, err)
			continue
		}

		roster := bref.ParseRoster(doc, logger)
		logger.Info("found players", "team", abbrev, "count", len(roster))

		for _, p := range roster {
			scraped = append(scraped, ScrapedPlayer{RosterPlayer: p, TeamID: teams[abbrev]})
		}
	}

	if len(scraped) == 0 {
		logger.Info("no players found to insert")
		return nil, result, nil
	}

	rows := make([]Player, 0, len(scraped))
	for _, p := range scraped {
		rows = append(rows, Player{
			ProviderPlayerID: bref.PlayerProviderID(p.Slug),
			TeamID:           p.TeamID,
			FirstName:        p.FirstName,
			LastName:         p.LastName,
			JerseyNumber:     p.JerseyNumber,
			Position:         p.Position,
			Height:           p.Height,
			Weight:           p.Weight,
			BirthDate:        p.BirthDate,
			College:          p.College,
			Country:          p.Country,
		})
	}

	if err := UpsertPlayers(ctx, pool, rows); err != nil {
		result.AddErrorf("upsert players: %v", err)
		return nil, result, nil
	}
	result.PlayersUpserted = len(rows)
	logger.Info("upserted players", "count", len(rows))

	return scraped, result, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
