// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the read-side statements the scrape
// drivers use. Prepared statements eliminate parse overhead when the same
// lookup runs for every unit of work.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Season lookup — the only fatal query in the pipeline.
		"season_by_year": "SELECT id FROM " + config.SeasonsTable + " WHERE year = $1",

		// All teams, for abbreviation -> id resolution.
		"teams_all": "SELECT id, abbreviation FROM " + config.TeamsTable,

		// Final games that have no quarter scores yet (= not scraped),
		// with both team abbreviations joined in. $2 is an optional
		// date cutoff; NULL disables the window.
		"games_without_box_scores": `
			SELECT g.id, g.game_date_utc,
			       ht.id, ht.abbreviation,
			       aw.id, aw.abbreviation
			FROM ` + config.GamesTable + ` g
			JOIN ` + config.TeamsTable + ` ht ON ht.id = g.home_team_id
			JOIN ` + config.TeamsTable + ` aw ON aw.id = g.away_team_id
			WHERE g.status = 'final'
			  AND g.home_q1 IS NULL
			  AND g.season_id = $1
			  AND ($2::timestamptz IS NULL OR g.game_date_utc >= $2)
			ORDER BY g.game_date_utc ASC
			LIMIT $3`,

		// Already-scraped playoff games missing their round label.
		"playoff_games_missing_round": `
			SELECT g.id, g.game_date_utc,
			       ht.id, ht.abbreviation,
			       aw.id, aw.abbreviation
			FROM ` + config.GamesTable + ` g
			JOIN ` + config.TeamsTable + ` ht ON ht.id = g.home_team_id
			JOIN ` + config.TeamsTable + ` aw ON aw.id = g.away_team_id
			WHERE g.postseason = true
			  AND g.playoff_round IS NULL
			  AND g.home_q1 IS NOT NULL
			  AND g.season_id = $1
			ORDER BY g.game_date_utc ASC
			LIMIT $2`,

		// Player uuid lookup by provider checksum IDs.
		"players_by_provider_ids": `
			SELECT id, provider_player_id
			FROM ` + config.PlayersTable + `
			WHERE provider = $1 AND provider_player_id = ANY($2)`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
