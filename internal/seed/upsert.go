package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopfeed/bref-ingest/internal/bref"
	"github.com/hoopfeed/bref-ingest/internal/config"
)

// BoxScore binds a parsed stat line to its game and team rows.
type BoxScore struct {
	GameID string
	TeamID string
	bref.BoxScoreRow
}

// Player is one roster upsert row, keyed by (provider, provider_player_id).
type Player struct {
	ProviderPlayerID int64
	TeamID           string
	FirstName        string
	LastName         string
	JerseyNumber     *string
	Position         *string
	Height           *string
	Weight           *string
	BirthDate        *string
	College          *string
	Country          *string
}

// SeasonAverage is one per-game averages upsert row.
type SeasonAverage struct {
	PlayerID string
	SeasonID string
	bref.SeasonAverages
}

// GameUpdate carries the derived parent-game fields from a scraped page.
// Nil/empty fields are left untouched in the database.
type GameUpdate struct {
	Quarters     *bref.QuarterScores
	Arena        string
	Attendance   *int
	PlayoffRound string
}

// IsEmpty reports whether the update would change nothing.
func (u GameUpdate) IsEmpty() bool {
	return u.Quarters == nil && u.Arena == "" && u.Attendance == nil && u.PlayoffRound == ""
}

const upsertBoxScoreSQL = `
	INSERT INTO ` + config.BoxScoresTable + ` (
		game_id, team_id, player_name, starter, minutes,
		points, rebounds, offensive_rebounds, defensive_rebounds,
		assists, steals, blocks, turnovers,
		fgm, fga, fg_pct, tpm, tpa, tp_pct, ftm, fta, ft_pct,
		personal_fouls, plus_minus,
		ts_pct, efg_pct, three_par, ft_rate,
		orb_pct, drb_pct, trb_pct, ast_pct, stl_pct, blk_pct,
		tov_pct, usg_pct, offensive_rating, defensive_rating, bpm
	) VALUES (
		$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,
		$35,$36,$37,$38,$39
	)
	ON CONFLICT (game_id, team_id, player_name) DO UPDATE SET
		starter = EXCLUDED.starter,
		minutes = EXCLUDED.minutes,
		points = EXCLUDED.points,
		rebounds = EXCLUDED.rebounds,
		offensive_rebounds = EXCLUDED.offensive_rebounds,
		defensive_rebounds = EXCLUDED.defensive_rebounds,
		assists = EXCLUDED.assists,
		steals = EXCLUDED.steals,
		blocks = EXCLUDED.blocks,
		turnovers = EXCLUDED.turnovers,
		fgm = EXCLUDED.fgm,
		fga = EXCLUDED.fga,
		fg_pct = EXCLUDED.fg_pct,
		tpm = EXCLUDED.tpm,
		tpa = EXCLUDED.tpa,
		tp_pct = EXCLUDED.tp_pct,
		ftm = EXCLUDED.ftm,
		fta = EXCLUDED.fta,
		ft_pct = EXCLUDED.ft_pct,
		personal_fouls = EXCLUDED.personal_fouls,
		plus_minus = EXCLUDED.plus_minus,
		ts_pct = EXCLUDED.ts_pct,
		efg_pct = EXCLUDED.efg_pct,
		three_par = EXCLUDED.three_par,
		ft_rate = EXCLUDED.ft_rate,
		orb_pct = EXCLUDED.orb_pct,
		drb_pct = EXCLUDED.drb_pct,
		trb_pct = EXCLUDED.trb_pct,
		ast_pct = EXCLUDED.ast_pct,
		stl_pct = EXCLUDED.stl_pct,
		blk_pct = EXCLUDED.blk_pct,
		tov_pct = EXCLUDED.tov_pct,
		usg_pct = EXCLUDED.usg_pct,
		offensive_rating = EXCLUDED.offensive_rating,
		defensive_rating = EXCLUDED.defensive_rating,
		bpm = EXCLUDED.bpm,
		updated_at = NOW()`

// UpsertBoxScores writes one game's accumulated stat lines in a single
// transaction, so the batch succeeds or fails as a unit.
func UpsertBoxScores(ctx context.Context, pool *pgxpool.Pool, scores []BoxScore) error {
	if len(scores) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range scores {
		batch.Queue(upsertBoxScoreSQL,
			s.GameID, s.TeamID, s.PlayerName, s.Starter, s.Minutes,
			s.Points, s.Rebounds, s.OffensiveRebounds, s.DefensiveRebounds,
			s.Assists, s.Steals, s.Blocks, s.Turnovers,
			s.FGM, s.FGA, s.FGPct, s.TPM, s.TPA, s.TPPct, s.FTM, s.FTA, s.FTPct,
			s.PersonalFouls, s.PlusMinus,
			s.TSPct, s.EFGPct, s.ThreePAR, s.FTRate,
			s.ORBPct, s.DRBPct, s.TRBPct, s.ASTPct, s.STLPct, s.BLKPct,
			s.TOVPct, s.USGPct, s.OffensiveRating, s.DefensiveRating, s.BPM,
		)
	}
	return sendBatch(ctx, pool, batch)
}

const upsertPlayerSQL = `
	INSERT INTO ` + config.PlayersTable + ` (
		provider, provider_player_id, first_name, last_name,
		position, jersey_number, team_id, height, weight,
		birth_date, college, country
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	ON CONFLICT (provider, provider_player_id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		position = EXCLUDED.position,
		jersey_number = EXCLUDED.jersey_number,
		team_id = EXCLUDED.team_id,
		height = EXCLUDED.height,
		weight = EXCLUDED.weight,
		birth_date = COALESCE(EXCLUDED.birth_date, ` + config.PlayersTable + `.birth_date),
		college = COALESCE(EXCLUDED.college, ` + config.PlayersTable + `.college),
		country = COALESCE(EXCLUDED.country, ` + config.PlayersTable + `.country),
		updated_at = NOW()`

// UpsertPlayers writes the accumulated roster rows in one transaction.
// The team assignment always takes the newest scrape; biographical fields
// keep existing values when the page omits them.
func UpsertPlayers(ctx context.Context, pool *pgxpool.Pool, players []Player) error {
	if len(players) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(upsertPlayerSQL,
			config.Provider, p.ProviderPlayerID, p.FirstName, p.LastName,
			p.Position, p.JerseyNumber, p.TeamID, p.Height, p.Weight,
			p.BirthDate, p.College, p.Country,
		)
	}
	return sendBatch(ctx, pool, batch)
}

const upsertSeasonAverageSQL = `
	INSERT INTO ` + config.SeasonAveragesTable + ` (
		player_id, season_id, games, mpg, ppg, rpg, apg,
		spg, bpg, topg, fg_pct, tp_pct, ft_pct
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	ON CONFLICT (player_id, season_id) DO UPDATE SET
		games = EXCLUDED.games,
		mpg = EXCLUDED.mpg,
		ppg = EXCLUDED.ppg,
		rpg = EXCLUDED.rpg,
		apg = EXCLUDED.apg,
		spg = EXCLUDED.spg,
		bpg = EXCLUDED.bpg,
		topg = EXCLUDED.topg,
		fg_pct = EXCLUDED.fg_pct,
		tp_pct = EXCLUDED.tp_pct,
		ft_pct = EXCLUDED.ft_pct,
		updated_at = NOW()`

// UpsertSeasonAverages writes the accumulated per-game averages in one
// transaction.
func UpsertSeasonAverages(ctx context.Context, pool *pgxpool.Pool, averages []SeasonAverage) error {
	if len(averages) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range averages {
		batch.Queue(upsertSeasonAverageSQL,
			a.PlayerID, a.SeasonID, a.Games, a.MPG, a.PPG, a.RPG, a.APG,
			a.SPG, a.BPG, a.TOPG, a.FGPct, a.TPPct, a.FTPct,
		)
	}
	return sendBatch(ctx, pool, batch)
}

// UpdateGame writes the derived fields back onto the parent game row.
// COALESCE keeps existing values wherever the page yielded nothing, so a
// partial parse never clears previously scraped data.
func UpdateGame(ctx context.Context, pool *pgxpool.Pool, gameID string, u GameUpdate) error {
	q := u.Quarters
	if q == nil {
		q = &bref.QuarterScores{}
	}

	_, err := pool.Exec(ctx, `
		UPDATE `+config.GamesTable+` SET
			away_q1 = COALESCE($2, away_q1),
			away_q2 = COALESCE($3, away_q2),
			away_q3 = COALESCE($4, away_q3),
			away_q4 = COALESCE($5, away_q4),
			away_ot = COALESCE($6, away_ot),
			home_q1 = COALESCE($7, home_q1),
			home_q2 = COALESCE($8, home_q2),
			home_q3 = COALESCE($9, home_q3),
			home_q4 = COALESCE($10, home_q4),
			home_ot = COALESCE($11, home_ot),
			arena = COALESCE($12, arena),
			attendance = COALESCE($13, attendance),
			playoff_round = COALESCE($14, playoff_round),
			updated_at = NOW()
		WHERE id = $1`,
		gameID,
		q.AwayQ1, q.AwayQ2, q.AwayQ3, q.AwayQ4, q.AwayOT,
		q.HomeQ1, q.HomeQ2, q.HomeQ3, q.HomeQ4, q.HomeOT,
		nilEmpty(u.Arena), u.Attendance, nilEmpty(u.PlayoffRound),
	)
	return err
}

// UpdatePlayoffRound sets only the playoff round label on a game.
func UpdatePlayoffRound(ctx context.Context, pool *pgxpool.Pool, gameID, round string) error {
	_, err := pool.Exec(ctx, `
		UPDATE `+config.GamesTable+` SET
			playoff_round = $2,
			updated_at = NOW()
		WHERE id = $1`,
		gameID, round,
	)
	return err
}

// sendBatch runs a batch inside one transaction and surfaces the first
// failing statement.
func sendBatch(ctx context.Context, pool *pgxpool.Pool, batch *pgx.Batch) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch statement %d: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	return tx.Commit(ctx)
}

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
