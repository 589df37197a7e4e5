package bref

// BoxScoreRow is one player's line from a game page, basic and advanced
// columns merged. Pointer fields are nil when the source cell is empty or
// unparseable.
type BoxScoreRow struct {
	PlayerName string
	Starter    bool

	// basic
	Minutes           *string
	Points            *int
	Rebounds          *int
	OffensiveRebounds *int
	DefensiveRebounds *int
	Assists           *int
	Steals            *int
	Blocks            *int
	Turnovers         *int
	FGM               *int
	FGA               *int
	FGPct             *float64
	TPM               *int
	TPA               *int
	TPPct             *float64
	FTM               *int
	FTA               *int
	FTPct             *float64
	PersonalFouls     *int
	PlusMinus         *int

	// advanced
	TSPct           *float64
	EFGPct          *float64
	ThreePAR        *float64
	FTRate          *float64
	ORBPct          *float64
	DRBPct          *float64
	TRBPct          *float64
	ASTPct          *float64
	STLPct          *float64
	BLKPct          *float64
	TOVPct          *float64
	USGPct          *float64
	OffensiveRating *int
	DefensiveRating *int
	BPM             *float64
}

// QuarterScores holds per-quarter scoring parsed from the line_score table.
// OT fields collapse all overtime periods into one sum; nil means no
// overtime was played (a zero sum is treated as absent, matching the
// source site's empty-cell behavior).
type QuarterScores struct {
	AwayQ1, AwayQ2, AwayQ3, AwayQ4, AwayOT *int
	HomeQ1, HomeQ2, HomeQ3, HomeQ4, HomeOT *int
}

// RosterPlayer is one row of a team roster page. Height stays verbatim text
// ("6-3"); BirthDate is normalized to YYYY-MM-DD when parseable.
type RosterPlayer struct {
	Slug         string
	FirstName    string
	LastName     string
	JerseyNumber *string
	Position     *string
	Height       *string
	Weight       *string
	BirthDate    *string
	College      *string
	Country      *string
}

// SeasonAverages holds the per-game rates for one (player, season) read from
// the player page's per_game table.
type SeasonAverages struct {
	Games *int
	MPG   *float64
	PPG   *float64
	RPG   *float64
	APG   *float64
	SPG   *float64
	BPG   *float64
	TOPG  *float64
	FGPct *float64
	TPPct *float64
	FTPct *float64
}
