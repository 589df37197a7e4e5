// Package seed orchestrates the scrape phases and writes normalized rows
// into the database.
package seed

import "fmt"

// Result tracks counts and errors from a scrape run.
type Result struct {
	GamesScraped      int
	GamesUpdated      int
	BoxScoresUpserted int
	PlayersUpserted   int
	AveragesUpserted  int
	PlayoffRoundsSet  int
	Errors            []string
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"games=%d game_updates=%d box_scores=%d players=%d averages=%d playoff_rounds=%d errors=%d",
		r.GamesScraped, r.GamesUpdated, r.BoxScoresUpserted,
		r.PlayersUpserted, r.AveragesUpserted, r.PlayoffRoundsSet,
		len(r.Errors),
	)
}
