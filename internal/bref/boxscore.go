package bref

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// statRow is the raw form of one table row: cells keyed by the data-stat
// column identifiers from the header, plus the starter tag derived from the
// row's position relative to the "Reserves" separator.
type statRow struct {
	cells   map[string]string
	starter bool
}

// parseStatTable walks a basic or advanced box score table.
//
// Column keys come from the last header row (the first row is a group
// header spanning multiple columns). Separator rows (class "thead") flip
// the reserves flag and are dropped; so are did-not-play rows (they carry a
// "reason" cell) and team total rows.
func parseStatTable(doc *goquery.Document, tableID string) []statRow {
	table := doc.Find("table#" + tableID).First()
	if table.Length() == 0 {
		return nil
	}

	var cols []string
	table.Find("thead tr").Last().Find("th").Each(func(_ int, th *goquery.Selection) {
		stat, ok := th.Attr("data-stat")
		if !ok || stat == "" {
			stat = strings.TrimSpace(th.Text())
		}
		cols = append(cols, stat)
	})

	var rows []statRow
	seenReserves := false
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			seenReserves = true
			return
		}

		cells := map[string]string{}
		tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
			if i < len(cols) {
				cells[cols[i]] = strings.TrimSpace(cell.Text())
			}
		})
		if len(cells) == 0 {
			return
		}

		// "Did Not Play" rows
		if tr.Find("td[data-stat='reason']").Length() > 0 {
			return
		}

		name := cells["player"]
		switch strings.ToLower(name) {
		case "", "team totals", "totals":
			return
		}

		rows = append(rows, statRow{cells: cells, starter: !seenReserves})
	})

	return rows
}

// ParseTeamBoxScore extracts one team's merged box score from a game page.
// Basic rows drive the output; advanced stats are joined in by player name.
// Returns nil when the basic table is missing.
func ParseTeamBoxScore(doc *goquery.Document, teamBref string) []BoxScoreRow {
	basic := parseStatTable(doc, "box-"+teamBref+"-game-basic")
	if len(basic) == 0 {
		return nil
	}
	advanced := parseStatTable(doc, "box-"+teamBref+"-game-advanced")

	advByPlayer := make(map[string]map[string]string, len(advanced))
	for _, row := range advanced {
		if name := row.cells["player"]; name != "" {
			advByPlayer[name] = row.cells
		}
	}

	rows := make([]BoxScoreRow, 0, len(basic))
	for _, row := range basic {
		name := row.cells["player"]
		adv := advByPlayer[name]

		out := BoxScoreRow{
			PlayerName: name,
			Starter:    row.starter,

			Points:            SafeInt(row.cells["pts"]),
			Rebounds:          SafeInt(row.cells["trb"]),
			OffensiveRebounds: SafeInt(row.cells["orb"]),
			DefensiveRebounds: SafeInt(row.cells["drb"]),
			Assists:           SafeInt(row.cells["ast"]),
			Steals:            SafeInt(row.cells["stl"]),
			Blocks:            SafeInt(row.cells["blk"]),
			Turnovers:         SafeInt(row.cells["tov"]),
			FGM:               SafeInt(row.cells["fg"]),
			FGA:               SafeInt(row.cells["fga"]),
			FGPct:             SafeFloat(row.cells["fg_pct"]),
			TPM:               SafeInt(row.cells["fg3"]),
			TPA:               SafeInt(row.cells["fg3a"]),
			TPPct:             SafeFloat(row.cells["fg3_pct"]),
			FTM:               SafeInt(row.cells["ft"]),
			FTA:               SafeInt(row.cells["fta"]),
			FTPct:             SafeFloat(row.cells["ft_pct"]),
			PersonalFouls:     SafeInt(row.cells["pf"]),
			PlusMinus:         SafeInt(row.cells["plus_minus"]),

			TSPct:           SafeFloat(adv["ts_pct"]),
			EFGPct:          SafeFloat(adv["efg_pct"]),
			ThreePAR:        SafeFloat(adv["fg3a_per_fga_pct"]),
			FTRate:          SafeFloat(adv["fta_per_fga_pct"]),
			ORBPct:          SafeFloat(adv["orb_pct"]),
			DRBPct:          SafeFloat(adv["drb_pct"]),
			TRBPct:          SafeFloat(adv["trb_pct"]),
			ASTPct:          SafeFloat(adv["ast_pct"]),
			STLPct:          SafeFloat(adv["stl_pct"]),
			BLKPct:          SafeFloat(adv["blk_pct"]),
			TOVPct:          SafeFloat(adv["tov_pct"]),
			USGPct:          SafeFloat(adv["usg_pct"]),
			OffensiveRating: SafeInt(adv["off_rtg"]),
			DefensiveRating: SafeInt(adv["def_rtg"]),
			BPM:             SafeFloat(adv["bpm"]),
		}

		if mp := strings.TrimSpace(row.cells["mp"]); mp != "" {
			out.Minutes = &mp
		}

		rows = append(rows, out)
	}
	return rows
}

// ParseQuarterScores reads the line_score table: away row first, home row
// second, q1-q4 positional. Any columns between Q4 and the trailing total
// are overtime periods; their sum collapses into one OT value (zero sum =
// no overtime). Fewer than two body rows yields nil.
func ParseQuarterScores(doc *goquery.Document) *QuarterScores {
	rows := doc.Find("table#line_score tbody tr")
	if rows.Length() < 2 {
		return nil
	}

	parseRow := func(tr *goquery.Selection) []*int {
		var scores []*int
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			scores = append(scores, SafeInt(strings.TrimSpace(td.Text())))
		})
		return scores
	}

	away := parseRow(rows.Eq(0))
	home := parseRow(rows.Eq(1))

	quarter := func(scores []*int, i int) *int {
		if i < len(scores) {
			return scores[i]
		}
		return nil
	}
	overtime := func(scores []*int) *int {
		if len(scores) <= 5 {
			return nil
		}
		total := 0
		for _, s := range scores[4 : len(scores)-1] {
			if s != nil {
				total += *s
			}
		}
		if total == 0 {
			return nil
		}
		return &total
	}

	return &QuarterScores{
		AwayQ1: quarter(away, 0), AwayQ2: quarter(away, 1),
		AwayQ3: quarter(away, 2), AwayQ4: quarter(away, 3),
		AwayOT: overtime(away),
		HomeQ1: quarter(home, 0), HomeQ2: quarter(home, 1),
		HomeQ3: quarter(home, 2), HomeQ4: quarter(home, 3),
		HomeOT: overtime(home),
	}
}

// ParsePlayoffRound derives the playoff round from the page title. An empty
// result means the title matched nothing; that is not an error.
func ParsePlayoffRound(doc *goquery.Document) string {
	title := strings.ToLower(doc.Find("title").First().Text())
	switch {
	case strings.Contains(title, "first round"):
		return "first_round"
	case strings.Contains(title, "conference semifinals"):
		return "conf_semis"
	case strings.Contains(title, "conference finals"):
		return "conf_finals"
	case strings.Contains(title, "nba finals"):
		return "finals"
	default:
		return ""
	}
}

// ParseArenaAttendance pulls the arena name from the scorebox metadata block
// (second sub-div, guarded against the attendance and logo lines landing
// there instead) and the attendance count from its labeled element.
func ParseArenaAttendance(doc *goquery.Document) (arena string, attendance *int) {
	divs := doc.Find("div.scorebox_meta").First().Find("div")
	if divs.Length() >= 2 {
		candidate := strings.TrimSpace(divs.Eq(1).Text())
		if candidate != "" &&
			!strings.HasPrefix(candidate, "Attendance") &&
			!strings.HasPrefix(candidate, "Logo") {
			arena = strings.TrimSpace(strings.SplitN(candidate, ",", 2)[0])
		}
	}

	doc.Find("strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Attendance") {
			return true
		}
		text := strings.TrimSpace(s.Parent().Text())
		text = strings.ReplaceAll(text, "Attendance:", "")
		text = strings.ReplaceAll(text, " ", "")
		text = strings.ReplaceAll(text, ",", "")
		attendance = SafeInt(text)
		return false
	})

	return arena, attendance
}
