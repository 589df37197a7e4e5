package bref

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseSeasonAverages scans a player page's per_game table for the row
// whose season label matches the given year (2024 -> "2024-25") and reads
// its per-game rates. Returns nil when the player has no row for that
// season; that is "no data", not an error.
func ParseSeasonAverages(doc *goquery.Document, season int) *SeasonAverages {
	label := SeasonLabel(season)

	var avgs *SeasonAverages
	doc.Find("table#per_game tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		// Repeated header rows inside the body
		if tr.HasClass("thead") {
			return true
		}

		seasonCell := tr.Find("th[data-stat='season']").First()
		if seasonCell.Length() == 0 || strings.TrimSpace(seasonCell.Text()) != label {
			return true
		}

		cells := map[string]string{}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			if stat, ok := td.Attr("data-stat"); ok && stat != "" {
				cells[stat] = strings.TrimSpace(td.Text())
			}
		})

		avgs = &SeasonAverages{
			Games: SafeInt(cells["g"]),
			MPG:   SafeFloat(cells["mp_per_g"]),
			PPG:   SafeFloat(cells["pts_per_g"]),
			RPG:   SafeFloat(cells["trb_per_g"]),
			APG:   SafeFloat(cells["ast_per_g"]),
			SPG:   SafeFloat(cells["stl_per_g"]),
			BPG:   SafeFloat(cells["blk_per_g"]),
			TOPG:  SafeFloat(cells["tov_per_g"]),
			FGPct: SafeFloat(cells["fg_pct"]),
			TPPct: SafeFloat(cells["fg3_pct"]),
			FTPct: SafeFloat(cells["ft_pct"]),
		}
		return false
	})

	return avgs
}
