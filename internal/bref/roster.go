package bref

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// slugPattern extracts the player slug from a profile href like
// /players/c/curryst01.html.
var slugPattern = regexp.MustCompile(`/players/[a-z]/([a-z0-9]+)\.html`)

// ParseRoster walks the #roster table of a team page. Rows without an
// extractable profile slug are skipped with a warning; the slug is the only
// stable key we have for a player.
func ParseRoster(doc *goquery.Document, logger *slog.Logger) []RosterPlayer {
	if logger == nil {
		logger = slog.Default()
	}

	var players []RosterPlayer
	doc.Find("table#roster tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := map[string]*goquery.Selection{}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if stat, ok := cell.Attr("data-stat"); ok && stat != "" {
				cells[stat] = cell
			}
		})

		playerCell, ok := cells["player"]
		if !ok {
			return
		}
		name := strings.TrimSpace(playerCell.Text())
		if name == "" {
			return
		}

		slug := ""
		if href, ok := playerCell.Find("a").First().Attr("href"); ok {
			if m := slugPattern.FindStringSubmatch(href); m != nil {
				slug = m[1]
			}
		}
		if slug == "" {
			logger.Warn("no slug found for roster row, skipping", "player", name)
			return
		}

		first, last := splitName(name)
		p := RosterPlayer{
			Slug:         slug,
			FirstName:    first,
			LastName:     last,
			JerseyNumber: cellText(cells, "number"),
			Position:     cellText(cells, "pos"),
			Height:       cellText(cells, "height"),
			Weight:       cellText(cells, "weight"),
			Country:      cellText(cells, "birth_place"),
		}

		if birth, ok := cells["birth_date"]; ok {
			raw := strings.TrimSpace(birth.Text())
			if link := birth.Find("a").First(); link.Length() > 0 {
				raw = strings.TrimSpace(link.Text())
			}
			p.BirthDate = ParseBirthDate(raw)
		}

		if college, ok := cells["college"]; ok {
			text := strings.TrimSpace(college.Text())
			if link := college.Find("a").First(); link.Length() > 0 {
				text = strings.TrimSpace(link.Text())
			}
			if text != "" {
				p.College = &text
			}
		}

		players = append(players, p)
	})

	return players
}

// splitName breaks a display name into first and last on the first space.
func splitName(name string) (first, last string) {
	parts := strings.SplitN(name, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}

// cellText returns the trimmed text of a cell, or nil when the cell is
// missing or empty.
func cellText(cells map[string]*goquery.Selection, stat string) *string {
	cell, ok := cells[stat]
	if !ok {
		return nil
	}
	text := strings.TrimSpace(cell.Text())
	if text == "" {
		return nil
	}
	return &text
}
