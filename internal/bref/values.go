package bref

import (
	"fmt"
	"hash/adler32"
	"math"
	"strconv"
	"strings"
	"time"
)

// SafeInt parses a stat cell as an integer. Empty or unparseable text yields
// nil, never an error. Float-looking text ("12.0") is truncated.
func SafeInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return nil
	}
	// ParseFloat also accepts overflowing text; converting a value outside
	// the int range is implementation-defined, so reject it here.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	n := int(f)
	return &n
}

// SafeFloat parses a stat cell as a float rounded to 3 decimal places.
// Empty or unparseable text yields nil.
func SafeFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return nil
	}
	f = math.Round(f*1000) / 1000
	return &f
}

// isFinite rejects the NaN/Inf spellings ParseFloat accepts; a stat cell
// either holds a real number or counts as absent.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PlayerProviderID derives a stable integer ID from a Basketball Reference
// player slug (e.g. "curryst01"). Adler-32 is not cryptographic; it only
// needs to be deterministic across runs so the slug can serve as a compact
// join key. Collisions are not handled.
func PlayerProviderID(slug string) int64 {
	return int64(adler32.Checksum([]byte(slug)))
}

// birthDateLayouts covers the formats the roster table uses, long month
// names first.
var birthDateLayouts = []string{"January 2, 2006", "Jan 2, 2006"}

// ParseBirthDate normalizes a roster birth date ("June 14, 1992") to
// YYYY-MM-DD. Unparseable input yields nil.
func ParseBirthDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range birthDateLayouts {
		if dt, err := time.Parse(layout, s); err == nil {
			out := dt.Format("2006-01-02")
			return &out
		}
	}
	return nil
}

// SeasonLabel renders a season year the way Basketball Reference labels
// rows: 2024 -> "2024-25".
func SeasonLabel(season int) string {
	return fmt.Sprintf("%d-%02d", season, (season+1)%100)
}
