package bref

// abbrevToBref maps the team codes that differ between our teams table and
// Basketball Reference. Everything else matches as-is.
var abbrevToBref = map[string]string{
	"PHX": "PHO",
	"BKN": "BRK",
	"CHA": "CHO",
}

// ToBref translates a team abbreviation into the one Basketball Reference
// uses in its URLs and table IDs. Unknown codes pass through unchanged, so
// translating an already-translated code is harmless.
func ToBref(abbrev string) string {
	if b, ok := abbrevToBref[abbrev]; ok {
		return b
	}
	return abbrev
}
