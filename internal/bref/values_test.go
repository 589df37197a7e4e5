package bref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{"plain integer", "23", intPtr(23)},
		{"float text truncates", "12.0", intPtr(12)},
		{"leading whitespace", "  7 ", intPtr(7)},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"garbage", "DNP", nil},
		{"negative", "-5", intPtr(-5)},
		{"nan", "NaN", nil},
		{"inf", "Inf", nil},
		{"negative inf", "-Inf", nil},
		{"overflows int", "1e300", nil},
		{"underflows int", "-1e300", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeInt(tt.input))
		})
	}
}

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"percentage", ".583", floatPtr(0.583)},
		{"rounds to 3 decimals", "0.33333", floatPtr(0.333)},
		{"rounds up", "0.6667", floatPtr(0.667)},
		{"integer text", "30", floatPtr(30)},
		{"empty", "", nil},
		{"garbage", "Inactive", nil},
		{"nan", "NaN", nil},
		{"inf", "Inf", nil},
		{"negative inf", "-inf", nil},
		{"huge but finite", "1e300", floatPtr(1e300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFloat(tt.input))
		})
	}
}

func TestPlayerProviderIDDeterministic(t *testing.T) {
	first := PlayerProviderID("curryst01")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, PlayerProviderID("curryst01"))
	}
	assert.NotEqual(t, first, PlayerProviderID("jamesle01"))
	assert.Positive(t, first)
}

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		input string
		want  *string
	}{
		{"June 14, 1992", strPtr("1992-06-14")},
		{"Mar 3, 2001", strPtr("2001-03-03")},
		{"  January 1, 2000 ", strPtr("2000-01-01")},
		{"1992-06-14", nil},
		{"", nil},
		{"not a date", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBirthDate(tt.input))
		})
	}
}

func TestSeasonLabel(t *testing.T) {
	assert.Equal(t, "2024-25", SeasonLabel(2024))
	assert.Equal(t, "1999-00", SeasonLabel(1999))
	assert.Equal(t, "2009-10", SeasonLabel(2009))
}

func TestToBref(t *testing.T) {
	assert.Equal(t, "PHO", ToBref("PHX"))
	assert.Equal(t, "BRK", ToBref("BKN"))
	assert.Equal(t, "CHO", ToBref("CHA"))
	assert.Equal(t, "BOS", ToBref("BOS"))

	// Already-translated codes are not in the table and pass through.
	assert.Equal(t, "PHO", ToBref(ToBref("PHX")))
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Stephen Curry")
	require.Equal(t, "Stephen", first)
	require.Equal(t, "Curry", last)

	first, last = splitName("Nene")
	require.Equal(t, "Nene", first)
	require.Equal(t, "", last)

	first, last = splitName("Juan Carlos Navarro")
	require.Equal(t, "Juan", first)
	require.Equal(t, "Carlos Navarro", last)
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
