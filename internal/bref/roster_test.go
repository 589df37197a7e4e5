package bref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterPageHTML = `
<table id="roster">
  <thead>
    <tr>
      <th data-stat="number">No.</th><th data-stat="player">Player</th>
      <th data-stat="pos">Pos</th><th data-stat="height">Ht</th>
      <th data-stat="weight">Wt</th><th data-stat="birth_date">Birth Date</th>
      <th data-stat="birth_place">Birth Place</th><th data-stat="college">College</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td data-stat="number">0</td>
      <td data-stat="player"><a href="/players/t/tatumja01.html">Jayson Tatum</a></td>
      <td data-stat="pos">SF</td>
      <td data-stat="height">6-8</td>
      <td data-stat="weight">210</td>
      <td data-stat="birth_date"><a href="/friv/birthdays.fcgi?month=3&amp;day=3">March 3, 1998</a></td>
      <td data-stat="birth_place">us St. Louis, Missouri</td>
      <td data-stat="college"><a href="/friv/colleges.fcgi?college=duke">Duke</a></td>
    </tr>
    <tr>
      <td data-stat="number"></td>
      <td data-stat="player">Two Way Signee</td>
      <td data-stat="pos">G</td>
      <td data-stat="height"></td>
      <td data-stat="weight"></td>
      <td data-stat="birth_date"></td>
      <td data-stat="birth_place"></td>
      <td data-stat="college"></td>
    </tr>
    <tr>
      <td data-stat="number">26</td>
      <td data-stat="player"><a href="/players/q/queenta01.html">Tacko Queen</a></td>
      <td data-stat="pos">C</td>
      <td data-stat="height">7-5</td>
      <td data-stat="weight">311</td>
      <td data-stat="birth_date">not a real date</td>
      <td data-stat="birth_place"></td>
      <td data-stat="college"></td>
    </tr>
  </tbody>
</table>`

func TestParseRoster(t *testing.T) {
	doc := mustDoc(t, rosterPageHTML)
	players := ParseRoster(doc, nil)
	require.Len(t, players, 2, "the slugless row must be dropped without error")

	tatum := players[0]
	assert.Equal(t, "tatumja01", tatum.Slug)
	assert.Equal(t, "Jayson", tatum.FirstName)
	assert.Equal(t, "Tatum", tatum.LastName)
	assert.Equal(t, strPtr("0"), tatum.JerseyNumber)
	assert.Equal(t, strPtr("SF"), tatum.Position)
	assert.Equal(t, strPtr("6-8"), tatum.Height, "height stays verbatim text")
	assert.Equal(t, strPtr("210"), tatum.Weight)
	assert.Equal(t, strPtr("1998-03-03"), tatum.BirthDate)
	assert.Equal(t, strPtr("Duke"), tatum.College, "college comes from the link text")
	assert.Equal(t, strPtr("us St. Louis, Missouri"), tatum.Country)

	queen := players[1]
	assert.Equal(t, "queenta01", queen.Slug)
	assert.Nil(t, queen.BirthDate, "unparseable date coerces to absent")
	assert.Nil(t, queen.College)
	assert.Nil(t, queen.Country)
}

func TestParseRosterMissingTable(t *testing.T) {
	doc := mustDoc(t, "<html><body><p>no roster here</p></body></html>")
	assert.Empty(t, ParseRoster(doc, nil))
}
