package bref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient returns a client pointed at the test server with a rate high
// enough that tests never sleep.
func testClient(serverURL string) *Client {
	return NewClient(serverURL, "test-agent", 60000, nil)
}

func TestClientUnmasksHiddenTables(t *testing.T) {
	// Advanced box score tables ship inside HTML comments.
	page := `<html><body>
		<table id="box-BOS-game-basic"><thead><tr><th data-stat="player">P</th><th data-stat="pts">PTS</th></tr></thead>
		<tbody><tr><th data-stat="player">Jayson Tatum</th><td data-stat="pts">16</td></tr></tbody></table>
		<!--
		<div class="table_container">
		<table id="box-BOS-game-advanced"><thead><tr><th data-stat="player">P</th><th data-stat="ts_pct">TS%</th></tr></thead>
		<tbody><tr><th data-stat="player">Jayson Tatum</th><td data-stat="ts_pct">.462</td></tr></tbody></table>
		</div>
		-->
	</body></html>`

	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := testClient(server.URL)
	date := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	doc, err := client.BoxScorePage(context.Background(), "BOS", date)
	require.NoError(t, err)

	assert.Equal(t, "/boxscores/202406060BOS.html", gotPath)
	assert.Equal(t, "test-agent", gotAgent)

	rows := ParseTeamBoxScore(doc, "BOS")
	require.Len(t, rows, 1)
	assert.Equal(t, floatPtr(0.462), rows[0].TSPct, "hidden advanced table must be parseable after unmasking")
}

func TestClientTranslatesHomeAbbrev(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.BoxScorePage(context.Background(), "PHX", date)
	require.NoError(t, err)
	assert.Equal(t, "/boxscores/202401150PHO.html", gotPath)
}

func TestClientNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := testClient(server.URL)
	doc, err := client.BoxScorePage(context.Background(), "BOS", time.Now())
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClientRosterAndPlayerPaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.RosterPage(context.Background(), "BOS", 2024)
	require.NoError(t, err)

	_, err = client.PlayerPage(context.Background(), "curryst01")
	require.NoError(t, err)

	// Team pages use the season's ending year; player pages key by the
	// slug's first letter.
	assert.Equal(t, []string{"/teams/BOS/2025.html", "/players/c/curryst01.html"}, paths)
}

func TestUnmaskComments(t *testing.T) {
	in := `before <!-- <div id="x"><table></table></div> --> after`
	assert.Equal(t, `before <div id="x"><table></table></div> after`, unmaskComments(in))

	// Comments not wrapping a div are left alone.
	plain := `<!-- plain comment -->`
	assert.Equal(t, plain, unmaskComments(plain))
}
