// Package config provides centralized configuration loaded from environment
// variables for the ingestion CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	GamesTable          = "games"
	SeasonsTable        = "seasons"
	TeamsTable          = "teams"
	PlayersTable        = "players"
	BoxScoresTable      = "box_scores"
	SeasonAveragesTable = "player_season_averages"
)

// Provider is the ID namespace used for players sourced from
// Basketball Reference.
const Provider = "bref"

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Scrape source
	BrefBaseURL string
	UserAgent   string

	// Rate limiting. Basketball Reference enforces an informal cap of
	// ~20 requests/minute; the default stays safely under it.
	RequestsPerMinute float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("SUPABASE_DB_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL or DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		BrefBaseURL: envOr("BREF_BASE_URL", "https://www.basketball-reference.com"),
		UserAgent:   envOr("BREF_USER_AGENT", "Mozilla/5.0 (Macintosh)"),

		RequestsPerMinute: envFloat("BREF_REQUESTS_PER_MINUTE", 60.0/3.5),
	}, nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
