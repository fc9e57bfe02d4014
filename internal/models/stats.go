package models

import (
	"encoding/json"
	"time"
)

// HomeAwayTotal holds a statistic split by venue
type HomeAwayTotal struct {
	Home  float64 `json:"home"`
	Away  float64 `json:"away"`
	Total float64 `json:"total"`
}

// OverUnderCount counts matches that finished over/under a goal line
type OverUnderCount struct {
	Over  int `json:"over"`
	Under int `json:"under"`
}

// GoalStats holds goals scored or conceded over a season
type GoalStats struct {
	Average   HomeAwayTotal             `json:"average"`
	Total     HomeAwayTotal             `json:"total"`
	UnderOver map[string]OverUnderCount `json:"under_over,omitempty"` // keyed by line, e.g. "2.5"
}

// TeamSeasonStats is the normalized view of a team's season statistics.
// Every field defaults to zero when the upstream payload omits it.
type TeamSeasonStats struct {
	GoalsFor     GoalStats     `json:"goals_for"`
	GoalsAgainst GoalStats     `json:"goals_against"`
	Played       HomeAwayTotal `json:"played"`
	Form         string        `json:"form"` // most recent last, e.g. "WDLWW"
}

// RosterEntry is a player's season scoring record
type RosterEntry struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Goals       int    `json:"goals"`
	Appearances int    `json:"appearances"`
}

// TeamSnapshot is the latest upstream statistics for one team
type TeamSnapshot struct {
	Team      string          `json:"team"`
	Stats     TeamSeasonStats `json:"stats"`
	Roster    []RosterEntry   `json:"roster"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// KafkaTeamPayload carries raw provider payloads for one team
type KafkaTeamPayload struct {
	Team       string          `json:"team"`
	Statistics json.RawMessage `json:"statistics"`
	Players    json.RawMessage `json:"players,omitempty"`
}

// KafkaMatchStatsMessage represents the Kafka message from the stats ingester
type KafkaMatchStatsMessage struct {
	FixtureID   string           `json:"fixture_id"`
	HomeTeam    KafkaTeamPayload `json:"home_team"`
	AwayTeam    KafkaTeamPayload `json:"away_team"`
	MarketTotal *float64         `json:"market_total,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	BatchID     string           `json:"batch_id"`
}
