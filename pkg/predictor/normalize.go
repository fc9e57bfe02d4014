package predictor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

const (
	unknownPlayerName = "Unknown"
	unknownPosition   = "N/A"
)

// SafeNumber coerces a loosely typed value to a finite float64.
// Numeric strings are parsed; anything else that is not a finite number
// yields fallback.
func SafeNumber(value any, fallback float64) float64 {
	var n float64

	switch v := value.(type) {
	case nil:
		return fallback
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fallback
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		n = f
	default:
		return fallback
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// ParseTeamSeasonStats normalizes a provider team-statistics payload.
// The payload may be wrapped in {"response": {...}}. Missing or malformed
// fields are zero.
func ParseTeamSeasonStats(raw []byte) models.TeamSeasonStats {
	var stats models.TeamSeasonStats

	root, ok := payloadRoot(raw, jsoniter.ObjectValue)
	if !ok {
		return stats
	}

	stats.GoalsFor = parseGoalStats(root.Get("goals", "for"))
	stats.GoalsAgainst = parseGoalStats(root.Get("goals", "against"))
	stats.Played = parseHomeAwayTotal(root.Get("fixtures", "played"))

	if form := root.Get("form"); form.ValueType() == jsoniter.StringValue {
		stats.Form = strings.TrimSpace(form.ToString())
	}

	return stats
}

// ParseRoster normalizes a provider players payload into roster entries.
// Players without a statistics block are skipped.
func ParseRoster(raw []byte) []models.RosterEntry {
	players, ok := payloadRoot(raw, jsoniter.ArrayValue)
	if !ok {
		return nil
	}

	roster := make([]models.RosterEntry, 0, players.Size())
	for i := 0; i < players.Size(); i++ {
		item := players.Get(i)

		stats := item.Get("statistics", 0)
		if stats.ValueType() != jsoniter.ObjectValue {
			continue
		}

		appearances := number(stats, "games", "appearences")
		if appearances == 0 {
			appearances = number(stats, "games", "appearances")
		}

		roster = append(roster, models.RosterEntry{
			Name:        text(item.Get("player", "name"), unknownPlayerName),
			Position:    text(stats.Get("games", "position"), unknownPosition),
			Goals:       int(number(stats, "goals", "total")),
			Appearances: int(appearances),
		})
	}

	return roster
}

// payloadRoot unwraps an optional "response" envelope and checks the
// resulting value type
func payloadRoot(raw []byte, want jsoniter.ValueType) (jsoniter.Any, bool) {
	if len(raw) == 0 || !jsoniter.Valid(raw) {
		return nil, false
	}

	root := jsoniter.Get(raw)
	if resp := root.Get("response"); resp.ValueType() == want {
		return resp, true
	}
	if root.ValueType() == want {
		return root, true
	}
	return nil, false
}

func parseGoalStats(node jsoniter.Any) models.GoalStats {
	goals := models.GoalStats{
		Average: parseHomeAwayTotal(node.Get("average")),
		Total:   parseHomeAwayTotal(node.Get("total")),
	}

	underOver := node.Get("under_over")
	if underOver.ValueType() != jsoniter.ObjectValue {
		return goals
	}

	goals.UnderOver = make(map[string]models.OverUnderCount)
	for _, line := range underOver.Keys() {
		goals.UnderOver[line] = models.OverUnderCount{
			Over:  int(number(underOver, line, "over")),
			Under: int(number(underOver, line, "under")),
		}
	}
	return goals
}

func parseHomeAwayTotal(node jsoniter.Any) models.HomeAwayTotal {
	return models.HomeAwayTotal{
		Home:  number(node, "home"),
		Away:  number(node, "away"),
		Total: number(node, "total"),
	}
}

// number reads a leaf through SafeNumber, so absent paths and
// non-numeric values are zero
func number(node jsoniter.Any, path ...interface{}) float64 {
	leaf := node.Get(path...)
	switch leaf.ValueType() {
	case jsoniter.NumberValue, jsoniter.StringValue:
		return SafeNumber(leaf.GetInterface(), 0)
	default:
		return 0
	}
}

func text(node jsoniter.Any, fallback string) string {
	if node.ValueType() != jsoniter.StringValue {
		return fallback
	}
	if s := strings.TrimSpace(node.ToString()); s != "" {
		return s
	}
	return fallback
}
