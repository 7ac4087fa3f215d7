package edge

import (
	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Team-level market codes.
const (
	MarketTeamTotal = "TEAM_TOTAL"
	MarketGameTotal = "GAME_TOTAL"
)

// marketStats maps a market code to the projection stat key it settles
// against. Lines for unmapped markets are skipped, never errored.
var marketStats = map[string]string{
	"POINTS":          "points",
	"REBOUNDS":        "rebounds",
	"ASSISTS":         "assists",
	"THREES":          "threes",
	"PR":              "pr",
	"PRA":             "pra",
	"PASSING_YARDS":   "passing_yards",
	"RUSHING_YARDS":   "rushing_yards",
	"RECEIVING_YARDS": "receiving_yards",
	"RECEPTIONS":      "receptions",
	"GOALS":           "goals",
	"SHOTS":           "shots",
	"KILLS":           "kills",
}

// marketThresholds are sport-calibrated standard-deviation-like constants
// used to normalize projection-vs-line deltas.
var marketThresholds = map[string]float64{
	"POINTS":          4.0,
	"REBOUNDS":        2.5,
	"ASSISTS":         1.5,
	"THREES":          1.1,
	"PR":              5.0,
	"PRA":             6.0,
	"PASSING_YARDS":   35,
	"RUSHING_YARDS":   25,
	"RECEIVING_YARDS": 22,
	"RECEPTIONS":      1.5,
	"GOALS":           0.5,
	"SHOTS":           1.2,
	"KILLS":           3.0,
}

// StatFor resolves the projection stat key for a player market.
func StatFor(market string) (string, bool) {
	stat, ok := marketStats[market]
	return stat, ok
}

// IsTeamMarket reports whether the market settles on team scores.
func IsTeamMarket(market string) bool {
	return market == MarketTeamTotal || market == MarketGameTotal
}

// ThresholdFor returns the normalization constant for a market. Team
// markets use the sport calibration from the league registry.
func ThresholdFor(market string, league sports.League) float64 {
	if IsTeamMarket(market) {
		if league.TeamTotalThreshold > 0 {
			return league.TeamTotalThreshold
		}
		return 3.0
	}
	return marketThresholds[market]
}

// DisplayName returns the human-readable market label used in exports.
func DisplayName(market string) string {
	return models.MarketLabel(market)
}
