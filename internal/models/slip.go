package models

import "strings"

// marketLabels maps market codes to the human-readable names used in
// exported slips. Part of the export contract.
var marketLabels = map[string]string{
	"POINTS":          "points",
	"REBOUNDS":        "rebounds",
	"ASSISTS":         "assists",
	"THREES":          "threes made",
	"PR":              "points+rebounds",
	"PRA":             "points+rebounds+assists",
	"PASSING_YARDS":   "passing yards",
	"RUSHING_YARDS":   "rushing yards",
	"RECEIVING_YARDS": "receiving yards",
	"RECEPTIONS":      "receptions",
	"GOALS":           "goals",
	"SHOTS":           "shots",
	"KILLS":           "kills",
	"TEAM_TOTAL":      "team total",
	"GAME_TOTAL":      "game total",
}

// MarketLabel returns the export label for a market code.
func MarketLabel(market string) string {
	if label, ok := marketLabels[market]; ok {
		return label
	}
	return strings.ToLower(strings.ReplaceAll(market, "_", " "))
}

// Tier is an output access level controlling slip size.
type Tier string

const (
	TierStarter Tier = "starter"
	TierPro     Tier = "pro"
	TierVIP     Tier = "vip"
)

// ValidTier reports whether t is a recognized tier.
func ValidTier(t Tier) bool {
	switch t {
	case TierStarter, TierPro, TierVIP:
		return true
	}
	return false
}

// Slip is the exported artifact. Key names are a stable contract with
// downstream consumers and must not change.
type Slip struct {
	SlipID  string      `json:"slip_id"`
	Date    string      `json:"date"`
	Sport   string      `json:"sport"`
	Tier    Tier        `json:"tier"`
	Warning string      `json:"warning,omitempty"`
	Events  []SlipEvent `json:"events"`
}

// SlipEvent is the human-facing projection of an Event.
type SlipEvent struct {
	EventID     string  `json:"event_id"`
	GameID      string  `json:"game_id"`
	Time        string  `json:"time"`
	Player      string  `json:"player"`
	Team        string  `json:"team"`
	Market      string  `json:"market"`
	Line        float64 `json:"line"`
	Direction   string  `json:"direction"`
	Probability string  `json:"probability"`
	Reasoning   string  `json:"reasoning"`
}
