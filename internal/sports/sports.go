package sports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ataymia/slipsmith-sub000/internal/models"
)

// Sport kinds.
const (
	Basketball = "basketball"
	Football   = "football"
	Soccer     = "soccer"
	Esports    = "esports"
)

// League describes one supported competition and its calibration values.
type League struct {
	Code        string
	Sport       string
	PrimaryStat string
	// MinPicks is the per-league minimum slip size.
	MinPicks int
	// TeamTotalThreshold normalizes team/game total deltas for this sport.
	TeamTotalThreshold float64
	// TeamScoreAnchor is a typical per-game team score for the sport,
	// used when a team has no historical averages.
	TeamScoreAnchor float64
	// Baselines are per-game defaults for players with no history.
	Baselines map[string]float64
}

var leagues = map[string]League{
	"nba": {
		Code:               "nba",
		Sport:              Basketball,
		PrimaryStat:        "points",
		MinPicks:           30,
		TeamTotalThreshold: 5.0,
		TeamScoreAnchor:    112,
		Baselines: map[string]float64{
			"points":   11.5,
			"rebounds": 4.2,
			"assists":  2.4,
			"threes":   1.1,
		},
	},
	"nfl": {
		Code:               "nfl",
		Sport:              Football,
		PrimaryStat:        "points",
		MinPicks:           15,
		TeamTotalThreshold: 3.0,
		TeamScoreAnchor:    22.5,
		Baselines: map[string]float64{
			"passing_yards":   165,
			"rushing_yards":   28,
			"receiving_yards": 31,
			"receptions":      2.6,
		},
	},
	"epl": {
		Code:               "epl",
		Sport:              Soccer,
		PrimaryStat:        "goals",
		MinPicks:           20,
		TeamTotalThreshold: 0.5,
		TeamScoreAnchor:    1.4,
		Baselines: map[string]float64{
			"goals": 0.28,
			"shots": 1.6,
		},
	},
	"lol": {
		Code:               "lol",
		Sport:              Esports,
		PrimaryStat:        "kills",
		MinPicks:           20,
		TeamTotalThreshold: 3.0,
		TeamScoreAnchor:    12,
		Baselines: map[string]float64{
			"kills": 3.4,
		},
	},
}

// Lookup resolves a league code, case-insensitively.
func Lookup(code string) (League, error) {
	lg, ok := leagues[strings.ToLower(code)]
	if !ok {
		return League{}, fmt.Errorf("%w: %q", models.ErrUnknownLeague, code)
	}
	return lg, nil
}

// Codes returns all supported league codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(leagues))
	for code := range leagues {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Baseline returns the no-history default for a stat, falling back to the
// primary-stat baseline when the stat itself has none.
func (l League) Baseline(stat string) float64 {
	if v, ok := l.Baselines[stat]; ok {
		return v
	}
	return l.Baselines[l.PrimaryStat]
}
