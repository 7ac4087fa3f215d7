package models

// Adjustment records one multiplicative factor applied to a projection.
type Adjustment struct {
	Kind        string  `json:"kind"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}

// PlayerProjection is the forward-looking stat estimate for a single player.
// Ephemeral: recomputed on every generation call.
type PlayerProjection struct {
	PlayerID    string             `json:"player_id"`
	PlayerName  string             `json:"player_name"`
	Team        string             `json:"team"`
	Stats       map[string]float64 `json:"stats"`
	Confidence  float64            `json:"confidence"`
	Adjustments []Adjustment       `json:"adjustments,omitempty"`
}

// TeamProjection is the forward-looking estimate for one side of a game.
type TeamProjection struct {
	TeamID      string             `json:"team_id"`
	Stats       map[string]float64 `json:"stats"`
	Confidence  float64            `json:"confidence"`
	Adjustments []Adjustment       `json:"adjustments,omitempty"`
}

// GameProjection bundles everything projected for one scheduled game.
type GameProjection struct {
	Game    Game               `json:"game"`
	Home    TeamProjection     `json:"home"`
	Away    TeamProjection     `json:"away"`
	Players []PlayerProjection `json:"players"`
}

// HasAdjustment reports whether an adjustment of the given kind was applied.
func (p *PlayerProjection) HasAdjustment(kind string) (Adjustment, bool) {
	for _, adj := range p.Adjustments {
		if adj.Kind == kind {
			return adj, true
		}
	}
	return Adjustment{}, false
}
