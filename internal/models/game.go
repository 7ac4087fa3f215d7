package models

import (
	"time"
)

// GameStatus is the lifecycle state reported by the schedule provider.
type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameFinal      GameStatus = "final"
	GamePostponed  GameStatus = "postponed"
	GameCancelled  GameStatus = "cancelled"
)

// Game is a scheduled matchup as returned by the schedule provider.
// Immutable within a single pipeline run.
type Game struct {
	ID        string     `json:"id"`
	Sport     string     `json:"sport"`
	League    string     `json:"league"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	StartTime time.Time  `json:"start_time"`
	Status    GameStatus `json:"status"`
}

// Player is a roster entry.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

// Injury statuses as reported by the injury provider.
const (
	InjuryOut          = "OUT"
	InjuryDoubtful     = "Doubtful"
	InjuryQuestionable = "Questionable"
	InjuryProbable     = "Probable"
	InjuryActive       = "Active"
)

// PlayerInjury is one line of an injury report.
type PlayerInjury struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
}

// StatLine holds one game's raw stats for a player, stat name -> value.
type StatLine map[string]float64

// TeamAverages holds per-game averages for a team, stat name -> value.
type TeamAverages map[string]float64

// BoxScore is the completed-game result used by evaluation.
type BoxScore struct {
	GameID    string  `json:"game_id"`
	Final     bool    `json:"final"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
	// PlayerStats maps player id -> stat name -> value.
	PlayerStats map[string]StatLine `json:"player_stats"`
}

// PropMarket is a single consensus line quote supplied by the odds provider.
// Subject is empty for game-level markets.
type PropMarket struct {
	GameID      string  `json:"game_id"`
	League      string  `json:"league"`
	Subject     string  `json:"subject"`
	SubjectName string  `json:"subject_name"`
	Team        string  `json:"team"`
	Market      string  `json:"market"`
	Line        float64 `json:"line"`
}
