// Package mock generates deterministic synthetic data for every provider
// capability. The same (date, league) inputs always produce the same
// games, rosters, stats, lines and box scores, which keeps the pipeline
// reproducible end to end without any external API.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

func init() {
	providers.Register(providers.ModeMock, func(logger *logrus.Logger) (*providers.Bundle, error) {
		p := &Provider{logger: logger, now: time.Now}
		return &providers.Bundle{
			Schedule: p,
			Roster:   p,
			Stats:    p,
			Injury:   p,
			Odds:     p,
			BoxScore: p,
		}, nil
	})
}

// Provider implements every capability contract from seeded generators.
type Provider struct {
	logger *logrus.Logger
	now    func() time.Time
}

// New returns a standalone mock provider, used directly by tests.
func New(logger *logrus.Logger) *Provider {
	return &Provider{logger: logger, now: time.Now}
}

var teamsByLeague = map[string][]string{
	"nba": {"BOS", "DEN", "MIL", "PHX", "GSW", "LAL", "NYK", "MIA"},
	"nfl": {"KC", "SF", "BUF", "PHI", "DAL", "BAL", "DET", "MIA"},
	"epl": {"ARS", "MCI", "LIV", "CHE", "TOT", "MUN", "NEW", "AVL"},
	"lol": {"T1", "GEN", "JDG", "BLG", "G2", "FNC", "TL", "C9"},
}

var firstNames = []string{"Jordan", "Marcus", "Tyler", "Devin", "Luka", "Jamal", "Kai", "Andre", "Victor", "Cole", "Darius", "Mattheus"}
var lastNames = []string{"Reed", "Calloway", "Brooks", "Santana", "Vance", "Okafor", "Hale", "Mercer", "Duval", "Kessler", "Ashford", "Rojas"}

func seedFor(parts ...string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "|")))
	return int64(h.Sum64())
}

func rngFor(parts ...string) *rand.Rand {
	return rand.New(rand.NewSource(seedFor(parts...)))
}

// GetGames returns 4 deterministic matchups for the date. Dates in the
// past come back final so evaluation has something to reconcile.
func (p *Provider) GetGames(ctx context.Context, date string, league sports.League) ([]models.Game, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}

	rng := rngFor("schedule", league.Code, date)
	teams := append([]string(nil), teamsByLeague[league.Code]...)
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	status := models.GameScheduled
	if day.Before(p.now().UTC().Truncate(24 * time.Hour)) {
		status = models.GameFinal
	}

	games := make([]models.Game, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		games = append(games, models.Game{
			ID:        fmt.Sprintf("%s_%s_%d", league.Code, strings.ReplaceAll(date, "-", ""), i/2),
			Sport:     league.Sport,
			League:    league.Code,
			HomeTeam:  teams[i],
			AwayTeam:  teams[i+1],
			StartTime: day.Add(time.Duration(18+rng.Intn(4)) * time.Hour),
			Status:    status,
		})
	}
	return games, nil
}

// GetRosters returns 6 players per side. Player identity is a pure
// function of (league, team), so rosters are stable across dates.
func (p *Provider) GetRosters(ctx context.Context, gameIDs []string, league sports.League) (map[string][]models.Player, error) {
	rosters := make(map[string][]models.Player, len(gameIDs))
	for _, gameID := range gameIDs {
		teams, err := teamsForGame(gameID, league)
		if err != nil {
			return nil, err
		}
		var players []models.Player
		for _, team := range teams {
			players = append(players, teamRoster(league, team)...)
		}
		rosters[gameID] = players
	}
	return rosters, nil
}

func teamRoster(league sports.League, team string) []models.Player {
	rng := rngFor("roster", league.Code, team)
	players := make([]models.Player, 0, 6)
	for i := 0; i < 6; i++ {
		players = append(players, models.Player{
			ID:       fmt.Sprintf("%s_%s_p%d", league.Code, strings.ToLower(team), i+1),
			Name:     fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			Team:     team,
			Position: fmt.Sprintf("P%d", i+1),
		})
	}
	return players
}

// teamsForGame re-derives the matchup from the schedule generator so the
// roster and box score providers agree with the schedule.
func teamsForGame(gameID string, league sports.League) ([]string, error) {
	parts := strings.Split(gameID, "_")
	if len(parts) != 3 || len(parts[1]) != 8 {
		return nil, fmt.Errorf("malformed game id %q", gameID)
	}
	date := fmt.Sprintf("%s-%s-%s", parts[1][:4], parts[1][4:6], parts[1][6:])
	rng := rngFor("schedule", league.Code, date)
	teams := append([]string(nil), teamsByLeague[league.Code]...)
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	var idx int
	if _, err := fmt.Sscanf(parts[2], "%d", &idx); err != nil {
		return nil, fmt.Errorf("malformed game id %q", gameID)
	}
	if idx*2+1 >= len(teams) {
		return nil, fmt.Errorf("game index out of range in %q", gameID)
	}
	return []string{teams[idx*2], teams[idx*2+1]}, nil
}

// baselineStats returns a league's baseline stat keys in sorted order.
// Generators that draw noise per stat must walk stats in a fixed order,
// or the draws land on different stats between calls.
func baselineStats(league sports.League) []string {
	stats := make([]string, 0, len(league.Baselines))
	for stat := range league.Baselines {
		stats = append(stats, stat)
	}
	sort.Strings(stats)
	return stats
}

// playerBase anchors a player's true talent level for a stat.
func playerBase(league sports.League, playerID, stat string) float64 {
	rng := rngFor("base", league.Code, playerID, stat)
	baseline := league.Baseline(stat)
	// Spread talent between 0.4x and 1.9x of the league baseline.
	return baseline * (0.4 + rng.Float64()*1.5)
}

func (p *Provider) GetRecentPlayerStats(ctx context.Context, playerIDs []string, league sports.League, lookback int) (map[string][]models.StatLine, error) {
	stats := baselineStats(league)
	out := make(map[string][]models.StatLine, len(playerIDs))
	for _, id := range playerIDs {
		rng := rngFor("history", league.Code, id)
		lines := make([]models.StatLine, 0, lookback)
		for g := 0; g < lookback; g++ {
			line := models.StatLine{}
			for _, stat := range stats {
				base := playerBase(league, id, stat)
				noise := 1 + (rng.Float64()-0.5)*0.5
				line[stat] = round1(base * noise)
			}
			lines = append(lines, line)
		}
		out[id] = lines
	}
	return out, nil
}

func (p *Provider) GetHistoricalTeamStats(ctx context.Context, teamIDs []string, league sports.League) (map[string]models.TeamAverages, error) {
	out := make(map[string]models.TeamAverages, len(teamIDs))
	for _, team := range teamIDs {
		rng := rngFor("teamstats", league.Code, team)
		anchor := league.TeamScoreAnchor
		out[team] = models.TeamAverages{
			league.PrimaryStat: round1(anchor * (0.9 + rng.Float64()*0.2)),
		}
	}
	return out, nil
}

var injuryStatuses = []string{models.InjuryOut, models.InjuryDoubtful, models.InjuryQuestionable, models.InjuryProbable}

// GetInjuryReport flags roughly one player per team.
func (p *Provider) GetInjuryReport(ctx context.Context, date string, league sports.League) ([]models.PlayerInjury, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}
	var report []models.PlayerInjury
	for _, team := range teamsByLeague[league.Code] {
		rng := rngFor("injury", league.Code, team, date)
		if rng.Float64() > 0.6 {
			continue
		}
		roster := teamRoster(league, team)
		pl := roster[rng.Intn(len(roster))]
		report = append(report, models.PlayerInjury{
			PlayerID:   pl.ID,
			PlayerName: pl.Name,
			Team:       team,
			Status:     injuryStatuses[rng.Intn(len(injuryStatuses))],
		})
	}
	return report, nil
}

// marketsForSport lists the player prop markets the mock book quotes.
var marketsForSport = map[string][]string{
	sports.Basketball: {"POINTS", "REBOUNDS", "ASSISTS", "THREES", "PRA"},
	sports.Football:   {"PASSING_YARDS", "RUSHING_YARDS", "RECEIVING_YARDS", "RECEPTIONS"},
	sports.Soccer:     {"GOALS", "SHOTS"},
	sports.Esports:    {"KILLS"},
}

var marketToBaseStat = map[string]string{
	"POINTS": "points", "REBOUNDS": "rebounds", "ASSISTS": "assists",
	"THREES": "threes", "PRA": "points",
	"PASSING_YARDS": "passing_yards", "RUSHING_YARDS": "rushing_yards",
	"RECEIVING_YARDS": "receiving_yards", "RECEPTIONS": "receptions",
	"GOALS": "goals", "SHOTS": "shots", "KILLS": "kills",
}

// GetConsensusProps quotes lines near each player's talent anchor with
// book noise, plus team and game totals per game.
func (p *Provider) GetConsensusProps(ctx context.Context, date string, league sports.League) ([]models.PropMarket, error) {
	games, err := p.GetGames(ctx, date, league)
	if err != nil {
		return nil, err
	}

	var props []models.PropMarket
	for _, game := range games {
		rng := rngFor("odds", league.Code, game.ID)
		for _, team := range []string{game.HomeTeam, game.AwayTeam} {
			for _, pl := range teamRoster(league, team) {
				for _, market := range marketsForSport[league.Sport] {
					base := playerBase(league, pl.ID, marketToBaseStat[market])
					if market == "PRA" {
						base = playerBase(league, pl.ID, "points") +
							playerBase(league, pl.ID, "rebounds") +
							playerBase(league, pl.ID, "assists")
					}
					line := base * (0.9 + rng.Float64()*0.2)
					props = append(props, models.PropMarket{
						GameID:      game.ID,
						League:      league.Code,
						Subject:     pl.ID,
						SubjectName: pl.Name,
						Team:        team,
						Market:      market,
						Line:        roundHalf(line),
					})
				}
			}
			props = append(props, models.PropMarket{
				GameID:      game.ID,
				League:      league.Code,
				Subject:     team,
				SubjectName: team,
				Team:        team,
				Market:      "TEAM_TOTAL",
				Line:        roundHalf(league.TeamScoreAnchor * (0.9 + rng.Float64()*0.2)),
			})
		}
		props = append(props, models.PropMarket{
			GameID:      game.ID,
			League:      league.Code,
			SubjectName: fmt.Sprintf("%s @ %s", game.AwayTeam, game.HomeTeam),
			Market:      "GAME_TOTAL",
			Line:        roundHalf(2 * league.TeamScoreAnchor * (0.9 + rng.Float64()*0.2)),
		})
	}
	return props, nil
}

// GetBoxScore fabricates a final box score for past games. Games on or
// after today are reported not final yet.
func (p *Provider) GetBoxScore(ctx context.Context, gameID string, league sports.League) (*models.BoxScore, error) {
	teams, err := teamsForGame(gameID, league)
	if err != nil {
		return nil, err
	}

	box := &models.BoxScore{
		GameID:      gameID,
		HomeTeam:    teams[0],
		AwayTeam:    teams[1],
		PlayerStats: make(map[string]models.StatLine),
	}

	day, err := dateForGame(gameID)
	if err != nil {
		return nil, err
	}
	if !day.Before(p.now().UTC().Truncate(24 * time.Hour)) {
		return box, nil
	}
	box.Final = true

	stats := baselineStats(league)
	rng := rngFor("boxscore", league.Code, gameID)
	for _, team := range teams {
		for _, pl := range teamRoster(league, team) {
			line := models.StatLine{}
			for _, stat := range stats {
				base := playerBase(league, pl.ID, stat)
				line[stat] = round1(base * (1 + (rng.Float64()-0.5)*0.6))
			}
			box.PlayerStats[pl.ID] = line
		}
		score := round1(league.TeamScoreAnchor * (0.85 + rng.Float64()*0.3))
		if team == box.HomeTeam {
			box.HomeScore = score
		} else {
			box.AwayScore = score
		}
	}
	return box, nil
}

func dateForGame(gameID string) (time.Time, error) {
	parts := strings.Split(gameID, "_")
	if len(parts) != 3 || len(parts[1]) != 8 {
		return time.Time{}, fmt.Errorf("malformed game id %q", gameID)
	}
	return models.ParseDate(fmt.Sprintf("%s-%s-%s", parts[1][:4], parts[1][4:6], parts[1][6:]))
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

// roundHalf snaps a line to the nearest 0.5, the way books quote props.
func roundHalf(v float64) float64 {
	return float64(int(v*2+0.5)) / 2
}
