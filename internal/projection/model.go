package projection

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Config carries the tunable constants of the projection model.
type Config struct {
	// LookbackGames is the historical window per player.
	LookbackGames int
	// RecencyWeight is the geometric weighting base: game i (0 = most
	// recent) of n receives weight RecencyWeight^(n-i-1).
	RecencyWeight float64
	// HomeAdvantage adjusts team scoring: home 1+adv, away 1-adv.
	HomeAdvantage float64
}

// DefaultConfig mirrors the calibration the pipeline ships with.
func DefaultConfig() Config {
	return Config{
		LookbackGames: 10,
		RecencyWeight: 1.5,
		HomeAdvantage: 0.03,
	}
}

const (
	baseTeamConfidence   = 0.7
	basePlayerConfidence = 0.5
	historyConfidence    = 0.45 // added pro-rata with sample coverage
	fallbackConfidence   = 0.35 // player with no history at all
)

// Model turns historical stat samples into forward-looking per-team and
// per-player estimates for a date and league.
type Model struct {
	schedule providers.ScheduleProvider
	roster   providers.RosterProvider
	stats    providers.StatsProvider
	injury   providers.InjuryProvider
	cfg      Config
	logger   *logrus.Logger
}

func NewModel(bundle *providers.Bundle, cfg Config, logger *logrus.Logger) *Model {
	if cfg.LookbackGames <= 0 {
		cfg = DefaultConfig()
	}
	return &Model{
		schedule: bundle.Schedule,
		roster:   bundle.Roster,
		stats:    bundle.Stats,
		injury:   bundle.Injury,
		cfg:      cfg,
		logger:   logger,
	}
}

// GenerateDate produces one projection per scheduled game. A provider
// failure for a single player or game skips that item and continues; a
// schedule failure yields an empty result, never an abort.
func (m *Model) GenerateDate(ctx context.Context, date string, league sports.League) ([]models.GameProjection, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}

	log := m.logger.WithFields(logrus.Fields{"league": league.Code, "date": date})

	games, err := m.schedule.GetGames(ctx, date, league)
	if err != nil {
		log.WithError(err).Warn("Schedule lookup failed, treating date as empty")
		return nil, nil
	}
	if len(games) == 0 {
		return nil, nil
	}

	injuries := m.fetchInjuries(ctx, date, league, log)

	gameIDs := make([]string, 0, len(games))
	teamIDs := make([]string, 0, 2*len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.ID)
		teamIDs = append(teamIDs, g.HomeTeam, g.AwayTeam)
	}

	rosters, err := m.roster.GetRosters(ctx, gameIDs, league)
	if err != nil {
		log.WithError(err).Warn("Roster lookup failed, player projections unavailable")
		rosters = map[string][]models.Player{}
	}

	teamStats, err := m.stats.GetHistoricalTeamStats(ctx, teamIDs, league)
	if err != nil {
		log.WithError(err).Warn("Team stats lookup failed, using sport anchors")
		teamStats = map[string]models.TeamAverages{}
	}

	projections := make([]models.GameProjection, 0, len(games))
	for _, game := range games {
		gp := models.GameProjection{
			Game: game,
			Home: m.projectTeam(game.HomeTeam, true, teamStats, league),
			Away: m.projectTeam(game.AwayTeam, false, teamStats, league),
		}
		gp.Players = m.projectPlayers(ctx, rosters[game.ID], injuries, league, log)
		projections = append(projections, gp)
	}

	log.WithField("games", len(projections)).Debug("Projection run complete")
	return projections, nil
}

func (m *Model) fetchInjuries(ctx context.Context, date string, league sports.League, log *logrus.Entry) map[string]models.PlayerInjury {
	report, err := m.injury.GetInjuryReport(ctx, date, league)
	if err != nil {
		log.WithError(err).Warn("Injury report unavailable, projecting everyone healthy")
		return nil
	}
	byPlayer := make(map[string]models.PlayerInjury, len(report))
	for _, inj := range report {
		byPlayer[inj.PlayerID] = inj
	}
	return byPlayer
}

func (m *Model) projectTeam(teamID string, home bool, teamStats map[string]models.TeamAverages, league sports.League) models.TeamProjection {
	base := league.TeamScoreAnchor
	confidence := baseTeamConfidence
	if avgs, ok := teamStats[teamID]; ok {
		if v, ok := avgs[league.PrimaryStat]; ok && v > 0 {
			base = v
		}
	} else {
		confidence = baseTeamConfidence * 0.8
	}

	factor := 1 + m.cfg.HomeAdvantage
	kind := "home_advantage"
	desc := "home side boost"
	if !home {
		factor = 1 - m.cfg.HomeAdvantage
		kind = "away_adjustment"
		desc = "away side penalty"
	}

	return models.TeamProjection{
		TeamID:     teamID,
		Stats:      map[string]float64{league.PrimaryStat: base * factor},
		Confidence: confidence,
		Adjustments: []models.Adjustment{
			{Kind: kind, Factor: factor, Description: desc},
		},
	}
}

func (m *Model) projectPlayers(ctx context.Context, roster []models.Player, injuries map[string]models.PlayerInjury, league sports.League, log *logrus.Entry) []models.PlayerProjection {
	if len(roster) == 0 {
		return nil
	}

	eligible := make([]models.Player, 0, len(roster))
	for _, pl := range roster {
		if inj, ok := injuries[pl.ID]; ok && inj.Status == models.InjuryOut {
			log.WithField("player", pl.Name).Debug("Player out, excluded from projection")
			continue
		}
		eligible = append(eligible, pl)
	}
	if len(eligible) == 0 {
		return nil
	}

	ids := make([]string, 0, len(eligible))
	for _, pl := range eligible {
		ids = append(ids, pl.ID)
	}

	history, err := m.stats.GetRecentPlayerStats(ctx, ids, league, m.cfg.LookbackGames)
	if err != nil {
		log.WithError(err).Warn("Player stats lookup failed, falling back to baselines")
		history = map[string][]models.StatLine{}
	}

	out := make([]models.PlayerProjection, 0, len(eligible))
	for _, pl := range eligible {
		proj := m.projectPlayer(pl, history[pl.ID], league)
		if inj, ok := injuries[pl.ID]; ok {
			applyInjury(&proj, inj, m.logger)
		}
		out = append(out, proj)
	}
	return out
}

func (m *Model) projectPlayer(pl models.Player, lines []models.StatLine, league sports.League) models.PlayerProjection {
	proj := models.PlayerProjection{
		PlayerID:   pl.ID,
		PlayerName: pl.Name,
		Team:       pl.Team,
		Stats:      make(map[string]float64, len(league.Baselines)+2),
	}

	if len(lines) == 0 {
		for stat, baseline := range league.Baselines {
			proj.Stats[stat] = baseline
		}
		proj.Confidence = fallbackConfidence
		proj.Adjustments = append(proj.Adjustments, models.Adjustment{
			Kind:        "baseline_fallback",
			Factor:      1,
			Description: "no historical games, using sport baseline",
		})
		addComboStats(proj.Stats, league)
		return proj
	}

	if len(lines) > m.cfg.LookbackGames {
		lines = lines[:m.cfg.LookbackGames]
	}
	n := len(lines)

	for stat := range league.Baselines {
		var weighted, totalWeight float64
		for i, line := range lines {
			weight := math.Pow(m.cfg.RecencyWeight, float64(n-i-1))
			weighted += line[stat] * weight
			totalWeight += weight
		}
		if totalWeight > 0 {
			proj.Stats[stat] = weighted / totalWeight
		}
	}

	coverage := float64(n) / float64(m.cfg.LookbackGames)
	if coverage > 1 {
		coverage = 1
	}
	proj.Confidence = basePlayerConfidence + historyConfidence*coverage
	addComboStats(proj.Stats, league)
	return proj
}

// addComboStats derives the combined prop stats once their components
// exist. Only basketball quotes combo markets today.
func addComboStats(stats map[string]float64, league sports.League) {
	if league.Sport != sports.Basketball {
		return
	}
	points, hasPoints := stats["points"]
	rebounds, hasRebounds := stats["rebounds"]
	assists, hasAssists := stats["assists"]
	if hasPoints && hasRebounds {
		stats["pr"] = points + rebounds
	}
	if hasPoints && hasRebounds && hasAssists {
		stats["pra"] = points + rebounds + assists
	}
}

// applyInjury scales all projected stats and confidence by the status
// multiplier and records the adjustment.
func applyInjury(proj *models.PlayerProjection, inj models.PlayerInjury, logger *logrus.Logger) {
	mult := injuryMultiplier(inj.Status, logger)
	if mult == 1.0 {
		return
	}
	for stat, v := range proj.Stats {
		proj.Stats[stat] = v * mult
	}
	proj.Confidence *= mult
	proj.Adjustments = append(proj.Adjustments, models.Adjustment{
		Kind:        "injury",
		Factor:      mult,
		Description: "listed " + inj.Status + " on injury report",
	})
}
