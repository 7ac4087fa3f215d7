package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

type stubProviders struct {
	games       []models.Game
	gamesErr    error
	rosters     map[string][]models.Player
	rostersErr  error
	playerStats map[string][]models.StatLine
	statsErr    error
	teamStats   map[string]models.TeamAverages
	injuries    []models.PlayerInjury
}

func (s *stubProviders) GetGames(_ context.Context, _ string, _ sports.League) ([]models.Game, error) {
	return s.games, s.gamesErr
}

func (s *stubProviders) GetRosters(_ context.Context, _ []string, _ sports.League) (map[string][]models.Player, error) {
	return s.rosters, s.rostersErr
}

func (s *stubProviders) GetRecentPlayerStats(_ context.Context, _ []string, _ sports.League, _ int) (map[string][]models.StatLine, error) {
	return s.playerStats, s.statsErr
}

func (s *stubProviders) GetHistoricalTeamStats(_ context.Context, _ []string, _ sports.League) (map[string]models.TeamAverages, error) {
	return s.teamStats, nil
}

func (s *stubProviders) GetInjuryReport(_ context.Context, _ string, _ sports.League) ([]models.PlayerInjury, error) {
	return s.injuries, nil
}

func newTestModel(t *testing.T, stub *stubProviders) *Model {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	bundle := &providers.Bundle{
		Schedule: stub,
		Roster:   stub,
		Stats:    stub,
		Injury:   stub,
	}
	return NewModel(bundle, DefaultConfig(), logger)
}

func nbaLeague(t *testing.T) sports.League {
	t.Helper()
	league, err := sports.Lookup("nba")
	require.NoError(t, err)
	return league
}

func oneGame() []models.Game {
	return []models.Game{{
		ID:        "nba_20250115_0",
		Sport:     sports.Basketball,
		League:    "nba",
		HomeTeam:  "BOS",
		AwayTeam:  "MIA",
		StartTime: time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC),
		Status:    models.GameScheduled,
	}}
}

func oneRoster() map[string][]models.Player {
	return map[string][]models.Player{
		"nba_20250115_0": {
			{ID: "p1", Name: "Jordan Reed", Team: "BOS", Position: "G"},
		},
	}
}

func TestWeightedRecencyAverage(t *testing.T) {
	stub := &stubProviders{
		games:   oneGame(),
		rosters: oneRoster(),
		playerStats: map[string][]models.StatLine{
			// Most recent first: 30, then 20, then 10.
			"p1": {
				{"points": 30},
				{"points": 20},
				{"points": 10},
			},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	require.Len(t, projections, 1)
	require.Len(t, projections[0].Players, 1)

	// weights 1.5^2, 1.5, 1 over (30, 20, 10):
	// (67.5 + 30 + 10) / 4.75
	pl := projections[0].Players[0]
	assert.InDelta(t, 107.5/4.75, pl.Stats["points"], 1e-9)

	// 3 of 10 lookback games: 0.5 + 0.45*0.3
	assert.InDelta(t, 0.635, pl.Confidence, 1e-9)
}

func TestComboStatsDerived(t *testing.T) {
	stub := &stubProviders{
		games:   oneGame(),
		rosters: oneRoster(),
		playerStats: map[string][]models.StatLine{
			"p1": {{"points": 24, "rebounds": 6, "assists": 5}},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	pl := projections[0].Players[0]
	assert.InDelta(t, 30, pl.Stats["pr"], 1e-9)
	assert.InDelta(t, 35, pl.Stats["pra"], 1e-9)
}

func TestBaselineFallbackWithoutHistory(t *testing.T) {
	stub := &stubProviders{
		games:       oneGame(),
		rosters:     oneRoster(),
		playerStats: map[string][]models.StatLine{},
	}
	m := newTestModel(t, stub)
	league := nbaLeague(t)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", league)
	require.NoError(t, err)
	pl := projections[0].Players[0]
	assert.InDelta(t, league.Baselines["points"], pl.Stats["points"], 1e-9)
	assert.InDelta(t, 0.35, pl.Confidence, 1e-9)

	_, ok := pl.HasAdjustment("baseline_fallback")
	assert.True(t, ok)
}

func TestStatsProviderFailureFallsBackToBaselines(t *testing.T) {
	stub := &stubProviders{
		games:    oneGame(),
		rosters:  oneRoster(),
		statsErr: errors.New("upstream timeout"),
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	require.Len(t, projections[0].Players, 1)
	assert.InDelta(t, 0.35, projections[0].Players[0].Confidence, 1e-9)
}

func TestOutPlayersExcluded(t *testing.T) {
	stub := &stubProviders{
		games: oneGame(),
		rosters: map[string][]models.Player{
			"nba_20250115_0": {
				{ID: "p1", Name: "Jordan Reed", Team: "BOS"},
				{ID: "p2", Name: "Alex Cole", Team: "BOS"},
			},
		},
		playerStats: map[string][]models.StatLine{
			"p1": {{"points": 25}},
			"p2": {{"points": 18}},
		},
		injuries: []models.PlayerInjury{
			{PlayerID: "p2", PlayerName: "Alex Cole", Team: "BOS", Status: models.InjuryOut},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	require.Len(t, projections[0].Players, 1)
	assert.Equal(t, "p1", projections[0].Players[0].PlayerID)
}

func TestQuestionableStatusScalesProjection(t *testing.T) {
	stub := &stubProviders{
		games:   oneGame(),
		rosters: oneRoster(),
		playerStats: map[string][]models.StatLine{
			"p1": {{"points": 20}},
		},
		injuries: []models.PlayerInjury{
			{PlayerID: "p1", Status: models.InjuryQuestionable},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	pl := projections[0].Players[0]
	assert.InDelta(t, 17, pl.Stats["points"], 1e-9)

	adj, ok := pl.HasAdjustment("injury")
	require.True(t, ok)
	assert.InDelta(t, 0.85, adj.Factor, 1e-9)
}

func TestUnknownInjuryStatusLeavesProjectionAlone(t *testing.T) {
	stub := &stubProviders{
		games:   oneGame(),
		rosters: oneRoster(),
		playerStats: map[string][]models.StatLine{
			"p1": {{"points": 20}},
		},
		injuries: []models.PlayerInjury{
			{PlayerID: "p1", Status: "Day-To-Day"},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	pl := projections[0].Players[0]
	assert.InDelta(t, 20, pl.Stats["points"], 1e-9)
	_, ok := pl.HasAdjustment("injury")
	assert.False(t, ok)
}

func TestHomeAwayAdjustments(t *testing.T) {
	stub := &stubProviders{
		games: oneGame(),
		teamStats: map[string]models.TeamAverages{
			"BOS": {"points": 110},
			"MIA": {"points": 104},
		},
	}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	require.NoError(t, err)
	gp := projections[0]
	assert.InDelta(t, 110*1.03, gp.Home.Stats["points"], 1e-9)
	assert.InDelta(t, 104*0.97, gp.Away.Stats["points"], 1e-9)
	assert.InDelta(t, 0.7, gp.Home.Confidence, 1e-9)
}

func TestTeamAnchorWhenNoAverages(t *testing.T) {
	stub := &stubProviders{games: oneGame()}
	m := newTestModel(t, stub)
	league := nbaLeague(t)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", league)
	require.NoError(t, err)
	gp := projections[0]
	assert.InDelta(t, league.TeamScoreAnchor*1.03, gp.Home.Stats["points"], 1e-9)
	// Teams without averages carry reduced confidence.
	assert.InDelta(t, 0.56, gp.Home.Confidence, 1e-9)
}

func TestScheduleFailureYieldsEmptyRun(t *testing.T) {
	stub := &stubProviders{gamesErr: errors.New("schedule feed down")}
	m := newTestModel(t, stub)

	projections, err := m.GenerateDate(context.Background(), "2025-01-15", nbaLeague(t))
	assert.NoError(t, err)
	assert.Empty(t, projections)
}

func TestInvalidDateRejected(t *testing.T) {
	m := newTestModel(t, &stubProviders{})
	_, err := m.GenerateDate(context.Background(), "01/15/2025", nbaLeague(t))
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)
}

func TestInjuryMultiplierTable(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	assert.InDelta(t, 1.0, injuryMultiplier(models.InjuryActive, logger), 1e-9)
	assert.InDelta(t, 0.95, injuryMultiplier(models.InjuryProbable, logger), 1e-9)
	assert.InDelta(t, 0.85, injuryMultiplier(models.InjuryQuestionable, logger), 1e-9)
	assert.InDelta(t, 0.6, injuryMultiplier(models.InjuryDoubtful, logger), 1e-9)
	assert.InDelta(t, 1.0, injuryMultiplier("GTD", logger), 1e-9)
}
