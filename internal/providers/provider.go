package providers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Provider modes selectable via PROVIDER_MODE.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// ScheduleProvider looks up scheduled games for a date.
type ScheduleProvider interface {
	GetGames(ctx context.Context, date string, league sports.League) ([]models.Game, error)
}

// RosterProvider looks up active rosters for a set of games.
type RosterProvider interface {
	GetRosters(ctx context.Context, gameIDs []string, league sports.League) (map[string][]models.Player, error)
}

// StatsProvider serves historical player and team performance.
type StatsProvider interface {
	// GetRecentPlayerStats returns up to lookback stat lines per player,
	// most recent first.
	GetRecentPlayerStats(ctx context.Context, playerIDs []string, league sports.League, lookback int) (map[string][]models.StatLine, error)
	GetHistoricalTeamStats(ctx context.Context, teamIDs []string, league sports.League) (map[string]models.TeamAverages, error)
}

// InjuryProvider serves the injury report for a date.
type InjuryProvider interface {
	GetInjuryReport(ctx context.Context, date string, league sports.League) ([]models.PlayerInjury, error)
}

// OddsProvider serves consensus market lines for a date.
type OddsProvider interface {
	GetConsensusProps(ctx context.Context, date string, league sports.League) ([]models.PropMarket, error)
}

// BoxScoreProvider serves completed-game box scores for evaluation.
type BoxScoreProvider interface {
	GetBoxScore(ctx context.Context, gameID string, league sports.League) (*models.BoxScore, error)
}

// Bundle groups the capability contracts the pipeline consumes. Concrete
// sources are selected once at construction time.
type Bundle struct {
	Schedule ScheduleProvider
	Roster   RosterProvider
	Stats    StatsProvider
	Injury   InjuryProvider
	Odds     OddsProvider
	BoxScore BoxScoreProvider
}

// Constructor builds a provider bundle for a given mode.
type Constructor func(logger *logrus.Logger) (*Bundle, error)

var registry = map[string]Constructor{}

// Register installs a constructor for a provider mode. Called from the
// concrete implementations' init functions.
func Register(mode string, ctor Constructor) {
	registry[mode] = ctor
}

// New selects and constructs the provider bundle for the configured mode.
func New(mode string, logger *logrus.Logger) (*Bundle, error) {
	ctor, ok := registry[mode]
	if !ok {
		if mode == ModeLive {
			return nil, fmt.Errorf("live providers not configured: %w", models.ErrProviderUnavailable)
		}
		return nil, fmt.Errorf("unknown provider mode %q", mode)
	}
	bundle, err := ctor(logger)
	if err != nil {
		return nil, fmt.Errorf("construct %s providers: %w", mode, err)
	}
	logger.WithField("provider_mode", mode).Info("Data providers initialized")
	return bundle, nil
}
