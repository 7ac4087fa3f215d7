package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Per-capability request rate toward upstream data sources. Bursts cover
// a full pipeline run; the sustained rate keeps live feeds unbothered.
const (
	providerRateLimit = rate.Limit(10)
	providerRateBurst = 50
)

// GuardedProviders wraps a provider bundle so every capability call runs
// through its own rate limiter and circuit breaker. An open breaker
// surfaces as ErrProviderUnavailable, which the pipeline's
// partial-failure policy already handles per item.
type GuardedProviders struct {
	inner    *providers.Bundle
	breakers map[string]*gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter
	logger   *logrus.Logger
}

func NewGuardedProviders(inner *providers.Bundle, timeout time.Duration, logger *logrus.Logger) *providers.Bundle {
	g := &GuardedProviders{
		inner:    inner,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		limiters: make(map[string]*rate.Limiter),
		logger:   logger,
	}
	for _, name := range []string{"schedule", "roster", "stats", "injury", "odds", "boxscore"} {
		g.limiters[name] = rate.NewLimiter(providerRateLimit, providerRateBurst)
		g.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"component": "circuit_breaker",
					"provider":  name,
					"from":      from.String(),
					"to":        to.String(),
				}).Info("Circuit breaker state changed")
			},
		})
	}
	return &providers.Bundle{
		Schedule: g,
		Roster:   g,
		Stats:    g,
		Injury:   g,
		Odds:     g,
		BoxScore: g,
	}
}

func (g *GuardedProviders) execute(ctx context.Context, name string, fn func() (interface{}, error)) (interface{}, error) {
	if err := g.limiters[name].Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limit wait: %w", name, err)
	}
	out, err := g.breakers[name].Execute(fn)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, fmt.Errorf("%s circuit open: %w", name, models.ErrProviderUnavailable)
	}
	return out, err
}

func (g *GuardedProviders) GetGames(ctx context.Context, date string, league sports.League) ([]models.Game, error) {
	out, err := g.execute(ctx, "schedule", func() (interface{}, error) {
		return g.inner.Schedule.GetGames(ctx, date, league)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Game), nil
}

func (g *GuardedProviders) GetRosters(ctx context.Context, gameIDs []string, league sports.League) (map[string][]models.Player, error) {
	out, err := g.execute(ctx, "roster", func() (interface{}, error) {
		return g.inner.Roster.GetRosters(ctx, gameIDs, league)
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string][]models.Player), nil
}

func (g *GuardedProviders) GetRecentPlayerStats(ctx context.Context, playerIDs []string, league sports.League, lookback int) (map[string][]models.StatLine, error) {
	out, err := g.execute(ctx, "stats", func() (interface{}, error) {
		return g.inner.Stats.GetRecentPlayerStats(ctx, playerIDs, league, lookback)
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string][]models.StatLine), nil
}

func (g *GuardedProviders) GetHistoricalTeamStats(ctx context.Context, teamIDs []string, league sports.League) (map[string]models.TeamAverages, error) {
	out, err := g.execute(ctx, "stats", func() (interface{}, error) {
		return g.inner.Stats.GetHistoricalTeamStats(ctx, teamIDs, league)
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]models.TeamAverages), nil
}

func (g *GuardedProviders) GetInjuryReport(ctx context.Context, date string, league sports.League) ([]models.PlayerInjury, error) {
	out, err := g.execute(ctx, "injury", func() (interface{}, error) {
		return g.inner.Injury.GetInjuryReport(ctx, date, league)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.PlayerInjury), nil
}

func (g *GuardedProviders) GetConsensusProps(ctx context.Context, date string, league sports.League) ([]models.PropMarket, error) {
	out, err := g.execute(ctx, "odds", func() (interface{}, error) {
		return g.inner.Odds.GetConsensusProps(ctx, date, league)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.PropMarket), nil
}

func (g *GuardedProviders) GetBoxScore(ctx context.Context, gameID string, league sports.League) (*models.BoxScore, error) {
	out, err := g.execute(ctx, "boxscore", func() (interface{}, error) {
		return g.inner.BoxScore.GetBoxScore(ctx, gameID, league)
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.BoxScore), nil
}
