package services

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

type flakySchedule struct {
	err   error
	calls int
}

func (f *flakySchedule) GetGames(_ context.Context, _ string, _ sports.League) ([]models.Game, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Game{{ID: "nba_20250115_0", League: "nba"}}, nil
}

func guardedBundle(schedule providers.ScheduleProvider) *providers.Bundle {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGuardedProviders(&providers.Bundle{Schedule: schedule}, time.Minute, logger)
}

func testLeague(t *testing.T) sports.League {
	t.Helper()
	league, err := sports.Lookup("nba")
	require.NoError(t, err)
	return league
}

func TestGuardedProvidersPassThrough(t *testing.T) {
	inner := &flakySchedule{}
	bundle := guardedBundle(inner)

	games, err := bundle.Schedule.GetGames(context.Background(), "2025-01-15", testLeague(t))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := &flakySchedule{err: errors.New("upstream 503")}
	bundle := guardedBundle(inner)
	ctx := context.Background()
	league := testLeague(t)

	for i := 0; i < 5; i++ {
		_, err := bundle.Schedule.GetGames(ctx, "2025-01-15", league)
		require.Error(t, err)
	}

	// The breaker is open now: calls fail fast without reaching upstream.
	callsBefore := inner.calls
	_, err := bundle.Schedule.GetGames(ctx, "2025-01-15", league)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.Equal(t, callsBefore, inner.calls)
}

func TestRateLimiterHonorsCancelledContext(t *testing.T) {
	inner := &flakySchedule{}
	bundle := guardedBundle(inner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bundle.Schedule.GetGames(ctx, "2025-01-15", testLeague(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, inner.calls)
}
