package slips

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

type recordingStore struct {
	stored []models.Event
	err    error
}

func (r *recordingStore) StoreEvents(_ context.Context, events []models.Event) error {
	r.stored = append(r.stored, events...)
	return r.err
}

func newTestAssembler(store EventStore) *Assembler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAssembler(store, logger)
}

func nbaLeague(t *testing.T) sports.League {
	t.Helper()
	league, err := sports.Lookup("nba")
	require.NoError(t, err)
	return league
}

func candidate(id string, probability float64) models.Event {
	return models.Event{
		EventID:     id,
		Sport:       sports.Basketball,
		League:      "nba",
		Date:        "2025-11-03",
		GameID:      "nba_20251103_0",
		GameTime:    time.Date(2025, 11, 3, 19, 0, 0, 0, time.UTC),
		Subject:     "p_" + id,
		SubjectName: "Player " + id,
		Team:        "BOS",
		Market:      "POINTS",
		Line:        25.5,
		Direction:   models.DirectionOver,
		Projection:  30,
		Probability: probability,
		EdgeScore:   7.5,
		Rationale:   "Player " + id + " projected 30.0 points vs line 25.5 (slight edge)",
	}
}

func manyCandidates(n int, probability float64) []models.Event {
	events := make([]models.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, candidate(fmt.Sprintf("e%02d", i), probability))
	}
	return events
}

func TestSlipIDDeterministic(t *testing.T) {
	assert.Equal(t, "NBA_2025_11_03_PRO", SlipID("nba", "2025-11-03", models.TierPro))
	assert.Equal(t, "NFL_2025_09_07_VIP", SlipID("NFL", "2025-09-07", models.TierVIP))
}

func TestEventIDStableAndDistinct(t *testing.T) {
	a := EventID("nba", "nba_20251103_0", "p1", "POINTS", 25.5, models.DirectionOver, "2025-11-03")
	b := EventID("nba", "nba_20251103_0", "p1", "POINTS", 25.5, models.DirectionOver, "2025-11-03")
	c := EventID("nba", "nba_20251103_0", "p1", "POINTS", 26.5, models.DirectionOver, "2025-11-03")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "NBA_20251103_")
}

func TestGreenBandSelectedBeforeYellow(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	// Effective probability shrinks raw by 5% at default reliability, so
	// raw 0.85 is green (0.8075) and raw 0.70 is yellow (0.665).
	candidates := append(manyCandidates(5, 0.70), candidate("g1", 0.85))

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierPro,
	}, candidates)
	require.NoError(t, err)
	require.NotEmpty(t, slip.Events)
	assert.Equal(t, "g1", slip.Events[0].EventID)
}

func TestRedBandNeverIncluded(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	// Raw 0.61 passes the raw floor but its effective probability
	// (0.61 * 0.95 = 0.5795) lands in the red band.
	candidates := []models.Event{candidate("red", 0.61), candidate("ok", 0.80)}

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierStarter,
	}, candidates)
	require.NoError(t, err)
	require.Len(t, slip.Events, 1)
	assert.Equal(t, "ok", slip.Events[0].EventID)
}

func TestRawProbabilityFloor(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	slip, err := a.Build(context.Background(), Request{
		League:         nbaLeague(t),
		Date:           "2025-11-03",
		Tier:           models.TierStarter,
		MinProbability: 0.75,
	}, []models.Event{candidate("low", 0.70), candidate("high", 0.80)})
	require.NoError(t, err)
	require.Len(t, slip.Events, 1)
	assert.Equal(t, "high", slip.Events[0].EventID)
}

func TestLeagueMinimumRaisesLimit(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)
	league := nbaLeague(t) // MinPicks 30

	slip, err := a.Build(context.Background(), Request{
		League: league,
		Date:   "2025-11-03",
		Tier:   models.TierStarter, // default limit 10, below league minimum
	}, manyCandidates(45, 0.85))
	require.NoError(t, err)
	assert.Len(t, slip.Events, league.MinPicks)
	assert.Empty(t, slip.Warning)
}

func TestShortPoolWarnsInsteadOfFailing(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierVIP,
	}, manyCandidates(4, 0.85))
	require.NoError(t, err)
	assert.Len(t, slip.Events, 4)
	assert.Contains(t, slip.Warning, "below the nba minimum of 30")
}

func TestSelectedEventsPersisted(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierStarter,
	}, manyCandidates(3, 0.85))
	require.NoError(t, err)
	assert.Len(t, store.stored, len(slip.Events))
}

func TestStoreFailurePropagates(t *testing.T) {
	store := &recordingStore{err: errors.New("db down")}
	a := newTestAssembler(store)

	_, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierStarter,
	}, manyCandidates(3, 0.85))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store slip events")
}

func TestEmptyPoolStoresNothing(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierStarter,
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, slip.Events)
	assert.Empty(t, store.stored)
	assert.NotEmpty(t, slip.Warning)
}

func TestExportShape(t *testing.T) {
	store := &recordingStore{}
	a := newTestAssembler(store)

	slip, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "2025-11-03",
		Tier:   models.TierPro,
	}, []models.Event{candidate("e1", 0.82)})
	require.NoError(t, err)
	require.Len(t, slip.Events, 1)

	assert.Equal(t, "NBA_2025_11_03_PRO", slip.SlipID)
	assert.Equal(t, "2025-11-03", slip.Date)
	assert.Equal(t, "nba", slip.Sport)
	assert.Equal(t, models.TierPro, slip.Tier)

	e := slip.Events[0]
	assert.Equal(t, "2025-11-03T19:00:00Z", e.Time)
	assert.Equal(t, "points", e.Market)
	assert.Equal(t, "over", e.Direction)
	assert.Equal(t, "82%", e.Probability)
	assert.NotEmpty(t, e.Reasoning)
}

func TestInvalidDateRejected(t *testing.T) {
	a := newTestAssembler(&recordingStore{})
	_, err := a.Build(context.Background(), Request{
		League: nbaLeague(t),
		Date:   "Nov 3 2025",
		Tier:   models.TierPro,
	}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)
}
