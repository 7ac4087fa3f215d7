package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ataymia/slipsmith-sub000/internal/edge"
	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/projection"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/providers/mock"
	"github.com/ataymia/slipsmith-sub000/internal/slips"
	"github.com/ataymia/slipsmith-sub000/pkg/database"
)

func newTestPipeline(t *testing.T, minProbability float64) *Pipeline {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	provider := mock.New(logger)
	bundle := &providers.Bundle{
		Schedule: provider,
		Roster:   provider,
		Stats:    provider,
		Injury:   provider,
		Odds:     provider,
		BoxScore: provider,
	}

	ledger := evaluation.NewLedger(&database.DB{DB: gormDB}, bundle.BoxScore, logger)
	require.NoError(t, ledger.Migrate())

	model := projection.NewModel(bundle, projection.DefaultConfig(), logger)
	detector := edge.NewDetector(edge.DefaultConfig(), logger)
	assembler := slips.NewAssembler(ledger, logger)

	return NewPipeline(model, detector, ledger, assembler, bundle.Odds, nil, time.Minute, minProbability, logger)
}

func TestTopEventsBuildsSlip(t *testing.T) {
	p := newTestPipeline(t, 0.60)

	slip, err := p.TopEvents(context.Background(), "nba", "2025-11-03", models.TierPro, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "NBA_2025_11_03_PRO", slip.SlipID)
	assert.Equal(t, "2025-11-03", slip.Date)
	assert.Equal(t, "nba", slip.Sport)
}

func TestTopEventsAppliesDefaultProbabilityFloor(t *testing.T) {
	// Regression to mean caps raw probability at 0.925, so a configured
	// floor above it filters every candidate regardless of the data.
	p := newTestPipeline(t, 0.99)

	slip, err := p.TopEvents(context.Background(), "nba", "2025-11-03", models.TierPro, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, slip.Events)
	assert.NotEmpty(t, slip.Warning)
}

func TestTopEventsRejectsBadInput(t *testing.T) {
	p := newTestPipeline(t, 0.60)
	ctx := context.Background()

	_, err := p.TopEvents(ctx, "nba", "11/03/2025", models.TierPro, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)

	_, err = p.TopEvents(ctx, "xfl", "2025-11-03", models.TierPro, 0, 0)
	assert.ErrorIs(t, err, models.ErrUnknownLeague)
}
