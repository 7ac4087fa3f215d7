package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		line      float64
		actual    float64
		want      Result
	}{
		{"over cleared", DirectionOver, 25.5, 30, ResultHit},
		{"over fell short", DirectionOver, 25.5, 20, ResultMiss},
		{"exact line pushes", DirectionOver, 25.5, 25.5, ResultPush},
		{"under cleared", DirectionUnder, 25.5, 20, ResultHit},
		{"under fell short", DirectionUnder, 25.5, 30, ResultMiss},
		{"under exact line pushes", DirectionUnder, 3.0, 3.0, ResultPush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.direction, tt.line, tt.actual))
		})
	}
}

func TestEdge(t *testing.T) {
	e := Event{Projection: 30, Line: 25.5}
	assert.InDelta(t, 4.5, e.Edge(), 1e-9)

	e = Event{Projection: 20, Line: 25.5}
	assert.InDelta(t, -5.5, e.Edge(), 1e-9)
}

func TestEffectiveProbability(t *testing.T) {
	// No track record: reliability defaults to 0.5, shrinking the raw
	// probability by 5%.
	e := Event{Probability: 0.80}
	assert.InDelta(t, 0.76, e.EffectiveProbability(), 1e-9)

	perfect := 1.0
	e.Reliability = &perfect
	assert.InDelta(t, 0.80, e.EffectiveProbability(), 1e-9)

	zero := 0.0
	e.Reliability = &zero
	assert.InDelta(t, 0.72, e.EffectiveProbability(), 1e-9)
}

func TestMarketLabel(t *testing.T) {
	assert.Equal(t, "points", MarketLabel("POINTS"))
	assert.Equal(t, "points+rebounds+assists", MarketLabel("PRA"))
	assert.Equal(t, "team total", MarketLabel("TEAM_TOTAL"))
	// Unknown codes degrade to a lowered, de-underscored form.
	assert.Equal(t, "double double", MarketLabel("DOUBLE_DOUBLE"))
}

func TestValidTier(t *testing.T) {
	assert.True(t, ValidTier(TierStarter))
	assert.True(t, ValidTier(TierPro))
	assert.True(t, ValidTier(TierVIP))
	assert.False(t, ValidTier(Tier("platinum")))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-03")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = ParseDate("11/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
