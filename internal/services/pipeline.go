package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/edge"
	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/projection"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/slips"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Pipeline wires the projection model, edge detector, evaluation ledger
// and slip assembler into the end-to-end export flow.
type Pipeline struct {
	model          *projection.Model
	detector       *edge.Detector
	ledger         *evaluation.Ledger
	assembler      *slips.Assembler
	odds           providers.OddsProvider
	cache          *CacheService
	cacheTTL       time.Duration
	minProbability float64
	logger         *logrus.Logger
}

func NewPipeline(
	model *projection.Model,
	detector *edge.Detector,
	ledger *evaluation.Ledger,
	assembler *slips.Assembler,
	odds providers.OddsProvider,
	cache *CacheService,
	cacheTTL time.Duration,
	minProbability float64,
	logger *logrus.Logger,
) *Pipeline {
	return &Pipeline{
		model:          model,
		detector:       detector,
		ledger:         ledger,
		assembler:      assembler,
		odds:           odds,
		cache:          cache,
		cacheTTL:       cacheTTL,
		minProbability: minProbability,
		logger:         logger,
	}
}

// TopEvents runs the full pipeline for a date/league and returns the
// assembled slip. Results are cached briefly since slips for a fixed
// (date, league, tier) are deterministic.
func (p *Pipeline) TopEvents(ctx context.Context, leagueCode, date string, tier models.Tier, limit int, minProbability float64) (*models.Slip, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}
	league, err := sports.Lookup(leagueCode)
	if err != nil {
		return nil, err
	}
	if !models.ValidTier(tier) {
		tier = models.TierStarter
	}
	if minProbability <= 0 {
		minProbability = p.minProbability
	}

	cacheKey := SlipCacheKey(league.Code, date, tier, limit, minProbability)
	if p.cache != nil {
		var cached models.Slip
		if err := p.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	projections, err := p.model.GenerateDate(ctx, date, league)
	if err != nil {
		return nil, fmt.Errorf("generate projections: %w", err)
	}

	props, err := p.odds.GetConsensusProps(ctx, date, league)
	if err != nil {
		p.logger.WithError(err).WithField("league", league.Code).
			Warn("Consensus lines unavailable, assembling empty slip")
		props = nil
	}

	reliability, err := p.ledger.ReliabilityMap(ctx, league.Code)
	if err != nil {
		p.logger.WithError(err).Warn("Reliability map unavailable, using defaults")
		reliability = nil
	}

	events := p.detector.Detect(date, league, projections, props, reliability)

	slip, err := p.assembler.Build(ctx, slips.Request{
		League:         league,
		Date:           date,
		Tier:           tier,
		Limit:          limit,
		MinProbability: minProbability,
	}, events)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetWithRetry(ctx, cacheKey, slip, p.cacheTTL, 3); err != nil {
			p.logger.WithError(err).Debug("Slip cache write failed")
		}
	}
	return slip, nil
}
