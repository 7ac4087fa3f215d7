package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// EvaluationScheduler runs the recurring evaluation sweep: every
// configured league's previous-day events are reconciled against final
// box scores. Runs are serialized within the process; the ledger's atomic
// increments cover overlap across processes.
type EvaluationScheduler struct {
	ledger   *evaluation.Ledger
	cache    *CacheService
	leagues  []string
	schedule string
	logger   *logrus.Logger
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
}

func NewEvaluationScheduler(ledger *evaluation.Ledger, cache *CacheService, leagues []string, schedule string, logger *logrus.Logger) *EvaluationScheduler {
	return &EvaluationScheduler{
		ledger:   ledger,
		cache:    cache,
		leagues:  leagues,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the cron entries and begins scheduling.
func (s *EvaluationScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("evaluation scheduler is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule evaluation sweep: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.WithField("schedule", s.schedule).Info("Evaluation scheduler started")
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *EvaluationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("Evaluation scheduler stopped")
}

// sweep evaluates yesterday's events for every configured league. One
// league failing never stops the others.
func (s *EvaluationScheduler) sweep() {
	runID := uuid.New().String()
	date := time.Now().UTC().AddDate(0, 0, -1).Format(models.DateLayout)
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "date": date})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, league := range s.leagues {
		report, err := s.ledger.EvaluateDate(ctx, date, league)
		if err != nil {
			log.WithError(err).WithField("league", league).Error("Evaluation sweep failed for league")
			continue
		}
		log.WithFields(logrus.Fields{
			"league":    league,
			"evaluated": report.Evaluated,
			"hits":      report.Hits,
			"misses":    report.Misses,
			"deferred":  report.DeferredGames,
		}).Info("League evaluation sweep complete")
	}

	s.refreshReliabilityCache(ctx, log)
}

// refreshReliabilityCache drops cached reliability reports after a sweep
// so the next read reflects the newly evaluated outcomes.
func (s *EvaluationScheduler) refreshReliabilityCache(ctx context.Context, log *logrus.Entry) {
	if s.cache == nil {
		return
	}
	keys := []string{ReliabilityReportCacheKey("")}
	for _, sport := range []string{sports.Basketball, sports.Football, sports.Soccer, sports.Esports} {
		keys = append(keys, ReliabilityReportCacheKey(sport))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.WithError(err).Warn("Failed to refresh reliability report cache")
	}
}
