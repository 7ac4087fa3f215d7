package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
	"github.com/ataymia/slipsmith-sub000/pkg/database"
)

// Ledger persists emitted events, reconciles them against final box
// scores and maintains rolling reliability aggregates.
type Ledger struct {
	db       *database.DB
	boxScore providers.BoxScoreProvider
	logger   *logrus.Logger
}

func NewLedger(db *database.DB, boxScore providers.BoxScoreProvider, logger *logrus.Logger) *Ledger {
	return &Ledger{db: db, boxScore: boxScore, logger: logger}
}

// Migrate creates the ledger tables.
func (l *Ledger) Migrate() error {
	return l.db.AutoMigrate(&models.Event{}, &models.ReliabilityScore{})
}

// StoreEvents upserts events keyed by event id. Re-storing an existing
// event is a no-op, which keeps repeated exports idempotent and never
// clobbers an already-evaluated row.
func (l *Ledger) StoreEvents(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}
	err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&events).Error
	if err != nil {
		return fmt.Errorf("store events: %w", err)
	}
	return nil
}

// Report summarizes one EvaluateDate pass.
type Report struct {
	Date          string `json:"date"`
	League        string `json:"league"`
	Evaluated     int    `json:"evaluated"`
	Hits          int    `json:"hits"`
	Misses        int    `json:"misses"`
	Pushes        int    `json:"pushes"`
	Voids         int    `json:"voids"`
	DeferredGames int    `json:"deferred_games"`
}

// EvaluateDate reconciles every stored, not-yet-evaluated event on the
// date against final box scores. Games that are not final yet (or whose
// box score fetch fails) are deferred to a future pass; one bad game
// never fails the batch.
func (l *Ledger) EvaluateDate(ctx context.Context, date, leagueCode string) (*Report, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}
	league, err := sports.Lookup(leagueCode)
	if err != nil {
		return nil, err
	}

	var pending []models.Event
	err = l.db.WithContext(ctx).
		Where("date = ? AND league = ? AND evaluated = ?", date, league.Code, false).
		Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("load pending events: %w", err)
	}

	report := &Report{Date: date, League: league.Code}
	if len(pending) == 0 {
		return report, nil
	}

	byGame := make(map[string][]models.Event)
	for _, e := range pending {
		byGame[e.GameID] = append(byGame[e.GameID], e)
	}

	log := l.logger.WithFields(logrus.Fields{"league": league.Code, "date": date})
	for gameID, events := range byGame {
		box, err := l.boxScore.GetBoxScore(ctx, gameID, league)
		if err != nil {
			log.WithError(err).WithField("game_id", gameID).
				Warn("Box score unavailable, deferring game")
			report.DeferredGames++
			continue
		}
		if !box.Final {
			report.DeferredGames++
			continue
		}
		for _, event := range events {
			if err := l.evaluateEvent(ctx, event, box, report); err != nil {
				return report, err
			}
		}
	}

	log.WithFields(logrus.Fields{
		"evaluated": report.Evaluated,
		"deferred":  report.DeferredGames,
	}).Info("Evaluation pass complete")
	return report, nil
}

// evaluateEvent resolves one event's actual value, classifies it, and
// persists the evaluation exactly once. Persistence failures propagate:
// they imply the ledger may be inconsistent.
func (l *Ledger) evaluateEvent(ctx context.Context, event models.Event, box *models.BoxScore, report *Report) error {
	actual, ok := resolveActual(event, box)

	result := models.ResultVoid
	var actualPtr *float64
	if ok {
		actual = round2(actual)
		actualPtr = &actual
		result = models.Classify(event.Direction, event.Line, actual)
	}

	now := time.Now().UTC()
	res := l.db.WithContext(ctx).Model(&models.Event{}).
		Where("event_id = ? AND evaluated = ?", event.EventID, false).
		Updates(map[string]interface{}{
			"evaluated":    true,
			"actual":       actualPtr,
			"result":       result,
			"evaluated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("persist evaluation for %s: %w", event.EventID, res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent pass already scored it; do not double-count.
		return nil
	}

	if err := l.recordOutcome(ctx, event, result); err != nil {
		return err
	}

	report.Evaluated++
	switch result {
	case models.ResultHit:
		report.Hits++
	case models.ResultMiss:
		report.Misses++
	case models.ResultPush:
		report.Pushes++
	case models.ResultVoid:
		report.Voids++
	}
	return nil
}

// resolveActual looks up the observed value for an event's market in the
// box score. Returns false when it cannot be determined (void).
func resolveActual(event models.Event, box *models.BoxScore) (float64, bool) {
	switch event.SubjectType {
	case models.SubjectGame:
		return box.HomeScore + box.AwayScore, true
	case models.SubjectTeam:
		switch event.Subject {
		case box.HomeTeam:
			return box.HomeScore, true
		case box.AwayTeam:
			return box.AwayScore, true
		}
		return 0, false
	default:
		line, ok := box.PlayerStats[event.Subject]
		if !ok {
			return 0, false
		}
		return playerActual(event.Market, line)
	}
}

// marketBoxStats maps a market code back to the box-score stats it
// settles on; combo markets sum their components.
var marketBoxStats = map[string][]string{
	"POINTS":          {"points"},
	"REBOUNDS":        {"rebounds"},
	"ASSISTS":         {"assists"},
	"THREES":          {"threes"},
	"PR":              {"points", "rebounds"},
	"PRA":             {"points", "rebounds", "assists"},
	"PASSING_YARDS":   {"passing_yards"},
	"RUSHING_YARDS":   {"rushing_yards"},
	"RECEIVING_YARDS": {"receiving_yards"},
	"RECEPTIONS":      {"receptions"},
	"GOALS":           {"goals"},
	"SHOTS":           {"shots"},
	"KILLS":           {"kills"},
}

func playerActual(market string, line models.StatLine) (float64, bool) {
	stats, ok := marketBoxStats[market]
	if !ok {
		return 0, false
	}
	total := 0.0
	for _, stat := range stats {
		v, ok := line[stat]
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
