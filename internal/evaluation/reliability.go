package evaluation

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ataymia/slipsmith-sub000/internal/models"
)

// recordOutcome increments the reliability aggregate for the event's
// (sport, league, subject, market) key. The increment is a single atomic
// upsert so concurrent evaluation passes touching the same key cannot
// lose updates.
func (l *Ledger) recordOutcome(ctx context.Context, event models.Event, result models.Result) error {
	var hits, misses, pushes, voids int
	switch result {
	case models.ResultHit:
		hits = 1
	case models.ResultMiss:
		misses = 1
	case models.ResultPush:
		pushes = 1
	case models.ResultVoid:
		voids = 1
	}

	absEdge := math.Abs(event.Edge())
	now := time.Now().UTC()

	score := models.ReliabilityScore{
		Sport:       event.Sport,
		League:      event.League,
		Subject:     event.Subject,
		Market:      event.Market,
		SubjectName: event.SubjectName,
		Total:       1,
		Hits:        hits,
		Misses:      misses,
		Pushes:      pushes,
		Voids:       voids,
		EdgeSum:     absEdge,
		AvgEdge:     absEdge,
	}
	if hits+misses > 0 {
		score.HitRate = float64(hits)
	}

	err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "sport"}, {Name: "league"}, {Name: "subject"}, {Name: "market"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total":    gorm.Expr("reliability_scores.total + 1"),
				"hits":     gorm.Expr("reliability_scores.hits + ?", hits),
				"misses":   gorm.Expr("reliability_scores.misses + ?", misses),
				"pushes":   gorm.Expr("reliability_scores.pushes + ?", pushes),
				"voids":    gorm.Expr("reliability_scores.voids + ?", voids),
				"edge_sum": gorm.Expr("reliability_scores.edge_sum + ?", absEdge),
				"avg_edge": gorm.Expr("(reliability_scores.edge_sum + ?) / (reliability_scores.total + 1)", absEdge),
				"hit_rate": gorm.Expr(
					"CASE WHEN reliability_scores.hits + reliability_scores.misses + ? > 0 "+
						"THEN (reliability_scores.hits + ?) * 1.0 / (reliability_scores.hits + reliability_scores.misses + ?) "+
						"ELSE 0 END",
					hits+misses, hits, hits+misses),
				"updated_at": now,
			}),
		}).
		Create(&score).Error
	if err != nil {
		return fmt.Errorf("update reliability for %s/%s: %w", event.Subject, event.Market, err)
	}
	return nil
}

// ReliabilityMap returns subject|market -> hit rate for a league, the
// shape the edge detector consumes as its external reliability signal.
// Keys with no decided outcomes are omitted.
func (l *Ledger) ReliabilityMap(ctx context.Context, leagueCode string) (map[string]float64, error) {
	var scores []models.ReliabilityScore
	err := l.db.WithContext(ctx).
		Where("league = ? AND hits + misses > 0", leagueCode).
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("load reliability map: %w", err)
	}
	out := make(map[string]float64, len(scores))
	for _, s := range scores {
		out[s.Subject+"|"+s.Market] = s.HitRate
	}
	return out, nil
}

// ReliabilityReport returns the full ledger, optionally filtered by
// sport, sorted by hit rate then decided volume descending.
func (l *Ledger) ReliabilityReport(ctx context.Context, sport string) ([]models.ReliabilityScore, error) {
	query := l.db.WithContext(ctx).Model(&models.ReliabilityScore{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	var scores []models.ReliabilityScore
	err := query.
		Order("hit_rate DESC").
		Order("hits + misses DESC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("load reliability report: %w", err)
	}
	return scores, nil
}

// Summary aggregates all evaluated events whose date falls in [from, to].
func (l *Ledger) Summary(ctx context.Context, from, to string) (*models.EvaluationSummary, error) {
	if _, err := models.ParseDate(from); err != nil {
		return nil, err
	}
	if _, err := models.ParseDate(to); err != nil {
		return nil, err
	}

	var row struct {
		Total   int
		Hits    int
		Misses  int
		Pushes  int
		Voids   int
		AvgEdge float64
	}
	err := l.db.WithContext(ctx).Model(&models.Event{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN result = 'hit' THEN 1 ELSE 0 END), 0) AS hits, "+
				"COALESCE(SUM(CASE WHEN result = 'miss' THEN 1 ELSE 0 END), 0) AS misses, "+
				"COALESCE(SUM(CASE WHEN result = 'push' THEN 1 ELSE 0 END), 0) AS pushes, "+
				"COALESCE(SUM(CASE WHEN result = 'void' THEN 1 ELSE 0 END), 0) AS voids, "+
				"COALESCE(AVG(ABS(projection - line)), 0) AS avg_edge").
		Where("evaluated = ? AND date BETWEEN ? AND ?", true, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("summarize evaluations: %w", err)
	}

	summary := &models.EvaluationSummary{
		From:    from,
		To:      to,
		Total:   row.Total,
		Hits:    row.Hits,
		Misses:  row.Misses,
		Pushes:  row.Pushes,
		Voids:   row.Voids,
		AvgEdge: round2(row.AvgEdge),
	}
	if decided := row.Hits + row.Misses; decided > 0 {
		summary.HitRate = round2(float64(row.Hits) / float64(decided))
	}
	return summary, nil
}
