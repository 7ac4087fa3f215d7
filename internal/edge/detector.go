package edge

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/slips"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Config carries the edge detector's tunables.
type Config struct {
	// MinEdge discards events whose absolute projection-vs-line delta is
	// below this, before ranking.
	MinEdge float64
	// Score weights for normalized edge, confidence and reliability.
	EdgeWeight        float64
	ConfidenceWeight  float64
	ReliabilityWeight float64
}

func DefaultConfig() Config {
	return Config{
		MinEdge:           0.5,
		EdgeWeight:        0.5,
		ConfidenceWeight:  0.3,
		ReliabilityWeight: 0.2,
	}
}

// Detector converts estimate-vs-line deltas into ranked edge events.
type Detector struct {
	cfg    Config
	logger *logrus.Logger
}

func NewDetector(cfg Config, logger *logrus.Logger) *Detector {
	if cfg.EdgeWeight == 0 && cfg.ConfidenceWeight == 0 && cfg.ReliabilityWeight == 0 {
		cfg = Config{
			MinEdge:           cfg.MinEdge,
			EdgeWeight:        0.5,
			ConfidenceWeight:  0.3,
			ReliabilityWeight: 0.2,
		}
	}
	return &Detector{cfg: cfg, logger: logger}
}

// Detect scans every consensus line against the date's projections and
// emits one Event per actionable edge, ranked by edge score descending.
// reliability maps "subject|market" to a historical hit rate and may be
// nil.
func (d *Detector) Detect(date string, league sports.League, projections []models.GameProjection, props []models.PropMarket, reliability map[string]float64) []models.Event {
	byGame := make(map[string]*models.GameProjection, len(projections))
	for i := range projections {
		byGame[projections[i].Game.ID] = &projections[i]
	}

	var events []models.Event
	for _, prop := range props {
		gp, ok := byGame[prop.GameID]
		if !ok {
			continue
		}
		event, ok := d.detectOne(date, league, gp, prop, reliability)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	Rank(events)
	d.logger.WithFields(logrus.Fields{
		"league": league.Code,
		"date":   date,
		"lines":  len(props),
		"edges":  len(events),
	}).Debug("Edge detection complete")
	return events
}

func (d *Detector) detectOne(date string, league sports.League, gp *models.GameProjection, prop models.PropMarket, reliability map[string]float64) (models.Event, bool) {
	var (
		proj        float64
		confidence  float64
		subjectType string
		injuryNote  string
		found       bool
	)

	switch {
	case prop.Market == MarketGameTotal:
		home, hok := gp.Home.Stats[league.PrimaryStat]
		away, aok := gp.Away.Stats[league.PrimaryStat]
		proj, confidence, found = home+away, math.Min(gp.Home.Confidence, gp.Away.Confidence), hok && aok
		subjectType = models.SubjectGame
	case prop.Market == MarketTeamTotal:
		var side *models.TeamProjection
		switch prop.Subject {
		case gp.Game.HomeTeam:
			side = &gp.Home
		case gp.Game.AwayTeam:
			side = &gp.Away
		default:
			// Line quoted for a team not in this game; skip it.
			return models.Event{}, false
		}
		proj, found = side.Stats[league.PrimaryStat]
		confidence = side.Confidence
		subjectType = models.SubjectTeam
	default:
		stat, ok := StatFor(prop.Market)
		if !ok {
			return models.Event{}, false // unmapped market, never an error
		}
		for i := range gp.Players {
			pl := &gp.Players[i]
			if pl.PlayerID != prop.Subject {
				continue
			}
			proj, found = pl.Stats[stat]
			confidence = pl.Confidence
			if adj, ok := pl.HasAdjustment("injury"); ok {
				injuryNote = fmt.Sprintf("; %s", adj.Description)
			}
			break
		}
		subjectType = models.SubjectPlayer
	}
	if !found {
		return models.Event{}, false
	}

	edge := proj - prop.Line
	if math.Abs(edge) < d.cfg.MinEdge {
		return models.Event{}, false
	}

	direction := models.DirectionUnder
	if proj > prop.Line {
		direction = models.DirectionOver
	}

	threshold := ThresholdFor(prop.Market, league)
	prob := probability(edge, threshold, confidence)

	relValue := 0.5
	if reliability != nil {
		if v, ok := reliability[prop.Subject+"|"+prop.Market]; ok {
			relValue = v
		}
	}

	normalized := math.Abs(edge) / threshold
	score := round2((d.cfg.EdgeWeight*normalized +
		d.cfg.ConfidenceWeight*confidence +
		d.cfg.ReliabilityWeight*relValue) * 10)

	relCopy := relValue
	event := models.Event{
		EventID:     slips.EventID(league.Code, prop.GameID, prop.Subject, prop.Market, prop.Line, direction, date),
		Sport:       league.Sport,
		League:      league.Code,
		Date:        date,
		GameID:      prop.GameID,
		GameTime:    gp.Game.StartTime,
		Subject:     prop.Subject,
		SubjectName: prop.SubjectName,
		SubjectType: subjectType,
		Team:        prop.Team,
		Market:      prop.Market,
		Line:        prop.Line,
		Direction:   direction,
		Projection:  round2(proj),
		Probability: prob,
		EdgeScore:   score,
		Reliability: &relCopy,
		Rationale:   rationale(prop.SubjectName, prop.Market, proj, prop.Line, normalized, injuryNote),
	}
	return event, true
}

// rationale renders the deterministic human-readable explanation.
func rationale(subject, market string, proj, line, normalized float64, injuryNote string) string {
	descriptor := "slight"
	switch {
	case normalized >= 3:
		descriptor = "strong"
	case normalized >= 1.5:
		descriptor = "moderate"
	}
	return fmt.Sprintf("%s projected %.1f %s vs line %.1f (%s edge)%s",
		subject, proj, DisplayName(market), line, descriptor, injuryNote)
}
