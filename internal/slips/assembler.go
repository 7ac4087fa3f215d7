package slips

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
)

// Risk band boundaries on effective probability. RED is always excluded.
const (
	RedBelow   = 0.60
	GreenAbove = 0.77
)

// tierLimits are the default requested pick counts per tier, before the
// per-league minimum is applied.
var tierLimits = map[models.Tier]int{
	models.TierStarter: 10,
	models.TierPro:     20,
	models.TierVIP:     40,
}

// EventStore is the slice of the evaluation ledger the assembler needs:
// selected events must be persisted so they can be scored later.
type EventStore interface {
	StoreEvents(ctx context.Context, events []models.Event) error
}

// Request describes one slip export.
type Request struct {
	League         sports.League
	Date           string
	Tier           models.Tier
	Limit          int
	MinProbability float64
}

// Assembler applies tier-gating, risk thresholds and per-league minimums
// to ranked edge events and produces the final exported slip.
type Assembler struct {
	store  EventStore
	logger *logrus.Logger
}

func NewAssembler(store EventStore, logger *logrus.Logger) *Assembler {
	return &Assembler{store: store, logger: logger}
}

// Build selects and orders candidate events into a slip. A pool smaller
// than the league minimum yields a slip with a warning, never an error.
func (a *Assembler) Build(ctx context.Context, req Request, candidates []models.Event) (*models.Slip, error) {
	if _, err := models.ParseDate(req.Date); err != nil {
		return nil, err
	}
	if !models.ValidTier(req.Tier) {
		req.Tier = models.TierStarter
	}

	minProb := math.Max(req.MinProbability, RedBelow)

	var green, yellow []models.Event
	for _, e := range candidates {
		if e.Probability < minProb {
			continue
		}
		switch effective := e.EffectiveProbability(); {
		case effective < RedBelow:
			// RED band, never included
		case effective > GreenAbove:
			green = append(green, e)
		default:
			yellow = append(yellow, e)
		}
	}

	byRawProbability(green)
	byRawProbability(yellow)

	limit := req.Limit
	if limit <= 0 {
		limit = tierLimits[req.Tier]
	}
	effectiveLimit := limit
	if req.League.MinPicks > effectiveLimit {
		effectiveLimit = req.League.MinPicks
	}

	selected := green
	if len(selected) > effectiveLimit {
		selected = selected[:effectiveLimit]
	} else if remaining := effectiveLimit - len(selected); remaining > 0 {
		if remaining > len(yellow) {
			remaining = len(yellow)
		}
		selected = append(selected, yellow[:remaining]...)
	}

	slip := &models.Slip{
		SlipID: SlipID(req.League.Code, req.Date, req.Tier),
		Date:   req.Date,
		Sport:  req.League.Code,
		Tier:   req.Tier,
		Events: make([]models.SlipEvent, 0, len(selected)),
	}
	if len(selected) < req.League.MinPicks {
		slip.Warning = fmt.Sprintf("only %d eligible picks, below the %s minimum of %d",
			len(selected), req.League.Code, req.League.MinPicks)
	}

	for _, e := range selected {
		slip.Events = append(slip.Events, exportEvent(e))
	}

	if len(selected) > 0 {
		if err := a.store.StoreEvents(ctx, selected); err != nil {
			// Ledger state may now be inconsistent; surface it.
			return nil, fmt.Errorf("store slip events: %w", err)
		}
	}

	a.logger.WithFields(logrus.Fields{
		"slip_id": slip.SlipID,
		"green":   len(green),
		"yellow":  len(yellow),
		"picked":  len(selected),
	}).Info("Slip assembled")
	return slip, nil
}

func byRawProbability(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Probability > events[j].Probability
	})
}

func exportEvent(e models.Event) models.SlipEvent {
	return models.SlipEvent{
		EventID:     e.EventID,
		GameID:      e.GameID,
		Time:        e.GameTime.UTC().Format(time.RFC3339),
		Player:      e.SubjectName,
		Team:        e.Team,
		Market:      models.MarketLabel(e.Market),
		Line:        e.Line,
		Direction:   string(e.Direction),
		Probability: fmt.Sprintf("%.0f%%", e.Probability*100),
		Reasoning:   e.Rationale,
	}
}
