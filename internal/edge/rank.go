package edge

import (
	"sort"

	"github.com/ataymia/slipsmith-sub000/internal/models"
)

// Rank orders events by edge score descending, in place.
func Rank(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EdgeScore > events[j].EdgeScore
	})
}

// FilterByMinProbability keeps events whose raw probability meets min.
func FilterByMinProbability(events []models.Event, min float64) []models.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Probability >= min {
			out = append(out, e)
		}
	}
	return out
}

// FilterBySport keeps events for one sport kind.
func FilterBySport(events []models.Event, sport string) []models.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Sport == sport {
			out = append(out, e)
		}
	}
	return out
}

// FilterByLeague keeps events for one league code.
func FilterByLeague(events []models.Event, league string) []models.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.League == league {
			out = append(out, e)
		}
	}
	return out
}

// TopN truncates a ranked slice to its first n events.
func TopN(events []models.Event, n int) []models.Event {
	if n <= 0 || n >= len(events) {
		return events
	}
	return events[:n]
}
