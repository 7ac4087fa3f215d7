package models

import (
	"time"
)

// ReliabilityScore is the rolling ledger aggregate for one
// (sport, league, subject, market) key. Counters only accumulate;
// records are never deleted.
type ReliabilityScore struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Sport   string `gorm:"not null;uniqueIndex:idx_reliability_key" json:"sport"`
	League  string `gorm:"not null;uniqueIndex:idx_reliability_key" json:"league"`
	Subject string `gorm:"not null;uniqueIndex:idx_reliability_key" json:"subject"`
	Market  string `gorm:"not null;uniqueIndex:idx_reliability_key" json:"market"`

	SubjectName string `json:"subject_name"`

	Total   int `gorm:"default:0" json:"total"`
	Hits    int `gorm:"default:0" json:"hits"`
	Misses  int `gorm:"default:0" json:"misses"`
	Pushes  int `gorm:"default:0" json:"pushes"`
	Voids   int `gorm:"default:0" json:"voids"`

	// HitRate = Hits / (Hits + Misses); pushes and voids excluded.
	HitRate float64 `gorm:"default:0" json:"hit_rate"`

	// EdgeSum accumulates absolute edges so AvgEdge survives restarts.
	EdgeSum float64 `gorm:"default:0" json:"-"`
	AvgEdge float64 `gorm:"default:0" json:"avg_edge"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReliabilityScore) TableName() string {
	return "reliability_scores"
}

// Decided returns the number of outcomes that count toward the hit rate.
func (r *ReliabilityScore) Decided() int {
	return r.Hits + r.Misses
}

// EvaluationSummary aggregates evaluated events over a date range.
type EvaluationSummary struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Total   int     `json:"total"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	Pushes  int     `json:"pushes"`
	Voids   int     `json:"voids"`
	HitRate float64 `json:"hit_rate"`
	AvgEdge float64 `json:"avg_edge"`
}
