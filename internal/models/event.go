package models

import (
	"time"
)

// Direction of an edge relative to the line.
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
)

// Result of an evaluated event.
type Result string

const (
	ResultPending Result = "pending"
	ResultHit     Result = "hit"
	ResultMiss    Result = "miss"
	ResultPush    Result = "push"
	ResultVoid    Result = "void"
)

// SubjectType distinguishes what an event's line refers to.
const (
	SubjectPlayer = "player"
	SubjectTeam   = "team"
	SubjectGame   = "game"
)

// Event is one market decision emitted by the edge detector. Persisted so
// it can be reconciled against the final box score later.
type Event struct {
	EventID     string    `gorm:"primaryKey;size:64" json:"event_id"`
	Sport       string    `gorm:"not null;index" json:"sport"`
	League      string    `gorm:"not null;index" json:"league"`
	Date        string    `gorm:"not null;index;size:10" json:"date"`
	GameID      string    `gorm:"not null;index" json:"game_id"`
	GameTime    time.Time `json:"game_time"`
	Subject     string    `gorm:"index" json:"subject"`
	SubjectName string    `json:"subject_name"`
	SubjectType string    `gorm:"not null" json:"subject_type"`
	Team        string    `json:"team"`
	Market      string    `gorm:"not null" json:"market"`
	Line        float64   `gorm:"not null" json:"line"`
	Direction   Direction `gorm:"not null" json:"direction"`
	Projection  float64   `json:"projection"`
	Probability float64   `json:"probability"`
	EdgeScore   float64   `json:"edge_score"`
	Reliability *float64  `json:"reliability,omitempty"`
	Rationale   string    `json:"rationale"`

	Evaluated   bool       `gorm:"index;default:false" json:"evaluated"`
	Actual      *float64   `json:"actual,omitempty"`
	Result      Result     `gorm:"default:'pending'" json:"result"`
	EvaluatedAt *time.Time `json:"evaluated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Edge returns the signed projection-vs-line delta.
func (e *Event) Edge() float64 {
	return e.Projection - e.Line
}

// ReliabilityOrDefault returns the attached reliability, or 0.5 when the
// subject/market pair has no track record yet.
func (e *Event) ReliabilityOrDefault() float64 {
	if e.Reliability == nil {
		return 0.5
	}
	return *e.Reliability
}

// EffectiveProbability folds historical reliability into the raw model
// probability inside a +/-5% band.
func (e *Event) EffectiveProbability() float64 {
	return e.Probability * (0.9 + 0.1*e.ReliabilityOrDefault())
}

// Classify resolves an outcome against the actual observed value per the
// push/hit/miss rule.
func Classify(direction Direction, line, actual float64) Result {
	switch {
	case actual == line:
		return ResultPush
	case direction == DirectionOver && actual > line:
		return ResultHit
	case direction == DirectionUnder && actual < line:
		return ResultHit
	default:
		return ResultMiss
	}
}
