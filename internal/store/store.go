// Package store keeps the history of analysis runs.
package store

import (
	"errors"
	"math"
	"time"

	"overlap/internal/overlap"
	"overlap/internal/regress"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one completed analysis.
type Run struct {
	ID          string
	CreatedAt   time.Time
	InfluencerA string
	InfluencerB string
	Semantics   string
	Followers   overlap.Fraction
	Engagers    overlap.Fraction
	// RegressionInput is "pairs" or "ids".
	RegressionInput string
	NetworkIDs      int // length of the network overlap list
	EngagementIDs   int // length of the engagement overlap list
	// Model is nil when no regression could be fitted.
	Model *regress.Model
}

// Store is the persistence facade for runs. Implementations are SQLite or
// in-memory.
type Store interface {
	// SaveRun stores run and its pair rows, assigning ID and CreatedAt when
	// empty.
	SaveRun(run *Run, pairs []overlap.PairOverlap) error
	GetRun(id string) (*Run, error)
	// ListRuns returns the newest runs first; limit <= 0 means all.
	ListRuns(limit int) ([]*Run, error)
	ListPairs(runID string) ([]overlap.PairOverlap, error)
	Close() error
}

// modelColumns flattens the parts of a model worth keeping. NaN becomes nil
// so SQLite stores NULL.
func modelColumns(m *regress.Model) []any {
	if m == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{m.N, nullable(m.Intercept), nullable(m.Slope), nullable(m.R2),
		nullable(m.AdjR2), nullable(m.PSlope), nullable(m.F), nullable(m.PF)}
}

func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
