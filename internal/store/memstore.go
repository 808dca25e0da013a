package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"overlap/internal/overlap"
)

// MemStore implements Store in memory. Safe for concurrent use.
type MemStore struct {
	mu    sync.Mutex
	runs  map[string]*Run
	pairs map[string][]overlap.PairOverlap
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs:  make(map[string]*Run),
		pairs: make(map[string][]overlap.PairOverlap),
	}
}

func (s *MemStore) SaveRun(run *Run, pairs []overlap.PairOverlap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("run %s already exists", run.ID)
	}
	cp := *run
	s.runs[run.ID] = &cp
	s.pairs[run.ID] = append([]overlap.PairOverlap(nil), pairs...)
	return nil
}

func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *r
	return &cp, nil
}

func (s *MemStore) ListRuns(limit int) ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) ListPairs(runID string) ([]overlap.PairOverlap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]overlap.PairOverlap(nil), s.pairs[runID]...), nil
}

func (s *MemStore) Close() error { return nil }
