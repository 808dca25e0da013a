package store

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"overlap/internal/overlap"
	"overlap/internal/regress"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleRun(id string, at time.Time) *Run {
	return &Run{
		ID:              id,
		CreatedAt:       at,
		InfluencerA:     "902200087",
		InfluencerB:     "969221141347913734",
		Semantics:       "compat",
		Followers:       overlap.Fraction{Shared: 1, CountA: 2, CountB: 1, Value: 1},
		Engagers:        overlap.Fraction{Shared: 0, CountA: 3, CountB: 4, Value: 0},
		RegressionInput: "pairs",
		NetworkIDs:      5,
		EngagementIDs:   2,
		Model: &regress.Model{
			N: 3, DFResid: 1, Intercept: 1, Slope: 2, R2: 0.9, AdjR2: 0.8,
			PSlope: 0.04, F: 9, PF: 0.2,
		},
	}
}

var samplePairs = []overlap.PairOverlap{
	{A: "A", B: "B", Network: 4, Engagement: 2},
	{A: "A", B: "C", Network: 0, Engagement: 1},
}

// Stores keep only the headline model fields.
var modelOpts = cmp.Options{
	cmpopts.EquateNaNs(),
	cmpopts.IgnoreFields(regress.Model{}, "ResidualSE", "StdErrIntercept", "StdErrSlope",
		"TIntercept", "TSlope", "PIntercept", "XMin", "XMax"),
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sql, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sql.Close() })
	return map[string]Store{"sqlite": sql, "memory": NewMemStore()}
}

func TestStore_RoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			in := sampleRun("run-1", at)
			if err := s.SaveRun(in, samplePairs); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			got, err := s.GetRun("run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if diff := cmp.Diff(in, got, modelOpts); diff != "" {
				t.Errorf("run mismatch (-want +got):\n%s", diff)
			}
			pairs, err := s.ListPairs("run-1")
			if err != nil {
				t.Fatalf("ListPairs: %v", err)
			}
			if diff := cmp.Diff(samplePairs, pairs); diff != "" {
				t.Errorf("pairs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_NoModelAndNaN(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			noModel := sampleRun("no-model", time.Time{})
			noModel.Model = nil
			if err := s.SaveRun(noModel, nil); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			got, err := s.GetRun("no-model")
			if err != nil || got.Model != nil {
				t.Fatalf("GetRun = %+v, %v; want nil model", got, err)
			}
			if got.CreatedAt.IsZero() {
				t.Error("CreatedAt should be assigned on save")
			}

			twoPoint := sampleRun("two-point", time.Time{})
			twoPoint.Model.N, twoPoint.Model.DFResid = 2, 0
			twoPoint.Model.AdjR2, twoPoint.Model.PSlope = math.NaN(), math.NaN()
			twoPoint.Model.F, twoPoint.Model.PF = math.NaN(), math.NaN()
			if err := s.SaveRun(twoPoint, nil); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			got, err = s.GetRun("two-point")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if !math.IsNaN(got.Model.PSlope) || got.Model.Slope != 2 {
				t.Errorf("model = %+v", got.Model)
			}
		})
	}
}

func TestStore_AssignsID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			r := sampleRun("", time.Time{})
			if err := s.SaveRun(r, nil); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			if len(r.ID) != 36 {
				t.Errorf("expected uuid id, got %q", r.ID)
			}
		})
	}
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for i, id := range []string{"old", "newest", "middle"} {
				offsets := []time.Duration{0, 2 * time.Hour, 100 * time.Millisecond}
				if err := s.SaveRun(sampleRun(id, base.Add(offsets[i])), nil); err != nil {
					t.Fatalf("SaveRun %s: %v", id, err)
				}
			}
			runs, err := s.ListRuns(0)
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			if diff := cmp.Diff([]string{"newest", "middle", "old"}, ids); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}

			limited, err := s.ListRuns(1)
			if err != nil || len(limited) != 1 || limited[0].ID != "newest" {
				t.Errorf("ListRuns(1) = %v, %v", limited, err)
			}
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.GetRun("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveRun(sampleRun("kept", time.Now().UTC()), samplePairs); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, err := s2.GetRun("kept"); err != nil {
		t.Errorf("GetRun after reopen: %v", err)
	}
}
