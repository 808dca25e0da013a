// Package analysis runs the overlap study end to end: load both datasets,
// compute the pair fractions, enumerate overlaps, fit the regression,
// render charts and record the run.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"overlap/internal/chart"
	"overlap/internal/config"
	"overlap/internal/dataset"
	"overlap/internal/logging"
	"overlap/internal/overlap"
	"overlap/internal/regress"
	"overlap/internal/store"
)

// linePoints is the number of samples drawn along the fitted line.
const linePoints = 100

// Side is everything computed from one dataset.
type Side struct {
	Kind     dataset.Kind
	Records  int
	Fraction overlap.Fraction
	Map      *overlap.InfluencerMap
	IDs      []int64
	Pairs    []overlap.Pair
}

// Result is a completed analysis.
type Result struct {
	// RunID is set only once the run has been recorded.
	RunID       string
	InfluencerA dataset.UID
	InfluencerB dataset.UID
	Semantics   overlap.Semantics
	Follow      *Side
	Engage      *Side
	Pairs       []overlap.PairOverlap
	// Model and Charts are set by Run only.
	Model  *regress.Model
	Charts []string
}

// Analyzer holds a validated configuration and an optional run store.
type Analyzer struct {
	cfg   config.Config
	opts  overlap.Options
	store store.Store
	log   *slog.Logger
}

// New validates cfg. st may be nil to skip recording runs.
func New(cfg config.Config, st store.Store) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Analyzer{cfg: cfg, opts: opts, store: st, log: logging.New("analysis")}, nil
}

// Fractions computes only the two pair fractions.
func (a *Analyzer) Fractions(ctx context.Context) (followers, engagers overlap.Fraction, err error) {
	f, e, err := a.sides(ctx, false)
	if err != nil {
		return overlap.Fraction{}, overlap.Fraction{}, err
	}
	return f.Fraction, e.Fraction, nil
}

// Overlap computes fractions, influencer maps, overlap lists and the joined
// per-pair counts, without regression, charts or persistence.
func (a *Analyzer) Overlap(ctx context.Context) (*Result, error) {
	f, e, err := a.sides(ctx, true)
	if err != nil {
		return nil, err
	}
	infA, infB := a.cfg.Pair()
	return &Result{
		InfluencerA: infA,
		InfluencerB: infB,
		Semantics:   a.opts.Semantics,
		Follow:      f,
		Engage:      e,
		Pairs:       overlap.Join(f.Pairs, e.Pairs),
	}, nil
}

// Run performs the full analysis. Nothing is stored unless every step
// succeeds.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	res, err := a.Overlap(ctx)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()

	x, y := a.regressionInputs(res)
	a.log.Info("fitting regression", "input", a.cfg.Regression, "points", len(x))
	model, err := regress.Fit(x, y)
	if err != nil {
		return nil, fmt.Errorf("regression on %s: %w", a.cfg.Regression, err)
	}
	res.Model = model

	charts, err := a.renderCharts(id, res, x, y)
	if err != nil {
		return nil, err
	}
	res.Charts = charts

	if a.store != nil {
		if err := a.store.SaveRun(runRecord(id, res, a.cfg.Regression), res.Pairs); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		res.RunID = id
		a.log.Info("run recorded", "run_id", id)
	}
	return res, nil
}

// sides processes the follow and engagement datasets concurrently. Each
// goroutine owns its records, so nothing is shared.
func (a *Analyzer) sides(ctx context.Context, withOverlap bool) (follow, engage *Side, err error) {
	infA, infB := a.cfg.Pair()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := a.side(gctx, dataset.Follow, a.cfg.Following, withOverlap, func(recs []dataset.Record) (overlap.Fraction, error) {
			return overlap.FractionOfFollowers(infA, infB, recs, a.opts)
		})
		follow = s
		return err
	})
	g.Go(func() error {
		s, err := a.side(gctx, dataset.Engagement, a.cfg.Engagement, withOverlap, func(recs []dataset.Record) (overlap.Fraction, error) {
			return overlap.FractionOfEngagers(infA, infB, recs, a.opts)
		})
		engage = s
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return follow, engage, nil
}

func (a *Analyzer) side(ctx context.Context, kind dataset.Kind, path string, withOverlap bool,
	fraction func([]dataset.Record) (overlap.Fraction, error),
) (*Side, error) {
	records, err := dataset.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s dataset: %w", kind, err)
	}
	s := &Side{Kind: kind, Records: len(records)}

	s.Fraction, err = fraction(records)
	if err != nil {
		return nil, fmt.Errorf("%s fraction: %w", kind, err)
	}
	a.log.Debug("fraction computed", "kind", kind, "shared", s.Fraction.Shared,
		"count_a", s.Fraction.CountA, "count_b", s.Fraction.CountB)
	if !withOverlap {
		return s, nil
	}

	s.Map = overlap.GroupByInfluencer(records, a.opts.Semantics)
	a.log.Info("grouped participants", "kind", kind, "influencers", logging.Count(s.Map.Len()))

	if s.IDs, err = overlap.Enumerate(ctx, s.Map); err != nil {
		return nil, fmt.Errorf("%s overlap: %w", kind, err)
	}
	if s.Pairs, err = overlap.PairCounts(ctx, s.Map); err != nil {
		return nil, fmt.Errorf("%s pair counts: %w", kind, err)
	}
	a.log.Info("overlap enumerated", "kind", kind, "shared", logging.Count(len(s.IDs)), "pairs", logging.Count(len(s.Pairs)))
	return s, nil
}

func (a *Analyzer) regressionInputs(res *Result) (x, y []float64) {
	if a.cfg.Regression == config.RegressIDs {
		return chart.Ints(res.Follow.IDs), chart.Ints(res.Engage.IDs)
	}
	return overlap.Series(res.Pairs)
}

// renderCharts writes both histograms and the fit plot. An empty histogram
// is skipped with a warning rather than failing the run.
func (a *Analyzer) renderCharts(runID string, res *Result, x, y []float64) ([]string, error) {
	dir := filepath.Join(a.cfg.OutputDir, runID[:8])
	ext := "." + a.cfg.ChartFormat
	var written []string

	hists := []struct {
		name, title string
		ids         []int64
	}{
		{"network_overlap", "Network overlap", res.Follow.IDs},
		{"engagement_overlap", "Engagement overlap", res.Engage.IDs},
	}
	for _, h := range hists {
		path := filepath.Join(dir, h.name+ext)
		err := chart.Histogram(path, h.title, "Participant id", chart.Ints(h.ids), a.cfg.Bins)
		if errors.Is(err, chart.ErrNoData) {
			a.log.Warn("histogram skipped", "chart", h.name, "reason", "no shared participants")
			continue
		}
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	lx, ly := res.Model.Line(res.Model.XMin, res.Model.XMax, linePoints)
	path := filepath.Join(dir, "regression"+ext)
	if err := chart.ScatterWithFit(path, x, y, lx, ly, "Network overlap", "Engagement overlap"); err != nil {
		return nil, err
	}
	return append(written, path), nil
}

func runRecord(id string, res *Result, input string) *store.Run {
	return &store.Run{
		ID:              id,
		InfluencerA:     string(res.InfluencerA),
		InfluencerB:     string(res.InfluencerB),
		Semantics:       string(res.Semantics),
		Followers:       res.Follow.Fraction,
		Engagers:        res.Engage.Fraction,
		RegressionInput: input,
		NetworkIDs:      len(res.Follow.IDs),
		EngagementIDs:   len(res.Engage.IDs),
		Model:           res.Model,
	}
}
