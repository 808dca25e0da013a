// Package regress fits a simple ordinary-least-squares line and reports
// the usual inference statistics.
package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("x and y must have the same length")
	// ErrDegenerate is returned when the slope is not identifiable.
	ErrDegenerate = errors.New("regression needs at least two distinct x values")
)

// Model is a fitted y = Intercept + Slope*x.
type Model struct {
	N         int     `json:"n"`
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	R2        float64 `json:"r2"`
	AdjR2     float64 `json:"adj_r2"`

	// Inference; NaN when there are no residual degrees of freedom.
	DFResid         int     `json:"df_resid"`
	ResidualSE      float64 `json:"residual_se"`
	StdErrIntercept float64 `json:"stderr_intercept"`
	StdErrSlope     float64 `json:"stderr_slope"`
	TIntercept      float64 `json:"t_intercept"`
	TSlope          float64 `json:"t_slope"`
	PIntercept      float64 `json:"p_intercept"`
	PSlope          float64 `json:"p_slope"`
	F               float64 `json:"f"`
	PF              float64 `json:"p_f"`

	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
}

// Fit regresses y on x with an intercept.
func Fit(x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 || floats.Min(x) == floats.Max(x) {
		return nil, ErrDegenerate
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	n := float64(len(x))
	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var ssRes, ssTot, sxx float64
	for i := range x {
		r := y[i] - (alpha + beta*x[i])
		ssRes += r * r
		ssTot += (y[i] - meanY) * (y[i] - meanY)
		sxx += (x[i] - meanX) * (x[i] - meanX)
	}

	m := &Model{
		N:         len(x),
		Intercept: alpha,
		Slope:     beta,
		R2:        stat.RSquared(x, y, nil, alpha, beta),
		DFResid:   len(x) - 2,
		XMin:      floats.Min(x),
		XMax:      floats.Max(x),
	}

	if m.DFResid == 0 {
		nan := math.NaN()
		m.AdjR2, m.ResidualSE = nan, nan
		m.StdErrIntercept, m.StdErrSlope = nan, nan
		m.TIntercept, m.TSlope, m.PIntercept, m.PSlope = nan, nan, nan, nan
		m.F, m.PF = nan, nan
		return m, nil
	}

	df := float64(m.DFResid)
	s2 := ssRes / df
	m.ResidualSE = math.Sqrt(s2)
	m.AdjR2 = 1 - (1-m.R2)*(n-1)/df
	m.StdErrSlope = math.Sqrt(s2 / sxx)
	m.StdErrIntercept = math.Sqrt(s2 * (1/n + meanX*meanX/sxx))

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	m.TIntercept = alpha / m.StdErrIntercept
	m.TSlope = beta / m.StdErrSlope
	m.PIntercept = twoSided(t, m.TIntercept)
	m.PSlope = twoSided(t, m.TSlope)

	m.F = (ssTot - ssRes) / s2
	switch {
	case math.IsNaN(m.F):
		m.PF = math.NaN()
	case math.IsInf(m.F, 1):
		m.PF = 0
	default:
		m.PF = distuv.F{D1: 1, D2: df}.Survival(m.F)
	}
	return m, nil
}

func twoSided(dist distuv.StudentsT, t float64) float64 {
	switch {
	case math.IsNaN(t):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	return 2 * dist.Survival(math.Abs(t))
}

// Predict evaluates the fitted line at x.
func (m *Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// Line samples the fitted line at n evenly spaced points over [lo, hi].
func (m *Model) Line(lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = floats.Span(make([]float64, n), lo, hi)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = m.Predict(x)
	}
	return xs, ys
}
