package regress

import (
	"errors"
	"math"
	"strings"
	"testing"

	"overlap/internal/format"
)

const tol = 1e-9

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestFit_ExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7}

	m, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !near(m.Slope, 2, tol) {
		t.Errorf("Slope = %v, want 2", m.Slope)
	}
	if !near(m.Intercept, 1, tol) {
		t.Errorf("Intercept = %v, want 1", m.Intercept)
	}
	if !near(m.R2, 1, tol) {
		t.Errorf("R2 = %v, want 1", m.R2)
	}
	if m.N != 4 || m.DFResid != 2 {
		t.Errorf("N=%d DFResid=%d, want 4 and 2", m.N, m.DFResid)
	}
	if m.PSlope > 1e-6 {
		t.Errorf("PSlope = %v, want ~0 for an exact fit", m.PSlope)
	}
}

func TestFit_NoisyKnownValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}

	m, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"Slope", m.Slope, 0.6},
		{"Intercept", m.Intercept, 2.2},
		{"R2", m.R2, 0.6},
		{"AdjR2", m.AdjR2, 1 - 0.4*4/3},
		{"StdErrSlope", m.StdErrSlope, math.Sqrt(0.08)},
		{"F", m.F, 4.5},
		{"F equals t squared", m.F, m.TSlope * m.TSlope},
	}
	for _, c := range checks {
		if !near(c.got, c.want, 1e-9) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if m.PSlope <= 0 || m.PSlope >= 1 {
		t.Errorf("PSlope = %v, want in (0,1)", m.PSlope)
	}
	if !near(m.PF, m.PSlope, 1e-6) {
		t.Errorf("PF = %v, want equal to PSlope %v for one regressor", m.PF, m.PSlope)
	}
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want error
	}{
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, ErrLengthMismatch},
		{"empty", nil, nil, ErrDegenerate},
		{"single point", []float64{1}, []float64{1}, ErrDegenerate},
		{"constant x", []float64{2, 2, 2}, []float64{1, 2, 3}, ErrDegenerate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Fit(tc.x, tc.y); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFit_TwoPointsHasNoInference(t *testing.T) {
	m, err := Fit([]float64{0, 2}, []float64{1, 5})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !near(m.Slope, 2, tol) || !near(m.Intercept, 1, tol) {
		t.Errorf("got y = %v + %v x", m.Intercept, m.Slope)
	}
	if !math.IsNaN(m.StdErrSlope) || !math.IsNaN(m.PSlope) {
		t.Errorf("expected NaN inference with zero residual df, got se=%v p=%v", m.StdErrSlope, m.PSlope)
	}
}

func TestLine(t *testing.T) {
	m := &Model{Intercept: 1, Slope: 2}
	xs, ys := m.Line(0, 3, 4)
	if len(xs) != 4 || len(ys) != 4 {
		t.Fatalf("len = %d/%d, want 4", len(xs), len(ys))
	}
	for i, want := range []float64{1, 3, 5, 7} {
		if !near(ys[i], want, tol) {
			t.Errorf("ys[%d] = %v, want %v", i, ys[i], want)
		}
	}
}

func TestSummary(t *testing.T) {
	m, err := Fit([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	out := m.Summary("network_overlap", "engagers_overlap", format.ASCII)
	for _, want := range []string{"engagers_overlap", "network_overlap", "const", "R-squared", "0.6000", "2.2000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	md := m.Summary("x", "y", format.Markdown)
	if !strings.Contains(md, "| const") {
		t.Errorf("expected markdown coefficient row:\n%s", md)
	}
}
