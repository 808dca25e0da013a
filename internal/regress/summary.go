package regress

import (
	"fmt"
	"math"
	"strings"

	"overlap/internal/format"
)

// Summary renders the fit as two tables: model statistics and coefficients.
func (m *Model) Summary(xName, yName string, mode format.Mode) string {
	stats := format.NewTable(mode)
	stats.Header("OLS Regression", "")
	stats.Row("Dep. Variable", yName)
	stats.Row("No. Observations", m.N)
	stats.Row("Df Residuals", m.DFResid)
	stats.Row("R-squared", num(m.R2))
	stats.Row("Adj. R-squared", num(m.AdjR2))
	stats.Row("F-statistic", num(m.F))
	stats.Row("Prob (F-statistic)", num(m.PF))
	stats.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})

	coef := format.NewTable(mode)
	coef.Header("", "coef", "std err", "t", "P>|t|")
	coef.Row("const", num(m.Intercept), num(m.StdErrIntercept), num(m.TIntercept), num(m.PIntercept))
	coef.Row(xName, num(m.Slope), num(m.StdErrSlope), num(m.TSlope), num(m.PSlope))
	coef.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)

	var b strings.Builder
	b.WriteString(stats.String())
	b.WriteString("\n")
	b.WriteString(coef.String())
	b.WriteString("\n")
	return b.String()
}

func num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.4f", v)
}
