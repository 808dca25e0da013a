package analysis

import (
	"fmt"
	"io"

	"overlap/internal/dataset"
	"overlap/internal/format"
	"overlap/internal/overlap"
	"overlap/internal/store"
)

// WriteFractions prints the two headline fractions.
func WriteFractions(w io.Writer, followers, engagers overlap.Fraction) {
	fmt.Fprintf(w, "Fraction of followers over total followers of the less followed influencer is: %v\n", followers.Value)
	fmt.Fprintf(w, "Fraction of engagers over total engagers of the less engaged influencer is: %v\n", engagers.Value)
}

// FractionTable details the counts behind both fractions.
func FractionTable(res *Result, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title(fmt.Sprintf("%s vs %s (%s)", res.InfluencerA, res.InfluencerB, res.Semantics))
	tb.Header("Set", "Records", "Shared", "Count A", "Count B", "Fraction")
	for _, s := range []*Side{res.Follow, res.Engage} {
		tb.Row(label(s), s.Records, s.Fraction.Shared, s.Fraction.CountA, s.Fraction.CountB, format.Ratio(s.Fraction.Value))
	}
	return tb.String()
}

// PairTable lists network and engagement overlap per influencer pair.
func PairTable(pairs []overlap.PairOverlap, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("Pair overlap")
	tb.Header("Influencer A", "Influencer B", "Network", "Engagement")
	var network, engagement int
	for _, p := range pairs {
		tb.Row(format.Truncate(string(p.A), 24), format.Truncate(string(p.B), 24), p.Network, p.Engagement)
		network += p.Network
		engagement += p.Engagement
	}
	tb.Footer("TOTAL", fmt.Sprintf("%d pairs", len(pairs)), network, engagement)
	tb.Columns(
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
	)
	return tb.String()
}

// WriteReport prints everything a completed Run produced.
func WriteReport(w io.Writer, res *Result, mode format.Mode) {
	WriteFractions(w, res.Follow.Fraction, res.Engage.Fraction)
	fmt.Fprintln(w)
	fmt.Fprintln(w, FractionTable(res, mode))
	fmt.Fprintln(w)
	if res.Model != nil {
		fmt.Fprint(w, res.Model.Summary("network_overlap", "engagers_overlap", mode))
		fmt.Fprintln(w)
	}
	for _, c := range res.Charts {
		fmt.Fprintf(w, "Chart: %s\n", c)
	}
	if res.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", res.RunID)
	}
}

func label(s *Side) string {
	if s.Kind == dataset.Engagement {
		return "engagers"
	}
	return "followers"
}

// RunTable lists recorded runs, newest first.
func RunTable(runs []*store.Run, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Title("Recorded runs")
	tb.Header("Run", "When", "Pair", "Semantics", "Followers", "Engagers", "Input", "Slope", "R²")
	for _, r := range runs {
		slope, r2 := "-", "-"
		if r.Model != nil {
			slope, r2 = format.Ratio(r.Model.Slope), format.Ratio(r.Model.R2)
		}
		tb.Row(
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			format.Truncate(r.InfluencerA, 12)+" / "+format.Truncate(r.InfluencerB, 12),
			r.Semantics,
			format.Ratio(r.Followers.Value),
			format.Ratio(r.Engagers.Value),
			r.RegressionInput,
			slope,
			r2,
		)
	}
	return tb.String()
}
