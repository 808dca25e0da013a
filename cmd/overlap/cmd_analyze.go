package main

import (
	"github.com/spf13/cobra"

	"overlap/internal/analysis"
	"overlap/internal/format"
	"overlap/internal/store"
)

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var (
		d          datasetFlags
		regression string
		outDir     string
		chartFmt   string
		dbPath     string
		noStore    bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full overlap study and regression",
		Long: `Load both datasets, print the follower and engager fractions for the
configured influencer pair, enumerate shared participants across every
influencer pair, fit engagement overlap against network overlap, and write
histograms and the regression plot.

Examples:
  overlap analyze
  overlap analyze --config study.yaml --semantics corrected
  overlap analyze --following f.json --engagement e.json --regress ids --no-store`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g, &d)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("regress") {
				cfg.Regression = regression
			}
			if f.Changed("out-dir") {
				cfg.OutputDir = outDir
			}
			if f.Changed("chart-format") {
				cfg.ChartFormat = chartFmt
			}
			if f.Changed("db") {
				cfg.DB = dbPath
			}

			var st store.Store
			if !noStore {
				st, err = openStore(cfg.DB)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			a, err := analysis.New(cfg, st)
			if err != nil {
				return err
			}
			res, err := a.Run(cmd.Context())
			if err != nil {
				return err
			}
			analysis.WriteReport(cmd.OutOrStdout(), res, format.ModeFor(d.markdown))
			return nil
		},
	}
	fl := cmd.Flags()
	d.register(fl)
	fl.StringVar(&regression, "regress", "", "Regression input: pairs (per-pair counts) or ids (overlap id lists)")
	fl.StringVarP(&outDir, "out-dir", "o", "", "Directory for charts (default: .overlap/output)")
	fl.StringVar(&chartFmt, "chart-format", "", "Chart format: png, svg or pdf")
	fl.StringVar(&dbPath, "db", "", "Run history DB path (default: .overlap/runs.db)")
	fl.BoolVar(&noStore, "no-store", false, "Do not record the run")
	return cmd
}
