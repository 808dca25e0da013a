package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"overlap/internal/analysis"
	"overlap/internal/format"
	"overlap/internal/store"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var (
		dbPath   string
		limit    int
		markdown bool
	)
	dbFor := func(cmd *cobra.Command) (string, error) {
		cfg, err := resolveConfig(cmd, g, nil)
		if err != nil {
			return "", err
		}
		if cmd.Flags().Changed("db") {
			return dbPath, nil
		}
		return cfg.DB, nil
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbFor(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(path)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded. Run 'overlap analyze' first.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.RunTable(runs, format.ModeFor(markdown)))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run with its pair overlaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbFor(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(path)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(args[0])
			if err != nil {
				return err
			}
			pairs, err := st.ListPairs(run.ID)
			if err != nil {
				return err
			}
			mode := format.ModeFor(markdown)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, analysis.RunTable([]*store.Run{run}, mode))
			if run.Model != nil {
				fmt.Fprint(out, run.Model.Summary("network_overlap", "engagers_overlap", mode))
			}
			fmt.Fprintln(out, analysis.PairTable(pairs, mode))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", "", "Run history DB path (default: .overlap/runs.db)")
	pf.BoolVar(&markdown, "markdown", false, "Render tables as Markdown")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 = all)")
	cmd.AddCommand(show)
	return cmd
}
