package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"overlap/internal/analysis"
	"overlap/internal/format"
)

func newPairsCmd(g *globalFlags) *cobra.Command {
	var d datasetFlags
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Show network and engagement overlap for every influencer pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g, &d)
			if err != nil {
				return err
			}
			a, err := analysis.New(cfg, nil)
			if err != nil {
				return err
			}
			res, err := a.Overlap(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.PairTable(res.Pairs, format.ModeFor(d.markdown)))
			return nil
		},
	}
	d.register(cmd.Flags())
	return cmd
}
