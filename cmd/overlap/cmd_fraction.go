package main

import (
	"github.com/spf13/cobra"

	"overlap/internal/analysis"
)

func newFractionCmd(g *globalFlags) *cobra.Command {
	var d datasetFlags
	cmd := &cobra.Command{
		Use:   "fraction",
		Short: "Print the follower and engager fractions for one influencer pair",
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
			followers, engagers, err := a.Fractions(cmd.Context())
			if err != nil {
				return err
			}
			analysis.WriteFractions(cmd.OutOrStdout(), followers, engagers)
			return nil
		},
	}
	d.register(cmd.Flags())
	return cmd
}
