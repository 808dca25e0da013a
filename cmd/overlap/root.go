package main

import (
	"github.com/spf13/cobra"

	"overlap/internal/logging"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "overlap",
		Short: "Follower and engagement overlap between influencers",
		Long: "overlap measures how many followers and engagers two influencers share,\n" +
			"enumerates shared participants across every influencer pair, and fits\n" +
			"an OLS line of engagement overlap against network overlap.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			logging.Init(level, g.logFormat, cmd.ErrOrStderr())
			return nil
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (YAML or JSON)")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newAnalyzeCmd(g))
	root.AddCommand(newFractionCmd(g))
	root.AddCommand(newPairsCmd(g))
	root.AddCommand(newHistoryCmd(g))
	return root
}
