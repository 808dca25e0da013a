package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"overlap/internal/config"
	"overlap/internal/store"
)

// datasetFlags are shared by every command that reads the datasets.
type datasetFlags struct {
	following   string
	engagement  string
	influencer1 string
	influencer2 string
	semantics   string
	markdown    bool
}

func (d *datasetFlags) register(f *pflag.FlagSet) {
	f.StringVar(&d.following, "following", "", "Follow records JSON (default: config or datasets/following.json)")
	f.StringVar(&d.engagement, "engagement", "", "Engagement records JSON (default: config or datasets/engagement.json)")
	f.StringVar(&d.influencer1, "influencer1", "", "First influencer id")
	f.StringVar(&d.influencer2, "influencer2", "", "Second influencer id")
	f.StringVar(&d.semantics, "semantics", "", "Rule set: compat (reproduce the study) or corrected")
	f.BoolVar(&d.markdown, "markdown", false, "Render tables as Markdown")
}

// resolveConfig layers defaults, the config file, environment and flags.
func resolveConfig(cmd *cobra.Command, g *globalFlags, d *datasetFlags) (config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		c, err := config.LoadFromPath(g.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = c
	}
	cfg.ApplyEnv()

	if d == nil {
		return cfg, nil
	}
	f := cmd.Flags()
	if f.Changed("following") {
		cfg.Following = d.following
	}
	if f.Changed("engagement") {
		cfg.Engagement = d.engagement
	}
	if f.Changed("influencer1") {
		cfg.Influencers = []string{d.influencer1, secondOr(cfg.Influencers)}
	}
	if f.Changed("influencer2") {
		cfg.Influencers = []string{firstOr(cfg.Influencers), d.influencer2}
	}
	if f.Changed("semantics") {
		cfg.Semantics = d.semantics
	}
	return cfg, nil
}

func firstOr(ids []string) string {
	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func secondOr(ids []string) string {
	if len(ids) > 1 {
		return ids[1]
	}
	return ""
}

func openStore(path string) (store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return st, nil
}
