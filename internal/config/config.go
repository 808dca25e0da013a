// Package config holds the analysis settings: dataset paths, the influencer
// pair to compare, date windows, and output locations.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"overlap/internal/dataset"
	"overlap/internal/overlap"
)

// Regression inputs.
const (
	RegressPairs = "pairs" // per-pair shared counts
	RegressIDs   = "ids"   // raw overlap id lists, as the original study did
)

// DefaultDBPath is where run history is kept unless configured otherwise.
const DefaultDBPath = ".overlap/runs.db"

// Window is an inclusive date range written as YYYY-MM-DD.
type Window struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Config is the full analysis configuration.
type Config struct {
	Following        string   `json:"following" yaml:"following"`
	Engagement       string   `json:"engagement" yaml:"engagement"`
	Influencers      []string `json:"influencers" yaml:"influencers"`
	Semantics        string   `json:"semantics,omitempty" yaml:"semantics,omitempty"`
	FollowCutoff     string   `json:"follow_cutoff,omitempty" yaml:"follow_cutoff,omitempty"`
	EngagementWindow Window   `json:"engagement_window" yaml:"engagement_window"`
	Regression       string   `json:"regression,omitempty" yaml:"regression,omitempty"`
	OutputDir        string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ChartFormat      string   `json:"chart_format,omitempty" yaml:"chart_format,omitempty"`
	Bins             int      `json:"bins,omitempty" yaml:"bins,omitempty"`
	DB               string   `json:"db,omitempty" yaml:"db,omitempty"`
}

// Default returns the settings of the April 2022 study.
func Default() Config {
	return Config{
		Following:        filepath.Join("datasets", "following.json"),
		Engagement:       filepath.Join("datasets", "engagement.json"),
		Influencers:      []string{"902200087", "969221141347913734"},
		Semantics:        string(overlap.Compat),
		FollowCutoff:     "2022-04-30",
		EngagementWindow: Window{From: "2022-04-22", To: "2022-04-30"},
		Regression:       RegressPairs,
		OutputDir:        filepath.Join(".overlap", "output"),
		ChartFormat:      "png",
		Bins:             10,
		DB:               DefaultDBPath,
	}
}

// LoadFromPath reads a config file (YAML or JSON) layered over Default.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config bytes layered over Default. ext is the file extension
// used as a format hint; empty means detect from content.
func Load(data []byte, ext string) (Config, error) {
	c := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides paths from OVERLAP_FOLLOWING, OVERLAP_ENGAGEMENT and
// OVERLAP_DB when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OVERLAP_FOLLOWING"); v != "" {
		c.Following = v
	}
	if v := os.Getenv("OVERLAP_ENGAGEMENT"); v != "" {
		c.Engagement = v
	}
	if v := os.Getenv("OVERLAP_DB"); v != "" {
		c.DB = v
	}
}

// Validate checks enums, dates and the influencer pair.
func (c Config) Validate() error {
	if len(c.Influencers) != 2 || c.Influencers[0] == "" || c.Influencers[1] == "" {
		return fmt.Errorf("influencers: need exactly two ids, got %q", c.Influencers)
	}
	if _, err := overlap.ParseSemantics(c.Semantics); err != nil {
		return err
	}
	switch c.Regression {
	case RegressPairs, RegressIDs:
	default:
		return fmt.Errorf("regression: unknown input %q (want %s or %s)", c.Regression, RegressPairs, RegressIDs)
	}
	switch c.ChartFormat {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("chart_format: unsupported %q (want png, svg or pdf)", c.ChartFormat)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	return nil
}

// Pair returns the two influencers to compare.
func (c Config) Pair() (dataset.UID, dataset.UID) {
	return dataset.UID(c.Influencers[0]), dataset.UID(c.Influencers[1])
}

// Options converts the date settings into calculator options.
func (c Config) Options() (overlap.Options, error) {
	sem, err := overlap.ParseSemantics(c.Semantics)
	if err != nil {
		return overlap.Options{}, err
	}
	cutoff, err := parseDate("follow_cutoff", c.FollowCutoff)
	if err != nil {
		return overlap.Options{}, err
	}
	from, err := parseDate("engagement_window.from", c.EngagementWindow.From)
	if err != nil {
		return overlap.Options{}, err
	}
	to, err := parseDate("engagement_window.to", c.EngagementWindow.To)
	if err != nil {
		return overlap.Options{}, err
	}
	if to.Before(from) {
		return overlap.Options{}, fmt.Errorf("engagement_window: to %s is before from %s", c.EngagementWindow.To, c.EngagementWindow.From)
	}
	return overlap.Options{Semantics: sem, FollowCutoff: cutoff, EngagementFrom: from, EngagementTo: to}, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dataset.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: want YYYY-MM-DD, got %q", field, s)
	}
	return t, nil
}
