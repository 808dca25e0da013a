// Package overlap computes shared-participant metrics between influencers.
//
// Two rule sets are supported. Compat reproduces the published analysis
// exactly, including its window test for engagements (which never
// excludes by date) and its grouping pass (which drops the first
// participant seen for each influencer). Corrected applies the evident
// intent: a real engagement window and complete grouping.
package overlap

import (
	"fmt"
	"time"

	"overlap/internal/dataset"
)

// Semantics selects the rule set.
type Semantics string

const (
	Compat    Semantics = "compat"
	Corrected Semantics = "corrected"
)

// ParseSemantics validates a semantics name; empty means Compat.
func ParseSemantics(s string) (Semantics, error) {
	switch Semantics(s) {
	case "", Compat:
		return Compat, nil
	case Corrected:
		return Corrected, nil
	}
	return "", fmt.Errorf("unknown semantics %q (want %s or %s)", s, Compat, Corrected)
}

// Options parameterize the fraction calculators and grouping.
type Options struct {
	Semantics Semantics
	// FollowCutoff excludes follows dated after it (date part only).
	FollowCutoff time.Time
	// EngagementFrom and EngagementTo bound the engagement window.
	EngagementFrom time.Time
	EngagementTo   time.Time
}

// DefaultOptions returns the cutoffs of the April 2022 study.
func DefaultOptions() Options {
	return Options{
		Semantics:      Compat,
		FollowCutoff:   dataset.MustDate("2022-04-30"),
		EngagementFrom: dataset.MustDate("2022-04-22"),
		EngagementTo:   dataset.MustDate("2022-04-30"),
	}
}
