package overlap

import (
	"fmt"

	"overlap/internal/dataset"
	"overlap/internal/seen"
)

// Fraction is the shared-participant ratio for one influencer pair.
type Fraction struct {
	Shared int     `json:"shared"`
	CountA int     `json:"count_a"`
	CountB int     `json:"count_b"`
	Value  float64 `json:"value"`
}

// FractionOfFollowers returns shared followers over the follower count of
// the smaller of a and b. A follow is skipped when its date is after
// opts.FollowCutoff or its influencer is neither a nor b. Only the date
// part of follow_timestamp is compared.
func FractionOfFollowers(a, b dataset.UID, records []dataset.Record, opts Options) (Fraction, error) {
	return fractionOf(a, b, records, func(r dataset.Record) (bool, error) {
		ts := r.FollowTimestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}
		day, err := dataset.ParseTimestamp(ts)
		if err != nil {
			return false, err
		}
		return day.After(opts.FollowCutoff) || (r.InfluencerUID != a && r.InfluencerUID != b), nil
	})
}

// FractionOfEngagers returns shared engagers over the engager count of
// the smaller of a and b. Under Compat the date test is
// "before From AND after To", which no timestamp satisfies; under
// Corrected it is "before From OR after To".
func FractionOfEngagers(a, b dataset.UID, records []dataset.Record, opts Options) (Fraction, error) {
	return fractionOf(a, b, records, func(r dataset.Record) (bool, error) {
		dt, err := dataset.ParseTimestamp(r.EngagedDT)
		if err != nil {
			return false, err
		}
		var outside bool
		if opts.Semantics == Corrected {
			outside = dt.Before(opts.EngagementFrom) || dt.After(opts.EngagementTo)
		} else {
			outside = dt.Before(opts.EngagementFrom) && dt.After(opts.EngagementTo)
		}
		return outside || (r.InfluencerUID != a && r.InfluencerUID != b), nil
	})
}

// fractionOf walks records once. The seen set spans both influencers, so a
// participant repeated under the same influencer also counts as shared.
func fractionOf(a, b dataset.UID, records []dataset.Record, skip func(dataset.Record) (bool, error)) (Fraction, error) {
	var f Fraction
	participants := seen.New[dataset.UID](len(records))

	for i, r := range records {
		excluded, err := skip(r)
		if err != nil {
			return Fraction{}, fmt.Errorf("record %d: %w", i, err)
		}
		if excluded {
			continue
		}

		if participants.Insert(r.FollowerUID) {
			f.Shared++
		}

		if r.InfluencerUID == a {
			f.CountA++
		} else {
			f.CountB++
		}
	}

	least := min(f.CountA, f.CountB)
	if least == 0 {
		return f, nil
	}
	f.Value = float64(f.Shared) / float64(least)
	return f, nil
}
