package overlap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"overlap/internal/dataset"
	"overlap/internal/seen"
)

// ErrNonNumericID is returned when a shared participant id is not a
// decimal integer that fits in an int64.
var ErrNonNumericID = errors.New("participant id is not an int64")

// Pair is the number of shared participant occurrences between two
// influencers, A before B in map order.
type Pair struct {
	A      dataset.UID `json:"a"`
	B      dataset.UID `json:"b"`
	Shared int         `json:"shared"`
}

// Enumerate lists, for every influencer pair i<j in key order, each
// participant of i that also appears in j's list, converted to an integer.
// Repeats from i's list are kept.
func Enumerate(ctx context.Context, m *InfluencerMap) ([]int64, error) {
	var out []int64
	err := eachPair(ctx, m, func(a, b dataset.UID, shared []dataset.UID) error {
		for _, p := range shared {
			id, err := strconv.ParseInt(string(p), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q shared by %s and %s", ErrNonNumericID, p, a, b)
			}
			out = append(out, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PairCounts returns the shared count of every influencer pair, including
// pairs that share nothing, in the same order Enumerate visits them.
func PairCounts(ctx context.Context, m *InfluencerMap) ([]Pair, error) {
	var out []Pair
	err := eachPair(ctx, m, func(a, b dataset.UID, shared []dataset.UID) error {
		out = append(out, Pair{A: a, B: b, Shared: len(shared)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func eachPair(ctx context.Context, m *InfluencerMap, visit func(a, b dataset.UID, shared []dataset.UID) error) error {
	keys := m.keys
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			right := seen.New[dataset.UID](len(m.members[keys[j]]))
			for _, p := range m.members[keys[j]] {
				right.Insert(p)
			}
			var shared []dataset.UID
			for _, p := range m.members[keys[i]] {
				if right.Contains(p) {
					shared = append(shared, p)
				}
			}
			if err := visit(keys[i], keys[j], shared); err != nil {
				return err
			}
		}
	}
	return nil
}
