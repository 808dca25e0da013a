package overlap

import "overlap/internal/dataset"

// PairOverlap holds the network and engagement overlap of one pair.
type PairOverlap struct {
	A          dataset.UID `json:"a"`
	B          dataset.UID `json:"b"`
	Network    int         `json:"network"`
	Engagement int         `json:"engagement"`
}

// Join matches network pairs with engagement pairs regardless of the order
// the two influencers appear in each map. Pairs missing from either side
// are dropped. Output follows network order.
func Join(network, engagement []Pair) []PairOverlap {
	eng := make(map[[2]dataset.UID]int, len(engagement))
	for _, p := range engagement {
		eng[[2]dataset.UID{p.A, p.B}] = p.Shared
	}

	var out []PairOverlap
	for _, p := range network {
		n, ok := eng[[2]dataset.UID{p.A, p.B}]
		if !ok {
			n, ok = eng[[2]dataset.UID{p.B, p.A}]
		}
		if !ok {
			continue
		}
		out = append(out, PairOverlap{A: p.A, B: p.B, Network: p.Shared, Engagement: n})
	}
	return out
}

// Series splits joined pairs into regression inputs.
func Series(pairs []PairOverlap) (network, engagement []float64) {
	network = make([]float64, len(pairs))
	engagement = make([]float64, len(pairs))
	for i, p := range pairs {
		network[i] = float64(p.Network)
		engagement[i] = float64(p.Engagement)
	}
	return network, engagement
}
