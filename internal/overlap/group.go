package overlap

import "overlap/internal/dataset"

// InfluencerMap maps influencers to their participants, remembering the
// order in which influencers were first seen.
type InfluencerMap struct {
	keys    []dataset.UID
	members map[dataset.UID][]dataset.UID
}

// NewInfluencerMap returns an empty map.
func NewInfluencerMap() *InfluencerMap {
	return &InfluencerMap{members: make(map[dataset.UID][]dataset.UID)}
}

// Set replaces the participants of an influencer, registering it if new.
func (m *InfluencerMap) Set(influencer dataset.UID, participants ...dataset.UID) {
	if _, ok := m.members[influencer]; !ok {
		m.keys = append(m.keys, influencer)
	}
	m.members[influencer] = append([]dataset.UID{}, participants...)
}

// Keys returns influencers in first-seen order.
func (m *InfluencerMap) Keys() []dataset.UID {
	return append([]dataset.UID(nil), m.keys...)
}

// Participants returns the participants recorded for influencer.
func (m *InfluencerMap) Participants(influencer dataset.UID) []dataset.UID {
	return m.members[influencer]
}

// Len returns the number of influencers.
func (m *InfluencerMap) Len() int { return len(m.keys) }

// GroupByInfluencer builds the influencer map in one pass over records.
// Participants are not deduplicated. Under Compat the first record of each
// influencer only registers the key and its participant is not kept.
func GroupByInfluencer(records []dataset.Record, sem Semantics) *InfluencerMap {
	m := NewInfluencerMap()
	for _, r := range records {
		list, ok := m.members[r.InfluencerUID]
		switch {
		case ok:
			m.members[r.InfluencerUID] = append(list, r.FollowerUID)
		case sem == Corrected:
			m.Set(r.InfluencerUID, r.FollowerUID)
		default:
			m.Set(r.InfluencerUID)
		}
	}
	return m
}
