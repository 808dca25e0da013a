// Package dataset reads follow and engagement exports and normalizes their
// timestamps.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind selects which timestamp field a record carries.
type Kind string

const (
	Follow     Kind = "follow"
	Engagement Kind = "engagement"
)

// UID is an account identifier. Exports carry it as a JSON string, but a
// bare JSON number is accepted and kept as its decimal text.
type UID string

func (u *UID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("uid must be a string or number, got %s", data)
	}
	*u = UID(n.String())
	return nil
}

// Record is one follow or engagement event.
type Record struct {
	InfluencerUID   UID    `json:"influencer_uid"`
	FollowerUID     UID    `json:"follower_uid"`
	FollowTimestamp string `json:"follow_timestamp,omitempty"`
	EngagedDT       string `json:"engaged_dt,omitempty"`
}

// Timestamp returns the raw timestamp for the given kind.
func (r Record) Timestamp(k Kind) string {
	if k == Engagement {
		return r.EngagedDT
	}
	return r.FollowTimestamp
}
