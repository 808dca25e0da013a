package overlap

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"overlap/internal/dataset"

	"github.com/google/go-cmp/cmp"
)

func follow(inf, f, ts string) dataset.Record {
	return dataset.Record{InfluencerUID: dataset.UID(inf), FollowerUID: dataset.UID(f), FollowTimestamp: ts}
}

func engage(inf, f, ts string) dataset.Record {
	return dataset.Record{InfluencerUID: dataset.UID(inf), FollowerUID: dataset.UID(f), EngagedDT: ts}
}

func TestFractionOfFollowers_SharedOverSmaller(t *testing.T) {
	records := []dataset.Record{
		follow("A", "f1", "2022-04-01"),
		follow("A", "f2", "2022-04-01"),
		follow("B", "f1", "2022-04-15"),
	}
	got, err := FractionOfFollowers("A", "B", records, DefaultOptions())
	if err != nil {
		t.Fatalf("FractionOfFollowers: %v", err)
	}
	want := Fraction{Shared: 1, CountA: 2, CountB: 1, Value: 1.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fraction mismatch (-want +got):\n%s", diff)
	}
}

func TestFractionOfFollowers_Filters(t *testing.T) {
	tests := []struct {
		name    string
		records []dataset.Record
		want    Fraction
	}{
		{
			name: "all after cutoff",
			records: []dataset.Record{
				follow("A", "f1", "2022-05-01"),
				follow("B", "f1", "2022-05-02 10:00:00"),
			},
			want: Fraction{},
		},
		{
			name: "cutoff day is inclusive regardless of time",
			records: []dataset.Record{
				follow("A", "f1", "2022-04-30 23:59:59"),
				follow("B", "f1", "2022-04-30"),
			},
			want: Fraction{Shared: 1, CountA: 1, CountB: 1, Value: 1},
		},
		{
			name: "other influencers ignored",
			records: []dataset.Record{
				follow("A", "f1", "2022-04-01"),
				follow("C", "f1", "2022-04-01"),
				follow("B", "f2", "2022-04-01"),
			},
			want: Fraction{Shared: 0, CountA: 1, CountB: 1, Value: 0},
		},
		{
			name: "one side empty",
			records: []dataset.Record{
				follow("A", "f1", "2022-04-01"),
				follow("A", "f2", "2022-04-02"),
			},
			want: Fraction{CountA: 2},
		},
		{
			name: "repeat under one influencer counts as shared",
			records: []dataset.Record{
				follow("A", "f1", "2022-04-01"),
				follow("A", "f1", "2022-04-02"),
				follow("A", "f1", "2022-04-03"),
				follow("B", "f9", "2022-04-03"),
			},
			want: Fraction{Shared: 2, CountA: 3, CountB: 1, Value: 2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FractionOfFollowers("A", "B", tc.records, DefaultOptions())
			if err != nil {
				t.Fatalf("FractionOfFollowers: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("fraction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFractionOfFollowers_BadTimestamp(t *testing.T) {
	records := []dataset.Record{
		follow("A", "f1", "2022-04-01"),
		follow("C", "f2", "04/01/2022"),
	}
	_, err := FractionOfFollowers("A", "B", records, DefaultOptions())
	if !errors.Is(err, dataset.ErrTimestamp) {
		t.Errorf("err = %v, want ErrTimestamp", err)
	}
}

func TestFractionOfEngagers_CompatIgnoresWindow(t *testing.T) {
	records := []dataset.Record{
		engage("A", "e1", "2022-01-01 00:00:00"),
		engage("A", "e2", "2022-04-25 12:00:00"),
		engage("B", "e1", "2022-12-31 23:00:00"),
		engage("C", "e2", "2022-04-25 12:00:00"),
	}
	got, err := FractionOfEngagers("A", "B", records, DefaultOptions())
	if err != nil {
		t.Fatalf("FractionOfEngagers: %v", err)
	}
	want := Fraction{Shared: 1, CountA: 2, CountB: 1, Value: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fraction mismatch (-want +got):\n%s", diff)
	}
}

func TestFractionOfEngagers_CorrectedAppliesWindow(t *testing.T) {
	records := []dataset.Record{
		engage("A", "e1", "2022-01-01 00:00:00"),
		engage("A", "e2", "2022-04-25 12:00:00"),
		engage("A", "e3", "2022-04-22"),
		engage("B", "e2", "2022-04-29 08:00:00"),
		engage("B", "e1", "2022-12-31 23:00:00"),
	}
	opts := DefaultOptions()
	opts.Semantics = Corrected
	got, err := FractionOfEngagers("A", "B", records, opts)
	if err != nil {
		t.Fatalf("FractionOfEngagers: %v", err)
	}
	want := Fraction{Shared: 1, CountA: 2, CountB: 1, Value: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fraction mismatch (-want +got):\n%s", diff)
	}
}

func TestFractions_ZeroWhenNothingQualifies(t *testing.T) {
	f, err := FractionOfFollowers("A", "B", nil, DefaultOptions())
	if err != nil || f.Value != 0 {
		t.Errorf("followers on empty input = %+v, %v", f, err)
	}
	e, err := FractionOfEngagers("A", "B", []dataset.Record{engage("C", "x", "2022-04-25")}, DefaultOptions())
	if err != nil || e.Value != 0 {
		t.Errorf("engagers with no matching influencer = %+v, %v", e, err)
	}
}

// With followers unique within each influencer, shared can never exceed
// the smaller count.
func TestFractions_RangeWithUniqueParticipants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	influencers := []string{"A", "B", "C"}

	for trial := 0; trial < 200; trial++ {
		var follows, engagements []dataset.Record
		for _, inf := range influencers {
			for _, p := range rng.Perm(12)[:rng.IntN(8)] {
				day := fmt.Sprintf("2022-04-%02d", 1+rng.IntN(30))
				follows = append(follows, follow(inf, fmt.Sprint(p), day))
				engagements = append(engagements, engage(inf, fmt.Sprint(p), day+" 12:00:00"))
			}
		}
		rng.Shuffle(len(follows), func(i, j int) { follows[i], follows[j] = follows[j], follows[i] })

		for _, sem := range []Semantics{Compat, Corrected} {
			opts := DefaultOptions()
			opts.Semantics = sem

			f, err := FractionOfFollowers("A", "B", follows, opts)
			if err != nil {
				t.Fatal(err)
			}
			checkRange(t, "followers", f)

			e, err := FractionOfEngagers("A", "B", engagements, opts)
			if err != nil {
				t.Fatal(err)
			}
			checkRange(t, "engagers", e)
		}
	}
}

func TestFractionOfFollowers_RepeatedRowsCountAsShared(t *testing.T) {
	records := []dataset.Record{
		follow("A", "f1", "2022-04-01"),
		follow("A", "f1", "2022-04-02"),
		follow("A", "f1", "2022-04-03"),
		follow("B", "f2", "2022-04-04"),
	}
	got, err := FractionOfFollowers("A", "B", records, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := Fraction{Shared: 2, CountA: 3, CountB: 1, Value: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fraction mismatch (-want +got):\n%s", diff)
	}
}

func checkRange(t *testing.T, label string, f Fraction) {
	t.Helper()
	if min(f.CountA, f.CountB) == 0 {
		if f.Value != 0 {
			t.Errorf("%s: value %v with an empty side (%+v)", label, f.Value, f)
		}
		return
	}
	if f.Value < 0 || f.Value > 1 || math.IsNaN(f.Value) {
		t.Errorf("%s: value %v outside [0,1] (%+v)", label, f.Value, f)
	}
}

func TestParseSemantics(t *testing.T) {
	for in, want := range map[string]Semantics{"": Compat, "compat": Compat, "corrected": Corrected} {
		got, err := ParseSemantics(in)
		if err != nil || got != want {
			t.Errorf("ParseSemantics(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSemantics("strict"); err == nil {
		t.Error("expected error for unknown semantics")
	}
}
