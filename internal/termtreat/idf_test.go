package termtreat

import (
	"math"
	"testing"
)

func TestIdfToFrequency(t *testing.T) {
	cases := []struct {
		idf  IdfX10
		want float64
	}{
		{0, 1},
		{10, 0.1},
		{40, 1e-4},
		{90, 1e-9},
	}
	for _, c := range cases {
		got := IdfToFrequency(c.idf)
		if math.Abs(got-c.want) > 1e-12*math.Max(1, c.want) {
			t.Errorf("IdfToFrequency(%d) = %v, want %v", c.idf, got, c.want)
		}
	}
}

func TestFrequencyAtRankBoundaries(t *testing.T) {
	if got := FrequencyAtRank(0, 3); got != 0 {
		t.Errorf("FrequencyAtRank(0, 3) = %v, want 0", got)
	}
	if got := FrequencyAtRank(1, 3); got != 1 {
		t.Errorf("FrequencyAtRank(1, 3) = %v, want 1", got)
	}
	if got := FrequencyAtRank(0.5, 0); got != 0.5 {
		t.Errorf("FrequencyAtRank(0.5, 0) = %v, want 0.5", got)
	}
}

func TestFrequencyAtRankMonotone(t *testing.T) {
	f := 0.001
	prev := FrequencyAtRank(f, 0)
	for r := Rank(1); r <= MaxRankValue; r++ {
		cur := FrequencyAtRank(f, r)
		if cur < prev {
			t.Fatalf("FrequencyAtRank(%v, %d) = %v is less than rank %d's %v", f, r, cur, r-1, prev)
		}
		prev = cur
	}
}

func TestComputeRowCountPrivateWhenTooCommon(t *testing.T) {
	if k := ComputeRowCount(0.2, 0.1, 10); k != 1 {
		t.Errorf("ComputeRowCount(0.2, 0.1, 10) = %d, want 1 (f >= density)", k)
	}
	if k := ComputeRowCount(0.1, 0.1, 10); k != 1 {
		t.Errorf("ComputeRowCount(0.1, 0.1, 10) = %d, want 1 (f == density)", k)
	}
	if k := ComputeRowCount(1e-4, 0.1, 0); k != 1 {
		t.Errorf("ComputeRowCount(1e-4, 0.1, 0) = %d, want 1 (snr <= 0)", k)
	}
}

// TestComputeRowCountScenarios checks compute_row_count against precise
// evaluation of the formula in spec §4.1: smallest k>=1 with
// (density-f)^k <= f/snr. The idf-class-60 case (f=1e-6) is the S2 scenario
// from spec §8; the spec's own narrative claims k=8 there, but exact
// arithmetic on (0.1-1e-6)^k against 1e-6/10 gives k=7 — see the
// ComputeRowCount decision in DESIGN.md.
func TestComputeRowCountScenarios(t *testing.T) {
	cases := []struct {
		name string
		f    float64
		want uint32
	}{
		{"idf40", 1e-4, 5},
		{"idf60", 1e-6, 7},
	}
	for _, c := range cases {
		if got := ComputeRowCount(c.f, 0.1, 10); got != c.want {
			t.Errorf("%s: ComputeRowCount(%v, 0.1, 10) = %d, want %d", c.name, c.f, got, c.want)
		}
	}
}

func TestComputeMaxRankClampsToCeiling(t *testing.T) {
	if r := ComputeMaxRank(0, 0.1); r != MaxRankValue {
		t.Errorf("ComputeMaxRank(0, 0.1) = %d, want %d (frequency 0 never exceeds any density)", r, MaxRankValue)
	}
}

func TestComputeMaxRankMonotoneInFrequency(t *testing.T) {
	rLow := ComputeMaxRank(1e-6, 0.1)
	rHigh := ComputeMaxRank(0.05, 0.1)
	if rHigh > rLow {
		t.Errorf("ComputeMaxRank(0.05, 0.1) = %d should not exceed ComputeMaxRank(1e-6, 0.1) = %d", rHigh, rLow)
	}
}

func TestFrequencyToIdfClassRoundTrip(t *testing.T) {
	for idf := IdfX10(0); idf <= MaxIdfX10; idf += 10 {
		f := IdfToFrequency(idf)
		if got := FrequencyToIdfClass(f); got != idf {
			t.Errorf("FrequencyToIdfClass(IdfToFrequency(%d)) = %d, want %d", idf, got, idf)
		}
	}
}

func TestFrequencyToIdfClassClampsExtremes(t *testing.T) {
	if got := FrequencyToIdfClass(0); got != MaxIdfX10 {
		t.Errorf("FrequencyToIdfClass(0) = %d, want %d (rarest tabulated class)", got, MaxIdfX10)
	}
	if got := FrequencyToIdfClass(1); got != 0 {
		t.Errorf("FrequencyToIdfClass(1) = %d, want 0", got)
	}
}
