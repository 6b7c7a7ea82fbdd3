package termtreat

import (
	"fmt"
	"strings"
	"testing"
)

func TestDescribeIncludesTableSize(t *testing.T) {
	tr, err := NewTreatment(StrategyPrivateRank0, 0.1, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	desc := tr.Describe()
	if desc == "" {
		t.Fatalf("Describe() returned empty string")
	}
	if want := fmt.Sprintf("%d", MaxIdfX10+1); !strings.Contains(desc, want) {
		t.Errorf("Describe() = %q, want it to mention the table size %s", desc, want)
	}
}

func TestTreatmentForClampsNegativeIdf(t *testing.T) {
	tr, err := NewTreatment(StrategyPrivateSharedRank0, 0.1, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	atZero := tr.TreatmentFor(Term{IdfClass: 0})
	negative := tr.TreatmentFor(Term{IdfClass: -5})
	if !atZero.Equal(negative) {
		t.Errorf("config at negative idf = %v, want same as idf=0 (%v)", negative, atZero)
	}
}
