package termtreat

import (
	"errors"
	"testing"
)

func TestRowConfigurationPushFrontOrdering(t *testing.T) {
	var cfg RowConfiguration
	cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 2})
	cfg.MustPushFront(RowConfigurationEntry{Rank: 3, Count: 1})

	entries := cfg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len() = %d, want 2", len(entries))
	}
	if entries[0].Rank != 3 || entries[1].Rank != 0 {
		t.Errorf("entries = %v, want descending rank order [3, 0]", entries)
	}
}

func TestRowConfigurationCapacityExceeded(t *testing.T) {
	var cfg RowConfiguration
	for i := 0; i < MaxConfigurationEntries; i++ {
		if err := cfg.PushFront(RowConfigurationEntry{Rank: Rank(i % 7), Count: 1}); err != nil {
			t.Fatalf("PushFront #%d: unexpected error %v", i, err)
		}
	}
	err := cfg.PushFront(RowConfigurationEntry{Rank: 0, Count: 1})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("PushFront past capacity: got %v, want ErrCapacityExceeded", err)
	}
}

func TestRowConfigurationTotalRows(t *testing.T) {
	var cfg RowConfiguration
	cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 2})
	cfg.MustPushFront(RowConfigurationEntry{Rank: 3, Count: 5})
	if got := cfg.TotalRows(); got != 7 {
		t.Errorf("TotalRows() = %d, want 7", got)
	}
}

func TestRowConfigurationEqual(t *testing.T) {
	var a, b RowConfiguration
	a.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
	b.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
	if !a.Equal(b) {
		t.Errorf("expected equal configurations")
	}
	b.MustPushFront(RowConfigurationEntry{Rank: 2, Count: 1})
	if a.Equal(b) {
		t.Errorf("expected unequal configurations after divergence")
	}
}

func TestRowConfigurationFromEntriesPreservesOrderAndIsIndependent(t *testing.T) {
	source := []RowConfigurationEntry{{Rank: 3, Count: 1}, {Rank: 0, Count: 2}}
	cfg := RowConfigurationFromEntries(source)

	if got := cfg.Entries(); len(got) != 2 || got[0].Rank != 3 || got[1].Rank != 0 {
		t.Errorf("Entries() = %v, want order preserved from input [3, 0]", got)
	}

	source[0].Count = 99
	if cfg.Entries()[0].Count == 99 {
		t.Error("RowConfigurationFromEntries should copy its input, not alias it")
	}
}

func TestRowConfigurationString(t *testing.T) {
	var cfg RowConfiguration
	cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 2})
	cfg.MustPushFront(RowConfigurationEntry{Rank: 3, Count: 1})
	if got, want := cfg.String(), "(3:1) (0:2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
