package termtable

import (
	"context"
	"testing"

	"github.com/bitfunnel-go/termtable/pkg/config"
)

func TestBuilderTabulatesEveryTerm(t *testing.T) {
	path := writeCorpusFile(t,
		"aaaaaaaaaaaaaaaa,1,0,0.2\n"+ // too common for any strategy, forced private
			"bbbbbbbbbbbbbbbb,1,0,0.01\n"+
			"cccccccccccccccc,1,0,0.0001\n",
	)
	source := NewCorpusSource(nil, config.CorpusConfig{FilePath: path})
	builder := NewBuilder(source, nil)

	summary, err := builder.Build(context.Background(), config.TreatmentConfig{
		Strategy: "PrivateSharedRank0",
		Density:  0.1,
		SNR:      10,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if summary.TermCount != 3 {
		t.Errorf("TermCount = %d, want 3", summary.TermCount)
	}
	if summary.TotalRows <= 0 {
		t.Errorf("TotalRows = %d, want > 0", summary.TotalRows)
	}
	if len(summary.RowsByRank) == 0 {
		t.Error("RowsByRank should not be empty")
	}

	var sum int64
	for _, count := range summary.RowsByRank {
		sum += count
	}
	if sum != summary.TotalRows {
		t.Errorf("sum(RowsByRank) = %d, want TotalRows = %d", sum, summary.TotalRows)
	}
}

func TestBuilderRejectsUnknownStrategy(t *testing.T) {
	path := writeCorpusFile(t, "aaaaaaaaaaaaaaaa,1,0,0.01\n")
	source := NewCorpusSource(nil, config.CorpusConfig{FilePath: path})
	builder := NewBuilder(source, nil)

	if _, err := builder.Build(context.Background(), config.TreatmentConfig{
		Strategy: "NotAStrategy",
		Density:  0.1,
		SNR:      10,
	}); err == nil {
		t.Error("Build() with an unknown strategy should fail")
	}
}
