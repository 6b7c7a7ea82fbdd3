package termtable

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/metrics"
	"github.com/bitfunnel-go/termtable/pkg/tracing"
)

// BuildSummary reports the outcome of tabulating a treatment across a
// corpus's document-frequency table. It does not materialize physical rows;
// it records how many rows a full build would require, by rank.
type BuildSummary struct {
	Strategy        string
	Density         float64
	SNR             float64
	TermCount       int64
	TotalRows       int64
	RowsByRank      []int64 // index i holds rows tabulated at rank i
	BuildDuration   time.Duration
	CompletedAtUnix int64
}

// Builder tabulates a Treatment over a corpus's DocumentFrequencyTable and
// produces a BuildSummary. It never persists physical rows; row
// materialization belongs to the search-time index, not this planner.
type Builder struct {
	source  *CorpusSource
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewBuilder creates a Builder reading from source and recording outcomes
// via m (m may be nil to disable metrics).
func NewBuilder(source *CorpusSource, m *metrics.Metrics) *Builder {
	return &Builder{
		source:  source,
		metrics: m,
		logger:  slog.Default().With("component", "builder"),
	}
}

// Build loads the corpus, constructs the configured Treatment, and
// tabulates a RowConfiguration for every term in the corpus, accumulating a
// BuildSummary. It reports elapsed wall time via a tracing span and, if
// metrics are configured, records build duration, outcome, and per-rank row
// counts.
func (b *Builder) Build(ctx context.Context, tcfg config.TreatmentConfig) (*BuildSummary, error) {
	ctx, span := tracing.StartChildSpan(ctx, "termtable.Builder.Build")
	span.SetAttr("strategy", tcfg.Strategy)
	defer span.End()
	defer span.Log()

	start := time.Now()

	if b.metrics != nil {
		termtreat.SearchEvalHook = func() { b.metrics.SearchOptimalEvalTotal.Inc() }
		defer func() { termtreat.SearchEvalHook = nil }()
	}

	treatment, err := termtreat.NewTreatment(termtreat.StrategyName(tcfg.Strategy), tcfg.Density, tcfg.SNR, tcfg.Variant)
	if err != nil {
		b.recordOutcome(tcfg.Strategy, time.Since(start), "invalid_config")
		return nil, fmt.Errorf("constructing treatment: %w", err)
	}

	table, err := b.source.Load(ctx)
	if err != nil {
		b.recordOutcome(tcfg.Strategy, time.Since(start), "corpus_unavailable")
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	rowsByRank := make([]int64, int(termtreat.MaxRankValue)+1)
	var totalRows int64

	for _, entry := range table.Entries() {
		term := termtreat.Term{
			Hash:     entry.Hash,
			Stream:   entry.StreamID,
			IdfClass: termtreat.FrequencyToIdfClass(entry.Frequency),
		}
		rowCfg := treatment.TreatmentFor(term)
		for _, e := range rowCfg.Entries() {
			rowsByRank[int(e.Rank)] += int64(e.Count)
			totalRows += int64(e.Count)
		}
	}

	elapsed := time.Since(start)
	summary := &BuildSummary{
		Strategy:      string(tcfg.Strategy),
		Density:       tcfg.Density,
		SNR:           tcfg.SNR,
		TermCount:     int64(table.Len()),
		TotalRows:     totalRows,
		RowsByRank:    rowsByRank,
		BuildDuration: elapsed,
	}

	span.SetAttr("term_count", summary.TermCount)
	span.SetAttr("total_rows", summary.TotalRows)

	b.logger.Info("build completed",
		"strategy", summary.Strategy,
		"terms", summary.TermCount,
		"total_rows", summary.TotalRows,
		"duration", elapsed,
	)

	b.recordOutcome(tcfg.Strategy, elapsed, "success")
	if b.metrics != nil {
		b.metrics.TermsTabulatedTotal.WithLabelValues(tcfg.Strategy).Add(float64(summary.TermCount))
		for rank, count := range rowsByRank {
			b.metrics.RowsByRank.WithLabelValues(fmt.Sprintf("%d", rank)).Set(float64(count))
		}
	}

	return summary, nil
}

func (b *Builder) recordOutcome(strategy string, elapsed time.Duration, outcome string) {
	if b.metrics == nil {
		return
	}
	b.metrics.BuildDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	b.metrics.BuildsTotal.WithLabelValues(strategy, outcome).Inc()
}
