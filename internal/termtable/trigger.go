package termtable

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/kafka"
	"github.com/bitfunnel-go/termtable/pkg/proto"
	"github.com/bitfunnel-go/termtable/pkg/resilience"
)

// Trigger listens for corpus-ready events on Kafka, runs a Builder against
// the freshened corpus, and publishes the resulting BuildSummary.
type Trigger struct {
	consumer *kafka.Consumer
	producer *kafka.Producer
	breaker  *resilience.CircuitBreaker
	builder  *Builder
	tcfg     config.TreatmentConfig
	logger   *slog.Logger

	latest *BuildSummary
}

// NewTrigger wires a Kafka consumer on the corpus-ready topic to a Builder,
// publishing completion events on the build-done topic. The corpus read
// inside each triggered build is wrapped in a circuit breaker so a
// struggling Postgres instance doesn't cause every subsequent event to
// block on a doomed retry loop.
func NewTrigger(cfg config.KafkaConfig, tcfg config.TreatmentConfig, builder *Builder) *Trigger {
	t := &Trigger{
		producer: kafka.NewProducer(cfg, cfg.Topics.TermTableBuildDone),
		breaker:  resilience.NewCircuitBreaker("termtable-builder", resilience.CircuitBreakerConfig{}),
		builder:  builder,
		tcfg:     tcfg,
		logger:   slog.Default().With("component", "trigger"),
	}
	t.consumer = kafka.NewConsumer(cfg, cfg.Topics.CorpusStatsReady, t.handle)
	return t
}

// Start runs the consume loop until ctx is cancelled.
func (t *Trigger) Start(ctx context.Context) error {
	t.logger.Info("trigger started")
	return t.consumer.Start(ctx)
}

// Latest returns the most recently completed BuildSummary, or nil if no
// build has completed yet.
func (t *Trigger) Latest() *BuildSummary {
	return t.latest
}

func (t *Trigger) handle(ctx context.Context, key []byte, value []byte) error {
	event, err := kafka.DecodeJSON[proto.CorpusStatsReadyEvent](value)
	if err != nil {
		return fmt.Errorf("decoding corpus-ready event: %w", err)
	}
	t.logger.Info("corpus-ready event received", "shard_id", event.ShardID, "corpus_version", event.CorpusVersion)

	var summary *BuildSummary
	err = t.breaker.Execute(func() error {
		built, err := t.builder.Build(ctx, t.tcfg)
		if err != nil {
			return err
		}
		summary = built
		return nil
	})
	if err != nil {
		return fmt.Errorf("build triggered by shard %d failed: %w", event.ShardID, err)
	}

	t.latest = summary
	completion := proto.TermTableBuildCompletedEvent{
		ShardID: event.ShardID,
		Summary: toBuildStatusResponse(summary),
	}
	if err := t.producer.Publish(ctx, kafka.Event{
		Key:   fmt.Sprintf("shard-%d", event.ShardID),
		Value: completion,
	}); err != nil {
		return fmt.Errorf("publishing build-completed event: %w", err)
	}
	return nil
}

func toBuildStatusResponse(s *BuildSummary) proto.BuildStatusResponse {
	return proto.BuildStatusResponse{
		Strategy:        s.Strategy,
		Density:         s.Density,
		SNR:             s.SNR,
		TermCount:       s.TermCount,
		TotalRows:       s.TotalRows,
		RowsByRank:      s.RowsByRank,
		BuildDurationMs: s.BuildDuration.Milliseconds(),
		CompletedAtUnix: s.CompletedAtUnix,
	}
}
