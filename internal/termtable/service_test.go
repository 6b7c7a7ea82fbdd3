package termtable

import (
	"context"
	"testing"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	tcfg := config.TreatmentConfig{Strategy: "PrivateSharedRank0", Density: 0.1, SNR: 10}
	source := NewCorpusSource(nil, config.CorpusConfig{})
	builder := NewBuilder(source, nil)
	kcfg := config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topics: config.KafkaTopics{
		CorpusStatsReady:   "corpus.stats.ready",
		TermTableBuildDone: "termtable.build.completed",
	}}
	trigger := NewTrigger(kcfg, tcfg, builder)

	svc, err := NewService(tcfg, nil, trigger)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestServiceGetTreatmentWithoutCache(t *testing.T) {
	svc := newTestService(t)
	cfg, err := svc.GetTreatment(context.Background(), termtreat.IdfX10(40))
	if err != nil {
		t.Fatalf("GetTreatment() error = %v", err)
	}
	if cfg.Len() == 0 {
		t.Error("GetTreatment() returned an empty configuration")
	}
}

func TestServiceRejectsInvalidTreatmentConfig(t *testing.T) {
	source := NewCorpusSource(nil, config.CorpusConfig{})
	builder := NewBuilder(source, nil)
	kcfg := config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topics: config.KafkaTopics{
		CorpusStatsReady:   "corpus.stats.ready",
		TermTableBuildDone: "termtable.build.completed",
	}}
	trigger := NewTrigger(kcfg, config.TreatmentConfig{}, builder)

	if _, err := NewService(config.TreatmentConfig{Strategy: "PrivateRank0", Density: 0, SNR: 10}, nil, trigger); err == nil {
		t.Error("NewService() with density=0 should fail")
	}
}
