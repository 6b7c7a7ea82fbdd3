package termtable

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/errors"
	"github.com/bitfunnel-go/termtable/pkg/grpc"
	"github.com/bitfunnel-go/termtable/pkg/proto"
)

// Service exposes the term-treatment planner over the RPC layer:
// TreatmentService.GetTreatment for a single IDF class and
// TreatmentService.BuildStatus for the most recent build.
type Service struct {
	treatment termtreat.Treatment
	cache     *Cache
	trigger   *Trigger
	tcfg      config.TreatmentConfig
	logger    *slog.Logger
}

// NewService builds the tabulated Treatment described by tcfg and wires it
// to cache and trigger for lookups and build-status reporting.
func NewService(tcfg config.TreatmentConfig, cache *Cache, trigger *Trigger) (*Service, error) {
	treatment, err := termtreat.NewTreatment(termtreat.StrategyName(tcfg.Strategy), tcfg.Density, tcfg.SNR, tcfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("constructing treatment: %w", err)
	}
	return &Service{
		treatment: treatment,
		cache:     cache,
		trigger:   trigger,
		tcfg:      tcfg,
		logger:    slog.Default().With("component", "treatment-service"),
	}, nil
}

// Register wires this Service's handlers onto an RPC server.
func (s *Service) Register(server *grpc.Server) {
	server.Register("TreatmentService.GetTreatment", s.handleGetTreatment)
	server.Register("TreatmentService.BuildStatus", s.handleBuildStatus)
}

func (s *Service) handleGetTreatment(ctx context.Context, raw json.RawMessage) (any, error) {
	var req proto.GetTreatmentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, errors.New(errors.ErrInvalidInput, http.StatusBadRequest, "malformed GetTreatmentRequest")
	}

	cfg, err := s.GetTreatment(ctx, termtreat.IdfX10(req.IdfClass))
	if err != nil {
		return nil, err
	}

	resp := proto.GetTreatmentResponse{
		IdfClass: req.IdfClass,
		Strategy: s.tcfg.Strategy,
		Total:    int32(cfg.TotalRows()),
	}
	for _, e := range cfg.Entries() {
		resp.Entries = append(resp.Entries, proto.RowConfigurationEntryMessage{
			Rank:  int32(e.Rank),
			Count: int32(e.Count),
		})
	}
	return resp, nil
}

func (s *Service) handleBuildStatus(ctx context.Context, _ json.RawMessage) (any, error) {
	summary := s.trigger.Latest()
	if summary == nil {
		return nil, errors.New(errors.ErrTreatmentNotReady, http.StatusNotFound, "no build has completed yet")
	}
	return toBuildStatusResponse(summary), nil
}

// GetTreatment returns the RowConfiguration for idfClass, consulting the
// cache first.
func (s *Service) GetTreatment(ctx context.Context, idfClass termtreat.IdfX10) (termtreat.RowConfiguration, error) {
	if s.cache == nil {
		return s.treatment.TreatmentFor(termtreat.Term{IdfClass: idfClass}), nil
	}
	return s.cache.GetOrCompute(ctx, s.tcfg.Strategy, s.tcfg.Density, s.tcfg.SNR, s.tcfg.Variant, idfClass, func() (termtreat.RowConfiguration, error) {
		return s.treatment.TreatmentFor(termtreat.Term{IdfClass: idfClass}), nil
	})
}
