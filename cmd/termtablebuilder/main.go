package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitfunnel-go/termtable/internal/termtable"
	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/grpc"
	"github.com/bitfunnel-go/termtable/pkg/health"
	"github.com/bitfunnel-go/termtable/pkg/logger"
	"github.com/bitfunnel-go/termtable/pkg/metrics"
	"github.com/bitfunnel-go/termtable/pkg/middleware"
	"github.com/bitfunnel-go/termtable/pkg/postgres"
	"github.com/bitfunnel-go/termtable/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	rpcAddr := flag.String("rpc-addr", ":9100", "address for the treatment RPC server")
	adminAddr := flag.String("admin-addr", ":8080", "address for the admin debug HTTP surface")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting term table builder service", "strategy", cfg.Treatment.Strategy)

	var db *postgres.Client
	if cfg.Corpus.Table != "" {
		db, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, corpus source will use file fallback only", "error", err)
		} else {
			defer db.Close()
		}
	}

	cache, err := redis.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	m := metrics.New()

	source := termtable.NewCorpusSource(db, cfg.Corpus)
	builder := termtable.NewBuilder(source, m)
	trigger := termtable.NewTrigger(cfg.Kafka, cfg.Treatment, builder)
	treatmentCache := termtable.NewCache(cache, cfg.Redis, m)

	service, err := termtable.NewService(cfg.Treatment, treatmentCache, trigger)
	if err != nil {
		slog.Error("failed to construct treatment service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rpcServer := grpc.NewServer()
	service.Register(rpcServer)
	go func() {
		if err := rpcServer.Serve(*rpcAddr); err != nil {
			slog.Error("rpc server error", "error", err)
		}
	}()
	defer rpcServer.Stop()

	checker := health.NewChecker()
	termtable.RegisterHealthChecks(checker, db, cache, trigger)

	adminMux := http.NewServeMux()
	adminMux.Handle("/", termtable.AdminHandler(service))
	adminMux.HandleFunc("/livez", checker.LiveHandler())
	adminMux.HandleFunc("/readyz", checker.ReadyHandler())

	handler := middleware.Metrics(m)(middleware.Timeout(10 * time.Second)(adminMux))
	adminServer := &http.Server{
		Addr:    *adminAddr,
		Handler: handler,
	}
	go func() {
		slog.Info("admin server listening", "addr", *adminAddr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("admin server error", "error", err)
		}
	}()

	metricsShutdown := metrics.StartServer(cfg.Metrics.Port)

	slog.Info("term table builder ready, consuming corpus-ready events",
		"topic", cfg.Kafka.Topics.CorpusStatsReady,
		"group", cfg.Kafka.ConsumerGroup,
	)

	if err := trigger.Start(ctx); err != nil {
		slog.Error("trigger error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("admin server shutdown error", "error", err)
	}
	if err := metricsShutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown error", "error", err)
	}

	slog.Info("term table builder stopped")
}
