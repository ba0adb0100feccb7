// SPDX-License-Identifier: MIT

// Command chorewheel serves fair chore rotation rounds over HTTP.
//
// Usage:
//
//	chorewheel -config chorewheel.yaml [-import household.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/chorewheel/assign"
	"github.com/katalvlaran/chorewheel/cost"
	"github.com/katalvlaran/chorewheel/internal/api"
	"github.com/katalvlaran/chorewheel/internal/config"
	"github.com/katalvlaran/chorewheel/internal/logging"
	"github.com/katalvlaran/chorewheel/internal/metrics"
	"github.com/katalvlaran/chorewheel/internal/notify"
	"github.com/katalvlaran/chorewheel/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration (defaults apply when empty)")
	importPath := flag.String("import", "", "YAML household snapshot to load into the store before serving")
	flag.Parse()

	if err := run(*configPath, *importPath); err != nil {
		fmt.Fprintln(os.Stderr, "chorewheel:", err)
		os.Exit(1)
	}
}

func run(configPath, importPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	logger, base, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = base.Sync() }()

	st, err := store.New(store.Config{DataDir: cfg.Storage.DataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if importPath != "" {
		h, err := loadHousehold(importPath)
		if err != nil {
			return err
		}
		id, err := st.Import(ctx, h)
		if err != nil {
			return fmt.Errorf("import %s: %w", importPath, err)
		}
		logger.Info("household imported", "household", id, "users", len(h.Users), "chores", len(h.Chores))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engineOpts := []assign.EngineOption{
		assign.WithCostOptions(cost.WithPolicy(cfg.Policy.CostPolicy())),
		assign.WithSolverOptions(cfg.Solver.Options()...),
		assign.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		engineOpts = append(engineOpts, assign.WithMetrics(metrics.NewPrometheus(reg, cfg.Metrics.Namespace)))
	}
	engine := assign.NewEngine(engineOpts...)

	var publisher notify.Publisher = notify.Nop{}
	if cfg.Kafka.Enabled {
		k, err := notify.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		publisher = k
	}
	defer publisher.Close()

	router := api.NewRouter(api.NewHandler(st, engine,
		api.WithPublisher(publisher),
		api.WithLogger(logger),
		api.WithPeriod(cfg.Round.Period)))
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	accessLog := zap.NewStdLog(base)
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handlers.RecoveryHandler(handlers.RecoveryLogger(accessLog))(
			handlers.LoggingHandler(accessLog.Writer(), router)),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
