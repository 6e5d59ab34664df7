// Command web loads the datasets once, runs the pipeline and serves the
// ranked reports over HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"emistat/internal/config"
	"emistat/internal/logging"
	"emistat/internal/pipeline"
	"emistat/internal/stats"
	transport "emistat/internal/transport/http"
)

func main() {
	emissionsPath := flag.String("emissions", "", "path to the CO2 emissions CSV")
	gdpPath := flag.String("gdp", "", "path to the World Bank GDP file (.csv or .xlsx)")
	populationPath := flag.String("population", "", "path to the World Bank population file (.csv or .xlsx)")
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	if *emissionsPath == "" || *gdpPath == "" || *populationPath == "" {
		slog.Error("the -emissions, -gdp and -population flags are all required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	sources, err := pipeline.LoadSources(*emissionsPath, *gdpPath, *populationPath)
	if err != nil {
		logger.Error("failed to load source datasets", "error", err)
		os.Exit(1)
	}

	unified, err := pipeline.New(logger, cfg).Run(sources)
	if err != nil {
		logger.Error("data pipeline failed", "error", err)
		os.Exit(1)
	}

	engine, err := stats.New(logger, unified, cfg.Stats.TopK)
	if err != nil {
		logger.Error("failed to build the statistics engine", "error", err)
		os.Exit(1)
	}

	api := transport.NewServer(logger, cfg.Server, engine)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("report API listening",
			slog.String("addr", srv.Addr),
			slog.Int("rows", unified.NumRows()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
