// cmd/orrery-headless/main.go
//
// Headless mode runs the simulation on a fixed-timestep loop with no
// renderer attached, exposing health probes and Prometheus metrics over
// HTTP. Useful for soak testing scene configurations and for serving
// snapshots to external tooling.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/health"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/metrics"
	"github.com/opd-ai/go-orrery/pkg/resource"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	var simConfig *config.SimulationConfig
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using defaults",
			"config_path", *configPath,
		)
		simConfig = config.DefaultConfig()
	} else {
		var err error
		simConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "invalid environment configuration", err)
		os.Exit(1)
	}

	sim := engine.NewSimulation(simConfig)
	wireMetrics(sim.EventBus)

	resources := resource.NewManager(envConfig)
	if err := resources.Start(); err != nil {
		logger.Error(ctx, "failed to start resource manager", err)
		os.Exit(1)
	}

	loader := asset.NewLoader(envConfig, sim.EventBus)
	if err := resources.Go("ship-model-loader", func(ctx context.Context) {
		if _, err := loader.LoadShipModel(ctx, simConfig.Ship.ModelPath); err != nil {
			logger.Error(ctx, "ship model load failed, ship stays parked", err,
				"model_path", simConfig.Ship.ModelPath,
			)
			return
		}
		sim.Ship.SetModelReady(true)
	}); err != nil {
		logger.Error(ctx, "failed to start model loader", err)
	}

	healthServer := startHealthServer(ctx, logger, sim, resources, envConfig)
	metricsServer := startMetricsServer(ctx, logger, envConfig)

	// Fixed-timestep loop until a signal arrives.
	loopCtx, stopLoop := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		runLoop(loopCtx, sim, envConfig.TickRate)
	}()

	logger.Info(ctx, "headless simulation running",
		"tick_rate", envConfig.TickRate,
		"bodies", len(simConfig.Bodies),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "shutting down")
	stopLoop()
	<-loopDone

	shutdownCtx, cancel := context.WithTimeout(ctx, envConfig.ShutdownTimeout)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "health server shutdown failed", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "metrics server shutdown failed", err)
	}
	if err := resources.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "resource manager shutdown failed", err)
	}
}

// runLoop drives the simulation at the configured tick rate, recording
// per-tick metrics.
func runLoop(ctx context.Context, sim *engine.Simulation, tickRate int) {
	sim.Start()
	defer sim.Stop()

	interval := time.Second / time.Duration(tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deltaTime := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			sim.Update(deltaTime)
			metrics.RecordTick(time.Since(start).Seconds())

			snap := sim.Snapshot()
			metrics.SetBodiesTracked(len(snap.Bodies))
			metrics.SetSimulationElapsed(snap.Elapsed)
		}
	}
}

// wireMetrics counts simulation events into Prometheus
func wireMetrics(bus *event.Bus) {
	bus.Subscribe(event.FocusChanged, func(e event.Event) {
		metrics.RecordFocusChange()
	})
	bus.Subscribe(event.AssetLoadFailed, func(e event.Event) {
		metrics.RecordAssetLoadFailure()
	})
}

// startHealthServer serves liveness and readiness probes
func startHealthServer(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, resources *resource.Manager, envConfig *config.EnvironmentConfig) *http.Server {
	checker := health.NewChecker()
	checker.AddCheck(health.NewSimulationCheck(
		func() bool { return sim.Running },
		sim.LastTickTime,
		5*time.Second,
	))
	checker.AddCheck(health.NewMemoryCheck(envConfig.MaxMemoryMB, resources.MemoryUsageMB))
	checker.AddCheck(resource.NewHealthCheck(resources))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", envConfig.HealthPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "health server listening", "port", envConfig.HealthPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "health server failed", err)
		}
	}()

	return server
}

// startMetricsServer serves the Prometheus scrape endpoint
func startMetricsServer(ctx context.Context, logger *logging.Logger, envConfig *config.EnvironmentConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", envConfig.MetricsPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "metrics server listening", "port", envConfig.MetricsPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "metrics server failed", err)
		}
	}()

	return server
}
