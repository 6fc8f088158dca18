package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/mcu/config"
	"github.com/tailored-agentic-units/mcu/hub"
	"github.com/tailored-agentic-units/mcu/module"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config JSON file (optional)")
		name       = flag.String("name", "", "Hub name (overrides config)")
		jobs       = flag.Int("jobs", -1, "Number of jobs to produce; 0 for unlimited (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *name != "" {
		cfg.Hub.Name = *name
	}
	if *jobs >= 0 {
		cfg.Producer.Jobs = *jobs
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	cfg.Hub.Logger = logger

	ecu := newECU(cfg.Hub)
	if err := ecu.RegisterPattern(ecuPattern(logger)); err != nil {
		log.Fatalf("Failed to register pattern: %v", err)
	}

	moduleOpts := []module.Option{
		module.WithInboxSize(cfg.InboxSize),
		module.WithLogger(logger),
	}
	producer := newProducer("producer", cfg.Producer, logger, moduleOpts...)
	printer := newPrinter("printer", os.Stdout, moduleOpts...)

	if err := ecu.RegisterModules(producer, printer); err != nil {
		log.Fatalf("Failed to register modules: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := ecu.Run(ctx); err != nil {
		log.Fatalf("Hub %s failed: %v", ecu.Name(), err)
	}

	printMetrics(ecu.Metrics())
}

func printMetrics(m hub.MetricsSnapshot) {
	fmt.Printf("\nModules: %d\n", m.Modules)
	fmt.Printf("Jobs enqueued: %d, dispatched: %d, dropped: %d, queued: %d\n",
		m.JobsEnqueued, m.JobsDispatched, m.JobsDropped, m.QueueDepth)
}
