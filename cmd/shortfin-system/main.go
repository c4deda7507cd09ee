// Command shortfin-system brings up the local system on the host-CPU
// backend and exposes it for inspection.
//
// This command demonstrates a complete system bring-up:
//   - CLI argument parsing with optional YAML configuration
//   - NUMA topology discovery (or a fixed node count)
//   - device and driver registration through the host builder
//   - structured lifecycle event capture to a CBOR log
//   - an interactive inspection shell
//
// Usage:
//
//	shortfin-system [flags]
//
// Flags:
//
//	-config string       Configuration file path (YAML)
//	-nodes int           Node count (0 = discover host topology)
//	-devices int         Devices per node (default 1)
//	-workers int         Worker pool size (default 1)
//	-event-log string    Write lifecycle events to this CBOR file
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-interactive         Start the inspection shell instead of waiting for a signal
//
// Examples:
//
//	# Bring up with discovered topology and wait for SIGINT
//	shortfin-system
//
//	# Two nodes, four devices each, inspect interactively
//	shortfin-system -nodes 2 -devices 4 -interactive
//
//	# From a config file, capturing lifecycle events
//	shortfin-system -config /etc/shortfin/system.yaml -event-log system.slog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raikonenfnu/shark-ai/cmd/shortfin-system/interactive"
	"github.com/raikonenfnu/shark-ai/pkg/config"
	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/host"
	"github.com/raikonenfnu/shark-ai/pkg/local"
)

func main() {
	var (
		configPath   string
		nodes        int
		devices      int
		workers      int
		eventLogPath string
		logLevel     string
		shell        bool
	)
	flag.StringVar(&configPath, "config", "", "Configuration file path (YAML)")
	flag.IntVar(&nodes, "nodes", -1, "Node count (0 = discover host topology)")
	flag.IntVar(&devices, "devices", -1, "Devices per node")
	flag.IntVar(&workers, "workers", -1, "Worker pool size")
	flag.StringVar(&eventLogPath, "event-log", "", "Write lifecycle events to this CBOR file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&shell, "interactive", false, "Start the inspection shell")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the file.
	if nodes >= 0 {
		cfg.Nodes = nodes
	}
	if devices >= 0 {
		cfg.DevicesPerNode = devices
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
	if eventLogPath != "" {
		cfg.EventLog = eventLogPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := setupLogging(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var events eventlog.Logger = eventlog.NoopLogger{}
	if cfg.EventLog != "" {
		fileLogger, err := eventlog.NewFileLogger(cfg.EventLog)
		if err != nil {
			logger.Error("opening event log", "path", cfg.EventLog, "error", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		events = fileLogger
	}

	builder, err := host.NewBuilder(cfg, logger, events)
	if err != nil {
		logger.Error("configuring builder", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sys, err := builder.CreateSystem(ctx)
	if err != nil {
		logger.Error("system bring-up failed", "error", err)
		os.Exit(1)
	}

	printTopology(sys)

	if shell {
		sh, err := interactive.New(sys)
		if err != nil {
			logger.Error("starting shell", "error", err)
		} else {
			sh.Run(ctx, cancel)
		}
	} else {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
	}

	if err := sys.Release(); err != nil {
		logger.Error("teardown reported errors", "error", err)
		os.Exit(1)
	}
}

func printTopology(sys *local.System) {
	fmt.Printf("system %s (allocator: %s)\n", sys.ID(), sys.HostAllocator().Name())
	fmt.Printf("  nodes: %d\n", len(sys.Nodes()))
	for _, dev := range sys.Devices() {
		fmt.Printf("  device %-8s node %d\n", dev.Name(), dev.Node())
	}
	for _, w := range sys.Workers() {
		fmt.Printf("  %s (%s)\n", w.Name(), w.ID())
	}
}

func setupLogging(level string) (*slog.Logger, error) {
	parsed, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
