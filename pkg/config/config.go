// Package config provides YAML configuration for system builders and the
// shortfin-system command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// System configures how a builder assembles the local system.
type System struct {
	// Nodes is the number of affinity nodes to register. Zero means
	// discover the host topology.
	Nodes int `yaml:"nodes"`

	// DevicesPerNode is the number of devices to open on each node.
	DevicesPerNode int `yaml:"devices_per_node"`

	// Workers is the worker pool size. Zero means the system default.
	Workers int `yaml:"workers"`

	// WorkerQueueDepth is the per-worker task queue capacity. Zero means
	// the worker default.
	WorkerQueueDepth int `yaml:"worker_queue_depth"`

	// EventLog is an optional path for the CBOR lifecycle event log.
	EventLog string `yaml:"event_log"`

	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given: discover
// topology, one device per node, one worker.
func Default() System {
	return System{
		Nodes:          0,
		DevicesPerNode: 1,
		Workers:        1,
		LogLevel:       "info",
	}
}

// Load reads a YAML configuration file. Fields not present in the file
// keep their Default values.
func Load(path string) (System, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return System{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return System{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return System{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *System) Validate() error {
	if c.Nodes < 0 {
		return fmt.Errorf("%w: nodes must be >= 0, got %d", ErrInvalidConfig, c.Nodes)
	}
	if c.DevicesPerNode < 1 {
		return fmt.Errorf("%w: devices_per_node must be >= 1, got %d", ErrInvalidConfig, c.DevicesPerNode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.WorkerQueueDepth < 0 {
		return fmt.Errorf("%w: worker_queue_depth must be >= 0, got %d", ErrInvalidConfig, c.WorkerQueueDepth)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a configuration log level to an slog.Level.
// An empty level means info.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
	}
}
