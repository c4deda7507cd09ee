package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raikonenfnu/shark-ai/pkg/config"
	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/hal"
	"github.com/raikonenfnu/shark-ai/pkg/local"
)

// Builder assembles a local system backed by the host CPU. The zero
// value is not usable; construct with NewBuilder.
type Builder struct {
	local.BaseBuilder
	cfg config.System
}

// NewBuilder creates a host builder from cfg. A nil logger disables
// debug output; a nil event logger disables lifecycle capture.
func NewBuilder(cfg config.System, logger *slog.Logger, events eventlog.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		BaseBuilder: local.NewBaseBuilder(hal.HostAllocator(), logger, events),
		cfg:         cfg,
	}, nil
}

// CreateSystem discovers the host topology, opens devices, and returns a
// fully initialized system. On any failure everything acquired so far is
// released and no system is returned.
func (b *Builder) CreateSystem(ctx context.Context) (*local.System, error) {
	nodeCount := b.cfg.Nodes
	if nodeCount == 0 {
		nodeCount = DiscoverNodeCount()
		b.Logger().Debug("discovered host topology", "nodes", nodeCount)
	}

	sys := local.NewSystem(local.SystemConfig{
		HostAllocator:    b.HostAllocator(),
		Environment:      newCPUEnvironment(),
		WorkerCount:      b.cfg.Workers,
		WorkerQueueDepth: b.cfg.WorkerQueueDepth,
		Logger:           b.Logger(),
		EventLogger:      b.EventLogger(),
	})

	if err := b.populate(ctx, sys, nodeCount); err != nil {
		// Tearing down the half-built system closes every handle that
		// was already transferred to it.
		_ = sys.Release()
		return nil, err
	}
	if err := sys.FinishInitialization(); err != nil {
		_ = sys.Release()
		return nil, err
	}
	return sys, nil
}

// populate drives the registration sequence.
func (b *Builder) populate(ctx context.Context, sys *local.System, nodeCount int) error {
	if err := sys.InitializeNodes(nodeCount); err != nil {
		return err
	}

	driver := newCPUDriver()
	if err := sys.InitializeHALDriver(DriverMoniker, driver); err != nil {
		// Not yet owned by the system; close it here.
		_ = driver.Close()
		return err
	}

	ordinal := 0
	for node := 0; node < nodeCount; node++ {
		for slot := 0; slot < b.cfg.DevicesPerNode; slot++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("device bring-up interrupted: %w", err)
			}

			handle, err := driver.OpenDevice(node)
			if err != nil {
				return fmt.Errorf("opening cpu%d on node %d: %w", ordinal, node, err)
			}
			dev, err := hal.NewDevice(fmt.Sprintf("cpu%d", ordinal), node, handle)
			if err != nil {
				_ = handle.Close()
				return err
			}
			if err := sys.InitializeHALDevice(dev); err != nil {
				_ = dev.Close()
				return err
			}
			ordinal++
		}
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ local.SystemBuilder = (*Builder)(nil)
