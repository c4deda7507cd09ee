package local

import (
	"context"
	"io"
	"log/slog"

	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/hal"
)

// SystemBuilder encapsulates one hardware backend's discovery and
// bring-up logic. A builder constructs a System, drives it through
// InitializeNodes, zero or more InitializeHALDriver/InitializeHALDevice
// calls, and FinishInitialization, and returns the finished system.
//
// Adding a hardware backend means adding a builder; the System itself is
// backend-agnostic and never changes for a new backend. Surrounding code
// calls only CreateSystem.
type SystemBuilder interface {
	// HostAllocator identifies the memory arena the built system will
	// allocate from.
	HostAllocator() hal.Allocator

	// CreateSystem constructs and fully initializes a System. It may
	// block on driver and device acquisition; ctx bounds that
	// acquisition. On failure nothing is returned: a partially
	// constructed system is never exposed, and any resource acquired
	// before the failure has been released.
	CreateSystem(ctx context.Context) (*System, error)
}

// BaseBuilder carries the plumbing every concrete builder shares:
// allocator identity and logging. Embed it and implement CreateSystem.
type BaseBuilder struct {
	allocator hal.Allocator
	logger    *slog.Logger
	events    eventlog.Logger
}

// NewBaseBuilder creates a BaseBuilder. A nil allocator means
// hal.HostAllocator(); a nil logger disables debug output; a nil event
// logger disables lifecycle capture.
func NewBaseBuilder(allocator hal.Allocator, logger *slog.Logger, events eventlog.Logger) BaseBuilder {
	if allocator == nil {
		allocator = hal.HostAllocator()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if events == nil {
		events = eventlog.NoopLogger{}
	}
	return BaseBuilder{allocator: allocator, logger: logger, events: events}
}

// HostAllocator returns the memory arena the built system will use.
func (b *BaseBuilder) HostAllocator() hal.Allocator {
	return b.allocator
}

// Logger returns the builder's logger.
func (b *BaseBuilder) Logger() *slog.Logger {
	return b.logger
}

// EventLogger returns the builder's lifecycle event logger.
func (b *BaseBuilder) EventLogger() eventlog.Logger {
	return b.events
}
