package local

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/hal"
	"github.com/raikonenfnu/shark-ai/pkg/worker"
)

// DefaultWorkerCount is the worker pool size used when
// SystemConfig.WorkerCount is zero.
const DefaultWorkerCount = 1

// SystemConfig configures a System.
type SystemConfig struct {
	// HostAllocator identifies the memory arena the system allocates
	// from. If nil, hal.HostAllocator() is used.
	HostAllocator hal.Allocator

	// Environment is the shared execution environment instance owned by
	// the system and released last during teardown. Optional.
	Environment hal.Environment

	// WorkerCount is the number of workers constructed at
	// FinishInitialization. Zero means DefaultWorkerCount.
	WorkerCount int

	// WorkerQueueDepth is the per-worker task queue capacity. Zero means
	// the worker package default.
	WorkerQueueDepth int

	// Logger is the optional logger for debug output. If nil, logging is
	// disabled.
	Logger *slog.Logger

	// EventLogger receives structured lifecycle events. If nil, capture
	// is disabled.
	EventLogger eventlog.Logger
}

// System encapsulates the resources attached to the local host. In most
// applications there is one of these, holding long lived access to
// physical devices, driver connections, and the worker pool across the
// application lifetime.
//
// Applications do not generally construct a System by hand; a
// SystemBuilder constructs one to suit the hardware being executed on.
//
// As the root owner of non-reusable hardware resources, a System is
// reference counted: the creator holds one reference, every Scope holds
// one, and the last Release tears everything down.
type System struct {
	mu sync.RWMutex

	id        string
	allocator hal.Allocator
	env       hal.Environment
	logger    *slog.Logger
	events    eventlog.Logger

	state SystemState
	refs  int

	// Topology. Written only during initialization.
	nodes []Node

	// Retained drivers, keyed by moniker. Released as one of the last
	// steps of teardown: there are some ancillary uses for drivers after
	// initialization, but mainly this keeps them alive. driverOrder
	// remembers acquisition order for reverse release.
	drivers     map[string]hal.Driver
	driverOrder []string

	// Owned devices in system (registration) order, plus the non-owning
	// name index over the same objects.
	devices []*hal.Device
	named   map[string]*hal.Device

	// Worker pool. Constructed at FinishInitialization, stopped first
	// during teardown.
	workers     []*worker.Worker
	workerCount int
	queueDepth  int
}

// NewSystem creates an empty system in the INITIALIZING state holding one
// reference for the creator. Populate it through the Initialize methods
// and FinishInitialization, or let a SystemBuilder do so.
func NewSystem(cfg SystemConfig) *System {
	allocator := cfg.HostAllocator
	if allocator == nil {
		allocator = hal.HostAllocator()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var events eventlog.Logger = cfg.EventLogger
	if events == nil {
		events = eventlog.NoopLogger{}
	}
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}

	sys := &System{
		id:          uuid.NewString(),
		allocator:   allocator,
		env:         cfg.Environment,
		logger:      logger,
		events:      events,
		state:       StateInitializing,
		refs:        1,
		drivers:     make(map[string]hal.Driver),
		named:       make(map[string]*hal.Device),
		workerCount: workerCount,
		queueDepth:  cfg.WorkerQueueDepth,
	}
	sys.event(eventlog.CategorySystem, eventlog.ActionRegistered, "", -1, "", nil)
	return sys
}

// ID returns the system's unique identifier.
func (s *System) ID() string {
	return s.id
}

// HostAllocator returns the memory arena the system allocates from.
func (s *System) HostAllocator() hal.Allocator {
	return s.allocator
}

// Environment returns the shared execution environment instance, or nil
// if none was configured.
func (s *System) Environment() hal.Environment {
	return s.env
}

// State returns the current lifecycle state.
func (s *System) State() SystemState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// InitializeNodes establishes (or replaces) the topology with count
// nodes, indexed 0..count-1. Permitted only before FinishInitialization.
func (s *System) InitializeNodes(count int) error {
	if count < 0 {
		return fmt.Errorf("node count %d out of range", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assertInitializing(); err != nil {
		return err
	}

	nodes := make([]Node, count)
	for i := range nodes {
		nodes[i] = NewNode(i)
	}
	s.nodes = nodes

	s.event(eventlog.CategoryNode, eventlog.ActionRegistered, "", -1,
		fmt.Sprintf("count=%d", count), nil)
	return nil
}

// InitializeHALDriver registers a named driver connection, transferring
// ownership to the system. Duplicate monikers are rejected with
// ErrDriverExists; the registry is unchanged on failure.
func (s *System) InitializeHALDriver(moniker string, drv hal.Driver) error {
	if moniker == "" {
		return fmt.Errorf("driver moniker must not be empty")
	}
	if drv == nil {
		return fmt.Errorf("driver %q: handle must not be nil", moniker)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assertInitializing(); err != nil {
		return err
	}

	if _, exists := s.drivers[moniker]; exists {
		return fmt.Errorf("%w: %q", ErrDriverExists, moniker)
	}
	s.drivers[moniker] = drv
	s.driverOrder = append(s.driverOrder, moniker)

	s.event(eventlog.CategoryDriver, eventlog.ActionRegistered, moniker, -1, "", nil)
	return nil
}

// InitializeHALDevice registers one fully constructed device,
// transferring ownership to the system. The device is appended to the
// ordered sequence (system order) and indexed by name. Duplicate names
// are rejected with ErrDeviceExists; nothing is half-inserted.
func (s *System) InitializeHALDevice(dev *hal.Device) error {
	if dev == nil {
		return fmt.Errorf("device must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assertInitializing(); err != nil {
		return err
	}

	if _, exists := s.named[dev.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDeviceExists, dev.Name())
	}
	if dev.Node() >= len(s.nodes) {
		return fmt.Errorf("device %q: node %d not in topology (have %d nodes)",
			dev.Name(), dev.Node(), len(s.nodes))
	}

	s.devices = append(s.devices, dev)
	s.named[dev.Name()] = dev

	s.event(eventlog.CategoryDevice, eventlog.ActionRegistered,
		dev.Name(), dev.Node(), "", nil)
	return nil
}

// FinishInitialization transitions the system to INITIALIZED and starts
// the worker pool. After it returns, all registration methods fail and
// all read accessors are valid for concurrent use. Calling it twice is
// an invalid-state error.
func (s *System) FinishInitialization() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.assertInitializing(); err != nil {
		return err
	}

	// Workers are constructed only now, so none can observe a partially
	// populated registry.
	workers := make([]*worker.Worker, 0, s.workerCount)
	for i := 0; i < s.workerCount; i++ {
		w := worker.New(worker.Config{
			Name:       fmt.Sprintf("worker-%d", i),
			QueueDepth: s.queueDepth,
			Logger:     s.logger,
		})
		if err := w.Start(); err != nil {
			for _, started := range workers {
				_ = started.Stop()
			}
			return fmt.Errorf("starting %s: %w", w.Name(), err)
		}
		workers = append(workers, w)
		s.event(eventlog.CategoryWorker, eventlog.ActionStarted, w.Name(), -1, "", nil)
	}
	s.workers = workers
	s.state = StateInitialized

	s.logger.Info("system initialized",
		"system", s.id,
		"nodes", len(s.nodes),
		"devices", len(s.devices),
		"drivers", len(s.drivers),
		"workers", len(s.workers))
	s.event(eventlog.CategorySystem, eventlog.ActionStarted, "", -1,
		fmt.Sprintf("nodes=%d devices=%d drivers=%d workers=%d",
			len(s.nodes), len(s.devices), len(s.drivers), len(s.workers)), nil)
	return nil
}

// Nodes returns the topology. Empty before InitializeNodes, immutable
// after FinishInitialization.
func (s *System) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Devices returns all devices in system order. The returned slice is a
// copy; the device pointers are stable for the system's lifetime.
func (s *System) Devices() []*hal.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*hal.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// NamedDevice returns the device registered under the given moniker.
func (s *System) NamedDevice(name string) (*hal.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dev, ok := s.named[name]
	return dev, ok
}

// NamedDevices returns the name index as a copy. The device pointers are
// the same objects returned by Devices.
func (s *System) NamedDevices() map[string]*hal.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*hal.Device, len(s.named))
	for name, dev := range s.named {
		out[name] = dev
	}
	return out
}

// Driver returns the retained driver registered under the given moniker.
func (s *System) Driver(moniker string) (hal.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	drv, ok := s.drivers[moniker]
	return drv, ok
}

// Workers returns the worker pool. Empty before FinishInitialization.
func (s *System) Workers() []*worker.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*worker.Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

// Worker returns the owned worker with the given name.
func (s *System) Worker(name string) (*worker.Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workers {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// CreateScope returns a new Scope bound to this system, holding a
// reference to it and a snapshot of all devices in system order. Valid
// only after FinishInitialization; before that it returns
// ErrNotInitialized.
func (s *System) CreateScope() (*Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateInitializing:
		return nil, ErrNotInitialized
	case StateReleased:
		return nil, ErrReleased
	}

	s.refs++
	scope := newScope(s)

	s.event(eventlog.CategoryScope, eventlog.ActionRegistered, scope.ID(), -1,
		fmt.Sprintf("devices=%d", len(scope.devices)), nil)
	return scope, nil
}

// Retain adds a reference to the system. Every Retain must be balanced
// by a Release.
func (s *System) Retain() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateReleased {
		return ErrReleased
	}
	s.refs++
	return nil
}

// Release drops one reference. When the last reference is dropped the
// system tears down synchronously: workers are stopped and joined, then
// devices are closed in reverse registration order, then drivers, then
// the execution environment. Release returns any teardown error; a
// Release that does not tear down returns nil.
func (s *System) Release() error {
	s.mu.Lock()
	if s.state == StateReleased {
		s.mu.Unlock()
		return ErrReleased
	}
	s.refs--
	if s.refs > 0 {
		s.mu.Unlock()
		return nil
	}
	s.state = StateReleased
	s.mu.Unlock()

	return s.destroy()
}

// destroy runs teardown. Called exactly once, after the state flipped to
// RELEASED, so no new scopes or retains can race with it.
func (s *System) destroy() error {
	var errs []error

	// Workers first: no task may execute once devices start closing.
	for i := len(s.workers) - 1; i >= 0; i-- {
		w := s.workers[i]
		if err := w.Stop(); err != nil && !errors.Is(err, worker.ErrNotStarted) {
			errs = append(errs, fmt.Errorf("stopping %s: %w", w.Name(), err))
		}
		s.event(eventlog.CategoryWorker, eventlog.ActionStopped, w.Name(), -1, "", nil)
	}

	for i := len(s.devices) - 1; i >= 0; i-- {
		dev := s.devices[i]
		if err := dev.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing device %q: %w", dev.Name(), err))
		}
		s.event(eventlog.CategoryDevice, eventlog.ActionReleased, dev.Name(), dev.Node(), "", nil)
	}

	for i := len(s.driverOrder) - 1; i >= 0; i-- {
		moniker := s.driverOrder[i]
		if err := s.drivers[moniker].Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing driver %q: %w", moniker, err))
		}
		s.event(eventlog.CategoryDriver, eventlog.ActionReleased, moniker, -1, "", nil)
	}

	if s.env != nil {
		if err := s.env.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing environment: %w", err))
		}
	}

	err := errors.Join(errs...)
	s.logger.Info("system released", "system", s.id)
	s.event(eventlog.CategorySystem, eventlog.ActionReleased, "", -1, "", err)
	return err
}

// assertInitializing is the state guard for the registration methods.
// Callers hold s.mu.
func (s *System) assertInitializing() error {
	switch s.state {
	case StateInitialized:
		return ErrAlreadyInitialized
	case StateReleased:
		return ErrReleased
	}
	return nil
}

// event emits a lifecycle event. The event logger never calls back into
// the system, so emitting under s.mu is safe.
func (s *System) event(category eventlog.Category, action eventlog.Action, subject string, node int, detail string, err error) {
	e := eventlog.Event{
		Timestamp: time.Now(),
		SystemID:  s.id,
		Category:  category,
		Action:    action,
		Subject:   subject,
		Node:      node,
		Detail:    detail,
	}
	if err != nil {
		e.Error = err.Error()
	}
	s.events.Log(e)
}
