package host

import (
	"errors"
	"runtime"
	"sync"

	"github.com/raikonenfnu/shark-ai/pkg/hal"
)

// DriverMoniker is the backend name the host-CPU driver registers under.
const DriverMoniker = "localcpu"

// Driver errors.
var (
	ErrDriverClosed = errors.New("localcpu driver closed")
)

// cpuDriver is the hal.Driver for the host CPU backend. Devices opened
// through it are plain queue endpoints pinned (advisorily) to a NUMA
// node; there is no kernel driver to talk to, so open/close is pure
// bookkeeping.
type cpuDriver struct {
	mu     sync.Mutex
	open   int
	closed bool
}

func newCPUDriver() *cpuDriver {
	return &cpuDriver{}
}

// Moniker returns the backend name.
func (d *cpuDriver) Moniker() string {
	return DriverMoniker
}

// OpenDevice opens one compute endpoint affine to the given node.
func (d *cpuDriver) OpenDevice(node int) (hal.DeviceHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDriverClosed
	}
	d.open++
	return &cpuHandle{driver: d, node: node}, nil
}

// Close releases the driver. Every device opened through it must already
// be closed; the owning system guarantees that ordering.
func (d *cpuDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDriverClosed
	}
	d.closed = true
	return nil
}

// cpuHandle is the hal.DeviceHandle for one host-CPU endpoint.
type cpuHandle struct {
	driver *cpuDriver
	node   int
	closed bool
}

func (h *cpuHandle) Close() error {
	h.driver.mu.Lock()
	defer h.driver.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.driver.open--
	return nil
}

// cpuEnvironment is the shared execution environment for the host
// backend. It records the parallelism available to program invocation.
type cpuEnvironment struct {
	threads int
	closed  bool
	mu      sync.Mutex
}

func newCPUEnvironment() *cpuEnvironment {
	return &cpuEnvironment{threads: runtime.NumCPU()}
}

// Threads returns the host parallelism the environment was created with.
func (e *cpuEnvironment) Threads() int {
	return e.threads
}

func (e *cpuEnvironment) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ hal.Driver      = (*cpuDriver)(nil)
	_ hal.Environment = (*cpuEnvironment)(nil)
)
