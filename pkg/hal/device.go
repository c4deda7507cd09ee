package hal

import (
	"errors"
	"fmt"
)

// Device construction errors.
var (
	ErrEmptyName = errors.New("device name must not be empty")
	ErrNilHandle = errors.New("device handle must not be nil")
)

// DeviceHandle is the opaque, driver-backed handle for one compute
// endpoint. The owning System closes it during teardown, before the
// driver that opened it.
type DeviceHandle interface {
	Close() error
}

// Device wraps one hardware-backed compute endpoint. A Device is
// constructed once, transferred into a System's exclusive ownership, and
// referenced (never owned) by scopes and workers after that. Its name and
// node affinity are immutable; identity is pointer identity, stable for
// the lifetime of the enclosing System, so callers may cache pointers
// obtained from the System's device views.
type Device struct {
	name   string
	node   int
	handle DeviceHandle
}

// NewDevice creates a device named name, affine to the node with the
// given ordinal, backed by handle.
func NewDevice(name string, node int, handle DeviceHandle) (*Device, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if node < 0 {
		return nil, fmt.Errorf("device %q: node ordinal %d out of range", name, node)
	}
	if handle == nil {
		return nil, ErrNilHandle
	}
	return &Device{name: name, node: node, handle: handle}, nil
}

// Name returns the unique device moniker.
func (d *Device) Name() string {
	return d.name
}

// Node returns the ordinal of the affinity node this device belongs to.
func (d *Device) Node() int {
	return d.node
}

// Handle returns the opaque driver-backed handle.
func (d *Device) Handle() DeviceHandle {
	return d.handle
}

// Close releases the underlying handle. Called exactly once, by the
// owning System.
func (d *Device) Close() error {
	return d.handle.Close()
}

// String returns a short description for logs.
func (d *Device) String() string {
	return fmt.Sprintf("%s@node%d", d.name, d.node)
}
