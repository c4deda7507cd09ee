package local

import (
	"sync"

	"github.com/google/uuid"

	"github.com/raikonenfnu/shark-ai/pkg/eventlog"
	"github.com/raikonenfnu/shark-ai/pkg/hal"
)

// Scope is a bounded execution context referencing a subset of a
// system's devices. A Scope holds a reference to its System (keeping it
// alive for the Scope's lifetime) and an ordered, immutable snapshot of
// device references taken at creation time.
//
// Scopes are created exclusively through System.CreateScope. The caller
// owns the Scope and must Close it to drop its system reference.
type Scope struct {
	id     string
	system *System

	// Device snapshot in system order, plus the name index over the same
	// objects. Both are fixed at creation.
	devices []*hal.Device
	named   map[string]*hal.Device

	closeOnce sync.Once
	closeErr  error
}

// newScope snapshots the system's device registry. Called with the
// system's lock held; the reference count has already been taken.
func newScope(s *System) *Scope {
	devices := make([]*hal.Device, len(s.devices))
	copy(devices, s.devices)
	named := make(map[string]*hal.Device, len(devices))
	for _, dev := range devices {
		named[dev.Name()] = dev
	}
	return &Scope{
		id:      uuid.NewString(),
		system:  s,
		devices: devices,
		named:   named,
	}
}

// ID returns the scope's unique identifier.
func (sc *Scope) ID() string {
	return sc.id
}

// System returns the owning system. The system is guaranteed valid for
// as long as the scope is unclosed.
func (sc *Scope) System() *System {
	return sc.system
}

// Devices returns the scope's device snapshot in system order.
func (sc *Scope) Devices() []*hal.Device {
	out := make([]*hal.Device, len(sc.devices))
	copy(out, sc.devices)
	return out
}

// Device returns the snapshot device with the given name.
func (sc *Scope) Device(name string) (*hal.Device, bool) {
	dev, ok := sc.named[name]
	return dev, ok
}

// Close drops the scope's reference to the system. If this was the last
// reference, system teardown runs synchronously and Close returns its
// error. Close is idempotent; subsequent calls return the first result.
func (sc *Scope) Close() error {
	sc.closeOnce.Do(func() {
		sc.system.event(eventlog.CategoryScope, eventlog.ActionReleased, sc.id, -1, "", nil)
		sc.closeErr = sc.system.Release()
	})
	return sc.closeErr
}
