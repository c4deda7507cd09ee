package eventlog

import (
	"time"
)

// Event represents one resource-lifecycle event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SystemID uniquely identifies the owning system (UUID).
	SystemID string `cbor:"2,keyasint"`

	// Category classifies the resource the event concerns.
	Category Category `cbor:"3,keyasint"`

	// Action is what happened to the resource.
	Action Action `cbor:"4,keyasint"`

	// Subject names the resource (device moniker, driver moniker,
	// worker or scope ID). Empty for system-wide events.
	Subject string `cbor:"5,keyasint,omitempty"`

	// Node is the affinity node ordinal, where one applies.
	// -1 when not applicable.
	Node int `cbor:"6,keyasint,omitempty"`

	// Detail carries free-form context (e.g. node count, device count).
	Detail string `cbor:"7,keyasint,omitempty"`

	// Error is the error text for ActionFailed events.
	Error string `cbor:"8,keyasint,omitempty"`
}

// Category classifies the resource an event concerns.
type Category uint8

const (
	// CategorySystem covers system-wide transitions (created,
	// initialized, released).
	CategorySystem Category = 0
	// CategoryNode covers topology registration.
	CategoryNode Category = 1
	// CategoryDriver covers driver registration and release.
	CategoryDriver Category = 2
	// CategoryDevice covers device registration and release.
	CategoryDevice Category = 3
	// CategoryWorker covers worker start and stop.
	CategoryWorker Category = 4
	// CategoryScope covers scope creation and close.
	CategoryScope Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "SYSTEM"
	case CategoryNode:
		return "NODE"
	case CategoryDriver:
		return "DRIVER"
	case CategoryDevice:
		return "DEVICE"
	case CategoryWorker:
		return "WORKER"
	case CategoryScope:
		return "SCOPE"
	default:
		return "UNKNOWN"
	}
}

// Action is what happened to the resource.
type Action uint8

const (
	// ActionRegistered - the resource was acquired/registered.
	ActionRegistered Action = 0
	// ActionReleased - the resource was released/closed.
	ActionReleased Action = 1
	// ActionStarted - the resource began running (workers).
	ActionStarted Action = 2
	// ActionStopped - the resource stopped running (workers).
	ActionStopped Action = 3
	// ActionFailed - an operation on the resource failed.
	ActionFailed Action = 4
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionRegistered:
		return "REGISTERED"
	case ActionReleased:
		return "RELEASED"
	case ActionStarted:
		return "STARTED"
	case ActionStopped:
		return "STOPPED"
	case ActionFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
