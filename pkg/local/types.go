package local

import (
	"errors"
)

// System errors.
var (
	// ErrAlreadyInitialized - a registration method or
	// FinishInitialization was called after finalization. This signals a
	// caller logic defect; the call mutates nothing.
	ErrAlreadyInitialized = errors.New("system already initialized")

	// ErrNotInitialized - an operation that requires a finalized system
	// (CreateScope) was called before FinishInitialization.
	ErrNotInitialized = errors.New("system not initialized")

	// ErrDriverExists - a driver moniker was registered twice.
	ErrDriverExists = errors.New("driver already registered")

	// ErrDeviceExists - a device name was registered twice.
	ErrDeviceExists = errors.New("device already registered")

	// ErrReleased - the system's reference count reached zero and
	// teardown ran; the handle is no longer usable.
	ErrReleased = errors.New("system released")
)

// SystemState represents the system lifecycle state.
type SystemState uint8

const (
	// StateInitializing - between construction and FinishInitialization;
	// registration methods are permitted.
	StateInitializing SystemState = iota

	// StateInitialized - finalized; registries are immutable, read
	// accessors and CreateScope are valid for concurrent use. Terminal
	// for the system's usable life.
	StateInitialized

	// StateReleased - the last reference was dropped and teardown ran.
	StateReleased
)

// String returns the state name.
func (s SystemState) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StateInitialized:
		return "INITIALIZED"
	case StateReleased:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// Node describes one affinity domain (e.g. a NUMA domain) available to
// the process. Nodes are passive topology records owned by the System.
type Node struct {
	ordinal int
}

// NewNode creates a node with the given ordinal.
func NewNode(ordinal int) Node {
	return Node{ordinal: ordinal}
}

// Ordinal returns the node's index within the system topology.
func (n Node) Ordinal() int {
	return n.ordinal
}
