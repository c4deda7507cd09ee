// Package local implements the resource-management core of a single-host
// inference runtime: the System that owns accelerator topology, driver
// connections, devices, and workers, and hands out bounded execution
// scopes to higher layers.
//
// # Lifecycle
//
// A System moves through exactly one initialization cycle:
//
//	sys := local.NewSystem(cfg)            // INITIALIZING
//	sys.InitializeNodes(2)
//	sys.InitializeHALDriver("localcpu", drv)
//	sys.InitializeHALDevice(dev)           // repeatable, system order
//	sys.FinishInitialization()             // INITIALIZED, workers start
//
// Initialization is single-writer: the registration calls and
// FinishInitialization must come from one logical sequence. The only
// runtime-enforced guard is the state check that rejects registration
// after finalization. After finalization the topology, device registry,
// and driver map are immutable, so all read accessors and CreateScope
// are safe for concurrent use without further synchronization.
//
// # Ownership
//
// The System is reference counted. Its creator holds one reference; every
// Scope holds another. The last Release runs teardown synchronously, in
// reverse order of acquisition: workers are stopped and joined first,
// then devices are closed in reverse registration order, then drivers,
// then the execution environment. No separate shutdown call exists.
//
// Systems are not constructed by hand in applications; a [SystemBuilder]
// (for example the host-CPU builder in pkg/host) encapsulates one
// backend's discovery and bring-up and returns a finished System.
package local
