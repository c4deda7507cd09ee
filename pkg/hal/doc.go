// Package hal defines the hardware abstraction boundary between the local
// system core and concrete accelerator backends.
//
// The core in [pkg/local] is backend-agnostic: it owns drivers, devices,
// and an execution environment purely through the interfaces and the
// [Device] value defined here. A backend (CPU, GPU, remote accelerator)
// plugs in by providing:
//
//   - a [Driver]: a live, named connection to the backend
//   - one or more [DeviceHandle] values opened through that driver
//   - an [Environment]: the shared execution/VM context all devices use
//
// Ownership flows one way: a builder acquires these values and transfers
// them into a System, which releases them during teardown in reverse
// order of acquisition. Nothing in this package retains what it hands
// over.
package hal
