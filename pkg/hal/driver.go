package hal

// Driver is a live connection to one hardware backend. A System retains
// drivers for its whole life and closes them as one of the last steps of
// teardown, after every device opened through them has been closed.
type Driver interface {
	// Moniker returns the backend name the driver was registered under
	// (e.g. "localcpu", "hip", "vulkan").
	Moniker() string

	// Close releases the backend connection. Called exactly once, by the
	// owning System.
	Close() error
}

// Environment is the shared execution context (VM instance) required by
// all devices within a System. It is created before any device and
// released after every device and driver.
type Environment interface {
	Close() error
}
