// Package eventlog provides structured lifecycle logging for the local
// system core.
//
// The package defines the Logger interface and Event type for capturing
// resource-lifecycle events: driver and device registration, worker
// start/stop, scope creation, and teardown steps. It is separate from
// operational logging (slog) - lifecycle capture provides a complete
// machine-readable trace of what the system acquired and released, in
// what order, for debugging leaked or misordered resources.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = eventlog.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = eventlog.NewFileLogger("/var/log/shortfin/system.slog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = eventlog.NewMultiLogger(
//	    eventlog.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Events are CBOR-encoded on disk with integer keys for compactness; use
// [Reader] (optionally with a [Filter]) to stream them back.
package eventlog
