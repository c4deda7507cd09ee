// Package worker provides the execution unit owned by a local system.
//
// A Worker is one independent thread of control: a single goroutine
// draining a task queue. The system core constructs its workers only
// after topology and device registration are complete, and stops every
// worker (waiting for in-flight work) before it releases any device or
// driver during teardown. Scheduling policy above the queue is not this
// package's concern.
package worker
