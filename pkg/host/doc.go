// Package host implements the SystemBuilder for the host-CPU backend.
//
// The host builder discovers the machine's NUMA topology from sysfs
// (falling back to a single node where sysfs is unavailable), registers
// one "localcpu" driver, opens the configured number of devices per
// node, and returns a fully initialized system. It is the reference
// builder: a GPU backend follows the same shape with its own driver and
// device bring-up.
package host
