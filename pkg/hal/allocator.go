package hal

// Allocator identifies the memory arena a system and its devices allocate
// host memory from. Builders thread one Allocator through system
// construction; the identity (not the allocation strategy) is what the
// core cares about.
type Allocator interface {
	// Name returns a stable identifier for this arena.
	Name() string
}

// hostAllocator is the default process-wide arena.
type hostAllocator struct{}

func (hostAllocator) Name() string { return "host" }

// HostAllocator returns the default allocator backed by the process heap.
func HostAllocator() Allocator {
	return hostAllocator{}
}
