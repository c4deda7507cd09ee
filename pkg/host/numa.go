package host

import (
	"fmt"
	"os"
)

// sysfsNodeRoot is where Linux exposes NUMA topology.
const sysfsNodeRoot = "/sys/devices/system/node"

// DiscoverNodeCount returns the number of NUMA nodes on the host by
// counting node<N> entries under sysfs. On hosts without sysfs topology
// (non-Linux, containers with masked /sys) it returns 1: the whole
// machine as a single affinity domain.
func DiscoverNodeCount() int {
	return discoverNodeCount(sysfsNodeRoot)
}

func discoverNodeCount(root string) int {
	count := 0
	for {
		path := fmt.Sprintf("%s/node%d", root, count)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			break
		}
		count++
	}
	if count == 0 {
		return 1
	}
	return count
}
