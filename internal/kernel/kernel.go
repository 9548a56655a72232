package kernel

import (
	"golang.org/x/sys/unix"
)

// Kernel is the raw interface consumed by Client.
type Kernel interface {
	// Sysctl reads the node named by mib into buf and returns the length
	// reported by the kernel. A nil buf is a size query.
	Sysctl(mib []int32, buf []byte) (int, error)
	// Kill delivers sig to pid.
	Kill(pid int, sig unix.Signal) error
}
