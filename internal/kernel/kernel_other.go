//go:build !freebsd

package kernel

import (
	"golang.org/x/sys/unix"
)

// unsupportedKernel answers every sysctl with ErrUnsupported. kill(2) is
// POSIX, so liveness probing still works.
type unsupportedKernel struct{}

// Native returns the kernel of the running system.
func Native() Kernel {
	return unsupportedKernel{}
}

func (unsupportedKernel) Sysctl(_ []int32, _ []byte) (int, error) {
	return 0, ErrUnsupported
}

func (unsupportedKernel) Kill(pid int, sig unix.Signal) error {
	return unix.Kill(pid, sig)
}
