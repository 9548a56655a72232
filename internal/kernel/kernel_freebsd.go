//go:build freebsd

package kernel

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type sysKernel struct{}

// Native returns the kernel of the running system.
func Native() Kernel {
	return sysKernel{}
}

func (sysKernel) Sysctl(mib []int32, buf []byte) (int, error) {
	if len(mib) == 0 {
		return 0, unix.EINVAL
	}

	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	n := uintptr(len(buf))

	_, _, errno := unix.Syscall6(
		unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])),
		uintptr(len(mib)),
		uintptr(p),
		uintptr(unsafe.Pointer(&n)),
		0, 0,
	)
	if errno != 0 {
		return int(n), errno
	}
	return int(n), nil
}

func (sysKernel) Kill(pid int, sig unix.Signal) error {
	return unix.Kill(pid, sig)
}
