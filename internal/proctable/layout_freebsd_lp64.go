//go:build freebsd && (amd64 || arm64 || riscv64)

package proctable

// Native is the kinfo_proc layout of the running system, from sys/user.h.
var Native = Layout{
	Size:        1088,
	PID:         72,
	PPID:        76,
	UID:         168,
	Comm:        447,
	CommLen:     20,
	Start:       336,
	WideTimeval: true,
}
