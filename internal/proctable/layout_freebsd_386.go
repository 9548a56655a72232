//go:build freebsd && 386

package proctable

// Native is the kinfo_proc layout of the running system, from sys/user.h.
var Native = Layout{
	Size:    768,
	PID:     40,
	PPID:    44,
	UID:     136,
	Comm:    367,
	CommLen: 20,
	Start:   280,
}
