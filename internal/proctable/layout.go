package proctable

// Layout describes where the fields this package reads sit inside one
// kinfo_proc record. A zero Layout means the platform is not supported.
type Layout struct {
	Size int // sizeof(struct kinfo_proc)

	PID         int  // ki_pid, int32
	PPID        int  // ki_ppid, int32
	UID         int  // ki_uid, uint32
	Comm        int  // ki_comm, NUL-padded
	CommLen     int  // length of ki_comm
	Start       int  // ki_start, struct timeval
	WideTimeval bool // timeval members are 64-bit
}

// Supported reports whether l can be used to decode records.
func (l Layout) Supported() bool {
	return l.Size > 0
}
