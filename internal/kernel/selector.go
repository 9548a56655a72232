package kernel

import (
	"fmt"
	"math"
	"strings"
)

// MIB components, copied from FreeBSD sys/sysctl.h.
const (
	ctlKern      = 1  // "high kernel": proc, limits
	kernArgMax   = 8  // int: max arguments to exec
	kernProc     = 14 // struct: process entries
	kernProcArgs = 7  // get/set arguments/proctitle
	kernProcProc = 8  // only return procs
	kernProcEnv  = 35 // get environment
)

// MaxPID is the largest pid a pid_t holds. Larger values would be
// truncated onto some other process.
const MaxPID = math.MaxInt32

// Selector names a sysctl node.
type Selector struct {
	Name string
	MIB  []int32
}

func (s Selector) String() string {
	if s.Name != "" {
		return s.Name
	}
	parts := make([]string, len(s.MIB))
	for i, v := range s.MIB {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ".")
}

// AllProcesses selects the kinfo_proc table, one record per process.
func AllProcesses() Selector {
	return Selector{Name: "kern.proc.proc", MIB: []int32{ctlKern, kernProc, kernProcProc}}
}

// ProcessArgs selects the raw argument block of pid.
func ProcessArgs(pid int) Selector {
	//nolint:gosec // callers reject pids outside 0..MaxPID
	return Selector{Name: fmt.Sprintf("kern.proc.args.%d", pid), MIB: []int32{ctlKern, kernProc, kernProcArgs, int32(pid)}}
}

// ProcessEnv selects the raw environment block of pid.
func ProcessEnv(pid int) Selector {
	//nolint:gosec // callers reject pids outside 0..MaxPID
	return Selector{Name: fmt.Sprintf("kern.proc.env.%d", pid), MIB: []int32{ctlKern, kernProc, kernProcEnv, int32(pid)}}
}

// ArgMax selects kern.argmax, the largest argument block the kernel hands out.
func ArgMax() Selector {
	return Selector{Name: "kern.argmax", MIB: []int32{ctlKern, kernArgMax}}
}
