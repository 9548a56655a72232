// Package liveness tells whether a process id names a live process.
package liveness

import (
	"errors"

	"github.com/mrzor/bsdproc/internal/kernel"

	"golang.org/x/sys/unix"
)

// State is the outcome of a probe.
type State int

const (
	// Dead means no process has the pid.
	Dead State = iota
	// Alive means the process exists, whether or not we may signal it.
	Alive
	// Unknown means the probe failed for an unexpected reason.
	Unknown
)

func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	default:
		return "unknown"
	}
}

// Signaler delivers signals. *kernel.Client implements it.
type Signaler interface {
	Signal(pid int, sig unix.Signal) error
}

// Probe sends the null signal to pid. EPERM counts as Alive: only an
// existing process can refuse the signal. Only Unknown comes with an error.
// No process can have a negative pid or one above kernel.MaxPID.
func Probe(s Signaler, pid int) (State, error) {
	if pid < 0 || pid > kernel.MaxPID {
		return Dead, nil
	}

	err := s.Signal(pid, 0)
	switch {
	case err == nil:
		return Alive, nil
	case errors.Is(err, kernel.ErrProcessNotFound):
		return Dead, nil
	case errors.Is(err, kernel.ErrInsufficientPrivilege):
		return Alive, nil
	default:
		return Unknown, err
	}
}
