package kernel

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Error kinds. Every *Error carries exactly one of these.
var (
	ErrKernelQueryFailed     = errors.New("kernel query failed")
	ErrOutOfMemory           = errors.New("out of memory")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	ErrProcessNotFound       = errors.New("process not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnknown               = errors.New("unknown error")
	ErrTooManyRetries        = errors.New("too many retries")
	ErrUnsupported           = errors.New("unsupported on this platform")
)

// Error is a classified kernel failure.
type Error struct {
	Op   string // "sysctl", "alloc" or "kill"
	Node string // selector name or "pid N"
	Kind error
	Err  error // raw cause, usually a unix.Errno; may be nil
}

func (e *Error) Error() string {
	if e.Err == nil || errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Node, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the raw cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code returns the platform errno, or 0 when the cause was not an errno.
func (e *Error) Code() int {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return int(errno)
	}
	return 0
}

// classifySysctl maps a sysctl failure onto the error taxonomy.
func classifySysctl(sel Selector, err error) *Error {
	var kind error
	switch {
	case errors.Is(err, ErrUnsupported):
		kind = ErrUnsupported
	case errors.Is(err, unix.ENOMEM):
		kind = ErrOutOfMemory
	case errors.Is(err, unix.ESRCH):
		kind = ErrProcessNotFound
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		kind = ErrInsufficientPrivilege
	default:
		kind = ErrKernelQueryFailed
	}
	return &Error{Op: "sysctl", Node: sel.String(), Kind: kind, Err: err}
}

// classifySignal maps a kill(2) failure onto the error taxonomy.
func classifySignal(pid int, err error) *Error {
	var kind error
	switch {
	case errors.Is(err, unix.ESRCH):
		kind = ErrProcessNotFound
	case errors.Is(err, unix.EPERM):
		kind = ErrInsufficientPrivilege
	default:
		kind = ErrUnknown
	}
	return &Error{Op: "kill", Node: fmt.Sprintf("pid %d", pid), Kind: kind, Err: err}
}
