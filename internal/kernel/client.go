package kernel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sys/unix"
)

// Options configures a Client.
type Options struct {
	// Allocator provides read buffers. Defaults to HeapAllocator{}.
	Allocator Allocator
	// MaxRetries caps how many times Query restarts after the table grew
	// between the size query and the fetch. Zero means no cap.
	MaxRetries int
	// Logger receives a line per restart. Nil disables logging.
	Logger *log.Logger
}

// Client performs classified reads against a Kernel.
type Client struct {
	kernel     Kernel
	alloc      Allocator
	maxRetries int
	logger     *log.Logger
}

// NewClient creates a new Client.
func NewClient(k Kernel, opts Options) *Client {
	alloc := opts.Allocator
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	return &Client{
		kernel:     k,
		alloc:      alloc,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
	}
}

// Query performs the two-phase size/fetch read of sel and returns the
// complete node contents. When the fetch fails with ENOMEM the node grew
// after it was sized; the buffer is dropped and the whole query restarts.
// No other error is retried.
func (c *Client) Query(sel Selector) (*Buffer, error) {
	if len(sel.MIB) == 0 {
		return nil, &Error{Op: "sysctl", Node: sel.String(), Kind: ErrInvalidInput}
	}

	for restarts := 0; ; restarts++ {
		if c.maxRetries > 0 && restarts > c.maxRetries {
			return nil, &Error{Op: "sysctl", Node: sel.String(), Kind: ErrTooManyRetries}
		}

		size, err := c.kernel.Sysctl(sel.MIB, nil)
		if err != nil {
			return nil, classifySysctl(sel, err)
		}

		buf, err := c.alloc.Alloc(size)
		if err != nil {
			return nil, &Error{Op: "alloc", Node: sel.String(), Kind: ErrOutOfMemory, Err: err}
		}

		n, err := c.kernel.Sysctl(sel.MIB, buf)
		if err == nil && n <= len(buf) {
			return &Buffer{data: buf[:n], full: buf, alloc: c.alloc}, nil
		}
		c.alloc.Free(buf)

		if err != nil && !errors.Is(err, unix.ENOMEM) {
			return nil, classifySysctl(sel, err)
		}
		if c.logger != nil {
			c.logger.Printf("%s grew past %d bytes, retrying (restart %d)", sel, size, restarts+1)
		}
	}
}

// ReadOnce allocates size bytes and reads sel into them with a single call.
// Unlike Query it never retries.
func (c *Client) ReadOnce(sel Selector, size int) (*Buffer, error) {
	if len(sel.MIB) == 0 {
		return nil, &Error{Op: "sysctl", Node: sel.String(), Kind: ErrInvalidInput}
	}

	buf, err := c.alloc.Alloc(size)
	if err != nil {
		return nil, &Error{Op: "alloc", Node: sel.String(), Kind: ErrOutOfMemory, Err: err}
	}

	n, err := c.kernel.Sysctl(sel.MIB, buf)
	if err != nil {
		c.alloc.Free(buf)
		return nil, classifySysctl(sel, err)
	}
	if n > len(buf) {
		c.alloc.Free(buf)
		return nil, classifySysctl(sel, unix.ENOMEM)
	}

	return &Buffer{data: buf[:n], full: buf, alloc: c.alloc}, nil
}

// ReadInt32 reads a fixed-size int scalar such as kern.argmax.
func (c *Client) ReadInt32(sel Selector) (int32, error) {
	if len(sel.MIB) == 0 {
		return 0, &Error{Op: "sysctl", Node: sel.String(), Kind: ErrInvalidInput}
	}

	var raw [4]byte
	n, err := c.kernel.Sysctl(sel.MIB, raw[:])
	if err != nil {
		return 0, classifySysctl(sel, err)
	}
	if n != len(raw) {
		return 0, &Error{
			Op:   "sysctl",
			Node: sel.String(),
			Kind: ErrKernelQueryFailed,
			Err:  fmt.Errorf("expected %d bytes, got %d", len(raw), n),
		}
	}

	//nolint:gosec // reinterpreting the kernel's int
	return int32(binary.NativeEndian.Uint32(raw[:])), nil
}

// Signal delivers sig to pid.
// A pid above MaxPID is rejected without a system call.
func (c *Client) Signal(pid int, sig unix.Signal) error {
	if pid > MaxPID {
		return &Error{Op: "kill", Node: fmt.Sprintf("pid %d", pid), Kind: ErrInvalidInput}
	}
	if err := c.kernel.Kill(pid, sig); err != nil {
		return classifySignal(pid, err)
	}
	return nil
}
