package procargs

import (
	"bytes"
	"fmt"

	"github.com/mrzor/bsdproc/internal/kernel"
)

// Reader is the part of *kernel.Client this package needs.
type Reader interface {
	ReadInt32(sel kernel.Selector) (int32, error)
	ReadOnce(sel kernel.Selector, size int) (*kernel.Buffer, error)
}

// ArgMax returns kern.argmax, the largest block the kernel will return.
func ArgMax(r Reader) (int, error) {
	argmax, err := r.ReadInt32(kernel.ArgMax())
	if err != nil {
		return 0, fmt.Errorf("reading argument size limit: %w", err)
	}
	if argmax <= 0 {
		return 0, fmt.Errorf("kern.argmax is %d: %w", argmax, kernel.ErrKernelQueryFailed)
	}
	return int(argmax), nil
}

// Arguments returns the command-line arguments of pid in argv order.
// A negative pid yields an empty list without touching the kernel; a pid
// above kernel.MaxPID is ErrInvalidInput.
func Arguments(r Reader, pid int) ([]string, error) {
	return read(r, pid, kernel.ProcessArgs)
}

// Environment returns the environment of pid as raw KEY=VALUE strings.
// A negative pid yields an empty list without touching the kernel.
func Environment(r Reader, pid int) ([]string, error) {
	return read(r, pid, kernel.ProcessEnv)
}

func read(r Reader, pid int, selector func(int) kernel.Selector) ([]string, error) {
	if pid < 0 {
		return []string{}, nil
	}
	if pid > kernel.MaxPID {
		return nil, &kernel.Error{Op: "sysctl", Node: fmt.Sprintf("pid %d", pid), Kind: kernel.ErrInvalidInput}
	}

	argmax, err := ArgMax(r)
	if err != nil {
		return nil, err
	}

	buf, err := r.ReadOnce(selector(pid), argmax)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	return Decode(buf.Bytes()), nil
}

// Decode splits a block of NUL-terminated strings. Empty strings are kept;
// a final string missing its terminator runs to the end of the block.
func Decode(block []byte) []string {
	out := []string{}
	for pos := 0; pos < len(block); {
		end := bytes.IndexByte(block[pos:], 0)
		if end < 0 {
			out = append(out, string(block[pos:]))
			break
		}
		out = append(out, string(block[pos:pos+end]))
		pos += end + 1
	}
	return out
}
