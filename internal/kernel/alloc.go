package kernel

import (
	"fmt"
)

// Allocator hands out the buffers that kernel reads are copied into.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(buf []byte)
}

// HeapAllocator allocates from the Go heap and refuses requests above Limit.
// A zero Limit means no limit.
type HeapAllocator struct {
	Limit int
}

// Alloc returns a zeroed buffer of exactly n bytes.
func (a HeapAllocator) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative allocation size %d: %w", n, ErrInvalidInput)
	}
	if a.Limit > 0 && n > a.Limit {
		return nil, fmt.Errorf("%d bytes exceeds limit of %d: %w", n, a.Limit, ErrOutOfMemory)
	}
	return make([]byte, n), nil
}

// Free is a no-op; the garbage collector reclaims the buffer.
func (HeapAllocator) Free([]byte) {}

// Buffer is an owned kernel read result. Release returns it to the allocator.
type Buffer struct {
	data  []byte
	full  []byte
	alloc Allocator
}

// Bytes returns the bytes the kernel reported.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes the kernel reported.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Release frees the buffer. It is safe to call more than once.
func (b *Buffer) Release() {
	if b.alloc == nil {
		return
	}
	b.alloc.Free(b.full)
	b.alloc = nil
	b.data = nil
	b.full = nil
}
