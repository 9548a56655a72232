// Package kerneltest provides a scripted kernel and a tracking allocator
// for testing code built on package kernel.
package kerneltest

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

type node struct {
	data     []byte
	sizeErr  error
	fetchErr error
	grow     int    // fetches left that grow the node before answering
	growBy   []byte // bytes appended per growth
	over     int    // fetches left that overstate their length
	overBy   int
}

// Fake is an in-memory Kernel. Unknown sysctl nodes answer ENOENT and
// unknown pids answer ESRCH.
type Fake struct {
	mu          sync.Mutex
	nodes       map[string]*node
	signals     map[int]error
	sysctlCalls int
	fetchCalls  int
	killCalls   int
}

// NewFake creates an empty fake kernel.
func NewFake() *Fake {
	return &Fake{
		nodes:   make(map[string]*node),
		signals: make(map[int]error),
	}
}

func key(mib []int32) string {
	parts := make([]string, len(mib))
	for i, v := range mib {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ".")
}

func (f *Fake) node(mib []int32) *node {
	k := key(mib)
	if f.nodes[k] == nil {
		f.nodes[k] = &node{}
	}
	return f.nodes[k]
}

// SetNode sets the contents of a sysctl node.
func (f *Fake) SetNode(mib []int32, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.node(mib).data = append([]byte(nil), data...)
}

// FailSize makes size queries of mib fail with err.
func (f *Fake) FailSize(mib []int32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.node(mib).sizeErr = err
}

// FailFetch makes fetches of mib fail with err.
func (f *Fake) FailFetch(mib []int32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.node(mib).fetchErr = err
}

// Grow appends chunk to the node right before each of the next times
// fetches, emulating processes starting between the size query and the
// fetch.
func (f *Fake) Grow(mib []int32, times int, chunk []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.node(mib)
	n.grow = times
	n.growBy = append([]byte(nil), chunk...)
}

// Overreport makes the next times fetches of mib succeed while reporting
// extra bytes more than were copied.
func (f *Fake) Overreport(mib []int32, times, extra int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.node(mib)
	n.over = times
	n.overBy = extra
}

// SetSignalResult sets what Kill returns for pid. A nil err means the
// process exists and accepts the signal.
func (f *Fake) SetSignalResult(pid int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals[pid] = err
}

// Sysctl implements kernel.Kernel.
func (f *Fake) Sysctl(mib []int32, buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sysctlCalls++

	n, ok := f.nodes[key(mib)]
	if !ok {
		return 0, unix.ENOENT
	}

	if buf == nil {
		if n.sizeErr != nil {
			return 0, n.sizeErr
		}
		return len(n.data), nil
	}

	f.fetchCalls++
	if n.fetchErr != nil {
		return 0, n.fetchErr
	}
	if n.grow > 0 {
		n.grow--
		n.data = append(n.data, n.growBy...)
	}

	copied := copy(buf, n.data)
	if copied < len(n.data) {
		// Same as the kernel: the buffer is filled as far as it goes.
		return copied, unix.ENOMEM
	}
	if n.over > 0 {
		n.over--
		return copied + n.overBy, nil
	}
	return copied, nil
}

// Kill implements kernel.Kernel.
func (f *Fake) Kill(pid int, _ unix.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killCalls++

	if err, ok := f.signals[pid]; ok {
		return err
	}
	return unix.ESRCH
}

// SysctlCalls returns the number of Sysctl calls, size queries included.
func (f *Fake) SysctlCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sysctlCalls
}

// FetchCalls returns the number of Sysctl calls that passed a buffer.
func (f *Fake) FetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

// KillCalls returns the number of Kill calls.
func (f *Fake) KillCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.killCalls
}

// Allocator counts allocations and frees so tests can assert that no
// buffer outlives a failed call.
type Allocator struct {
	mu     sync.Mutex
	allocs int
	frees  int
	failAt int // fail the Nth allocation (1-based); 0 never fails
}

// FailAt makes the nth allocation from now on fail.
func (a *Allocator) FailAt(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failAt = a.allocs + n
}

// Alloc implements kernel.Allocator.
func (a *Allocator) Alloc(n int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failAt > 0 && a.allocs+1 == a.failAt {
		a.failAt = 0
		return nil, fmt.Errorf("allocating %d bytes: %w", n, unix.ENOMEM)
	}
	a.allocs++
	return make([]byte, n), nil
}

// Free implements kernel.Allocator.
func (a *Allocator) Free([]byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frees++
}

// Allocs returns the number of successful allocations.
func (a *Allocator) Allocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Outstanding returns allocations not yet freed.
func (a *Allocator) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs - a.frees
}
