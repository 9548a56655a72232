package proctable

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/mrzor/bsdproc/internal/kernel"

	"golang.org/x/sys/unix"
)

// Querier performs the two-phase kernel read. *kernel.Client implements it.
type Querier interface {
	Query(sel kernel.Selector) (*kernel.Buffer, error)
}

// Snapshot is one read of the process table.
type Snapshot struct {
	buf    *kernel.Buffer
	layout Layout
	count  int
}

// List reads the whole process table. The caller owns the result and must
// Release it. Errors from the kernel query are returned unchanged.
func List(q Querier, layout Layout) (*Snapshot, error) {
	if !layout.Supported() {
		return nil, &kernel.Error{Op: "sysctl", Node: kernel.AllProcesses().String(), Kind: kernel.ErrUnsupported}
	}

	buf, err := q.Query(kernel.AllProcesses())
	if err != nil {
		return nil, err
	}

	if buf.Len()%layout.Size != 0 {
		n := buf.Len()
		buf.Release()
		panic(fmt.Sprintf("proctable: %d bytes is not a whole number of %d-byte records", n, layout.Size))
	}

	return &Snapshot{
		buf:    buf,
		layout: layout,
		count:  buf.Len() / layout.Size,
	}, nil
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return s.count
}

// Bytes returns the raw record buffer.
func (s *Snapshot) Bytes() []byte {
	return s.buf.Bytes()
}

// RecordSize returns the size of one record.
func (s *Snapshot) RecordSize() int {
	return s.layout.Size
}

// Record returns the i-th record. It panics if i is out of range.
func (s *Snapshot) Record(i int) Record {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("proctable: record %d out of range [0, %d)", i, s.count))
	}
	off := i * s.layout.Size
	return Record{raw: s.buf.Bytes()[off : off+s.layout.Size], layout: s.layout}
}

// Records returns every record in table order.
func (s *Snapshot) Records() []Record {
	records := make([]Record, s.count)
	for i := range records {
		records[i] = s.Record(i)
	}
	return records
}

// Release returns the buffer to the allocator. Records taken from the
// snapshot must not be used afterwards.
func (s *Snapshot) Release() {
	s.buf.Release()
	s.count = 0
}

// Record is a read-only view of one kinfo_proc.
type Record struct {
	raw    []byte
	layout Layout
}

// PID returns ki_pid.
func (r Record) PID() int {
	//nolint:gosec // reinterpreting the kernel's pid_t
	return int(int32(binary.NativeEndian.Uint32(r.raw[r.layout.PID:])))
}

// PPID returns ki_ppid.
func (r Record) PPID() int {
	//nolint:gosec // reinterpreting the kernel's pid_t
	return int(int32(binary.NativeEndian.Uint32(r.raw[r.layout.PPID:])))
}

// UID returns ki_uid.
func (r Record) UID() uint32 {
	return binary.NativeEndian.Uint32(r.raw[r.layout.UID:])
}

// Comm returns ki_comm, the command name.
func (r Record) Comm() string {
	return unix.ByteSliceToString(r.raw[r.layout.Comm : r.layout.Comm+r.layout.CommLen])
}

// StartTime returns ki_start.
func (r Record) StartTime() time.Time {
	off := r.layout.Start
	if r.layout.WideTimeval {
		//nolint:gosec // reinterpreting the kernel's time_t and suseconds_t
		sec := int64(binary.NativeEndian.Uint64(r.raw[off:]))
		//nolint:gosec // reinterpreting the kernel's time_t and suseconds_t
		usec := int64(binary.NativeEndian.Uint64(r.raw[off+8:]))
		return time.Unix(sec, usec*int64(time.Microsecond))
	}
	//nolint:gosec // reinterpreting the kernel's time_t and suseconds_t
	sec := int64(int32(binary.NativeEndian.Uint32(r.raw[off:])))
	//nolint:gosec // reinterpreting the kernel's time_t and suseconds_t
	usec := int64(int32(binary.NativeEndian.Uint32(r.raw[off+4:])))
	return time.Unix(sec, usec*int64(time.Microsecond))
}
