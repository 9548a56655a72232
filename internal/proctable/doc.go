// Package proctable takes point-in-time snapshots of the kernel process
// table.
//
// A Snapshot owns one buffer of fixed-size kinfo_proc records as returned by
// the kern.proc.proc sysctl. Records are interpreted through a Layout of
// field offsets, one per supported architecture; Native is the layout of
// the running system. Callers release the snapshot when done.
package proctable
