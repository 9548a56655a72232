// Package procargs reads the argument and environment blocks of a single
// process.
//
// The kernel hands out each block as NUL-terminated strings laid end to
// end. Reads are one-shot: the buffer is sized to kern.argmax up front and
// a failed read is reported, never retried.
package procargs
