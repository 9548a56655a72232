// Package kernel wraps the BSD sysctl(3) management interface and kill(2).
//
// The sysctl interface has no fixed-size contract: the caller asks for the
// required length, allocates, and fetches. Processes start and exit between
// the two calls, so the fetch can fail with ENOMEM when the table grew.
// Client.Query hides that protocol:
//
//	┌──────────────┐
//	│ size query   │ ◄─────────┐
//	└──────┬───────┘           │
//	       │ n bytes           │
//	       ▼                   │
//	┌──────────────┐           │
//	│ Alloc(n)     │           │ ENOMEM (table grew)
//	└──────┬───────┘           │
//	       │                   │
//	       ▼                   │
//	┌──────────────┐           │
//	│ fetch        │ ──────────┘
//	└──────┬───────┘
//	       │ success
//	       ▼
//	┌──────────────┐
//	│ *Buffer      │
//	└──────────────┘
//
// Raw errno values are classified exactly once, here, into *Error values
// carrying one of the sentinel kinds (ErrOutOfMemory, ErrProcessNotFound,
// ErrInsufficientPrivilege, ...). Packages above this one match on the
// sentinels with errors.Is and never inspect errno directly.
//
// A Client holds no state between calls and is safe for concurrent use.
package kernel
