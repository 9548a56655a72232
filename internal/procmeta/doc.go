// Package procmeta builds process metadata from kernel argument and
// environment blocks.
//
// ProcessMetadata holds environment variables, command-line arguments, and
// full command line for expression evaluation.
//
// Manager collects the results of one inspection run, keyed by PID:
//
// Queries (read-only):
//   - Get(pid) - Retrieve metadata
//   - GetError(pid) - Retrieve collection errors
//   - GetIssues(pid) - Retrieve collection warnings
//   - PIDs() - PIDs with metadata or an error, ascending
//
// Commands (mutations):
//   - Set(pid, metadata) - Store metadata
//   - SetError(pid, err) - Store collection error
//   - AddIssues(pid, issues) - Add collection warnings
//
// A Manager lives for a single run and is never reused as a cache.
// Thread-safe with RWMutex for concurrent access.
package procmeta
