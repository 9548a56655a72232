// Package output renders inspection results.
//
// Rows are built from a process table snapshot and the metadata collected
// for it:
//   - the filter drops processes that do not match
//   - custom attributes become extra columns
//   - metadata errors and issues travel with the row
//
// TableFormatter writes aligned text for terminals; JSONFormatter writes
// JSON for scripts.
package output
