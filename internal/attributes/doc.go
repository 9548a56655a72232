// Package attributes provides expression evaluation for process filters and
// custom columns.
//
// Expressions are evaluated against a Subject using the expr language.
// The environment exposes:
//   - pid, ppid: int; uid: int64 (uid_t is unsigned 32-bit)
//   - comm: string (kernel command name)
//   - args: []string, env: map[string]string, cmdline: string
//
// Two evaluators:
//   - Filter: a boolean expression selecting processes
//   - Evaluator: named expressions producing extra columns
//
// A map result from a column expression expands into one attribute per key.
package attributes
