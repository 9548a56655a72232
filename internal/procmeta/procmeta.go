package procmeta

import (
	"fmt"
	"strings"

	"github.com/mrzor/bsdproc/internal/procargs"
)

// ProcessMetadata holds structured process information for expression evaluation.
type ProcessMetadata struct {
	PID         int
	Environ     map[string]string // Parsed environment variables
	Args        []string          // Command-line arguments
	CmdlineFull string            // Full command line as single string
}

// Collect reads the arguments and environment of pid. Failing to read the
// arguments is an error; failing to read the environment only yields an
// issue, since the arguments alone are still useful.
func Collect(r procargs.Reader, pid int) (*ProcessMetadata, []string, error) {
	rawArgs, err := procargs.Arguments(r, pid)
	if err != nil {
		return nil, nil, fmt.Errorf("reading arguments of pid %d: %w", pid, err)
	}

	var issues []string
	rawEnv, err := procargs.Environment(r, pid)
	if err != nil {
		issues = append(issues, fmt.Sprintf("environment unavailable: %v", err))
	}

	args, cmdline := parseCmdline(rawArgs)
	return &ProcessMetadata{
		PID:         pid,
		Environ:     parseEnviron(rawEnv),
		Args:        args,
		CmdlineFull: cmdline,
	}, issues, nil
}

// parseEnviron turns KEY=VALUE strings into a map. Entries without '=' or
// with an empty key are dropped; the last duplicate wins.
func parseEnviron(raw []string) map[string]string {
	env := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// parseCmdline returns the arguments and their space-joined form.
func parseCmdline(raw []string) ([]string, string) {
	args := make([]string, len(raw))
	copy(args, raw)
	return args, strings.Join(args, " ")
}
