package attributes

import (
	"github.com/mrzor/bsdproc/internal/procmeta"
)

// Subject is the process an expression is evaluated against.
type Subject struct {
	PID      int
	PPID     int
	UID      int64
	Comm     string
	Metadata *procmeta.ProcessMetadata // nil when it could not be collected
}

// typeEnv is the environment used to type-check expressions at compile time.
func typeEnv() map[string]interface{} {
	return map[string]interface{}{
		"pid":     0,
		"ppid":    0,
		"uid":     int64(0),
		"comm":    "",
		"env":     map[string]string{},
		"args":    []string{},
		"cmdline": "",
	}
}

func (s Subject) env() map[string]interface{} {
	env := map[string]interface{}{
		"pid":     s.PID,
		"ppid":    s.PPID,
		"uid":     s.UID,
		"comm":    s.Comm,
		"env":     map[string]string{},
		"args":    []string{},
		"cmdline": "",
	}
	if s.Metadata != nil {
		if s.Metadata.Environ != nil {
			env["env"] = s.Metadata.Environ
		}
		if s.Metadata.Args != nil {
			env["args"] = s.Metadata.Args
		}
		env["cmdline"] = s.Metadata.CmdlineFull
	}
	return env
}
