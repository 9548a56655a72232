package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Commands understood by bsdproc.
const (
	CommandPS      = "ps"
	CommandArgs    = "args"
	CommandEnv     = "env"
	CommandAlive   = "alive"
	CommandVersion = "version"
)

// CustomAttribute is a named expression evaluated per process.
type CustomAttribute struct {
	Name       string
	Expression string
}

// Config holds the parsed command-line configuration
type Config struct {
	// Command is the subcommand to run
	Command string
	// PID is the target of args, env and alive
	PID int
	// Filter selects processes for ps
	Filter string
	// CustomAttributes are extra columns for ps
	CustomAttributes []CustomAttribute
	// JSON selects JSON output instead of a table
	JSON bool
	// Verbose enables diagnostic logging
	Verbose bool
	// Workers bounds concurrent metadata reads; 0 uses the settings default
	Workers int
	// VersionText is printed by the version command
	VersionText string
}

func usage(programName string) string {
	return fmt.Sprintf(`Usage: %[1]s [flags] <command> [pid]

Commands:
  ps          list processes
  args PID    print the arguments of PID, one per line
  env PID     print the environment of PID, one per line
  alive PID   report whether PID is alive
  version     print version information

Flags:
  -f, --filter EXPR       only list processes matching EXPR
  -a, --attr NAME=EXPR    add a column (repeatable)
      --json              print JSON
  -w, --workers N         concurrent metadata reads
  -v, --verbose           log diagnostics

Example: %[1]s -f 'comm == "sshd"' -a 'port=env["PORT"]' ps`, programName)
}

// ParseArgs parses command-line arguments and returns a Config.
// Expected format: program_name [flags] <command> [pid]
func ParseArgs(args []string, version, commit, date string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}

	programName := args[0]
	cfg := &Config{
		VersionText: fmt.Sprintf("%s %s (commit: %s, built: %s)", programName, version, commit, date),
	}

	var positional []string
	for i := 1; i < len(args); i++ {
		arg := args[i]

		// value returns the argument following a flag.
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		switch arg {
		case "-f", "--filter":
			v, err := value()
			if err != nil {
				return nil, err
			}
			cfg.Filter = v
		case "-a", "--attr":
			v, err := value()
			if err != nil {
				return nil, err
			}
			attr, err := parseCustomAttribute(v)
			if err != nil {
				return nil, err
			}
			cfg.CustomAttributes = append(cfg.CustomAttributes, attr)
		case "-w", "--workers":
			v, err := value()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("--workers must be a positive integer, got %q", v)
			}
			cfg.Workers = n
		case "--json":
			cfg.JSON = true
		case "-v", "--verbose":
			cfg.Verbose = true
		case "-h", "--help":
			return nil, fmt.Errorf("%s", usage(programName))
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" && !isNumber(arg) {
				return nil, fmt.Errorf("unknown flag %q\n%s", arg, usage(programName))
			}
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return nil, fmt.Errorf("no command specified\n%s", usage(programName))
	}
	cfg.Command = positional[0]
	operands := positional[1:]

	switch cfg.Command {
	case CommandPS, CommandVersion:
		if len(operands) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", cfg.Command)
		}
	case CommandArgs, CommandEnv, CommandAlive:
		if len(operands) != 1 {
			return nil, fmt.Errorf("%s requires exactly one PID", cfg.Command)
		}
		pid, err := strconv.ParseInt(operands[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid PID %q: %w", operands[0], err)
		}
		cfg.PID = int(pid)
	default:
		return nil, fmt.Errorf("unknown command %q\n%s", cfg.Command, usage(programName))
	}

	return cfg, nil
}

// parseCustomAttribute splits NAME=EXPR on the first '='.
func parseCustomAttribute(s string) (CustomAttribute, error) {
	name, expression, ok := strings.Cut(s, "=")
	if !ok {
		return CustomAttribute{}, fmt.Errorf("invalid attribute format %q: expected NAME=EXPR", s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: name cannot be empty", s)
	}
	if strings.TrimSpace(expression) == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: expression cannot be empty", s)
	}
	return CustomAttribute{Name: name, Expression: expression}, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
