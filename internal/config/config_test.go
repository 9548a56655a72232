package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_PS(t *testing.T) {
	args := []string{"bsdproc", "ps"}
	cfg, err := ParseArgs(args, "", "", "")

	require.NoError(t, err)
	assert.Equal(t, CommandPS, cfg.Command)
	assert.Empty(t, cfg.Filter)
	assert.Empty(t, cfg.CustomAttributes)
	assert.False(t, cfg.JSON)
	assert.Zero(t, cfg.Workers)
}

func TestParseArgs_PIDCommands(t *testing.T) {
	for _, cmd := range []string{CommandArgs, CommandEnv, CommandAlive} {
		t.Run(cmd, func(t *testing.T) {
			cfg, err := ParseArgs([]string{"bsdproc", cmd, "42"}, "", "", "")
			require.NoError(t, err)
			assert.Equal(t, cmd, cfg.Command)
			assert.Equal(t, 42, cfg.PID)
		})
	}
}

func TestParseArgs_NegativePID(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "alive", "-1"}, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.PID)
}

func TestParseArgs_InvalidPID(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "args", "init"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PID")
}

func TestParseArgs_PIDOutOfRange(t *testing.T) {
	for _, pid := range []string{"2147483648", "4294967297", "-2147483649"} {
		_, err := ParseArgs([]string{"bsdproc", "args", pid}, "", "", "")
		require.Error(t, err, pid)
		assert.Contains(t, err.Error(), "invalid PID")
	}

	cfg, err := ParseArgs([]string{"bsdproc", "alive", "2147483647"}, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2147483647, cfg.PID)
}

func TestParseArgs_MissingPID(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "env"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires exactly one PID")
}

func TestParseArgs_PSRejectsOperands(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "ps", "1"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes no arguments")
}

func TestParseArgs_Filter(t *testing.T) {
	args := []string{"bsdproc", "--filter", `comm == "sshd"`, "ps"}

	cfg, err := ParseArgs(args, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, `comm == "sshd"`, cfg.Filter)
}

func TestParseArgs_FilterShortForm(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "-f", "pid > 1", "ps"}, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "pid > 1", cfg.Filter)
}

func TestParseArgs_FlagMissingValue(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "ps", "--filter"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--filter requires a value")
}

func TestParseArgs_MultipleCustomAttributes(t *testing.T) {
	args := []string{
		"bsdproc",
		"-a", `env_name=env["ENVIRONMENT"]`,
		"--attr", `first_arg=args[0]`,
		"ps",
	}

	cfg, err := ParseArgs(args, "", "", "")
	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 2)
	assert.Equal(t, "env_name", cfg.CustomAttributes[0].Name)
	assert.Equal(t, `env["ENVIRONMENT"]`, cfg.CustomAttributes[0].Expression)
	assert.Equal(t, "first_arg", cfg.CustomAttributes[1].Name)
	assert.Equal(t, "args[0]", cfg.CustomAttributes[1].Expression)
}

func TestParseArgs_CustomAttributeWithEquals(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "-a", `check=comm=="sh"`, "ps"}, "", "", "")
	require.NoError(t, err)
	require.Len(t, cfg.CustomAttributes, 1)
	assert.Equal(t, "check", cfg.CustomAttributes[0].Name)
	assert.Equal(t, `comm=="sh"`, cfg.CustomAttributes[0].Expression)
}

func TestParseArgs_CustomAttributeErrors(t *testing.T) {
	tests := []struct {
		attr string
		want string
	}{
		{attr: "novalue", want: "NAME=EXPR"},
		{attr: "=args[0]", want: "name cannot be empty"},
		{attr: "name=", want: "expression cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			_, err := ParseArgs([]string{"bsdproc", "-a", tt.attr, "ps"}, "", "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseArgs_Workers(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "-w", "16", "ps"}, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Workers)

	_, err = ParseArgs([]string{"bsdproc", "--workers", "0", "ps"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestParseArgs_Switches(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "--json", "-v", "ps"}, "", "", "")
	require.NoError(t, err)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.Verbose)
}

func TestParseArgs_MissingCommand(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "--json"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, err.Error(), "Usage: bsdproc")
}

func TestParseArgs_UnknownCommand(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "top"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "top"`)
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "--color", "ps"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown flag "--color"`)
}

func TestParseArgs_Help(t *testing.T) {
	_, err := ParseArgs([]string{"bsdproc", "-h"}, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Commands:")
}

func TestParseArgs_Version(t *testing.T) {
	cfg, err := ParseArgs([]string{"bsdproc", "version"}, "1.2.3", "abc123", "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, CommandVersion, cfg.Command)
	assert.Equal(t, "bsdproc 1.2.3 (commit: abc123, built: 2026-01-01)", cfg.VersionText)
}

func TestParseArgs_NoArguments(t *testing.T) {
	_, err := ParseArgs(nil, "", "", "")
	require.Error(t, err)
}
