package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "empty matches all", expr: "", want: true},
		{name: "comm equality", expr: `comm == "nginx"`, want: true},
		{name: "comm mismatch", expr: `comm == "sshd"`, want: false},
		{name: "env lookup", expr: `env["APP_ENV"] == "prod"`, want: true},
		{name: "args membership", expr: `"-g" in args`, want: true},
		{name: "cmdline contains", expr: `cmdline contains "daemon"`, want: true},
		{name: "numeric", expr: `pid > 4000 && ppid == 1`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())

			got, err := f.Match(testSubject())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_NoMetadata(t *testing.T) {
	f, err := NewFilter(`len(args) == 0 && env["X"] == ""`)
	require.NoError(t, err)

	got, err := f.Match(Subject{PID: 9})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFilter_NonBoolean(t *testing.T) {
	_, err := NewFilter(`comm`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile filter expression")
}

func TestFilter_RuntimeError(t *testing.T) {
	f, err := NewFilter(`args[5] == "x"`)
	require.NoError(t, err)

	_, err = f.Match(testSubject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pid 4242")
}
