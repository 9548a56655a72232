package liveness

import (
	"errors"
	"testing"

	"github.com/mrzor/bsdproc/internal/kernel"
	"github.com/mrzor/bsdproc/internal/kernel/kerneltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestProbe(t *testing.T) {
	fake := kerneltest.NewFake()
	fake.SetSignalResult(100, nil)
	fake.SetSignalResult(1, unix.EPERM)
	fake.SetSignalResult(300, unix.EINVAL)
	client := kernel.NewClient(fake, kernel.Options{})

	tests := []struct {
		name    string
		pid     int
		want    State
		wantErr bool
	}{
		{name: "own process", pid: 100, want: Alive},
		{name: "other user's process", pid: 1, want: Alive},
		{name: "never existed", pid: 200, want: Dead},
		{name: "unexpected errno", pid: 300, want: Unknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Probe(client, tt.pid)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbe_NegativePID(t *testing.T) {
	fake := kerneltest.NewFake()

	got, err := Probe(kernel.NewClient(fake, kernel.Options{}), -1)
	require.NoError(t, err)
	assert.Equal(t, Dead, got)
	assert.Equal(t, 0, fake.KillCalls())
}

func TestProbe_PIDBeyondPIDRange(t *testing.T) {
	fake := kerneltest.NewFake()
	fake.SetSignalResult(1, nil)

	wide := int64(1)<<32 + 1
	pid := int(wide)
	if int64(pid) != wide {
		t.Skip("int is 32 bits on this platform")
	}

	got, err := Probe(kernel.NewClient(fake, kernel.Options{}), pid)
	require.NoError(t, err)
	assert.Equal(t, Dead, got)
	assert.Equal(t, 0, fake.KillCalls())
}

func TestProbe_UnknownCarriesErrno(t *testing.T) {
	fake := kerneltest.NewFake()
	fake.SetSignalResult(300, unix.EINVAL)

	_, err := Probe(kernel.NewClient(fake, kernel.Options{}), 300)

	var kerr *kernel.Error
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, int(unix.EINVAL), kerr.Code())
	assert.ErrorIs(t, err, kernel.ErrUnknown)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "dead", Dead.String())
	assert.Equal(t, "alive", Alive.String())
	assert.Equal(t, "unknown", Unknown.String())
}
