package methods

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipwrite/pkg/cliptypes"
)

// fakeTTY records writes and close calls, optionally failing writes.
type fakeTTY struct {
	buf      bytes.Buffer
	writeErr error
	closed   bool
}

func (f *fakeTTY) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.buf.Write(p)
}

func (f *fakeTTY) Close() error {
	f.closed = true
	return nil
}

func newOSC52WithTTY(tty io.WriteCloser, openErr error, term string) *OSC52Method {
	return &OSC52Method{
		openTTY: func() (io.WriteCloser, error) {
			if openErr != nil {
				return nil, openErr
			}
			return tty, nil
		},
		term: term,
	}
}

func TestOSC52Method_Name(t *testing.T) {
	assert.Equal(t, "osc52", NewOSC52Method().Name())
}

func TestOSC52Method_WritesSequence(t *testing.T) {
	tty := &fakeTTY{}
	m := newOSC52WithTTY(tty, nil, "xterm-256color")

	err := m.Attempt(context.Background(), "hello")

	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.Contains(t, tty.buf.String(), "]52;c;"+encoded)
	assert.True(t, tty.closed)
}

func TestOSC52Method_TmuxPassthrough(t *testing.T) {
	tty := &fakeTTY{}
	m := newOSC52WithTTY(tty, nil, "tmux-256color")

	err := m.Attempt(context.Background(), "hello")

	require.NoError(t, err)
	assert.Contains(t, tty.buf.String(), "Ptmux;")
}

func TestOSC52Method_NoTTY(t *testing.T) {
	m := newOSC52WithTTY(nil, fmt.Errorf("open /dev/tty: no such device"), "")

	err := m.Attempt(context.Background(), "hello")

	assert.True(t, errors.Is(err, cliptypes.ErrMethodUnavailable))
}

func TestOSC52Method_WriteFailureStillCloses(t *testing.T) {
	tty := &fakeTTY{writeErr: fmt.Errorf("input/output error")}
	m := newOSC52WithTTY(tty, nil, "xterm")

	err := m.Attempt(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cliptypes.ErrMethodFailed))
	// The handle is released on the failure path too.
	assert.True(t, tty.closed)
}

func TestOSC52Method_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tty := &fakeTTY{}
	m := newOSC52WithTTY(tty, nil, "xterm")

	err := m.Attempt(ctx, "hello")

	assert.True(t, cliptypes.IsCancellation(err))
	assert.Zero(t, tty.buf.Len())
	assert.False(t, tty.closed)
}
