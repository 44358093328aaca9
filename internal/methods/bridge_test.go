package methods

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipwrite/pkg/cliptypes"
)

// startBridgeDaemon serves one scripted acknowledgment per connection on
// a Unix socket and records the requests it receives.
func startBridgeDaemon(t *testing.T, ack bridgeAck) (string, <-chan bridgeRequest) {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "bridge.sock")
	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = listener.Close()
	})

	requests := make(chan bridgeRequest, 4)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer func() {
					_ = conn.Close()
				}()
				var req bridgeRequest
				if err := json.NewDecoder(conn).Decode(&req); err != nil {
					return
				}
				requests <- req
				_ = json.NewEncoder(conn).Encode(ack)
			}(conn)
		}
	}()

	return socket, requests
}

func TestBridgeMethod_Name(t *testing.T) {
	assert.Equal(t, "bridge", NewBridgeMethod("").Name())
}

func TestBridgeMethod_SuccessfulAck(t *testing.T) {
	socket, requests := startBridgeDaemon(t, bridgeAck{Success: true})
	m := NewBridgeMethod(socket)

	err := m.Attempt(context.Background(), "hello")

	require.NoError(t, err)
	select {
	case req := <-requests:
		assert.Equal(t, "hello", req.Text)
		assert.NotEmpty(t, req.ID)
	case <-time.After(time.Second):
		t.Fatal("bridge daemon saw no request")
	}
}

func TestBridgeMethod_RejectedAck(t *testing.T) {
	socket, _ := startBridgeDaemon(t, bridgeAck{Success: false, Error: "clipboard busy"})
	m := NewBridgeMethod(socket)

	err := m.Attempt(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cliptypes.ErrMethodFailed))
	assert.Contains(t, err.Error(), "clipboard busy")
}

func TestBridgeMethod_RejectedAckWithoutReason(t *testing.T) {
	socket, _ := startBridgeDaemon(t, bridgeAck{Success: false})
	m := NewBridgeMethod(socket)

	err := m.Attempt(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge rejected write")
}

func TestBridgeMethod_NoSocketConfigured(t *testing.T) {
	m := NewBridgeMethod("")

	err := m.Attempt(context.Background(), "hello")

	assert.True(t, errors.Is(err, cliptypes.ErrMethodUnavailable))
}

func TestBridgeMethod_DaemonNotListening(t *testing.T) {
	m := NewBridgeMethod(filepath.Join(t.TempDir(), "missing.sock"))

	err := m.Attempt(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cliptypes.ErrMethodUnavailable))
}

func TestBridgeMethod_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	socket, requests := startBridgeDaemon(t, bridgeAck{Success: true})
	m := NewBridgeMethod(socket)

	err := m.Attempt(ctx, "hello")

	assert.True(t, cliptypes.IsCancellation(err))
	select {
	case <-requests:
		t.Fatal("cancelled attempt must not reach the daemon")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResolveBridgeSocket(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv(bridgeSocketEnv, "/run/env.sock")
		assert.Equal(t, "/run/override.sock", ResolveBridgeSocket("/run/override.sock"))
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(bridgeSocketEnv, "/run/env.sock")
		assert.Equal(t, "/run/env.sock", ResolveBridgeSocket(""))
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv(bridgeSocketEnv, "")
		assert.Contains(t, ResolveBridgeSocket(""), "clipwrite-bridge.sock")
	})
}

func TestBridgeSocketPresent(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "bridge.sock")
	assert.False(t, BridgeSocketPresent(socket))
	assert.False(t, BridgeSocketPresent(""))

	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)
	defer func() {
		_ = listener.Close()
	}()

	assert.True(t, BridgeSocketPresent(socket))
}
