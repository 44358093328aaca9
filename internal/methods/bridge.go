package methods

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"clipwrite/pkg/cliptypes"
)

// bridgeSocketEnv overrides the bridge daemon socket path.
const bridgeSocketEnv = "CLIPWRITE_BRIDGE_SOCKET"

// bridgeRequest is one write delegated to the privileged bridge daemon.
type bridgeRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// bridgeAck is the daemon's acknowledgment of a write.
type bridgeAck struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ResolveBridgeSocket returns the bridge daemon socket path: the explicit
// override, then the CLIPWRITE_BRIDGE_SOCKET environment variable, then
// the platform default.
func ResolveBridgeSocket(override string) string {
	if override != "" {
		return override
	}
	if path := os.Getenv(bridgeSocketEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "clipwrite-bridge.sock")
}

// BridgeSocketPresent reports whether a bridge daemon socket exists at
// path. Pure existence check; it never blocks and never fails when the
// socket is absent.
func BridgeSocketPresent(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// BridgeMethod delegates the write to a privileged clipboard bridge
// daemon over a Unix socket, interpreting the daemon's JSON
// acknowledgment as the outcome.
type BridgeMethod struct {
	socket string
	dialer net.Dialer
}

// NewBridgeMethod creates the bridge daemon strategy for the given
// socket path. An empty path means no daemon was detected.
func NewBridgeMethod(socket string) *BridgeMethod {
	return &BridgeMethod{socket: socket}
}

// Name returns the strategy name "bridge".
func (b *BridgeMethod) Name() string {
	return BridgeName
}

// Attempt performs the request/ack exchange with the daemon. Dial, write
// and read all honor ctx deadlines; a daemon-reported failure or a
// channel-level error is the method's failure.
func (b *BridgeMethod) Attempt(ctx context.Context, text string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if b.socket == "" {
		return cliptypes.ErrMethodUnavailable
	}

	conn, err := b.dialer.DialContext(ctx, "unix", b.socket)
	if err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return fmt.Errorf("%w: bridge dial: %v", cliptypes.ErrMethodUnavailable, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	req := bridgeRequest{ID: uuid.NewString(), Text: text}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return fmt.Errorf("%w: bridge send: %v", cliptypes.ErrMethodFailed, err)
	}

	var ack bridgeAck
	if err := json.NewDecoder(conn).Decode(&ack); err != nil {
		if cerr := checkContext(ctx); cerr != nil {
			return cerr
		}
		return fmt.Errorf("%w: bridge ack: %v", cliptypes.ErrMethodFailed, err)
	}

	if !ack.Success {
		reason := ack.Error
		if reason == "" {
			reason = "bridge rejected write"
		}
		return fmt.Errorf("%w: %s", cliptypes.ErrMethodFailed, reason)
	}

	return nil
}

var _ cliptypes.Method = (*BridgeMethod)(nil)
