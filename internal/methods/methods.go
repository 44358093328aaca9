// Package methods implements the concrete clipboard write strategies.
// Each strategy satisfies cliptypes.Method and is selected and ordered
// per call by the env package.
package methods

import (
	"context"
	"errors"

	"clipwrite/pkg/cliptypes"
)

// Strategy names as they appear in cliptypes.Result.Method.
const (
	NativeName   = "native"
	PortableName = "portable"
	CommandName  = "command"
	OSC52Name    = "osc52"
	BridgeName   = "bridge"
)

// checkContext returns the taxonomy error for an already-expired context,
// or nil when the context is still live.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return contextError(ctx)
	default:
		return nil
	}
}

// contextError maps context expiry to the error taxonomy: deadline expiry
// is a per-method timeout, everything else is cooperative cancellation.
func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return cliptypes.ErrMethodTimeout
	}
	return cliptypes.ErrCancelled
}
