package methods

import (
	"context"
	"fmt"

	"clipwrite/pkg/cliptypes"
)

// NativeMethod writes through the host's native clipboard library.
// Platform support is decided at build time; see native_supported.go
// and native_linux.go.
type NativeMethod struct{}

// NewNativeMethod creates the native clipboard strategy.
func NewNativeMethod() *NativeMethod {
	return &NativeMethod{}
}

// Name returns the strategy name "native".
func (n *NativeMethod) Name() string {
	return NativeName
}

// Attempt writes text via the native clipboard primitive. Fails with
// ErrMethodUnavailable when the primitive is absent on this platform or
// its initialization fails.
func (n *NativeMethod) Attempt(ctx context.Context, text string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if !nativeAvailable {
		return cliptypes.ErrMethodUnavailable
	}

	// Initialization is required by the library and may fail at runtime
	// even on supported platforms (e.g. no display server).
	if err := initNative(); err != nil {
		return fmt.Errorf("%w: %v", cliptypes.ErrMethodUnavailable, err)
	}

	if err := writeNative(text); err != nil {
		return fmt.Errorf("%w: %v", cliptypes.ErrMethodFailed, err)
	}

	return nil
}

// Supported reports whether the native clipboard primitive exists on
// this platform at all.
func (n *NativeMethod) Supported() bool {
	return nativeAvailable
}

var _ cliptypes.Method = (*NativeMethod)(nil)
