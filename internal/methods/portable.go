package methods

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"clipwrite/pkg/cliptypes"
)

// PortableMethod writes through the pure-Go portable clipboard library.
// It covers hosts where the native library is unusable but a platform
// clipboard still exists.
type PortableMethod struct{}

// NewPortableMethod creates the portable clipboard strategy.
func NewPortableMethod() *PortableMethod {
	return &PortableMethod{}
}

// Name returns the strategy name "portable".
func (p *PortableMethod) Name() string {
	return PortableName
}

// Attempt writes text with clipboard.WriteAll. The library flags
// unsupported hosts during init, which maps to ErrMethodUnavailable.
func (p *PortableMethod) Attempt(ctx context.Context, text string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if clipboard.Unsupported {
		return cliptypes.ErrMethodUnavailable
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", cliptypes.ErrMethodFailed, err)
	}

	return nil
}

var _ cliptypes.Method = (*PortableMethod)(nil)
