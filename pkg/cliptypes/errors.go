package cliptypes

import "errors"

// Error taxonomy for clipboard writes. InvalidInput and Cancelled are
// fatal for the call; the Method* classes are recovered locally by
// advancing to the next method; AllMethodsFailed is surfaced to the
// caller through the Result, never as a returned error.
var (
	ErrInvalidInput      = errors.New("invalid input: text must be a non-empty string")
	ErrCancelled         = errors.New("clipboard write cancelled")
	ErrMethodUnavailable = errors.New("clipboard method unavailable on this host")
	ErrMethodTimeout     = errors.New("clipboard method timed out")
	ErrMethodFailed      = errors.New("clipboard method failed")
	ErrAllMethodsFailed  = errors.New("all clipboard methods failed")
)

// IsCancellation reports whether err represents cooperative cancellation
// rather than a method-level failure.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled)
}
