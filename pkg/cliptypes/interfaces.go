// Package cliptypes defines the shared types for clipwrite.
// This file contains the fundamental interfaces that define the system's
// structure: clipboard write strategies and service registration.
package cliptypes

import "context"

// Method is one concrete way to place text on the clipboard in a given
// host environment. Attempt must check ctx before doing work and must
// map ctx expiry during its own wait onto the error taxonomy, never a
// generic failure: cancellation as ErrCancelled, deadline expiry as
// ErrMethodTimeout.
type Method interface {
	Name() string
	Attempt(ctx context.Context, text string) error
}

// Service defines the interface for clipwrite services.
// Services are initialized at startup and accessed by callers afterwards.
type Service interface {
	Name() string
	Initialize() error
}
