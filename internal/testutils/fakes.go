// Package testutils provides scripted fakes for coordinator and method
// tests: fake write methods, a recording logger sink, and a completion
// callback capture.
package testutils

import (
	"context"
	"sync"
	"time"

	"clipwrite/pkg/cliptypes"
)

// FakeMethod is a scripted clipboard method. It fails with Err when set,
// sleeps for Delay (observing ctx) when set, and records every attempt.
type FakeMethod struct {
	MethodName string
	Err        error
	Delay      time.Duration

	mu       sync.Mutex
	attempts int
	lastText string
}

// NewFakeMethod creates a scripted method with the given name and
// outcome. A nil err means every attempt succeeds.
func NewFakeMethod(name string, err error) *FakeMethod {
	return &FakeMethod{MethodName: name, Err: err}
}

// NewHangingMethod creates a method that never settles on its own; it
// returns only when ctx expires, reporting cancellation.
func NewHangingMethod(name string) *FakeMethod {
	return &FakeMethod{MethodName: name, Delay: time.Hour, Err: cliptypes.ErrCancelled}
}

// Name returns the scripted method name.
func (f *FakeMethod) Name() string {
	return f.MethodName
}

// Attempt records the call and returns the scripted outcome.
func (f *FakeMethod) Attempt(ctx context.Context, text string) error {
	f.mu.Lock()
	f.attempts++
	f.lastText = text
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return cliptypes.ErrCancelled
		}
	}

	return f.Err
}

// Attempts returns how many times the method was attempted.
func (f *FakeMethod) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// LastText returns the text passed to the most recent attempt.
func (f *FakeMethod) LastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastText
}

// LogEvent is one recorded logger invocation.
type LogEvent struct {
	Level   cliptypes.Level
	Message string
	Data    map[string]any
}

// RecordingSink captures logger events for assertions.
type RecordingSink struct {
	mu     sync.Mutex
	events []LogEvent
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Logger returns the cliptypes.Logger that records into the sink.
func (r *RecordingSink) Logger() cliptypes.Logger {
	return func(level cliptypes.Level, message string, data map[string]any) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, LogEvent{Level: level, Message: message, Data: data})
	}
}

// Events returns a copy of all recorded events in order.
func (r *RecordingSink) Events() []LogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Levels returns the recorded event levels in order.
func (r *RecordingSink) Levels() []cliptypes.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	levels := make([]cliptypes.Level, 0, len(r.events))
	for _, e := range r.events {
		levels = append(levels, e.Level)
	}
	return levels
}

// CallbackCapture collects completion callback deliveries and lets tests
// wait for the asynchronous dispatch.
type CallbackCapture struct {
	mu      sync.Mutex
	results []cliptypes.Result
	ch      chan cliptypes.Result
}

// NewCallbackCapture creates a capture buffered for a single write call.
func NewCallbackCapture() *CallbackCapture {
	return &CallbackCapture{ch: make(chan cliptypes.Result, 8)}
}

// Callback returns the cliptypes.Callback that records deliveries.
func (c *CallbackCapture) Callback() cliptypes.Callback {
	return func(result cliptypes.Result) {
		c.mu.Lock()
		c.results = append(c.results, result)
		c.mu.Unlock()
		c.ch <- result
	}
}

// Wait blocks until one delivery arrives or the timeout elapses,
// reporting whether a delivery was seen.
func (c *CallbackCapture) Wait(timeout time.Duration) (cliptypes.Result, bool) {
	select {
	case result := <-c.ch:
		return result, true
	case <-time.After(timeout):
		return cliptypes.Result{}, false
	}
}

// Count returns how many deliveries were recorded.
func (c *CallbackCapture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}
