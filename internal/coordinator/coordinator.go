// Package coordinator owns the clipboard write flow: input validation,
// environment-ordered strategy selection, the per-method race against
// timeout and cancellation, and normalized result reporting.
package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"clipwrite/internal/env"
	"clipwrite/internal/logger"
	"clipwrite/pkg/cliptypes"
)

// Coordinator sequences clipboard write strategies until one succeeds.
// It is stateless across calls; concurrent calls are independent.
type Coordinator struct {
	// buildTable produces the ordered strategy list for one call.
	// Swapped out in tests for scripted method tables.
	buildTable func(cliptypes.Options) []cliptypes.Method
	logger     *log.Logger
}

// New creates a Coordinator using live environment detection.
func New() *Coordinator {
	return &Coordinator{
		buildTable: env.MethodTable,
		logger:     logger.NewStyledLogger("Coordinator"),
	}
}

// Name returns the service name "clipwrite" for registration.
func (c *Coordinator) Name() string {
	return "clipwrite"
}

// Initialize sets up the coordinator. No resources are held between
// calls, so this is a registration-time no-op.
func (c *Coordinator) Initialize() error {
	return nil
}

// defaultCoordinator backs the package-level Write form.
var defaultCoordinator = New()

// Write places text on the system clipboard using the default
// coordinator. Equivalent to calling the Coordinator method directly.
func Write(ctx context.Context, text string, opts cliptypes.Options) cliptypes.Result {
	return defaultCoordinator.Write(ctx, text, opts)
}

// Write tries each strategy in environment order until one succeeds,
// racing every attempt against the per-method timeout and ctx. All
// per-method errors are recovered and logged; the Result is the only
// failure channel. The logger runs synchronously before return, the
// completion callback asynchronously with an equal value.
func (c *Coordinator) Write(ctx context.Context, text string, opts cliptypes.Options) cliptypes.Result {
	if ctx == nil {
		ctx = context.Background()
	}

	// Already-aborted signals win over validation.
	if ctx.Err() != nil {
		return c.report(opts, cancelledResult(opts))
	}

	if text == "" {
		return c.report(opts, invalidResult(opts))
	}

	table := c.buildTable(opts)
	timeout := opts.EffectiveTimeout()

	for _, method := range table {
		if ctx.Err() != nil {
			return c.report(opts, cancelledResult(opts))
		}

		c.logger.Debug("Attempting clipboard method", "method", method.Name(), "timeout", timeout)
		err := c.attempt(ctx, method, text, timeout)
		if err == nil {
			// Cancellation observed after the attempt settled still
			// wins; no success is ever reported after cancellation.
			if ctx.Err() != nil {
				return c.report(opts, cancelledResult(opts))
			}
			return c.report(opts, successResult(method.Name(), opts))
		}

		if ctx.Err() != nil || cliptypes.IsCancellation(err) {
			return c.report(opts, cancelledResult(opts))
		}

		c.warn(opts, method.Name(), err)
	}

	return c.report(opts, exhaustedResult(opts))
}

// attempt races one method against its timeout and against ctx,
// whichever settles first. The timer is always stopped on settlement
// and the attempt context is always cancelled, so neither leaks.
func (c *Coordinator) attempt(ctx context.Context, method cliptypes.Method, text string, timeout time.Duration) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	settled := make(chan error, 1)
	go func() {
		settled <- method.Attempt(attemptCtx, text)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-settled:
		return err
	case <-timer.C:
		return cliptypes.ErrMethodTimeout
	case <-ctx.Done():
		return cliptypes.ErrCancelled
	}
}

// warn logs one recovered per-method failure with the method name and
// reason.
func (c *Coordinator) warn(opts cliptypes.Options, method string, err error) {
	message := "clipboard method failed"
	switch {
	case errors.Is(err, cliptypes.ErrMethodTimeout):
		message = "clipboard method timed out"
	case errors.Is(err, cliptypes.ErrMethodUnavailable):
		message = "clipboard method unavailable"
	}
	c.log(opts, cliptypes.LevelWarning, message, map[string]any{
		"method": method,
		"error":  err.Error(),
	})
}

// report is the single reporting point for every terminal outcome. The
// logger is invoked synchronously so callers can rely on ordering
// between log output and return; the callback is dispatched on its own
// goroutine so it never runs inside the caller's stack.
func (c *Coordinator) report(opts cliptypes.Options, result cliptypes.Result) cliptypes.Result {
	switch {
	case result.Success:
		c.log(opts, cliptypes.LevelSuccess, result.Message, map[string]any{
			"method":     result.Method,
			"identifier": result.Identifier,
		})
	default:
		c.log(opts, cliptypes.LevelError, result.Error, map[string]any{
			"identifier": result.Identifier,
			"cancelled":  result.Cancelled,
		})
	}

	if opts.Callback != nil {
		callback := opts.Callback
		delivered := result
		go callback(delivered)
	}

	return result
}

func (c *Coordinator) log(opts cliptypes.Options, level cliptypes.Level, message string, data map[string]any) {
	if opts.Logger == nil {
		return
	}
	opts.Logger(level, message, data)
}

func successResult(method string, opts cliptypes.Options) cliptypes.Result {
	message := opts.SuccessMessage
	if message == "" {
		message = cliptypes.DefaultSuccessMessage
	}
	return cliptypes.Result{
		Success:    true,
		Method:     method,
		Message:    message,
		Identifier: opts.Identifier,
	}
}

func exhaustedResult(opts cliptypes.Options) cliptypes.Result {
	message := opts.ErrorMessage
	if message == "" {
		message = cliptypes.ErrAllMethodsFailed.Error()
	}
	return cliptypes.Result{
		Error:      message,
		Identifier: opts.Identifier,
	}
}

// invalidResult carries a fixed message: caller overrides apply only to
// strategy exhaustion, not to rejected input.
func invalidResult(opts cliptypes.Options) cliptypes.Result {
	return cliptypes.Result{
		Error:      cliptypes.ErrInvalidInput.Error(),
		Identifier: opts.Identifier,
	}
}

func cancelledResult(opts cliptypes.Options) cliptypes.Result {
	return cliptypes.Result{
		Error:      cliptypes.ErrCancelled.Error(),
		Identifier: opts.Identifier,
		Cancelled:  true,
	}
}
