package cliptypes

import "time"

// Level identifies the severity of a logger event emitted by the
// coordinator: one success event per completed write, warnings for
// recovered per-method failures, errors for terminal failures.
type Level string

// Logger levels reported to the optional logger collaborator.
const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Logger is the optional side-effecting sink for write lifecycle events.
// It is invoked synchronously and never awaited; implementations are
// best-effort and must not block.
type Logger func(level Level, message string, data map[string]any)

// Callback receives the final Result of a write exactly once. It is
// dispatched asynchronously so it never runs inside the caller's stack.
type Callback func(Result)

// DefaultTimeout is the per-method attempt budget when Options.Timeout
// is unset.
const DefaultTimeout = 5 * time.Second

// DefaultSuccessMessage is the human-readable success text, overridable
// per call. Failure text comes from the error taxonomy sentinels.
const DefaultSuccessMessage = "text copied to clipboard"

// Options configures a single clipboard write. The zero value is valid:
// default timeout, no logger, no callback, bridge promotion enabled
// unless DemoteBridge is set.
type Options struct {
	// Identifier is an opaque correlation token echoed verbatim in the
	// Result for tracing multiple in-flight calls.
	Identifier string

	// Timeout bounds each individual method attempt, not the whole call.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives success/warning/error events. Nil disables logging.
	Logger Logger

	// SuccessMessage and ErrorMessage override the default human-readable
	// text carried in the Result.
	SuccessMessage string
	ErrorMessage   string

	// Callback, when non-nil, is invoked exactly once with a value equal
	// to the returned Result.
	Callback Callback

	// DemoteBridge disables promotion of the privileged bridge method.
	// By default, when a bridge socket is detected the bridge runs
	// immediately after the native method; with DemoteBridge it always
	// runs last.
	DemoteBridge bool

	// BridgeSocket overrides the bridge daemon socket path. Empty means
	// the CLIPWRITE_BRIDGE_SOCKET environment variable, then the
	// platform default.
	BridgeSocket string
}

// EffectiveTimeout returns the per-method timeout, applying the default.
func (o Options) EffectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// Result is the normalized outcome of a clipboard write. Exactly one of
// (Success=true with Method set) or (Success=false with Error set)
// holds; Cancelled is set only when cancellation caused the failure.
type Result struct {
	Success    bool   `json:"success" yaml:"success"`
	Method     string `json:"method,omitempty" yaml:"method,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Cancelled  bool   `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
}
