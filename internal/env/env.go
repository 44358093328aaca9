// Package env inspects the host for clipboard write primitives and
// builds the ordered strategy table for one call. Facts are gathered
// fresh on every call; nothing is cached because the environment (in
// particular the bridge daemon socket) may change between calls.
package env

import (
	"github.com/atotto/clipboard"

	"clipwrite/internal/methods"
	"clipwrite/pkg/cliptypes"
)

// Facts is a snapshot of the host's clipboard capabilities.
type Facts struct {
	// NativeSupported is true when the native clipboard library exists
	// on this platform (build-time fact).
	NativeSupported bool

	// PortableSupported is true when the portable clipboard library
	// reports a usable host.
	PortableSupported bool

	// CommandTool is the first external copy tool found on PATH, empty
	// when none exists.
	CommandTool string

	// TTYPresent is true when a controlling terminal device exists.
	TTYPresent bool

	// BridgeSocket is the bridge daemon socket path when one is present
	// and addressable, empty otherwise.
	BridgeSocket string
}

// Detect gathers a fresh facts snapshot. Every probe is a non-blocking
// existence check; absence of a primitive is an ordinary fact, never an
// error.
func Detect(opts cliptypes.Options) Facts {
	facts := Facts{
		NativeSupported:   methods.NewNativeMethod().Supported(),
		PortableSupported: !clipboard.Unsupported,
		TTYPresent:        methods.TTYPresent(),
	}

	if tool, ok := methods.LookupToolName(); ok {
		facts.CommandTool = tool
	}

	if socket := methods.ResolveBridgeSocket(opts.BridgeSocket); methods.BridgeSocketPresent(socket) {
		facts.BridgeSocket = socket
	}

	return facts
}

// OrderMethods builds the ordered strategy table for one call. Pure
// function of the facts snapshot and options.
//
// Base order: native, portable, command, osc52, bridge last. When a
// bridge socket is present and promotion is enabled, the bridge runs
// immediately after native so sandboxed environments reach their
// privileged channel before the slower local fallbacks.
func OrderMethods(facts Facts, opts cliptypes.Options) []cliptypes.Method {
	bridge := cliptypes.Method(methods.NewBridgeMethod(facts.BridgeSocket))
	promoted := facts.BridgeSocket != "" && !opts.DemoteBridge

	ordered := make([]cliptypes.Method, 0, 5)
	ordered = append(ordered, methods.NewNativeMethod())
	if promoted {
		ordered = append(ordered, bridge)
	}
	ordered = append(ordered,
		methods.NewPortableMethod(),
		methods.NewCommandMethod(),
		methods.NewOSC52Method(),
	)
	if !promoted {
		ordered = append(ordered, bridge)
	}

	return ordered
}

// MethodTable is the one-step convenience: detect facts and order the
// strategies for a single call.
func MethodTable(opts cliptypes.Options) []cliptypes.Method {
	return OrderMethods(Detect(opts), opts)
}
