//go:build linux

package methods

import "fmt"

// nativeAvailable indicates if the native clipboard library is available
// on this platform
const nativeAvailable = false

// initNative returns an error indicating the native clipboard is not available
func initNative() error {
	return fmt.Errorf("native clipboard not available on this platform (Linux without X11)")
}

// writeNative returns an error indicating the native clipboard is not available
func writeNative(_ string) error {
	return fmt.Errorf("native clipboard not available on this platform (Linux without X11)")
}
