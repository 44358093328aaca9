//go:build !linux

package methods

import "golang.design/x/clipboard"

// nativeAvailable indicates if the native clipboard library is available
// on this platform
const nativeAvailable = true

// initNative initializes the native clipboard library
func initNative() error {
	return clipboard.Init()
}

// writeNative writes text to the system clipboard
func writeNative(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
