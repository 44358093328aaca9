package methods

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"clipwrite/pkg/cliptypes"
)

// ttyDevice is the controlling terminal written to directly, bypassing
// any stdout buffering.
const ttyDevice = "/dev/tty"

// OSC52Method copies text by emitting an OSC 52 escape sequence straight
// to the controlling terminal. This works over SSH and inside terminal
// multiplexers where no local clipboard primitive is reachable.
type OSC52Method struct {
	openTTY func() (io.WriteCloser, error)
	term    string
}

// NewOSC52Method creates the terminal escape sequence strategy.
func NewOSC52Method() *OSC52Method {
	return &OSC52Method{
		openTTY: func() (io.WriteCloser, error) {
			return os.OpenFile(ttyDevice, os.O_WRONLY, 0)
		},
		term: os.Getenv("TERM"),
	}
}

// Name returns the strategy name "osc52".
func (o *OSC52Method) Name() string {
	return OSC52Name
}

// Attempt opens the controlling terminal, writes the escape sequence and
// closes the handle on every exit path. No controlling terminal maps to
// ErrMethodUnavailable.
func (o *OSC52Method) Attempt(ctx context.Context, text string) (err error) {
	if cerr := checkContext(ctx); cerr != nil {
		return cerr
	}

	tty, oerr := o.openTTY()
	if oerr != nil {
		return fmt.Errorf("%w: %v", cliptypes.ErrMethodUnavailable, oerr)
	}
	defer func() {
		if cerr := tty.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", cliptypes.ErrMethodFailed, cerr)
		}
	}()

	if _, werr := o.sequence(text).WriteTo(tty); werr != nil {
		return fmt.Errorf("%w: %v", cliptypes.ErrMethodFailed, werr)
	}

	return nil
}

// sequence builds the OSC 52 sequence, wrapping it for tmux or screen
// when the terminal reports one.
func (o *OSC52Method) sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case strings.Contains(o.term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(o.term, "screen"):
		seq = seq.Screen()
	}
	return seq
}

// TTYPresent reports whether a controlling terminal device exists. Pure
// existence check; it never blocks and never fails when the device is
// absent.
func TTYPresent() bool {
	_, err := os.Stat(ttyDevice)
	return err == nil
}

var _ cliptypes.Method = (*OSC52Method)(nil)
