package methods

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"clipwrite/pkg/cliptypes"
)

// copyTool describes one external copy command and its calling
// conventions. Every tool accepts text on stdin; argText and fileArg
// mark the alternate conventions used for the single retry.
type copyTool struct {
	name    string
	args    []string
	argText bool // accepts the text itself as a trailing argument
	fileArg bool // accepts a file path as a trailing argument
}

// copyTools is probed in order; the first tool found on PATH is used.
var copyTools = []copyTool{
	{name: "pbcopy"},
	{name: "wl-copy", argText: true},
	{name: "xclip", args: []string{"-selection", "clipboard"}, fileArg: true},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "clip.exe"},
}

// runFunc executes an external command. Split out so tests can substitute
// a scripted runner.
type runFunc func(ctx context.Context, name string, args []string, stdin io.Reader) error

// lookPathFunc resolves a command on PATH. Split out for tests.
type lookPathFunc func(name string) (string, error)

func runCommand(ctx context.Context, name string, args []string, stdin io.Reader) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	return cmd.Run()
}

// CommandMethod drives an external copy tool (pbcopy, wl-copy, xclip,
// xsel, clip.exe). The first invocation pipes text over stdin; if that
// fails, the tool's alternate calling convention is retried exactly once
// before giving up.
type CommandMethod struct {
	run      runFunc
	lookPath lookPathFunc
}

// NewCommandMethod creates the external copy tool strategy.
func NewCommandMethod() *CommandMethod {
	return &CommandMethod{
		run:      runCommand,
		lookPath: exec.LookPath,
	}
}

// Name returns the strategy name "command".
func (c *CommandMethod) Name() string {
	return CommandName
}

// lookup returns the first copy tool present on PATH.
func (c *CommandMethod) lookup() (copyTool, bool) {
	for _, tool := range copyTools {
		if _, err := c.lookPath(tool.name); err == nil {
			return tool, true
		}
	}
	return copyTool{}, false
}

// LookupToolName reports the name of the first copy tool on PATH, for
// environment snapshots.
func LookupToolName() (string, bool) {
	tool, ok := NewCommandMethod().lookup()
	return tool.name, ok
}

// Attempt pipes text into the copy tool over stdin, retrying once with
// the tool's alternate calling convention when the first invocation
// fails.
func (c *CommandMethod) Attempt(ctx context.Context, text string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	tool, ok := c.lookup()
	if !ok {
		return cliptypes.ErrMethodUnavailable
	}

	err := c.run(ctx, tool.name, tool.args, strings.NewReader(text))
	if err == nil {
		return nil
	}
	if cerr := checkContext(ctx); cerr != nil {
		return cerr
	}

	if retryErr := c.retryAlternate(ctx, tool, text); retryErr == nil {
		return nil
	}
	if cerr := checkContext(ctx); cerr != nil {
		return cerr
	}

	return fmt.Errorf("%w: %s: %v", cliptypes.ErrMethodFailed, tool.name, err)
}

// retryAlternate invokes the tool once more using its alternate calling
// convention: the text as a trailing argument, or a temp file path. The
// temp file is removed on every exit path.
func (c *CommandMethod) retryAlternate(ctx context.Context, tool copyTool, text string) error {
	switch {
	case tool.argText:
		return c.run(ctx, tool.name, append(append([]string{}, tool.args...), text), nil)
	case tool.fileArg:
		return c.runViaFile(ctx, tool, text)
	default:
		return cliptypes.ErrMethodFailed
	}
}

func (c *CommandMethod) runViaFile(ctx context.Context, tool copyTool, text string) error {
	f, err := os.CreateTemp("", "clipwrite-*.txt")
	if err != nil {
		return err
	}
	path := f.Name()
	defer func() {
		_ = os.Remove(path)
	}()

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return c.run(ctx, tool.name, append(append([]string{}, tool.args...), path), nil)
}

var _ cliptypes.Method = (*CommandMethod)(nil)
