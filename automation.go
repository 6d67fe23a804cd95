// ABOUTME: OS automation bridge that reads and flips the system dark-mode flag.
// ABOUTME: Shells out to osascript against System Events and captures stderr for diagnostics.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	defaultOSAScriptPath = "/usr/bin/osascript"

	readDarkModeScript = `tell application "System Events" to tell appearance preferences to get dark mode`
	flipDarkModeScript = `tell application "System Events" to tell appearance preferences to set dark mode to not dark mode`
)

// Automation is the pair of OS calls the agent depends on.
type Automation interface {
	ReadAppearanceFlag(ctx context.Context) (bool, error)
	FlipAppearanceFlag(ctx context.Context) error
}

// AutomationError describes a failed automation call. Stderr holds the raw
// error output of the child process, if any was captured.
type AutomationError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *AutomationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AutomationError) Unwrap() error {
	return e.Err
}

var errUnexpectedOutput = errors.New("unexpected output")

// runFunc executes a command and returns its stdout and stderr.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// OSAScript implements Automation with AppleScript run through osascript.
type OSAScript struct {
	Path    string
	Timeout time.Duration // zero means no timeout

	run runFunc
}

// NewOSAScript returns an automation bridge using the osascript binary at path.
func NewOSAScript(path string, timeout time.Duration) *OSAScript {
	if path == "" {
		path = defaultOSAScriptPath
	}
	return &OSAScript{Path: path, Timeout: timeout, run: execRun}
}

// ReadAppearanceFlag reports whether dark mode is on.
func (o *OSAScript) ReadAppearanceFlag(ctx context.Context) (bool, error) {
	out, err := o.script(ctx, "read dark mode", readDarkModeScript)
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(string(out)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, &AutomationError{
			Op:  "read dark mode",
			Err: fmt.Errorf("%w: %q", errUnexpectedOutput, strings.TrimSpace(string(out))),
		}
	}
}

// FlipAppearanceFlag inverts the dark mode flag.
func (o *OSAScript) FlipAppearanceFlag(ctx context.Context) error {
	_, err := o.script(ctx, "flip dark mode", flipDarkModeScript)
	return err
}

func (o *OSAScript) script(ctx context.Context, op, source string) ([]byte, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	run := o.run
	if run == nil {
		run = execRun
	}

	stdout, stderr, err := run(ctx, o.Path, "-e", source)
	if err != nil {
		return nil, &AutomationError{
			Op:     op,
			Stderr: strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return stdout, nil
}
