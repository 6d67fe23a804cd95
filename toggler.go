// ABOUTME: Appearance toggler that flips the OS dark-mode flag.
// ABOUTME: Classifies failures into permission denial and plain execution errors.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// permissionDeniedMarker is what osascript prints when the process lacks
// Automation permission for System Events. It only matches English output.
const permissionDeniedMarker = "not authorized"

// ToggleErrorKind tells the presenter how to react to a failed toggle.
type ToggleErrorKind int

const (
	ToggleExecutionFailed ToggleErrorKind = iota
	TogglePermissionDenied
)

func (k ToggleErrorKind) String() string {
	if k == TogglePermissionDenied {
		return "permission denied"
	}
	return "execution failed"
}

// ToggleError is returned by Toggler.Toggle.
type ToggleError struct {
	Kind ToggleErrorKind
	Err  error
}

func (e *ToggleError) Error() string {
	return fmt.Sprintf("toggle appearance: %s: %v", e.Kind, e.Err)
}

func (e *ToggleError) Unwrap() error {
	return e.Err
}

// IsPermissionDenied reports whether err is a toggle failure caused by missing
// Automation permission.
func IsPermissionDenied(err error) bool {
	var terr *ToggleError
	return errors.As(err, &terr) && terr.Kind == TogglePermissionDenied
}

// Toggler flips the system appearance. It never touches the UI.
type Toggler struct {
	automation Automation
}

// NewToggler creates a toggler backed by the given automation bridge.
func NewToggler(automation Automation) *Toggler {
	return &Toggler{automation: automation}
}

// Toggle inverts the appearance flag. A non-nil error is always a *ToggleError.
func (t *Toggler) Toggle(ctx context.Context) error {
	err := t.automation.FlipAppearanceFlag(ctx)
	if err == nil {
		return nil
	}
	return &ToggleError{Kind: classifyToggleFailure(err), Err: err}
}

func classifyToggleFailure(err error) ToggleErrorKind {
	var aerr *AutomationError
	if errors.As(err, &aerr) && strings.Contains(strings.ToLower(aerr.Stderr), permissionDeniedMarker) {
		return TogglePermissionDenied
	}
	return ToggleExecutionFailed
}
