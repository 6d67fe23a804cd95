// ABOUTME: Appearance state model shared by the oracle, presenter and CLI.
// ABOUTME: Maps the OS dark-mode flag to Light/Dark and renders the status label.

package main

// AppearanceState is the OS appearance mode as last observed.
type AppearanceState int

const (
	// Unknown means the query failed, distinct from a successful Light/Dark read.
	Unknown AppearanceState = iota
	Light
	Dark
)

func appearanceFromFlag(dark bool) AppearanceState {
	if dark {
		return Dark
	}
	return Light
}

func (s AppearanceState) String() string {
	switch s {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "Unknown"
	}
}

// Label is the text shown in the status row of the menu.
func (s AppearanceState) Label() string {
	return "Theme: " + s.String()
}

// Known reports whether the state came from a successful query.
func (s AppearanceState) Known() bool {
	return s == Light || s == Dark
}
