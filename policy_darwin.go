// ABOUTME: macOS activation policy switching between accessory and regular modes.
// ABOUTME: Changes are dispatched onto the Cocoa main queue.

//go:build darwin

package main

import (
	"github.com/progrium/darwinkit/dispatch"
	"github.com/progrium/darwinkit/macos/appkit"
)

type appKitPolicy struct{}

func newActivationPolicy() ActivationPolicy {
	return appKitPolicy{}
}

// Accessory hides the Dock icon and app switcher entry.
func (appKitPolicy) Accessory() {
	dispatch.MainQueue().DispatchAsync(func() {
		app := appkit.Application_SharedApplication()
		app.SetActivationPolicy(appkit.ApplicationActivationPolicyAccessory)
	})
}

// Regular makes the app focusable so the modal can come to the front.
func (appKitPolicy) Regular() {
	dispatch.MainQueue().DispatchAsync(func() {
		app := appkit.Application_SharedApplication()
		app.SetActivationPolicy(appkit.ApplicationActivationPolicyRegular)
		app.ActivateIgnoringOtherApps(true)
	})
}
