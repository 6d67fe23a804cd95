// ABOUTME: Permission recovery flow shown when the OS denies the automation call.
// ABOUTME: Elevates app visibility, explains the problem and links to the privacy pane.

package main

import (
	"context"

	"github.com/pkg/browser"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"
)

const (
	defaultSettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_Automation"

	permissionTitle   = "Permission Required"
	permissionMessage = "Theme Toggle needs permission to control System Events to switch between light and dark mode.\n\n" +
		"Open System Settings > Privacy & Security > Automation and allow Theme Toggle to control System Events, " +
		"then choose Toggle Theme again.\n\n" +
		"Open Automation settings now?"
)

// ActivationPolicy switches the process between a background agent with no
// Dock or app switcher presence and a regular, focusable app.
type ActivationPolicy interface {
	Accessory()
	Regular()
}

// PermissionPrompt shows the blocking modal and reports whether the user
// chose to open the settings pane.
type PermissionPrompt interface {
	AskOpenSettings(title, message string) bool
}

// URLOpener opens an external resource. The result is fire-and-forget apart
// from the launch error.
type URLOpener interface {
	OpenURL(url string) error
}

// Recovery runs the permission recovery flow. It never retries the toggle.
type Recovery struct {
	policy      ActivationPolicy
	prompt      PermissionPrompt
	opener      URLOpener
	settingsURL string
	logger      *zap.Logger
}

// NewRecovery wires the recovery flow.
func NewRecovery(policy ActivationPolicy, prompt PermissionPrompt, opener URLOpener, settingsURL string, logger *zap.Logger) *Recovery {
	if settingsURL == "" {
		settingsURL = defaultSettingsURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recovery{
		policy:      policy,
		prompt:      prompt,
		opener:      opener,
		settingsURL: settingsURL,
		logger:      logger,
	}
}

// Run blocks until the modal is dismissed.
func (r *Recovery) Run(ctx context.Context) {
	r.policy.Regular()
	defer r.policy.Accessory()

	if ctx.Err() != nil {
		return
	}

	if !r.prompt.AskOpenSettings(permissionTitle, permissionMessage) {
		r.logger.Info("permission dialog dismissed")
		return
	}

	r.logger.Info("opening automation settings", zap.String("url", r.settingsURL))
	if err := r.opener.OpenURL(r.settingsURL); err != nil {
		r.logger.Error("failed to open automation settings", zap.Error(err))
	}
}

// nativePrompt shows the modal through the platform dialog API.
type nativePrompt struct{}

func (nativePrompt) AskOpenSettings(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

// browserOpener hands URLs to the OS default handler.
type browserOpener struct{}

func (browserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}
