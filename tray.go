// ABOUTME: System tray icon and menu for the theme toggle agent.
// ABOUTME: Provides the status row, Toggle Theme and Quit, backed by fyne.io/systray.

package main

import (
	"fyne.io/systray"
)

// Tray is the systray-backed StatusItem. Menu items are created once in
// Build and only the status row title changes afterwards.
type Tray struct {
	status *systray.MenuItem
	toggle *systray.MenuItem
	quit   *systray.MenuItem
}

// Build creates the menu. Must be called from the systray ready callback.
func (t *Tray) Build() {
	systray.SetTemplateIcon(iconFor(Unknown), iconFor(Unknown))
	systray.SetTooltip("Theme Toggle")

	t.status = systray.AddMenuItem(Unknown.Label(), "Current system appearance")
	t.status.Disable()
	systray.AddSeparator()
	t.toggle = systray.AddMenuItem("Toggle Theme", "Switch between light and dark mode")
	systray.AddSeparator()
	t.quit = systray.AddMenuItem("Quit", "Quit Theme Toggle")
}

// Controls exposes the menu clicks to the presenter loop.
func (t *Tray) Controls(external <-chan struct{}) Controls {
	return Controls{
		Toggle:   t.toggle.ClickedCh,
		Quit:     t.quit.ClickedCh,
		External: external,
	}
}

// Render shows state in the icon, tooltip and status row.
func (t *Tray) Render(state AppearanceState) {
	icon := iconFor(state)
	systray.SetTemplateIcon(icon, icon)
	systray.SetTooltip(state.Label())
	t.status.SetTitle(state.Label())
}

// Quit tears down the status item and ends systray.Run.
func (t *Tray) Quit() {
	systray.Quit()
}
