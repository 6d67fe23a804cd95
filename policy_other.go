// ABOUTME: Activation policy stub for non-macOS platforms.
// ABOUTME: Tray apps there have no Dock presence to hide.

//go:build !darwin

package main

type noopPolicy struct{}

func newActivationPolicy() ActivationPolicy {
	return noopPolicy{}
}

func (noopPolicy) Accessory() {}

func (noopPolicy) Regular() {}
