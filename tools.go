// ABOUTME: Pins development tools in go.mod.
// ABOUTME: Never built into the agent binary.

//go:build tools

package main

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
