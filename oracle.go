// ABOUTME: Appearance oracle that queries the OS for the current light/dark state.
// ABOUTME: Encodes every failure as Unknown so callers never see an error.

package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Oracle answers "is the system in dark mode" on demand.
type Oracle struct {
	automation Automation
	logger     *zap.Logger
}

// NewOracle creates an oracle backed by the given automation bridge.
func NewOracle(automation Automation, logger *zap.Logger) *Oracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Oracle{automation: automation, logger: logger}
}

// Query reads the current appearance. Failures are logged and reported as Unknown.
func (o *Oracle) Query(ctx context.Context) AppearanceState {
	dark, err := o.automation.ReadAppearanceFlag(ctx)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var aerr *AutomationError
		if errors.As(err, &aerr) && aerr.Stderr != "" {
			fields = append(fields, zap.String("stderr", aerr.Stderr))
		}
		o.logger.Warn("appearance query failed", fields...)
		return Unknown
	}
	return appearanceFromFlag(dark)
}
