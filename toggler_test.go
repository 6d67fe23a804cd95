// ABOUTME: Tests for toggle error classification.
// ABOUTME: Permission denial is detected from the raw stderr marker only.

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSuccess(t *testing.T) {
	auto := &fakeAutomation{dark: false}

	require.NoError(t, NewToggler(auto).Toggle(context.Background()))
	assert.True(t, auto.dark)
}

func TestToggleTwiceRestoresFlag(t *testing.T) {
	auto := &fakeAutomation{dark: true}
	toggler := NewToggler(auto)

	require.NoError(t, toggler.Toggle(context.Background()))
	require.NoError(t, toggler.Toggle(context.Background()))
	assert.True(t, auto.dark)
}

func TestToggleErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ToggleErrorKind
	}{
		{
			name: "not authorized",
			err:  notAuthorized,
			want: TogglePermissionDenied,
		},
		{
			name: "lowercase marker",
			err:  &AutomationError{Op: "flip", Stderr: "error: not authorized to send apple events", Err: errors.New("exit status 1")},
			want: TogglePermissionDenied,
		},
		{
			name: "other osascript failure",
			err:  &AutomationError{Op: "flip", Stderr: "syntax error: Expected end of line (-2741)", Err: errors.New("exit status 1")},
			want: ToggleExecutionFailed,
		},
		{
			name: "launch failure without stderr",
			err:  &AutomationError{Op: "flip", Err: errors.New("fork/exec: no such file or directory")},
			want: ToggleExecutionFailed,
		},
		{
			name: "marker outside stderr is ignored",
			err:  errors.New("not authorized"),
			want: ToggleExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auto := &fakeAutomation{flipErr: tt.err}

			err := NewToggler(auto).Toggle(context.Background())

			var terr *ToggleError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.want, terr.Kind)
			assert.Equal(t, tt.want == TogglePermissionDenied, IsPermissionDenied(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestIsPermissionDeniedNil(t *testing.T) {
	assert.False(t, IsPermissionDenied(nil))
}
