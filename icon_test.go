// ABOUTME: Tests for the generated menu bar glyphs.
// ABOUTME: Checks PNG validity, size and the shape of each glyph at sample points.

package main

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeIcon(t *testing.T, state AppearanceState) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(iconFor(state)))
	require.NoError(t, err)
	return img
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a >> 8
}

func TestIconsAreValidPNGs(t *testing.T) {
	for _, state := range []AppearanceState{Light, Dark, Unknown} {
		img := decodeIcon(t, state)
		assert.Equal(t, image.Rect(0, 0, iconSize, iconSize), img.Bounds(), state.String())
	}
}

func TestIconsDifferPerState(t *testing.T) {
	assert.NotEqual(t, iconFor(Light), iconFor(Dark))
	assert.NotEqual(t, iconFor(Light), iconFor(Unknown))
	assert.NotEqual(t, iconFor(Dark), iconFor(Unknown))
}

func TestIconUnknownStateFallsBack(t *testing.T) {
	assert.Equal(t, iconFor(Unknown), iconFor(AppearanceState(7)))
}

func TestSunGlyphShape(t *testing.T) {
	img := decodeIcon(t, Light)
	c := iconSize / 2

	assert.Greater(t, alphaAt(img, c, c), uint32(200), "disc should be filled")
	assert.Less(t, alphaAt(img, 1, 1), uint32(50), "corner should be empty")
}

func TestMoonGlyphShape(t *testing.T) {
	img := decodeIcon(t, Dark)

	// Left edge of the disc stays, the bite on the upper right is cut out.
	assert.Greater(t, alphaAt(img, iconSize*22/100, iconSize/2), uint32(200))
	assert.Less(t, alphaAt(img, iconSize*68/100, iconSize*36/100), uint32(50))
}

func TestNeutralGlyphShape(t *testing.T) {
	img := decodeIcon(t, Unknown)
	c := iconSize / 2

	assert.Greater(t, alphaAt(img, c-8, c), uint32(200), "left half is filled")
	assert.Less(t, alphaAt(img, c+8, c), uint32(50), "right half is hollow")
}

func TestRenderGlyphSize(t *testing.T) {
	for _, size := range []int{22, iconSize} {
		for _, state := range []AppearanceState{Light, Dark, Unknown} {
			img := renderGlyph(state, size)
			assert.Equal(t, image.Rect(0, 0, size, size), img.Bounds(), "%s at %d", state, size)
		}
	}

	// Corners stay transparent after filtering.
	img := renderGlyph(Light, iconSize)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}
