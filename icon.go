// ABOUTME: Menu bar glyphs for each appearance state (sun, moon, neutral).
// ABOUTME: Rasterized once as template PNGs so macOS tints them for the menu bar.

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const (
	iconSize   = 44 // 22pt at 2x
	iconSupers = 4  // supersampling factor before downscaling
)

var (
	iconOnce  sync.Once
	iconCache map[AppearanceState][]byte
)

// iconFor returns the PNG glyph for state. Unknown gets the neutral glyph.
func iconFor(state AppearanceState) []byte {
	iconOnce.Do(func() {
		iconCache = make(map[AppearanceState][]byte, 3)
		for _, s := range []AppearanceState{Light, Dark, Unknown} {
			data, err := encodeIcon(renderGlyph(s, iconSize))
			if err != nil {
				// Encoding an in-memory RGBA image cannot fail short of OOM.
				panic(fmt.Sprintf("encode %s icon: %v", s, err))
			}
			iconCache[s] = data
		}
	})
	if data, ok := iconCache[state]; ok {
		return data
	}
	return iconCache[Unknown]
}

// renderGlyph draws the glyph for state at iconSupers times the target size
// and filters it down to size x size pixels.
func renderGlyph(state AppearanceState, size int) image.Image {
	big := size * iconSupers
	var mask *image.Alpha
	switch state {
	case Light:
		mask = sunMask(big)
	case Dark:
		mask = moonMask(big)
	default:
		mask = neutralMask(big)
	}

	full := image.NewRGBA(image.Rect(0, 0, big, big))
	xdraw.DrawMask(full, full.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, xdraw.Over)

	glyph := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(glyph, glyph.Bounds(), full, full.Bounds(), xdraw.Src, nil)
	return glyph
}

func encodeIcon(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("PNG encode: %w", err)
	}
	return buf.Bytes(), nil
}

func sunMask(size int) *image.Alpha {
	s := float32(size)
	c := s / 2
	r := vector.NewRasterizer(size, size)
	addCircle(r, c, c, s*0.22)

	// Eight rays as thin quads around the disc.
	inner, outer, half := s*0.32, s*0.46, s*0.035
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		dx, dy := float32(math.Cos(a)), float32(math.Sin(a))
		px, py := -dy*half, dx*half
		r.MoveTo(c+dx*inner+px, c+dy*inner+py)
		r.LineTo(c+dx*outer+px, c+dy*outer+py)
		r.LineTo(c+dx*outer-px, c+dy*outer-py)
		r.LineTo(c+dx*inner-px, c+dy*inner-py)
		r.ClosePath()
	}
	return rasterize(r, size)
}

func moonMask(size int) *image.Alpha {
	s := float32(size)
	disc := vector.NewRasterizer(size, size)
	addCircle(disc, s*0.5, s*0.5, s*0.38)
	bite := vector.NewRasterizer(size, size)
	addCircle(bite, s*0.68, s*0.36, s*0.32)
	return subtractMask(rasterize(disc, size), rasterize(bite, size))
}

// neutralMask is a ring with its left half filled.
func neutralMask(size int) *image.Alpha {
	s := float32(size)
	c := s / 2
	outer := vector.NewRasterizer(size, size)
	addCircle(outer, c, c, s*0.40)
	inner := vector.NewRasterizer(size, size)
	addCircle(inner, c, c, s*0.32)
	ring := subtractMask(rasterize(outer, size), rasterize(inner, size))

	half := vector.NewRasterizer(size, size)
	addCircle(half, c, c, s*0.32)
	halfMask := rasterize(half, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= size/2 {
				continue
			}
			i := ring.PixOffset(x, y)
			if a := halfMask.Pix[i]; a > ring.Pix[i] {
				ring.Pix[i] = a
			}
		}
	}
	return ring
}

func rasterize(r *vector.Rasterizer, size int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// subtractMask returns a with b cut out of it.
func subtractMask(a, b *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Bounds())
	for i := range a.Pix {
		out.Pix[i] = uint8(uint32(a.Pix[i]) * (255 - uint32(b.Pix[i])) / 255)
	}
	return out
}

// addCircle appends a closed circle built from four cubic Bézier arcs.
func addCircle(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = 0.5522847498
	kr := radius * k
	r.MoveTo(cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.ClosePath()
}
