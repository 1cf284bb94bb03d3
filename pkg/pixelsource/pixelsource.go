// Package pixelsource exposes RGBA pixel grids and the opaque bounding
// box computation the voxel mesh builder needs (spec §4.A). Decoding
// an actual PNG file is an external collaborator's job; this package
// only understands raw pixel bytes.
package pixelsource

import "fmt"

// OpaqueAlphaThreshold is the alpha value at or above which a pixel is
// considered opaque (spec §3: "alpha >= 128").
const OpaqueAlphaThreshold = 128

// Grid is a row-major RGBA pixel buffer, 4 bytes per pixel, origin
// top-left.
type Grid struct {
	Width  int
	Height int
	Pixels []byte // len == Width*Height*4
}

// NewGrid validates and wraps a raw RGBA buffer.
func NewGrid(width, height int, pixels []byte) (Grid, error) {
	want := width * height * 4
	if len(pixels) != want {
		return Grid{}, fmt.Errorf("pixelsource: invalid buffer: got %d bytes, want %d (%dx%d RGBA)", len(pixels), want, width, height)
	}
	return Grid{Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the RGBA quad for pixel (x, y). Coordinates are not
// checked against Width and Height; it panics only when (x, y) maps to
// a byte offset outside Pixels, the same programming-error contract
// spec §4.B assigns to pixel-byte corruption.
func (px Grid) At(x, y int) (r, g, b, a byte) {
	i := (y*px.Width + x) * 4
	return px.Pixels[i], px.Pixels[i+1], px.Pixels[i+2], px.Pixels[i+3]
}

// Opaque reports whether pixel (x, y) meets the opacity threshold.
func (px Grid) Opaque(x, y int) bool {
	i := (y*px.Width + x) * 4
	return px.Pixels[i+3] >= OpaqueAlphaThreshold
}

// Bounds is the smallest axis-aligned rectangle enclosing every opaque
// pixel. Ok is false when the grid has no opaque pixels at all.
type Bounds struct {
	X, Y, W, H int
	Ok         bool
}

// ComputeBounds scans the grid once (O(w*h), spec §4.A) and returns
// the opaque bounding box.
func ComputeBounds(g Grid) Bounds {
	minX, minY := g.Width, g.Height
	maxX, maxY := -1, -1

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.Opaque(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return Bounds{Ok: false}
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1, Ok: true}
}

// Source yields pixel grids by identifier. Implementations (PNG decode
// from disk, from an embedded archive, ...) live outside this module.
type Source interface {
	Load(id string) (Grid, error)
}
