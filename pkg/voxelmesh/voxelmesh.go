// Package voxelmesh turns an opaque-pixel raster into a rigid cuboid
// mesh, one unit cube per opaque pixel (spec §4.B "Voxel Mesh
// Builder"). The per-face quad layout is the same fixed-table
// technique the teacher uses in
// internal/graphics/renderables/items/mesh.go and
// internal/meshing/custom_model.go, generalized from an integer block
// grid to the spec's continuous, pixel-sized cube layout.
package voxelmesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/mesh"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
)

// CoordSystem selects the output convention (spec §4.B "Coordinate
// system").
type CoordSystem int

const (
	// CoordZUp emits geometry unmodified in Z-up and additionally
	// attaches a +90 degree root rotation about X so Y-up consumers see
	// an upright model.
	CoordZUp CoordSystem = iota
	// CoordYUp emits geometry as-is with no root rotation.
	CoordYUp
)

// ErrEmptyMesh is returned when the pixel grid has no opaque pixels
// (spec §4.B "Error conditions").
var ErrEmptyMesh = errors.New("voxelmesh: empty mesh (no opaque pixels)")

// Options configures a Build call.
type Options struct {
	Scale       float32
	CoordSystem CoordSystem
}

// DefaultOptions matches spec §4.B's worked example: scale 1, Z-up.
func DefaultOptions() Options {
	return Options{Scale: 1, CoordSystem: CoordZUp}
}

// RootRotation returns the glTF node-level quaternion (x, y, z, w) the
// emitter should attach for the given coordinate-system policy: the
// +90 degree rotation about X for Z-up (spec §4.B: quaternion
// (sqrt(2)/2, 0, 0, sqrt(2)/2)), or the identity (absent) for Y-up.
func RootRotation(cs CoordSystem) (quat [4]float32, present bool) {
	if cs != CoordZUp {
		return [4]float32{}, false
	}
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})
	return [4]float32{q.V.X(), q.V.Y(), q.V.Z(), q.W}, true
}

// Build converts every opaque pixel in grid into a unit cube (spec
// §4.B). p = scale / max(w, h) is each pixel's edge length; the
// extrusion (third) axis has thickness p/2, and the whole slab is
// centered at the origin.
func Build(grid pixelsource.Grid, opts Options) (*mesh.Mesh, error) {
	w, h := grid.Width, grid.Height
	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	if maxDim == 0 {
		return nil, ErrEmptyMesh
	}
	p := opts.Scale / float32(maxDim)

	m := mesh.New()
	any := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !grid.Opaque(x, y) {
				continue
			}
			any = true
			addVoxel(m, grid, x, y, p)
		}
	}
	if !any {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

// addVoxel appends the six quads for the box representing pixel (x,
// y), per spec §4.B's pixel->box and UV-per-face rules.
func addVoxel(m *mesh.Mesh, grid pixelsource.Grid, x, y int, p float32) {
	w, h := float32(grid.Width), float32(grid.Height)
	fx, fy := float32(x), float32(y)

	// Horizontal extent.
	x0 := fx*p - w*p/2
	x1 := (fx+1)*p - w*p/2
	// Vertical extent, Y flipped so texture-top maps to +Y.
	y0 := (h-fy-1)*p - h*p/2
	y1 := (h-fy)*p - h*p/2
	// Extrusion axis.
	z0 := -p / 4
	z1 := p / 4

	// Pixel's own UV rectangle (GLB convention: V=0 at top).
	u0 := fx / w
	u1 := (fx + 1) / w
	v0 := fy / h
	v1 := (fy + 1) / h

	pixelUV := [4]mesh.Vec2{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	corner := func(cx, cy, cz float32) mesh.Vec3 { return mesh.Vec3{cx, cy, cz} }

	// Front (+Z / south) and back (-Z / north) get the pixel's UV rect
	// directly; the four side faces reuse the same one-pixel rectangle
	// (edge extrusion of the same color), per spec §4.B.
	m.AddQuad(
		corner(x0, y0, z1), corner(x1, y0, z1), corner(x1, y1, z1), corner(x0, y1, z1),
		mesh.Vec3{0, 0, 1},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
	m.AddQuad(
		corner(x1, y0, z0), corner(x0, y0, z0), corner(x0, y1, z0), corner(x1, y1, z0),
		mesh.Vec3{0, 0, -1},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
	m.AddQuad(
		corner(x1, y0, z1), corner(x1, y0, z0), corner(x1, y1, z0), corner(x1, y1, z1),
		mesh.Vec3{1, 0, 0},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
	m.AddQuad(
		corner(x0, y0, z0), corner(x0, y0, z1), corner(x0, y1, z1), corner(x0, y1, z0),
		mesh.Vec3{-1, 0, 0},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
	m.AddQuad(
		corner(x0, y1, z1), corner(x1, y1, z1), corner(x1, y1, z0), corner(x0, y1, z0),
		mesh.Vec3{0, 1, 0},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
	m.AddQuad(
		corner(x0, y0, z0), corner(x1, y0, z0), corner(x1, y0, z1), corner(x0, y0, z1),
		mesh.Vec3{0, -1, 0},
		pixelUV[0], pixelUV[1], pixelUV[2], pixelUV[3],
	)
}
