// Package voxelgen wires the pipeline components (pixelsource,
// voxelmesh, blockmodel, cuboidmesh, atlas, glb) into the two
// batch entry points spec.md §5 item 1 describes: building a single
// item's voxel-extruded GLB, and building a single block/entity
// model's cuboid-assembled GLB. Pipeline-wide defaults live behind a
// mutex-guarded settings struct, the same pattern the teacher's
// internal/config package uses for render settings.
package voxelgen

import "sync"

// Settings holds the pipeline-wide defaults that BuildItem and
// BuildModel read on every call; neither function takes per-call
// options.
type Settings struct {
	mu            sync.RWMutex
	elementScale  float32
	itemScale     float32
	atlasMinTile  int
	coordZUp      bool
}

var global = &Settings{
	elementScale: 1.0 / 16.0,
	itemScale:    1,
	atlasMinTile: 16,
	coordZUp:     true,
}

// GetElementScale returns the default cuboid-element scale factor
// (spec §4.D: model-space units, conventionally 0..16, scaled to world
// units — 1/16 maps that range onto a one-unit cube).
func GetElementScale() float32 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.elementScale
}

// SetElementScale sets the default cuboid-element scale factor;
// non-positive values are clamped to a small positive floor so a
// misconfigured caller never collapses every model to a point.
func SetElementScale(scale float32) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if scale <= 0 {
		scale = 1e-6
	}
	global.elementScale = scale
}

// GetItemScale returns the default voxel-extrusion model scale (spec
// §4.B: the whole extruded slab spans this many world units across its
// longest pixel dimension).
func GetItemScale() float32 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.itemScale
}

// SetItemScale sets the default voxel-extrusion model scale; clamped
// the same way as SetElementScale.
func SetItemScale(scale float32) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if scale <= 0 {
		scale = 1e-6
	}
	global.itemScale = scale
}

// GetAtlasMinTile returns the minimum atlas tile size (spec §4.E:
// "T = max(source_widths, 16)").
func GetAtlasMinTile() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.atlasMinTile
}

// SetAtlasMinTile sets the minimum atlas tile size; clamped to at
// least 1 so the atlas builder never divides by a zero tile.
func SetAtlasMinTile(tile int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if tile < 1 {
		tile = 1
	}
	global.atlasMinTile = tile
}

// GetCoordZUp returns whether new Build calls default to the Z-up
// coordinate policy (spec §4.B "Coordinate system").
func GetCoordZUp() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.coordZUp
}

// SetCoordZUp sets the default coordinate policy.
func SetCoordZUp(zUp bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.coordZUp = zUp
}
