package voxelgen

import (
	"fmt"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/atlas"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/cuboidmesh"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/glb"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/voxelmesh"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

// BuildItem runs the full voxel-extrusion pipeline (spec §5 item 1,
// first bullet): load texturePath from src, extrude every opaque pixel
// into a cube, and emit a GLB with the texture embedded as the mesh's
// only image. Returns nil, ErrEmptyMesh-wrapped if the texture has no
// opaque pixels (spec §4.B, Scenario 2) — callers decide whether that
// is fatal for their batch.
func BuildItem(src pixelsource.Source, texturePath string, w *warn.List) ([]byte, error) {
	grid, err := src.Load(texturePath)
	if err != nil {
		return nil, fmt.Errorf("voxelgen: loading %q: %w", texturePath, err)
	}

	vmOpts := voxelmesh.DefaultOptions()
	vmOpts.Scale = GetItemScale()
	if !GetCoordZUp() {
		vmOpts.CoordSystem = voxelmesh.CoordYUp
	}
	m, err := voxelmesh.Build(grid, vmOpts)
	if err != nil {
		return nil, fmt.Errorf("voxelgen: building %q: %w", texturePath, err)
	}

	ref := blockmodel.ParseTextureRef("texture", texturePath)
	at := atlas.Build([]blockmodel.TextureRef{ref}, src, w)

	glbOpts := glb.DefaultOptions()
	glbOpts.Rotation, glbOpts.HasRotation = voxelmesh.RootRotation(vmOpts.CoordSystem)
	return glb.Encode(m, at, glbOpts)
}

// BuildModel runs the full cuboid-assembly pipeline (spec §5 item 1,
// second bullet): load and merge modelName through loader, pack every
// referenced texture into one atlas, assemble and UV-remap every
// element, and emit a GLB.
func BuildModel(loader *blockmodel.Loader, src pixelsource.Source, modelName string, w *warn.List) ([]byte, error) {
	model, err := loader.LoadModel(modelName, w)
	if err != nil {
		return nil, fmt.Errorf("voxelgen: loading model %q: %w", modelName, err)
	}

	at := atlas.BuildWithOptions(model.TextureRefs(), src, w, atlas.Options{MinTileSize: GetAtlasMinTile()})

	cmOpts := cuboidmesh.DefaultOptions()
	cmOpts.Scale = GetElementScale()
	m := cuboidmesh.Build(model.Elements, at, cmOpts)

	cs := voxelmesh.CoordZUp
	if !GetCoordZUp() {
		cs = voxelmesh.CoordYUp
	}
	glbOpts := glb.DefaultOptions()
	glbOpts.Rotation, glbOpts.HasRotation = voxelmesh.RootRotation(cs)
	return glb.Encode(m, at, glbOpts)
}
