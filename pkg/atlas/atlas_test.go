package atlas

import (
	"testing"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

type fakeSource map[string]pixelsource.Grid

func (f fakeSource) Load(id string) (pixelsource.Grid, error) {
	g, ok := f[id]
	if !ok {
		return pixelsource.Grid{}, errNotFound(id)
	}
	return g, nil
}

type errNotFound string

func (e errNotFound) Error() string { return "no such texture: " + string(e) }

func solidGrid(n int, r, g, b, a byte) pixelsource.Grid {
	px := make([]byte, n*n*4)
	for i := 0; i < n*n; i++ {
		px[i*4], px[i*4+1], px[i*4+2], px[i*4+3] = r, g, b, a
	}
	grid, _ := pixelsource.NewGrid(n, n, px)
	return grid
}

func ref(key, path string) blockmodel.TextureRef {
	return blockmodel.ParseTextureRef(key, path)
}

func TestZeroTexturesYieldsPlaceholder(t *testing.T) {
	var w warn.List
	a := Build(nil, fakeSource{}, &w)
	if a.TileSize != 16 {
		t.Errorf("TileSize = %d, want 16", a.TileSize)
	}
	if a.Image.Bounds().Dx() != 16 || a.Image.Bounds().Dy() != 16 {
		t.Fatalf("placeholder image size = %v, want 16x16", a.Image.Bounds())
	}
	r, g, b, al := a.Image.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 255 || al>>8 != 255 {
		t.Errorf("placeholder pixel = (%d,%d,%d,%d), want opaque magenta", r>>8, g>>8, b>>8, al>>8)
	}
	u, v := a.Remap("block/anything", 0.25, 0.75)
	if u != 0.25 || v != 0.75 {
		t.Errorf("Remap with no textures = (%f,%f), want identity (0.25,0.75)", u, v)
	}
}

func TestSingleTexturePassesThrough(t *testing.T) {
	src := fakeSource{"block/stone": solidGrid(16, 128, 128, 128, 255)}
	refs := []blockmodel.TextureRef{ref("all", "block/stone")}
	var w warn.List
	a := Build(refs, src, &w)
	if a.TileSize != 16 {
		t.Errorf("TileSize = %d, want 16", a.TileSize)
	}
	if a.Image.Bounds().Dx() != 16 {
		t.Errorf("atlas width = %d, want 16 (native size, no remap)", a.Image.Bounds().Dx())
	}
	u, v := a.Remap("block/stone", 0.5, 0.5)
	if u != 0.5 || v != 0.5 {
		t.Errorf("Remap single-texture = (%f,%f), want identity", u, v)
	}
}

// Scenario 5 — atlas of two 16x16 textures.
func TestTwoTextureAtlasScenario5(t *testing.T) {
	src := fakeSource{
		"block/a": solidGrid(16, 255, 0, 0, 255),
		"block/b": solidGrid(16, 0, 255, 0, 255),
	}
	refs := []blockmodel.TextureRef{ref("a", "block/a"), ref("b", "block/b")}
	var w warn.List
	a := Build(refs, src, &w)

	if a.Image.Bounds().Dx() != 32 || a.Image.Bounds().Dy() != 32 {
		t.Fatalf("atlas size = %v, want 32x32", a.Image.Bounds())
	}

	u1, v1 := a.Remap("block/b", 0, 0)
	u2, v2 := a.Remap("block/b", 1, 1)
	if u1 != 0.5 || v1 != 0 || u2 != 1.0 || v2 != 0.5 {
		t.Errorf("remap(block/b, (0,0)-(1,1)) = (%f,%f)-(%f,%f), want (0.5,0.0)-(1.0,0.5)", u1, v1, u2, v2)
	}

	u0, v0 := a.Remap("block/a", 0, 0)
	if u0 != 0 || v0 != 0 {
		t.Errorf("remap(block/a, 0,0) = (%f,%f), want (0,0) (tile 0 at origin)", u0, v0)
	}
}

func TestMissingTextureFallsBackToFirstLoaded(t *testing.T) {
	src := fakeSource{
		"block/a": solidGrid(16, 255, 0, 0, 255),
		"block/b": solidGrid(16, 0, 255, 0, 255),
	}
	refs := []blockmodel.TextureRef{ref("a", "block/a"), ref("b", "block/b")}
	var w warn.List
	a := Build(refs, src, &w)

	u, v := a.Remap("block/does_not_exist", 0, 0)
	wantU, wantV := a.Remap("block/a", 0, 0)
	if u != wantU || v != wantV {
		t.Errorf("fallback remap = (%f,%f), want same as first loaded texture (%f,%f)", u, v, wantU, wantV)
	}
	found := false
	for _, warning := range w {
		if warning.Kind == warn.MissingTexture {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MissingTexture warning, got %v", w)
	}
}

func TestNonUniformSourcesResizeToLargestAndPowerOfTwo(t *testing.T) {
	src := fakeSource{
		"block/big":   solidGrid(32, 1, 2, 3, 255),
		"block/small": solidGrid(16, 4, 5, 6, 255),
		"block/other": solidGrid(16, 7, 8, 9, 255),
	}
	refs := []blockmodel.TextureRef{
		ref("a", "block/big"), ref("b", "block/small"), ref("c", "block/other"),
	}
	var w warn.List
	a := Build(refs, src, &w)
	if a.TileSize != 32 {
		t.Errorf("TileSize = %d, want 32 (max source width)", a.TileSize)
	}
	// n = ceil(sqrt(3)) = 2, raw = 2*32 = 64, already a power of two.
	if a.Image.Bounds().Dx() != 64 || a.Image.Bounds().Dy() != 64 {
		t.Errorf("atlas size = %v, want 64x64", a.Image.Bounds())
	}
}
