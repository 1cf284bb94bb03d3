package voxelgen

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

type fakeSource map[string]pixelsource.Grid

func (f fakeSource) Load(id string) (pixelsource.Grid, error) {
	g, ok := f[id]
	if !ok {
		return pixelsource.Grid{}, os.ErrNotExist
	}
	return g, nil
}

func solidGrid(n int) pixelsource.Grid {
	px := make([]byte, n*n*4)
	for i := 0; i < n*n; i++ {
		px[i*4], px[i*4+1], px[i*4+2], px[i*4+3] = 200, 50, 50, 255
	}
	g, _ := pixelsource.NewGrid(n, n, px)
	return g
}

func isGLB(out []byte) bool {
	return len(out) >= 12 && string(out[0:4]) == "glTF" && binary.LittleEndian.Uint32(out[4:8]) == 2
}

func TestBuildItemProducesValidGLB(t *testing.T) {
	src := fakeSource{"item/gem": solidGrid(16)}
	var w warn.List
	out, err := BuildItem(src, "item/gem", &w)
	if err != nil {
		t.Fatalf("BuildItem: %v", err)
	}
	if !isGLB(out) {
		t.Errorf("BuildItem output does not look like a GLB")
	}
}

func TestBuildItemOnEmptyTextureFails(t *testing.T) {
	px := make([]byte, 2*2*4) // all-transparent
	g, _ := pixelsource.NewGrid(2, 2, px)
	src := fakeSource{"item/invisible": g}
	var w warn.List
	_, err := BuildItem(src, "item/invisible", &w)
	if err == nil {
		t.Errorf("expected an error for a fully transparent texture, got nil")
	}
}

func TestBuildModelProducesValidGLB(t *testing.T) {
	dir := t.TempDir()
	modelsDir := filepath.Join(dir, "models", "block")
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		t.Fatal(err)
	}
	const modelJSON = `{
		"textures": { "all": "block/stone" },
		"elements": [ { "from": [0,0,0], "to": [16,16,16], "faces": {
			"north": { "texture": "#all" }, "south": { "texture": "#all" },
			"east": { "texture": "#all" }, "west": { "texture": "#all" },
			"up": { "texture": "#all" }, "down": { "texture": "#all" }
		} } ]
	}`
	if err := os.WriteFile(filepath.Join(modelsDir, "cube.json"), []byte(modelJSON), 0644); err != nil {
		t.Fatal(err)
	}

	loader := blockmodel.NewLoader(dir)
	src := fakeSource{"block/stone": solidGrid(16)}
	var w warn.List
	out, err := BuildModel(loader, src, "block/cube", &w)
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if !isGLB(out) {
		t.Errorf("BuildModel output does not look like a GLB")
	}
}

func TestSettingsClampAndPersist(t *testing.T) {
	defer func() {
		SetElementScale(1.0 / 16.0)
		SetItemScale(1)
		SetAtlasMinTile(16)
		SetCoordZUp(true)
	}()

	SetElementScale(-5)
	if GetElementScale() <= 0 {
		t.Errorf("SetElementScale(-5) should clamp to a positive floor, got %v", GetElementScale())
	}

	SetAtlasMinTile(0)
	if GetAtlasMinTile() != 1 {
		t.Errorf("SetAtlasMinTile(0) = %d, want clamped to 1", GetAtlasMinTile())
	}

	SetCoordZUp(false)
	if GetCoordZUp() {
		t.Errorf("SetCoordZUp(false) did not persist")
	}
}
