// Package atlas packs the per-model texture set into a single RGBA
// image and remaps per-face UVs into that image's space (spec §4.E
// "Texture Atlas"). The resize step generalizes the teacher's manual
// nearest-neighbor loop in
// internal/graphics/renderables/blocks/texture.go (InitTextureAtlas)
// into a call to the library the teacher's own go.mod already lists
// but never calls directly: golang.org/x/image/draw.
package atlas

import (
	"image"
	"image/color"
	"image/draw"

	ximgdraw "golang.org/x/image/draw"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

// PlaceholderColor fills the atlas when a model defines no textures at
// all (spec §4.E "Zero textures"; spec §9 open question 3: any
// visually distinctive color suffices).
var PlaceholderColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

const placeholderTileSize = 16

// Options configures atlas packing beyond the defaults (spec §4.E
// "Multiple textures": "T = max(source_widths, 16)" — MinTileSize
// generalizes that literal 16 into a caller-settable floor).
type Options struct {
	MinTileSize int
}

// DefaultOptions matches spec §4.E's literal minimum tile size.
func DefaultOptions() Options {
	return Options{MinTileSize: 16}
}

type tile struct {
	x, y int
}

// Atlas is the packed texture image plus the per-texture-path tile
// bookkeeping needed to remap a face's UV into atlas space.
type Atlas struct {
	Image    *image.RGBA
	TileSize int

	tiles        map[string]tile
	firstLoaded  string
	hasTextures  bool
	warnings     *warn.List
}

// Build resolves and packs every texture ref's pixel source into one
// atlas (spec §4.E, all three cases). refs must already be in
// first-appearance order (blockmodel.Model.TextureRefs supplies this).
// A texture that fails to load is skipped with a warning; it is as if
// it were never referenced.
func Build(refs []blockmodel.TextureRef, src pixelsource.Source, w *warn.List) *Atlas {
	return BuildWithOptions(refs, src, w, DefaultOptions())
}

// BuildWithOptions is Build with caller control over packing
// parameters (spec §4.E); Build is the common case with the spec's
// literal defaults.
func BuildWithOptions(refs []blockmodel.TextureRef, src pixelsource.Source, w *warn.List, opts Options) *Atlas {
	type loaded struct {
		path string
		grid pixelsource.Grid
	}
	var textures []loaded
	seen := make(map[string]bool)
	for _, ref := range refs {
		if seen[ref.Path] {
			continue
		}
		seen[ref.Path] = true
		grid, err := src.Load(ref.Path)
		if err != nil {
			w.Add("atlas", warn.MissingTexture, "texture %q failed to load: %v", ref.Path, err)
			continue
		}
		textures = append(textures, loaded{ref.Path, grid})
	}

	a := &Atlas{tiles: make(map[string]tile), warnings: w}

	if len(textures) == 0 {
		a.Image = image.NewRGBA(image.Rect(0, 0, placeholderTileSize, placeholderTileSize))
		draw.Draw(a.Image, a.Image.Bounds(), &image.Uniform{C: PlaceholderColor}, image.Point{}, draw.Src)
		a.TileSize = placeholderTileSize
		return a
	}

	if len(textures) == 1 {
		t := textures[0]
		a.Image = rgbaFromGrid(t.grid)
		a.TileSize = t.grid.Width
		a.tiles[t.path] = tile{0, 0}
		a.firstLoaded = t.path
		a.hasTextures = true
		return a
	}

	tileSize := opts.MinTileSize
	if tileSize < 1 {
		tileSize = 16
	}
	for _, t := range textures {
		if t.grid.Width > tileSize {
			tileSize = t.grid.Width
		}
	}

	n := 1
	for n*n < len(textures) {
		n++
	}
	rawDim := n * tileSize
	dim := nextPow2(rawDim)

	a.Image = image.NewRGBA(image.Rect(0, 0, dim, dim))
	// fully transparent background (spec §4.E "Composite onto a fully
	// transparent background"); image.NewRGBA already zero-fills, which
	// is already (0,0,0,0).

	for i, t := range textures {
		src := rgbaFromGrid(t.grid)
		if t.grid.Width != tileSize || t.grid.Height != tileSize {
			resized := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
			ximgdraw.NearestNeighbor.Scale(resized, resized.Bounds(), src, src.Bounds(), ximgdraw.Src, nil)
			src = resized
		}
		gx, gy := i%n, i/n
		tx, ty := gx*tileSize, gy*tileSize
		dst := image.Rect(tx, ty, tx+tileSize, ty+tileSize)
		draw.Draw(a.Image, dst, src, image.Point{}, draw.Src)
		a.tiles[t.path] = tile{tx, ty}
	}
	a.TileSize = tileSize
	a.firstLoaded = textures[0].path
	a.hasTextures = true
	return a
}

// Remap applies spec §4.E's affine UV-remap formula for texturePath's
// tile. A path with no loaded tile falls back to the first loaded
// texture, with a warning (spec §4.E "Texture lookup fallback"); this
// is never fatal. With zero or one texture, (u, v) is returned
// unchanged (spec §4.E: the remap is "only applied when texture_count
// > 1"); with one texture an unknown path still records the fallback
// warning.
func (a *Atlas) Remap(texturePath string, u, v float32) (float32, float32) {
	if !a.hasTextures {
		return u, v
	}
	t, ok := a.tiles[texturePath]
	if !ok {
		a.warnings.Add("atlas", warn.MissingTexture, "face texture %q not found in atlas, falling back to %q", texturePath, a.firstLoaded)
		t = a.tiles[a.firstLoaded]
	}
	if len(a.tiles) == 1 {
		return u, v
	}
	w, h := float32(a.Image.Bounds().Dx()), float32(a.Image.Bounds().Dy())
	T := float32(a.TileSize)
	return (float32(t.x) + u*T) / w, (float32(t.y) + v*T) / h
}

func rgbaFromGrid(g pixelsource.Grid) *image.RGBA {
	return &image.RGBA{
		Pix:    g.Pixels,
		Stride: g.Width * 4,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
