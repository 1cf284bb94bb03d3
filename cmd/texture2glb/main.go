// Command texture2glb turns one texture-pack asset — a flat item
// texture or a JSON block/entity model — into a binary glTF (.glb)
// file. It is the thin glue binary over pkg/voxelgen: flag parsing,
// filesystem wiring, warning logging, one call chain, no framework,
// the same shape as the teacher's cmd/mini-mc and cmd/triangle.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/pixelsource"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/voxelgen"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

func main() {
	assetsRoot := flag.String("assets", ".", "root directory containing textures/ and models/")
	item := flag.String("item", "", "item texture reference to voxel-extrude, e.g. item/diamond")
	model := flag.String("model", "", "block/entity model to assemble, e.g. block/furnace")
	out := flag.String("out", "out.glb", "output .glb path")
	yUp := flag.Bool("y-up", false, "emit geometry for a Y-up consumer (default Z-up with a root rotation)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "texture2glb: logger setup failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if (*item == "") == (*model == "") {
		logger.Fatal("exactly one of -item or -model is required")
	}
	voxelgen.SetCoordZUp(!*yUp)

	src := fsPixelSource{root: filepath.Join(*assetsRoot, "textures")}
	var w warn.List

	var data []byte
	if *item != "" {
		data, err = voxelgen.BuildItem(src, *item, &w)
	} else {
		loader := blockmodel.NewLoader(*assetsRoot)
		data, err = voxelgen.BuildModel(loader, src, *model, &w)
	}
	logWarnings(logger, w)
	if err != nil {
		logger.Fatal("build failed", zap.Error(err))
	}

	if err := os.WriteFile(*out, data, 0644); err != nil {
		logger.Fatal("writing output", zap.String("path", *out), zap.Error(err))
	}
	logger.Info("wrote GLB", zap.String("path", *out), zap.Int("bytes", len(data)))
}

func logWarnings(logger *zap.Logger, w warn.List) {
	for _, warning := range w {
		logger.Warn(warning.Message,
			zap.String("stage", warning.Stage),
			zap.String("kind", string(warning.Kind)))
	}
}

// fsPixelSource decodes texture references as PNG files under root,
// e.g. "item/diamond" -> "<root>/item/diamond.png". This is the
// external PNG-decoding collaborator pkg/pixelsource's doc comment
// leaves to the caller.
type fsPixelSource struct {
	root string
}

func (s fsPixelSource) Load(id string) (pixelsource.Grid, error) {
	path := filepath.Join(s.root, id+".png")
	f, err := os.Open(path)
	if err != nil {
		return pixelsource.Grid{}, fmt.Errorf("fsPixelSource: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return pixelsource.Grid{}, fmt.Errorf("fsPixelSource: decoding %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}
	return pixelsource.NewGrid(w, h, pixels)
}
