package blockmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/warn"
)

const maxAliasDepth = 10

// Loader reads and merges JSON model documents from an assets
// directory, the same on-disk layout (models/<name>.json) the teacher
// uses in pkg/blockmodel/loader.go.
type Loader struct {
	assetsPath string
	modelCache map[string]*Model
}

// NewLoader returns a Loader rooted at assetsPath.
func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		modelCache: make(map[string]*Model),
	}
}

// LoadModel parses name's model JSON, merges a single parent if
// referenced, and resolves texture aliases (spec §4.C). Fatal errors
// (unreadable/unparseable JSON for the requested model itself) are
// returned as the error value; everything else degrades with a
// warning appended to w.
func (l *Loader) LoadModel(name string, w *warn.List) (*Model, error) {
	if !strings.Contains(name, "/") {
		name = "block/" + name
	}
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}

	data, err := os.ReadFile(l.modelPath(name))
	if err != nil {
		return nil, fmt.Errorf("blockmodel: could not read model %q: %w", name, err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("blockmodel: could not parse model %q: %w", name, err)
	}
	model.Name = name

	if model.Parent != "" {
		parent, perr := l.loadParent(model.Parent, w)
		if perr != nil {
			// Missing/unreadable parent is a warning, not fatal (spec §4.C/§7):
			// proceed as if the parent were empty.
			w.Add("blockmodel", warn.MissingParent, "model %q: parent %q unavailable: %v", name, model.Parent, perr)
			parent = &Model{Textures: NewTextureMap()}
		}
		mergeParent(&model, parent)
	}

	l.resolveFaceTextures(&model, w)
	l.modelCache[name] = &model
	return &model, nil
}

// LoadItemModel loads an item model (spec §6: item/<name> models live
// alongside block models under the same models/ tree).
func (l *Loader) LoadItemModel(name string, w *warn.List) (*Model, error) {
	if !strings.Contains(name, "/") {
		name = "item/" + name
	}
	return l.LoadModel(name, w)
}

func (l *Loader) modelPath(name string) string {
	return filepath.Join(l.assetsPath, "models", name+".json")
}

// loadParent resolves a parent model reference. Parent lookup searches
// the model directory by bare name and by name with a leading
// "block/" stripped (spec §4.C). A parent is merged with its own
// parent but its face textures are left unresolved, so each child
// resolves the inherited "#key" aliases against its own texture map.
// It is cached under its name in that unresolved form.
func (l *Loader) loadParent(parentName string, w *warn.List) (*Model, error) {
	if model, ok := l.modelCache[parentName]; ok {
		return model, nil
	}

	candidates := []string{parentName}
	if !strings.Contains(parentName, "/") {
		candidates = append(candidates, "block/"+parentName)
	} else if stripped := strings.TrimPrefix(parentName, "block/"); stripped != parentName {
		candidates = append(candidates, stripped)
	}

	var lastErr error
	for _, candidate := range candidates {
		var model Model
		data, err := os.ReadFile(l.modelPath(candidate))
		if err == nil {
			err = json.Unmarshal(data, &model)
		}
		if err != nil {
			lastErr = fmt.Errorf("blockmodel: could not load parent model %q: %w", candidate, err)
			continue
		}
		model.Name = candidate
		if model.Parent != "" {
			grand, perr := l.loadParent(model.Parent, w)
			if perr != nil {
				w.Add("blockmodel", warn.MissingParent, "model %q: parent %q unavailable: %v", candidate, model.Parent, perr)
				grand = &Model{Textures: NewTextureMap()}
			}
			mergeParent(&model, grand)
		}
		l.modelCache[candidate] = &model
		return &model, nil
	}
	return nil, lastErr
}

// mergeParent inherits elements and textures from parent into model
// wherever model doesn't define its own (spec §4.C: "A model inherits
// elements from its parent if it does not define its own. Texture maps
// merge with child values overriding parent."). AmbientOcclusion is
// not inherited: model keeps its own value.
func mergeParent(model, parent *Model) {
	if len(model.Elements) == 0 {
		model.Elements = make([]Element, len(parent.Elements))
		for i, pe := range parent.Elements {
			ne := pe
			ne.Faces = make(map[FaceName]Face, len(pe.Faces))
			for dir, face := range pe.Faces {
				ne.Faces[dir] = face
			}
			model.Elements[i] = ne
		}
	}

	merged := NewTextureMap()
	for _, key := range parent.Textures.Keys() {
		val, _ := parent.Textures.Get(key)
		merged.Set(key, val)
	}
	for _, key := range model.Textures.Keys() {
		val, _ := model.Textures.Get(key)
		merged.Set(key, val)
	}
	model.Textures = merged
}

// resolveFaceTextures chases each face's texture through #alias
// indirection (depth-capped at 10) and rewrites it to the resolved
// path in place (spec §4.C/§9). A face whose reference does not resolve
// is dropped with a warning.
func (l *Loader) resolveFaceTextures(m *Model, w *warn.List) {
	for i := range m.Elements {
		for dir, face := range m.Elements[i].Faces {
			if !isCanonicalFace(dir) {
				// JSON accepts any string as a map key; a mistyped or
				// non-canonical face name is never geometry, just noise
				// (spec §7 "unknown face name (skipped)").
				w.Add("blockmodel", warn.UnknownFace, "model %q element %d: unknown face name %q", m.Name, i, dir)
				delete(m.Elements[i].Faces, dir)
				continue
			}
			if face.Texture == "" {
				// Face present but texture omitted entirely: drop with a
				// warning (spec §9 Open Question 2).
				w.Add("blockmodel", warn.MissingFaceTex, "model %q element %d face %q: no texture reference", m.Name, i, dir)
				delete(m.Elements[i].Faces, dir)
				continue
			}
			resolved, ok := l.ResolveTexture(face.Texture, m, w)
			if !ok {
				w.Add("blockmodel", warn.DanglingTexture, "model %q element %d face %q: texture %q did not resolve", m.Name, i, dir, face.Texture)
				delete(m.Elements[i].Faces, dir)
				continue
			}
			face.Texture = resolved
			m.Elements[i].Faces[dir] = face
		}
	}
}

// isCanonicalFace reports whether dir is one of the six face names the
// spec recognizes.
func isCanonicalFace(dir FaceName) bool {
	switch dir {
	case FaceNorth, FaceSouth, FaceEast, FaceWest, FaceUp, FaceDown:
		return true
	default:
		return false
	}
}

// ResolveTexture chases an alias chain (values beginning with "#") up
// to maxAliasDepth hops. Exceeding the depth, or a broken chain link,
// resolves to ("", false): the caller treats the texture as missing
// (spec §4.C/§9, §7 "alias chain exceeding depth 10 -> resolve to
// None, treat as missing").
func (l *Loader) ResolveTexture(textureName string, m *Model, w *warn.List) (string, bool) {
	seen := textureName
	for depth := 0; strings.HasPrefix(seen, "#"); depth++ {
		if depth >= maxAliasDepth {
			w.Add("blockmodel", warn.AliasDepthLimit, "model %q: alias chain for %q exceeded depth %d", m.Name, textureName, maxAliasDepth)
			return "", false
		}
		key := strings.TrimPrefix(seen, "#")
		val, ok := m.Textures.Get(key)
		if !ok {
			return "", false
		}
		seen = val
	}
	return seen, true
}
