package blockmodel

import "strings"

// Category is the texture namespace a resolved reference falls into
// (spec §4.C "Reference resolution").
type Category string

const (
	CategoryBlock  Category = "block"
	CategoryEntity Category = "entity"
	CategoryItem   Category = "item"
)

// TextureRef is an external texture reference resolved from a model's
// texture map: an opaque (category, name) identifier the atlas
// component can load (spec §4.C "Resolution returns an opaque
// identifier").
type TextureRef struct {
	Key      string // the texture map key this came from, e.g. "all"
	Path     string // the path after alias-chasing and namespace stripping
	Category Category
	Name     string // category-stripped name; may contain "/" for entity paths
}

// ParseTextureRef categorizes an already alias-resolved texture path
// (spec §4.C):
//
//	block/NAME  -> category block,  name NAME
//	entity/PATH -> category entity, name PATH (may contain "/")
//	item/NAME   -> category item,   name NAME
//	anything else -> try block first
//
// A leading "minecraft:" namespace is stripped first.
func ParseTextureRef(key, path string) TextureRef {
	p := strings.TrimPrefix(path, "minecraft:")

	switch {
	case strings.HasPrefix(p, "block/"):
		return TextureRef{Key: key, Path: p, Category: CategoryBlock, Name: strings.TrimPrefix(p, "block/")}
	case strings.HasPrefix(p, "entity/"):
		return TextureRef{Key: key, Path: p, Category: CategoryEntity, Name: strings.TrimPrefix(p, "entity/")}
	case strings.HasPrefix(p, "item/"):
		return TextureRef{Key: key, Path: p, Category: CategoryItem, Name: strings.TrimPrefix(p, "item/")}
	default:
		return TextureRef{Key: key, Path: p, Category: CategoryBlock, Name: p}
	}
}

// TextureRefs returns the model's external texture references in
// first-appearance order (the order their keys were seen in the
// source JSON texture map), skipping every key whose value is an
// alias ("#..."); aliases are not chased here, since a chain that
// resolves ends at a path that another key of the same map lists. This
// ordered list, not a map iteration, is what the atlas component must
// pack tiles from (spec §9 "Determinism under texture map iteration
// order").
func (m *Model) TextureRefs() []TextureRef {
	refs := make([]TextureRef, 0, m.Textures.Len())
	for _, key := range m.Textures.Keys() {
		val, ok := m.Textures.Get(key)
		if !ok || strings.HasPrefix(val, "#") {
			// An alias, resolved or not; its target path (if any) is
			// listed under its own key.
			continue
		}
		refs = append(refs, ParseTextureRef(key, val))
	}
	return refs
}
