// Package blockmodel parses the JSON model schema (spec §3 "Model",
// §6 "Input: JSON model schema"), merges a single parent, and resolves
// texture aliases and references. It is a direct generalization of the
// teacher's pkg/blockmodel: the same Model/Element/Face/Rotation
// shapes, widened to the spec's texture-reference categorization and
// ordered texture map.
package blockmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Axis is one of the three rotation axes (spec §3 "Cuboid Element").
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// FaceName is one of the six fixed face-map keys (spec §3 "Face").
type FaceName string

const (
	FaceNorth FaceName = "north"
	FaceSouth FaceName = "south"
	FaceEast  FaceName = "east"
	FaceWest  FaceName = "west"
	FaceUp    FaceName = "up"
	FaceDown  FaceName = "down"
)

// Rotation rotates an element's corners (and face normals) about an
// origin and axis by a number of degrees (spec §3/§4.D).
type Rotation struct {
	Origin [3]float32 `json:"origin"`
	Axis   Axis        `json:"axis"`
	Angle  float32    `json:"angle"`
}

// Face is one named side of an Element (spec §3 "Face").
type Face struct {
	Texture  string      `json:"texture"`
	UV       *[4]float32 `json:"uv,omitempty"`
	Rotation int         `json:"rotation"`
	CullFace string      `json:"cullface,omitempty"`
}

// Element is one cuboid inside a Model (spec §3 "Cuboid Element").
type Element struct {
	From     [3]float32        `json:"from"`
	To       [3]float32        `json:"to"`
	Rotation *Rotation         `json:"rotation,omitempty"`
	Faces    map[FaceName]Face `json:"faces"`
}

// Model is a full parsed/merged JSON model document (spec §3 "Model").
type Model struct {
	Name             string
	Parent           string     `json:"parent,omitempty"`
	AmbientOcclusion bool       `json:"ambientocclusion"`
	Textures         TextureMap `json:"textures"`
	Elements         []Element  `json:"elements"`
}

// rawModel mirrors the wire schema; ambientocclusion defaults to true
// per spec §3 ("ambient_occlusion: bool=true") and is only "false" if
// explicitly set, so it is decoded as a pointer first.
type rawModel struct {
	Parent           string     `json:"parent"`
	AmbientOcclusion *bool      `json:"ambientocclusion"`
	Textures         TextureMap `json:"textures"`
	Elements         []Element  `json:"elements"`
}

// UnmarshalJSON decodes the wire schema and applies the
// ambient_occlusion default.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw rawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Parent = raw.Parent
	m.Textures = raw.Textures
	m.Elements = raw.Elements
	m.AmbientOcclusion = raw.AmbientOcclusion == nil || *raw.AmbientOcclusion
	return nil
}

// MarshalJSON re-emits the wire schema, mainly so tests can round-trip
// hand-built Models through the same codec used for files on disk.
func (m Model) MarshalJSON() ([]byte, error) {
	ao := m.AmbientOcclusion
	return json.Marshal(rawModel{
		Parent:           m.Parent,
		AmbientOcclusion: &ao,
		Textures:         m.Textures,
		Elements:         m.Elements,
	})
}

// TextureMap is the model's texture-key -> value map, decoded so that
// key order reflects first appearance in the source JSON object. Plain
// map[string]string loses this order, but spec §9 ("Determinism under
// texture map iteration order") requires atlas placement to follow the
// order references first appear in, not an unordered container's
// iteration order.
type TextureMap struct {
	keys   []string
	values map[string]string
}

// NewTextureMap builds an empty, ready-to-use TextureMap.
func NewTextureMap() TextureMap {
	return TextureMap{values: make(map[string]string)}
}

// Get looks up a texture key.
func (t TextureMap) Get(key string) (string, bool) {
	if t.values == nil {
		return "", false
	}
	v, ok := t.values[key]
	return v, ok
}

// Keys returns texture keys in first-appearance order.
func (t TextureMap) Keys() []string {
	return t.keys
}

// Set inserts or overwrites a key, preserving first-appearance order
// for new keys and leaving existing order untouched for overrides
// (this is how child-over-parent texture merging in Loader works).
func (t *TextureMap) Set(key, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Len reports the number of distinct keys.
func (t TextureMap) Len() int { return len(t.keys) }

// UnmarshalJSON decodes a JSON object token-by-token so key order is
// preserved, following the same "write a custom UnmarshalJSON for an
// order/shape-sensitive field" technique the teacher uses for
// BlockStateVariants.
func (t *TextureMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = NewTextureMap()
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("blockmodel: decoding textures: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("blockmodel: textures must be a JSON object")
	}
	out := NewTextureMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("blockmodel: decoding texture key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("blockmodel: texture key must be a string")
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("blockmodel: decoding texture value for %q: %w", key, err)
		}
		out.Set(key, val)
	}
	*t = out
	return nil
}

// MarshalJSON re-emits the map as a JSON object in first-appearance
// order, so round-tripping a Model stays deterministic.
func (t TextureMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
