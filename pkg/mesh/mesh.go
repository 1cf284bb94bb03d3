// Package mesh holds the parallel-array mesh data model shared by the
// voxel and cuboid mesh builders (spec §3 "Mesh"). Vertices are never
// shared across faces: every face gets four freshly pushed vertices
// with their own normal and UV, matching the flat-shaded convention
// the teacher's per-face quad builders (items/mesh.go,
// meshing/custom_model.go) already follow.
package mesh

import "math"

// Vec3 and Vec2 are plain float32 triples/pairs; glTF accessors are
// 32-bit, and spec §9 requires builder math to be narrowed before
// emission so snapshot tests stay portable.
type Vec3 [3]float32
type Vec2 [2]float32

// Mesh is the shared geometry buffer: positions/normals/UVs in vertex
// order, and triangle indices referencing them.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Indices   []uint32
}

// New returns an empty mesh ready to be appended to.
func New() *Mesh {
	return &Mesh{}
}

// Empty reports whether the mesh has no geometry at all (spec §4.B/§7
// "empty mesh" sentinel).
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Positions) == 0
}

// AddQuad appends four vertices (in winding order a,b,c,d) sharing one
// normal, with per-corner UVs, and emits the two triangles (a,b,c) and
// (a,c,d) referencing them — the "six indices (v0,v1,v2, v0,v2,v3)"
// rule from spec §4.D.
func (m *Mesh) AddQuad(a, b, c, d Vec3, normal Vec3, uvA, uvB, uvC, uvD Vec2) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, a, b, c, d)
	m.Normals = append(m.Normals, normal, normal, normal, normal)
	m.UVs = append(m.UVs, uvA, uvB, uvC, uvD)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// Append concatenates another mesh's geometry onto this one,
// renumbering indices. This is what makes the voxel pipeline
// associative under pixel set (spec §8, invariant 9): building mesh A
// then appending mesh B yields the same vertex/index counts as the
// union of the two independently-built meshes.
func (m *Mesh) Append(other *Mesh) {
	if other.Empty() {
		return
	}
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+base)
	}
}

// Bounds returns the per-axis min/max over all positions. Required by
// the POSITION accessor's min/max fields (spec §4.F).
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}

// NeedsWideIndices reports whether the index buffer requires 32-bit
// components: true when the vertex count exceeds 65535, since an
// index must be able to address every vertex (spec §3/§4.F).
func (m *Mesh) NeedsWideIndices() bool {
	return len(m.Positions) > math.MaxUint16
}
