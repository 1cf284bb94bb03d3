// Package cuboidmesh assembles JSON model elements into oriented box
// geometry (spec §4.D "Cuboid Mesh Builder"), the generalization of
// the teacher's BuildItemMesh in
// internal/graphics/renderables/items/mesh.go: the same
// translate-to-origin / rotate / translate-back matrix technique, the
// same per-face quad construction, now driven by the element's exact
// 0-16 corner geometry and UV rules instead of baked-in vertex tables.
package cuboidmesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/blockmodel"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/mesh"
)

// Options configures a Build call.
type Options struct {
	// Scale multiplies centered 0-16 coordinates; the default yields a
	// 1-unit cube for a full 16x16x16 element.
	Scale float32
	// SkipDegenerate, when true, drops zero-area quads instead of
	// emitting them (spec §9 open question 1: a zero-thickness rotated
	// element's two opposite faces on the flattened axis produce a
	// degenerate quad; the spec requires emitting it by default and
	// permits this as an opt-in optimization).
	SkipDegenerate bool
}

// DefaultOptions matches spec §4.D's default scale of 1/16 and emits
// degenerate quads as-is.
func DefaultOptions() Options {
	return Options{Scale: 1.0 / 16.0}
}

// UVRemapper maps a normalized [0,1] UV belonging to texturePath into
// atlas space (spec §4.E). Implementations that have nothing to remap
// (zero or one source texture) should return (u, v) unchanged.
type UVRemapper interface {
	Remap(texturePath string, u, v float32) (float32, float32)
}

// identityRemap is used when no remapper is supplied.
type identityRemap struct{}

func (identityRemap) Remap(_ string, u, v float32) (float32, float32) { return u, v }

type faceEntry struct {
	name    blockmodel.FaceName
	corners [4]int
	normal  mgl32.Vec3
	kind    uvKind
}

type uvKind int

const (
	uvSide uvKind = iota
	uvUp
	uvDown
)

// faceTable fixes, per face, which four of the cube's eight corners
// form its quad (in winding order) and its pre-rotation outward
// normal. Corner i follows the spec's bit-pattern rule (bit0=x,
// bit1=y, bit2=z; 0=from, 1=to side): corner indices are chosen here
// so that (corners[1]-corners[0]) x (corners[2]-corners[0]) equals the
// listed normal, which is the winding Scenario 3 (chest-like element)
// pins down for the north face.
var faceTable = []faceEntry{
	{blockmodel.FaceNorth, [4]int{1, 0, 2, 3}, mgl32.Vec3{0, 0, -1}, uvSide},
	{blockmodel.FaceSouth, [4]int{4, 5, 7, 6}, mgl32.Vec3{0, 0, 1}, uvSide},
	{blockmodel.FaceEast, [4]int{5, 1, 3, 7}, mgl32.Vec3{1, 0, 0}, uvSide},
	{blockmodel.FaceWest, [4]int{0, 4, 6, 2}, mgl32.Vec3{-1, 0, 0}, uvSide},
	{blockmodel.FaceUp, [4]int{2, 6, 7, 3}, mgl32.Vec3{0, 1, 0}, uvUp},
	{blockmodel.FaceDown, [4]int{0, 1, 5, 4}, mgl32.Vec3{0, -1, 0}, uvDown},
}

// Build appends every element's geometry to a fresh mesh (spec §4.D).
// Faces with no texture reference (Face.Texture == "") are dropped
// silently — blockmodel.LoadModel already drops such faces, and those
// whose reference does not resolve, with a warning, so only elements
// built by other means reach this point with one.
func Build(elements []blockmodel.Element, remap UVRemapper, opts Options) *mesh.Mesh {
	if remap == nil {
		remap = identityRemap{}
	}
	m := mesh.New()
	for _, el := range elements {
		buildElement(m, el, remap, opts)
	}
	return m
}

func buildElement(m *mesh.Mesh, el blockmodel.Element, remap UVRemapper, opts Options) {
	corners := rawCorners(el)
	rot, hasRot := rotationMatrix(el.Rotation)
	if hasRot {
		for i := range corners {
			v := rot.Mul4x1(mgl32.Vec4{corners[i].X(), corners[i].Y(), corners[i].Z(), 1})
			corners[i] = mgl32.Vec3{v.X(), v.Y(), v.Z()}
		}
	}

	for _, fe := range faceTable {
		face, ok := el.Faces[fe.name]
		if !ok || face.Texture == "" {
			continue
		}

		normal := fe.normal
		if hasRot {
			v := rot.Mul4x1(mgl32.Vec4{normal.X(), normal.Y(), normal.Z(), 0})
			normal = mgl32.Vec3{v.X(), v.Y(), v.Z()}
		}

		uvs := faceUVs(el, face, fe.name, fe.kind, remap)

		var pos [4]mesh.Vec3
		for i, ci := range fe.corners {
			c := corners[ci]
			pos[i] = mesh.Vec3{
				(c.X() - 8) * opts.Scale,
				(c.Y() - 8) * opts.Scale,
				(c.Z() - 8) * opts.Scale,
			}
		}

		if opts.SkipDegenerate && isDegenerateQuad(pos) {
			continue
		}

		n := mesh.Vec3{normal.X(), normal.Y(), normal.Z()}
		m.AddQuad(pos[0], pos[1], pos[2], pos[3], n, uvs[0], uvs[1], uvs[2], uvs[3])
	}
}

// isDegenerateQuad reports whether pos has zero area, i.e. a
// zero-thickness element's face collapsed to a line or point.
func isDegenerateQuad(pos [4]mesh.Vec3) bool {
	e1 := mgl32.Vec3{pos[1][0] - pos[0][0], pos[1][1] - pos[0][1], pos[1][2] - pos[0][2]}
	e2 := mgl32.Vec3{pos[3][0] - pos[0][0], pos[3][1] - pos[0][1], pos[3][2] - pos[0][2]}
	const epsilon = 1e-12
	return e1.Cross(e2).LenSqr() < epsilon
}

// rawCorners computes the eight corner positions in the untransformed
// 0-16 element space per spec §4.D's bit-pattern rule.
func rawCorners(el blockmodel.Element) [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		x := el.From[0]
		if i&1 != 0 {
			x = el.To[0]
		}
		y := el.From[1]
		if i&2 != 0 {
			y = el.To[1]
		}
		z := el.From[2]
		if i&4 != 0 {
			z = el.To[2]
		}
		c[i] = mgl32.Vec3{x, y, z}
	}
	return c
}

// rotationMatrix builds the translate/rotate/translate-back matrix
// (spec §4.D "Rotation"), the same composition order as the teacher's
// BuildItemMesh, generalized to operate in 0-16 space directly instead
// of normalized 0-1 space.
func rotationMatrix(r *blockmodel.Rotation) (mgl32.Mat4, bool) {
	if r == nil {
		return mgl32.Ident4(), false
	}
	origin := mgl32.Vec3{r.Origin[0], r.Origin[1], r.Origin[2]}
	angle := mgl32.DegToRad(r.Angle)

	var axis mgl32.Vec3
	switch r.Axis {
	case blockmodel.AxisX:
		axis = mgl32.Vec3{1, 0, 0}
	case blockmodel.AxisY:
		axis = mgl32.Vec3{0, 1, 0}
	case blockmodel.AxisZ:
		axis = mgl32.Vec3{0, 0, 1}
	}

	m := mgl32.Translate3D(origin.X(), origin.Y(), origin.Z())
	m = m.Mul4(mgl32.HomogRotate3D(angle, axis))
	m = m.Mul4(mgl32.Translate3D(-origin.X(), -origin.Y(), -origin.Z()))
	return m, true
}

// faceUVs derives, remaps, and assigns the four UV corners for a face
// per spec §4.D's "UV derivation" / "UV quad assignment" / "Face UV
// rotation" rules.
func faceUVs(el blockmodel.Element, face blockmodel.Face, name blockmodel.FaceName, kind uvKind, remap UVRemapper) [4]mesh.Vec2 {
	u1, v1, u2, v2 := derivedUV(el, face, name)

	// Normalize to [0,1].
	u1, v1, u2, v2 = u1/16, v1/16, u2/16, v2/16

	flipU := u1 > u2
	if flipU {
		u1, u2 = u2, u1
	}
	flipV := v1 > v2
	if flipV {
		v1, v2 = v2, v1
	}

	ru1, rv1 := remap.Remap(face.Texture, u1, v1)
	ru2, rv2 := remap.Remap(face.Texture, u2, v2)
	u1, v1, u2, v2 = ru1, rv1, ru2, rv2

	if flipU {
		u1, u2 = u2, u1
	}
	if flipV {
		v1, v2 = v2, v1
	}

	var quad [4]mesh.Vec2
	switch kind {
	case uvUp:
		quad = [4]mesh.Vec2{{u1, v1}, {u1, v2}, {u2, v2}, {u2, v1}}
	case uvDown:
		quad = [4]mesh.Vec2{{u1, v1}, {u2, v1}, {u2, v2}, {u1, v2}}
	default: // side faces
		quad = [4]mesh.Vec2{{u1, v2}, {u2, v2}, {u2, v1}, {u1, v1}}
	}

	shift := (face.Rotation / 90) % 4
	if shift < 0 {
		shift += 4
	}
	if shift == 0 {
		return quad
	}
	var rotated [4]mesh.Vec2
	for i := range quad {
		rotated[(i+shift)%4] = quad[i]
	}
	return rotated
}

// derivedUV returns the face's raw 0-16 UV rectangle, either the
// explicit value or the element-extent-derived default (spec §4.D
// "UV derivation").
func derivedUV(el blockmodel.Element, face blockmodel.Face, name blockmodel.FaceName) (u1, v1, u2, v2 float32) {
	if face.UV != nil {
		return face.UV[0], face.UV[1], face.UV[2], face.UV[3]
	}
	from, to := el.From, el.To
	switch name {
	case blockmodel.FaceNorth, blockmodel.FaceSouth:
		return from[0], 16 - to[1], to[0], 16 - from[1]
	case blockmodel.FaceEast, blockmodel.FaceWest:
		return from[2], 16 - to[1], to[2], 16 - from[1]
	default: // up/down
		return from[0], from[2], to[0], to[2]
	}
}
