// Package glb emits a binary glTF (GLB) container for a Mesh and an
// optional texture atlas (spec §4.F "GLB Emitter"). The document shape
// (accessors, buffer views, materials, samplers) is built with
// github.com/qmuntal/gltf's types — the same library the pack's GLB
// reader/renderer reference code
// (other_examples/...mmulet-pupapppupps__glb_renderer.go and
// ...mrigankad-gorenderengine__scene-gltf_loader.go) uses to consume
// these documents. The binary container framing itself (the 12-byte
// header plus JSON/BIN chunks) is assembled by hand: the spec pins an
// exact byte layout and padding scheme, which is easier to get
// byte-for-byte right directly than to reverse-engineer from a
// convenience encoder.
package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image/png"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/atlas"
	"github.com/michaelycrypto/texture-to-voxel-obj/pkg/mesh"
)

const (
	magicGLTF = 0x46546C67
	magicJSON = 0x4E4F534A
	magicBIN  = 0x004E4942
	glbVersion = 2

	componentFloat  = 5126
	componentUshort = 5123
	componentUint   = 5125

	targetArrayBuffer        = 34962
	targetElementArrayBuffer = 34963

	filterNearest      = 9728
	wrapClampToEdge    = 33071
)

// Options controls optional emitter behavior.
type Options struct {
	// Rotation is the scene-root quaternion (x, y, z, w). It is written
	// to the node only when HasRotation is true; otherwise no rotation
	// is set on the node (spec §4.B/§9 "Coordinate system divergence").
	Rotation    [4]float32
	HasRotation bool
	Generator   string
}

// DefaultOptions supplies a generator string and no root rotation.
func DefaultOptions() Options {
	return Options{Generator: "texture-to-voxel-obj"}
}

// Encode serializes m (and, if non-nil, a) into a complete GLB byte
// stream (spec §4.F).
func Encode(m *mesh.Mesh, a *atlas.Atlas, opts Options) ([]byte, error) {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: opts.Generator},
	}

	var bin bytes.Buffer
	posOffset, posLen := appendSection(&bin, encodeVec3(m.Positions))
	normOffset, normLen := appendSection(&bin, encodeVec3(m.Normals))
	uvOffset, uvLen := appendSection(&bin, encodeVec2(m.UVs))

	wide := m.NeedsWideIndices()
	var idxBytes []byte
	var idxComponentType uint32
	if wide {
		idxBytes = encodeUint32Indices(m.Indices)
		idxComponentType = componentUint
	} else {
		idxBytes = encodeUint16Indices(m.Indices)
		idxComponentType = componentUshort
	}
	idxOffset, idxLen := appendSection(&bin, idxBytes)

	min, max := m.Bounds()

	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: posOffset, ByteLength: posLen, Target: targetArrayBuffer},
		{Buffer: 0, ByteOffset: normOffset, ByteLength: normLen, Target: targetArrayBuffer},
		{Buffer: 0, ByteOffset: uvOffset, ByteLength: uvLen, Target: targetArrayBuffer},
		{Buffer: 0, ByteOffset: idxOffset, ByteLength: idxLen, Target: targetElementArrayBuffer},
	}
	doc.Accessors = []*gltf.Accessor{
		accessor(0, componentFloat, uint32(len(m.Positions)), "VEC3", []float64{float64(min[0]), float64(min[1]), float64(min[2])}, []float64{float64(max[0]), float64(max[1]), float64(max[2])}),
		accessor(1, componentFloat, uint32(len(m.Normals)), "VEC3", nil, nil),
		accessor(2, componentFloat, uint32(len(m.UVs)), "VEC2", nil, nil),
		accessor(3, idxComponentType, uint32(len(m.Indices)), "SCALAR", nil, nil),
	}

	mat := &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			MetallicFactor:  floatPtr(0),
			RoughnessFactor: floatPtr(1),
		},
		DoubleSided: true,
		AlphaMode:   "MASK",
		AlphaCutoff: floatPtr(0.5),
	}

	if a != nil {
		imgOffset, imgLen, err := appendImage(&bin, a)
		if err != nil {
			return nil, err
		}
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 0, ByteOffset: imgOffset, ByteLength: imgLen})
		imgBVIdx := uint32(len(doc.BufferViews) - 1)
		doc.Images = []*gltf.Image{{MimeType: "image/png", BufferView: &imgBVIdx}}
		doc.Samplers = []*gltf.Sampler{{
			MagFilter: filterNearest,
			MinFilter: filterNearest,
			WrapS:     wrapClampToEdge,
			WrapT:     wrapClampToEdge,
		}}
		doc.Textures = []*gltf.Texture{{Source: uint32Ptr(0), Sampler: uint32Ptr(0)}}
		mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 0}
	}
	doc.Materials = []*gltf.Material{mat}

	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2},
			Indices:    uint32Ptr(3),
			Material:   uint32Ptr(0),
		}},
	}}

	node := &gltf.Node{Mesh: uint32Ptr(0)}
	if opts.HasRotation {
		node.Rotation = [4]float64{
			float64(opts.Rotation[0]), float64(opts.Rotation[1]),
			float64(opts.Rotation[2]), float64(opts.Rotation[3]),
		}
	}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
	doc.Scene = uint32Ptr(0)

	doc.Buffers = []*gltf.Buffer{{ByteLength: uint32(bin.Len())}}

	return frame(doc, bin.Bytes())
}

func accessor(bufferView uint32, componentType uint32, count uint32, typ string, min, max []float64) *gltf.Accessor {
	return &gltf.Accessor{
		BufferView:    &bufferView,
		ComponentType: gltf.ComponentType(componentType),
		Count:         count,
		Type:          gltf.AccessorType(typ),
		Min:           min,
		Max:           max,
	}
}

func floatPtr(f float64) *float64 { return &f }
func uint32Ptr(u uint32) *uint32  { return &u }

// appendSection writes data to buf, padded to the next multiple of 4
// bytes, and returns the section's pre-padding offset and true
// (unpadded) length (spec §4.F "Binary layout").
func appendSection(buf *bytes.Buffer, data []byte) (offset, length uint32) {
	offset = uint32(buf.Len())
	length = uint32(len(data))
	buf.Write(data)
	pad := (4 - buf.Len()%4) % 4
	buf.Write(make([]byte, pad))
	return offset, length
}

func appendImage(buf *bytes.Buffer, a *atlas.Atlas) (offset, length uint32, err error) {
	offset = uint32(buf.Len())
	if err := png.Encode(buf, a.Image); err != nil {
		return 0, 0, err
	}
	length = uint32(buf.Len()) - offset
	pad := (4 - buf.Len()%4) % 4
	buf.Write(make([]byte, pad))
	return offset, length, nil
}

func encodeVec3(vs []mesh.Vec3) []byte {
	buf := make([]byte, 0, len(vs)*12)
	var b [4]byte
	for _, v := range vs {
		for _, c := range v {
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(c))
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

func encodeVec2(vs []mesh.Vec2) []byte {
	buf := make([]byte, 0, len(vs)*8)
	var b [4]byte
	for _, v := range vs {
		for _, c := range v {
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(c))
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

func encodeUint16Indices(idx []uint32) []byte {
	buf := make([]byte, len(idx)*2)
	for i, v := range idx {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}

func encodeUint32Indices(idx []uint32) []byte {
	buf := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// frame concatenates the 12-byte GLB header, the JSON chunk (space
// padded), and the BIN chunk (zero padded) per spec §4.F "GLB framing".
func frame(doc *gltf.Document, bin []byte) ([]byte, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	jsonPad := (4 - len(jsonBytes)%4) % 4
	for i := 0; i < jsonPad; i++ {
		jsonBytes = append(jsonBytes, ' ')
	}

	binPad := (4 - len(bin)%4) % 4
	if binPad > 0 {
		bin = append(bin, make([]byte, binPad)...)
	}

	total := 12 + 8 + len(jsonBytes) + 8 + len(bin)

	out := make([]byte, 0, total)
	var hdr [4]byte

	binary.LittleEndian.PutUint32(hdr[:], magicGLTF)
	out = append(out, hdr[:]...)
	binary.LittleEndian.PutUint32(hdr[:], glbVersion)
	out = append(out, hdr[:]...)
	binary.LittleEndian.PutUint32(hdr[:], uint32(total))
	out = append(out, hdr[:]...)

	binary.LittleEndian.PutUint32(hdr[:], uint32(len(jsonBytes)))
	out = append(out, hdr[:]...)
	binary.LittleEndian.PutUint32(hdr[:], magicJSON)
	out = append(out, hdr[:]...)
	out = append(out, jsonBytes...)

	binary.LittleEndian.PutUint32(hdr[:], uint32(len(bin)))
	out = append(out, hdr[:]...)
	binary.LittleEndian.PutUint32(hdr[:], magicBIN)
	out = append(out, hdr[:]...)
	out = append(out, bin...)

	return out, nil
}
