// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// Vertex is one corner of a submitted triangle.
type Vertex struct {
	Position f32.Vec2
	Colour   f32.Vec4

	// TexCoord0 and TexCoord1 address Texture0 and Texture1.
	TexCoord0 f32.Vec2
	TexCoord1 f32.Vec2

	// TexWeight blends Texture1 over Texture0 for dual-textured fills.
	TexWeight float32
}

// PackedVertex is the record stored in the shared vertex buffer.
// Per-request metadata is folded into every vertex so that a single
// batch may mix fill types and coordinate spaces.
type PackedVertex struct {
	// Position holds x, y and the request depth.
	Position  f32.Vec3
	Colour    f32.Vec4 // vertex colour multiplied by the base colour
	TexCoord0 f32.Vec2
	TexCoord1 f32.Vec2
	TexWeight float32
	FillType  FillType
	Space     CoordinateSpace
}

// PackedVertexStride is the byte stride per packed vertex.
// Layout per vertex:
//
//	position  (vec3<f32>) = 12 bytes (location 0)
//	colour    (vec4<f32>) = 16 bytes (location 1)
//	texcoord0 (vec2<f32>) =  8 bytes (location 2)
//	texcoord1 (vec2<f32>) =  8 bytes (location 3)
//	texweight (f32)       =  4 bytes (location 4)
//	filltype  (u32)       =  4 bytes (location 5)
//	space     (u32)       =  4 bytes (location 6)
//
// Total = 56 bytes per vertex.
const PackedVertexStride = 56

// IndexStride is the byte size of one index in the shared index buffer.
const IndexStride = 4

// IndexFormat is the index format of the shared index buffer.
const IndexFormat = gputypes.IndexFormatUint32

// VertexLayout returns the vertex buffer layout of the shared vertex buffer.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: PackedVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // colour
			{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 2}, // texcoord0
			{Format: gputypes.VertexFormatFloat32x2, Offset: 36, ShaderLocation: 3}, // texcoord1
			{Format: gputypes.VertexFormatFloat32, Offset: 44, ShaderLocation: 4},   // texweight
			{Format: gputypes.VertexFormatUint32, Offset: 48, ShaderLocation: 5},    // filltype
			{Format: gputypes.VertexFormatUint32, Offset: 52, ShaderLocation: 6},    // space
		},
	}
}

// packVertex folds request metadata into v.
func packVertex(v Vertex, base f32.Vec4, depth float32, fill FillType, space CoordinateSpace) PackedVertex {
	return PackedVertex{
		Position: f32.Vec3{v.Position[0], v.Position[1], depth},
		Colour: f32.Vec4{
			v.Colour[0] * base[0],
			v.Colour[1] * base[1],
			v.Colour[2] * base[2],
			v.Colour[3] * base[3],
		},
		TexCoord0: v.TexCoord0,
		TexCoord1: v.TexCoord1,
		TexWeight: v.TexWeight,
		FillType:  fill,
		Space:     space,
	}
}

// writePackedVertex writes v into buf using the PackedVertexStride layout.
func writePackedVertex(buf []byte, v *PackedVertex) {
	putF32 := func(off int, f float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
	}
	putF32(0, v.Position[0])
	putF32(4, v.Position[1])
	putF32(8, v.Position[2])
	putF32(12, v.Colour[0])
	putF32(16, v.Colour[1])
	putF32(20, v.Colour[2])
	putF32(24, v.Colour[3])
	putF32(28, v.TexCoord0[0])
	putF32(32, v.TexCoord0[1])
	putF32(36, v.TexCoord1[0])
	putF32(40, v.TexCoord1[1])
	putF32(44, v.TexWeight)
	binary.LittleEndian.PutUint32(buf[48:52], uint32(v.FillType))
	binary.LittleEndian.PutUint32(buf[52:56], uint32(v.Space))
}
