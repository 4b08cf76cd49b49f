// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import "golang.org/x/image/math/f32"

// triangle returns a coloured single-triangle request.
func triangle(layer int, depth float32) DrawRequest {
	return DrawRequest{
		FillType: Coloured,
		Vertices: []Vertex{
			{Position: f32.Vec2{0, 0}, Colour: f32.Vec4{1, 1, 1, 1}},
			{Position: f32.Vec2{1, 0}, Colour: f32.Vec4{1, 1, 1, 1}},
			{Position: f32.Vec2{0, 1}, Colour: f32.Vec4{1, 1, 1, 1}},
		},
		Indices:    []uint32{0, 1, 2},
		BaseColour: White,
		Depth:      depth,
		Layer:      layer,
	}
}

// quad returns a coloured two-triangle request.
func quad(layer int, depth float32) DrawRequest {
	return DrawRequest{
		FillType: Coloured,
		Vertices: []Vertex{
			{Position: f32.Vec2{0, 0}, Colour: f32.Vec4{1, 1, 1, 1}},
			{Position: f32.Vec2{1, 0}, Colour: f32.Vec4{1, 1, 1, 1}},
			{Position: f32.Vec2{1, 1}, Colour: f32.Vec4{1, 1, 1, 1}},
			{Position: f32.Vec2{0, 1}, Colour: f32.Vec4{1, 1, 1, 1}},
		},
		Indices:    []uint32{0, 1, 2, 2, 3, 0},
		BaseColour: White,
		Depth:      depth,
		Layer:      layer,
	}
}

// textured returns a textured single-triangle request.
func textured(layer int, depth float32, tex TextureID) DrawRequest {
	r := triangle(layer, depth)
	r.FillType = Textured
	r.Texture0 = tex
	r.TextureWrap0 = Wrap
	return r
}

// recordingUploader records the segments it is asked to upload.
type recordingUploader struct {
	vertices [][2]int
	indices  [][2]int
	err      error
}

func (u *recordingUploader) UploadVertices(_ *SharedBuffer, first, count int) error {
	u.vertices = append(u.vertices, [2]int{first, count})
	return u.err
}

func (u *recordingUploader) UploadIndices(_ *SharedBuffer, first, count int) error {
	u.indices = append(u.indices, [2]int{first, count})
	return u.err
}
