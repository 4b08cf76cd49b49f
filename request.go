// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import "golang.org/x/image/math/f32"

// DrawRequest is one untransformed triangle list submitted for drawing.
type DrawRequest struct {
	CoordinateSpace CoordinateSpace
	FillType        FillType

	// Vertices must hold at least 3 entries.
	Vertices []Vertex

	// Indices is a triangle list addressing Vertices. Its length must be
	// a positive multiple of 3.
	Indices []uint32

	// BaseColour multiplies every vertex colour.
	BaseColour f32.Vec4

	Texture0     TextureID
	Texture1     TextureID
	TextureWrap0 TextureWrap
	TextureWrap1 TextureWrap

	// Depth orders requests inside a layer: 0 is the front, 1 the back.
	Depth float32

	// Layer orders requests coarsely: lower layers draw first.
	Layer int
}

// White is the neutral BaseColour.
var White = f32.Vec4{1, 1, 1, 1}

// Validate reports the first invariant the request violates, or nil.
// It does not modify the request.
func (r *DrawRequest) Validate() error {
	_, err := r.normalized()
	return err
}

// normalized returns a copy of r with the texture slots adjusted to its
// fill type, or the first validation error.
func (r *DrawRequest) normalized() (DrawRequest, error) {
	if len(r.Vertices) < 3 {
		return DrawRequest{}, ErrTooFewVertices
	}
	if len(r.Indices) == 0 || len(r.Indices)%3 != 0 {
		return DrawRequest{}, ErrIndexCount
	}
	n := uint32(len(r.Vertices)) //nolint:gosec // vertex counts fit uint32
	for _, idx := range r.Indices {
		if idx >= n {
			return DrawRequest{}, ErrIndexOutOfRange
		}
	}
	if !(r.Depth >= 0 && r.Depth <= 1) {
		return DrawRequest{}, ErrDepthRange
	}
	if r.Layer < 0 {
		return DrawRequest{}, ErrNegativeLayer
	}

	out := *r
	switch r.FillType {
	case Coloured:
		out.Texture0, out.Texture1 = NoTexture, NoTexture
		out.TextureWrap0, out.TextureWrap1 = WrapNone, WrapNone
	case Textured:
		if r.Texture0 == NoTexture {
			return DrawRequest{}, ErrMissingTexture
		}
		out.Texture1 = NoTexture
		out.TextureWrap1 = WrapNone
	case DualTextured:
		if r.Texture0 == NoTexture || r.Texture1 == NoTexture {
			return DrawRequest{}, ErrMissingTexture
		}
		if r.Texture0 == r.Texture1 {
			return DrawRequest{}, ErrDuplicateTexture
		}
		if out.TextureWrap0 == WrapNone {
			out.TextureWrap0 = Wrap
		}
		if out.TextureWrap1 == WrapNone {
			out.TextureWrap1 = Wrap
		}
	default:
		return DrawRequest{}, ErrUnknownFillType
	}
	return out, nil
}
