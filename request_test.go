// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"errors"
	"math"
	"testing"
)

func TestDrawRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *DrawRequest)
		want   error
	}{
		{"valid coloured", func(*DrawRequest) {}, nil},
		{"two vertices", func(r *DrawRequest) { r.Vertices = r.Vertices[:2] }, ErrTooFewVertices},
		{"no indices", func(r *DrawRequest) { r.Indices = nil }, ErrIndexCount},
		{"four indices", func(r *DrawRequest) { r.Indices = []uint32{0, 1, 2, 0} }, ErrIndexCount},
		{"index out of range", func(r *DrawRequest) { r.Indices = []uint32{0, 1, 3} }, ErrIndexOutOfRange},
		{"negative depth", func(r *DrawRequest) { r.Depth = -0.01 }, ErrDepthRange},
		{"depth above one", func(r *DrawRequest) { r.Depth = 1.01 }, ErrDepthRange},
		{"NaN depth", func(r *DrawRequest) { r.Depth = float32(math.NaN()) }, ErrDepthRange},
		{"negative layer", func(r *DrawRequest) { r.Layer = -1 }, ErrNegativeLayer},
		{"textured without texture", func(r *DrawRequest) { r.FillType = Textured }, ErrMissingTexture},
		{"textured", func(r *DrawRequest) { r.FillType = Textured; r.Texture0 = 4 }, nil},
		{"dual missing second", func(r *DrawRequest) {
			r.FillType = DualTextured
			r.Texture0 = 4
		}, ErrMissingTexture},
		{"dual same texture", func(r *DrawRequest) {
			r.FillType = DualTextured
			r.Texture0, r.Texture1 = 4, 4
		}, ErrDuplicateTexture},
		{"dual", func(r *DrawRequest) {
			r.FillType = DualTextured
			r.Texture0, r.Texture1 = 4, 5
		}, nil},
		{"unknown fill", func(r *DrawRequest) { r.FillType = FillType(9) }, ErrUnknownFillType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := triangle(0, 0.5)
			tt.modify(&r)
			err := r.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawRequestDepthBounds(t *testing.T) {
	for _, d := range []float32{0, 1} {
		r := triangle(0, d)
		if err := r.Validate(); err != nil {
			t.Errorf("Validate() with depth %v = %v, want nil", d, err)
		}
	}
}

func TestNormalizedColouredClearsTextures(t *testing.T) {
	r := triangle(0, 0)
	r.Texture0, r.Texture1 = 3, 4
	r.TextureWrap0, r.TextureWrap1 = Wrap, Mirror

	got, err := r.normalized()
	if err != nil {
		t.Fatalf("normalized() error = %v", err)
	}
	if got.Texture0 != NoTexture || got.Texture1 != NoTexture {
		t.Errorf("textures = %d, %d, want none", got.Texture0, got.Texture1)
	}
	if got.TextureWrap0 != WrapNone || got.TextureWrap1 != WrapNone {
		t.Errorf("wraps = %v, %v, want None", got.TextureWrap0, got.TextureWrap1)
	}
	if r.Texture0 != 3 {
		t.Error("normalized() must not modify the receiver")
	}
}

func TestNormalizedTexturedClearsSecondSlot(t *testing.T) {
	r := textured(0, 0, 7)
	r.Texture1 = 8
	r.TextureWrap1 = Mirror

	got, err := r.normalized()
	if err != nil {
		t.Fatalf("normalized() error = %v", err)
	}
	if got.Texture0 != 7 || got.TextureWrap0 != Wrap {
		t.Errorf("slot 0 = %d/%v, want 7/Wrap", got.Texture0, got.TextureWrap0)
	}
	if got.Texture1 != NoTexture || got.TextureWrap1 != WrapNone {
		t.Errorf("slot 1 = %d/%v, want 0/None", got.Texture1, got.TextureWrap1)
	}
}

func TestNormalizedDualTexturedDefaultsWrap(t *testing.T) {
	r := triangle(0, 0)
	r.FillType = DualTextured
	r.Texture0, r.Texture1 = 1, 2
	r.TextureWrap1 = Mirror

	got, err := r.normalized()
	if err != nil {
		t.Fatalf("normalized() error = %v", err)
	}
	if got.TextureWrap0 != Wrap {
		t.Errorf("TextureWrap0 = %v, want Wrap", got.TextureWrap0)
	}
	if got.TextureWrap1 != Mirror {
		t.Errorf("TextureWrap1 = %v, want Mirror", got.TextureWrap1)
	}
}
