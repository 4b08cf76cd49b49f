// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureID is an opaque handle to a texture owned by the renderer.
// The zero value means "no texture".
type TextureID uint64

// NoTexture is the TextureID that leaves a texture slot unbound.
const NoTexture TextureID = 0

// CoordinateSpace selects which camera transform applies to a request.
type CoordinateSpace uint32

const (
	// World coordinates are transformed by the stage's world camera.
	World CoordinateSpace = iota
	// Screen coordinates are in pixels relative to the viewport.
	Screen
)

// String returns the coordinate space name.
func (s CoordinateSpace) String() string {
	switch s {
	case World:
		return "World"
	case Screen:
		return "Screen"
	default:
		return fmt.Sprintf("CoordinateSpace(%d)", uint32(s))
	}
}

// FillType describes how a request's triangles are shaded.
type FillType uint32

const (
	// Coloured requests use vertex colours only.
	Coloured FillType = iota
	// Textured requests sample Texture0.
	Textured
	// DualTextured requests blend Texture0 and Texture1 using the
	// per-vertex texture weight.
	DualTextured
)

// String returns the fill type name.
func (f FillType) String() string {
	switch f {
	case Coloured:
		return "Coloured"
	case Textured:
		return "Textured"
	case DualTextured:
		return "DualTextured"
	default:
		return fmt.Sprintf("FillType(%d)", uint32(f))
	}
}

// TextureWrap is the addressing mode for a texture slot.
type TextureWrap uint32

const (
	// WrapNone leaves the mode unclaimed; the renderer's default sampler
	// is used and any other mode is compatible with it.
	WrapNone TextureWrap = iota
	// Wrap repeats the texture.
	Wrap
	// Mirror repeats the texture with mirroring.
	Mirror
)

// String returns the wrap mode name.
func (w TextureWrap) String() string {
	switch w {
	case WrapNone:
		return "None"
	case Wrap:
		return "Wrap"
	case Mirror:
		return "Mirror"
	default:
		return fmt.Sprintf("TextureWrap(%d)", uint32(w))
	}
}

// AddressMode maps the wrap mode to the sampler addressing mode.
func (w TextureWrap) AddressMode() gputypes.AddressMode {
	switch w {
	case Wrap:
		return gputypes.AddressModeRepeat
	case Mirror:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}
