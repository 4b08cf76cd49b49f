// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// BatchShaderWGSL draws one drawq batch. Vertex inputs follow
// drawq.VertexLayout; group 1 holds the batch's two textures and the
// samplers from drawq.Batch.Samplers.
const BatchShaderWGSL = `
struct Globals {
    world: mat4x4<f32>,
    screen: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> globals: Globals;

@group(1) @binding(0) var tex0: texture_2d<f32>;
@group(1) @binding(1) var samp0: sampler;
@group(1) @binding(2) var tex1: texture_2d<f32>;
@group(1) @binding(3) var samp1: sampler;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) colour: vec4<f32>,
    @location(2) uv0: vec2<f32>,
    @location(3) uv1: vec2<f32>,
    @location(4) weight: f32,
    @location(5) fill: u32,
    @location(6) space: u32,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) colour: vec4<f32>,
    @location(1) uv0: vec2<f32>,
    @location(2) uv1: vec2<f32>,
    @location(3) weight: f32,
    @location(4) @interpolate(flat) fill: u32,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    var m = globals.world;
    if in.space == 1u {
        m = globals.screen;
    }
    out.position = m * vec4<f32>(in.position.xy, in.position.z, 1.0);
    out.colour = in.colour;
    out.uv0 = in.uv0;
    out.uv1 = in.uv1;
    out.weight = in.weight;
    out.fill = in.fill;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let c0 = textureSample(tex0, samp0, in.uv0);
    let c1 = textureSample(tex1, samp1, in.uv1);
    if in.fill == 1u {
        return in.colour * c0;
    }
    if in.fill == 2u {
        return in.colour * mix(c0, c1, in.weight);
    }
    return in.colour;
}
`

// CompileShaderToSPIRV compiles WGSL source to SPIR-V words.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// CreateBatchShaderModule compiles BatchShaderWGSL and creates a shader
// module for it on device.
func CreateBatchShaderModule(device hal.Device) (hal.ShaderModule, error) {
	words, err := CompileShaderToSPIRV(BatchShaderWGSL)
	if err != nil {
		return nil, err
	}
	m, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "drawq_batch",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module: %w", err)
	}
	return m, nil
}
