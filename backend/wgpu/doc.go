// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu uploads drawq shared buffers to a gogpu/wgpu HAL device.
//
// The Uploader implements drawq.Uploader. It owns one vertex buffer and
// one index buffer on the device and mirrors every segment the queue
// group writes into them. When the CPU buffer outgrows the GPU buffer,
// the GPU buffer is recreated at the new capacity and refilled.
//
// BatchShaderWGSL is a vertex and fragment shader matching
// drawq.VertexLayout. It samples up to two textures per batch and mixes
// them according to the per-vertex fill type.
//
// Usage:
//
//	up, err := wgpu.FromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer up.Destroy()
//	stage := drawq.NewStage(drawq.WithUploader(up))
package wgpu
