// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package wgpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/drawq"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHALDevice is returned by FromProvider when the provider does not
// expose a HAL device and queue.
var ErrNoHALDevice = errors.New("wgpu: provider does not expose hal.Device and hal.Queue")

// Uploader mirrors a drawq.SharedBuffer into GPU vertex and index buffers.
//
// Uploader is not safe for concurrent use; it is driven by the goroutine
// that owns the drawq.Stage.
type Uploader struct {
	device hal.Device
	queue  hal.Queue

	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	vertexSize uint64
	indexSize  uint64
}

var _ drawq.Uploader = (*Uploader)(nil)

// NewUploader creates an uploader on device and queue. GPU buffers are
// created lazily on the first upload.
func NewUploader(device hal.Device, queue hal.Queue) *Uploader {
	return &Uploader{device: device, queue: queue}
}

// FromProvider creates an uploader on the device shared by provider.
//
// The provider's Device and Queue must be hal.Device and hal.Queue, or
// the provider must implement HalDevice() any and HalQueue() any
// returning them.
func FromProvider(provider gpucontext.DeviceProvider) (*Uploader, error) {
	if provider == nil {
		return nil, ErrNoHALDevice
	}
	device, dok := provider.Device().(hal.Device)
	queue, qok := provider.Queue().(hal.Queue)
	if !dok || !qok {
		type halProvider interface {
			HalDevice() any
			HalQueue() any
		}
		hp, ok := provider.(halProvider)
		if !ok {
			return nil, ErrNoHALDevice
		}
		device, dok = hp.HalDevice().(hal.Device)
		queue, qok = hp.HalQueue().(hal.Queue)
	}
	if !dok || !qok || device == nil || queue == nil {
		return nil, ErrNoHALDevice
	}
	return NewUploader(device, queue), nil
}

// UploadVertices copies vertices [first, first+count) of buf to the GPU
// vertex buffer.
func (u *Uploader) UploadVertices(buf *drawq.SharedBuffer, first, count int) error {
	desc := buf.VertexDescriptor()
	if desc.Size > u.vertexSize {
		b, err := u.recreate(u.vertexBuf, desc)
		if err != nil {
			return err
		}
		u.vertexBuf, u.vertexSize = b, desc.Size
		// A new buffer starts empty, so everything below first is lost too.
		first, count = 0, first+count
	}
	if count == 0 {
		return nil
	}
	offset := uint64(first) * drawq.PackedVertexStride //nolint:gosec // first is a buffer position
	if err := u.queue.WriteBuffer(u.vertexBuf, offset, buf.VertexBytes(first, count)); err != nil {
		return fmt.Errorf("wgpu: write vertices: %w", err)
	}
	return nil
}

// UploadIndices copies indices [first, first+count) of buf to the GPU
// index buffer.
func (u *Uploader) UploadIndices(buf *drawq.SharedBuffer, first, count int) error {
	desc := buf.IndexDescriptor()
	if desc.Size > u.indexSize {
		b, err := u.recreate(u.indexBuf, desc)
		if err != nil {
			return err
		}
		u.indexBuf, u.indexSize = b, desc.Size
		first, count = 0, first+count
	}
	if count == 0 {
		return nil
	}
	offset := uint64(first) * drawq.IndexStride //nolint:gosec // first is a buffer position
	if err := u.queue.WriteBuffer(u.indexBuf, offset, buf.IndexBytes(first, count)); err != nil {
		return fmt.Errorf("wgpu: write indices: %w", err)
	}
	return nil
}

// recreate allocates a buffer for desc and destroys old once the new one
// exists. On failure old is left untouched and still owned by the caller.
func (u *Uploader) recreate(old hal.Buffer, desc gputypes.BufferDescriptor) (hal.Buffer, error) {
	b, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", desc.Label, err)
	}
	if old != nil {
		u.device.DestroyBuffer(old)
	}
	drawq.Logger().Debug("wgpu: buffer allocated",
		slog.String("label", desc.Label),
		slog.Uint64("size", desc.Size))
	return b, nil
}

// VertexBuffer returns the GPU vertex buffer, or nil before the first
// upload.
func (u *Uploader) VertexBuffer() hal.Buffer { return u.vertexBuf }

// IndexBuffer returns the GPU index buffer, or nil before the first
// upload.
func (u *Uploader) IndexBuffer() hal.Buffer { return u.indexBuf }

// Destroy releases the GPU buffers. The uploader may be reused
// afterwards; buffers are recreated on the next upload.
func (u *Uploader) Destroy() {
	if u.vertexBuf != nil {
		u.device.DestroyBuffer(u.vertexBuf)
		u.vertexBuf, u.vertexSize = nil, 0
	}
	if u.indexBuf != nil {
		u.device.DestroyBuffer(u.indexBuf)
		u.indexBuf, u.indexSize = nil, 0
	}
}
