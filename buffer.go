// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Uploader copies segments of a SharedBuffer to GPU memory.
//
// The shared buffer calls the uploader after every write with the range
// that changed. Implementations may read any part of the buffer, for
// example to re-upload everything after reallocating a smaller GPU buffer.
type Uploader interface {
	// UploadVertices copies vertices [first, first+count).
	UploadVertices(buf *SharedBuffer, first, count int) error

	// UploadIndices copies indices [first, first+count).
	UploadIndices(buf *SharedBuffer, first, count int) error
}

// SharedBuffer is the CPU copy of the vertex and index buffer shared by
// all queues of a QueueGroup. Both arrays grow by doubling.
type SharedBuffer struct {
	vertices []PackedVertex
	indices  []uint32
	uploader Uploader
}

// NewSharedBuffer creates a buffer with the given initial capacities.
// uploader may be nil.
func NewSharedBuffer(vertexCapacity, indexCapacity int, uploader Uploader) *SharedBuffer {
	return &SharedBuffer{
		vertices: make([]PackedVertex, max(vertexCapacity, 1)),
		indices:  make([]uint32, max(indexCapacity, 1)),
		uploader: uploader,
	}
}

// VertexCapacity returns the number of vertices the buffer holds.
func (b *SharedBuffer) VertexCapacity() int { return len(b.vertices) }

// IndexCapacity returns the number of indices the buffer holds.
func (b *SharedBuffer) IndexCapacity() int { return len(b.indices) }

// Vertex returns the packed vertex at position i.
func (b *SharedBuffer) Vertex(i int) PackedVertex { return b.vertices[i] }

// Index returns the index at position i.
func (b *SharedBuffer) Index(i int) uint32 { return b.indices[i] }

// Indices returns a copy of indices [first, first+count).
func (b *SharedBuffer) Indices(first, count int) []uint32 {
	out := make([]uint32, count)
	copy(out, b.indices[first:first+count])
	return out
}

// VertexBytes serializes vertices [first, first+count) in the
// VertexLayout format.
func (b *SharedBuffer) VertexBytes(first, count int) []byte {
	out := make([]byte, count*PackedVertexStride)
	for i := range count {
		writePackedVertex(out[i*PackedVertexStride:], &b.vertices[first+i])
	}
	return out
}

// IndexBytes serializes indices [first, first+count) as little-endian
// uint32 values.
func (b *SharedBuffer) IndexBytes(first, count int) []byte {
	out := make([]byte, count*IndexStride)
	for i := range count {
		binary.LittleEndian.PutUint32(out[i*IndexStride:], b.indices[first+i])
	}
	return out
}

// VertexDescriptor describes a GPU vertex buffer able to hold the
// buffer's current vertex capacity.
func (b *SharedBuffer) VertexDescriptor() gputypes.BufferDescriptor {
	return gputypes.BufferDescriptor{
		Label: "drawq_vertices",
		Size:  uint64(len(b.vertices)) * PackedVertexStride,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	}
}

// IndexDescriptor describes a GPU index buffer able to hold the buffer's
// current index capacity.
func (b *SharedBuffer) IndexDescriptor() gputypes.BufferDescriptor {
	return gputypes.BufferDescriptor{
		Label: "drawq_indices",
		Size:  uint64(len(b.indices)) * IndexStride,
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	}
}

func (b *SharedBuffer) ensure(vertexEnd, indexEnd int) {
	if vertexEnd > len(b.vertices) {
		n := doubledSize(len(b.vertices), vertexEnd)
		Logger().Debug("drawq: growing shared vertex buffer", slog.Int("from", len(b.vertices)), slog.Int("to", n))
		b.vertices = growTo(b.vertices, n)
	}
	if indexEnd > len(b.indices) {
		n := doubledSize(len(b.indices), indexEnd)
		Logger().Debug("drawq: growing shared index buffer", slog.Int("from", len(b.indices)), slog.Int("to", n))
		b.indices = growTo(b.indices, n)
	}
}

// writeQueue copies the store's requests, in sorted order, into the
// buffer at the given offsets and uploads the written range.
// Indices are rebased so they address the shared vertex buffer directly.
func (b *SharedBuffer) writeQueue(s *RequestStore, vertexOffset, indexOffset int) error {
	b.ensure(vertexOffset+s.numVerticesUsed, indexOffset+s.numIndicesUsed)

	v, ix := vertexOffset, indexOffset
	for _, r := range s.ordering[:s.numRequests] {
		base := uint32(v) //nolint:gosec // buffer offsets fit uint32
		for _, src := range s.vertices[s.firstVertex[r] : s.firstVertex[r]+s.numVertices[r]] {
			b.vertices[v] = packVertex(src, s.baseColours[r], s.depths[r], s.fillTypes[r], s.spaces[r])
			v++
		}
		for _, idx := range s.indices[s.firstIndex[r] : s.firstIndex[r]+s.numIndices[r]] {
			b.indices[ix] = base + idx
			ix++
		}
	}

	if b.uploader == nil {
		return nil
	}
	if err := b.uploader.UploadVertices(b, vertexOffset, v-vertexOffset); err != nil {
		return fmt.Errorf("drawq: upload vertices [%d,%d): %w", vertexOffset, v, err)
	}
	if err := b.uploader.UploadIndices(b, indexOffset, ix-indexOffset); err != nil {
		return fmt.Errorf("drawq: upload indices [%d,%d): %w", indexOffset, ix, err)
	}
	return nil
}
