// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"log/slog"
	"slices"

	"golang.org/x/image/math/f32"
)

// RequestStore holds draw requests as parallel arrays indexed by request
// position, plus private vertex and index pools the requests point into.
//
// Every array group (per-request fields, vertex pool, index pool) doubles
// independently when it overflows, preserving existing entries. Clear
// resets the counters but keeps all capacity.
//
// RequestStore is not safe for concurrent use.
type RequestStore struct {
	spaces      []CoordinateSpace
	fillTypes   []FillType
	baseColours []f32.Vec4
	textures0   []TextureID
	textures1   []TextureID
	wraps0      []TextureWrap
	wraps1      []TextureWrap
	depths      []float32
	layers      []int

	firstVertex []int
	numVertices []int
	firstIndex  []int
	numIndices  []int

	// ordering is the sorted traversal order of requests [0, numRequests).
	ordering []int

	vertices []Vertex
	indices  []uint32

	numRequests     int
	numVerticesUsed int
	numIndicesUsed  int

	layerSort bool
}

// NewRequestStore creates a store with room for requestCapacity requests
// and requestCapacity*perRequest vertices and indices. Non-positive
// arguments are raised to 1.
func NewRequestStore(requestCapacity, perRequest int) *RequestStore {
	requestCapacity = max(requestCapacity, 1)
	perRequest = max(perRequest, 1)

	s := &RequestStore{layerSort: true}
	s.allocRequests(requestCapacity)
	s.vertices = make([]Vertex, requestCapacity*perRequest)
	s.indices = make([]uint32, requestCapacity*perRequest)
	return s
}

func (s *RequestStore) allocRequests(n int) {
	s.spaces = growTo(s.spaces, n)
	s.fillTypes = growTo(s.fillTypes, n)
	s.baseColours = growTo(s.baseColours, n)
	s.textures0 = growTo(s.textures0, n)
	s.textures1 = growTo(s.textures1, n)
	s.wraps0 = growTo(s.wraps0, n)
	s.wraps1 = growTo(s.wraps1, n)
	s.depths = growTo(s.depths, n)
	s.layers = growTo(s.layers, n)
	s.firstVertex = growTo(s.firstVertex, n)
	s.numVertices = growTo(s.numVertices, n)
	s.firstIndex = growTo(s.firstIndex, n)
	s.numIndices = growTo(s.numIndices, n)
	s.ordering = growTo(s.ordering, n)
}

// growTo returns s resized to exactly n entries, keeping its contents.
func growTo[T any](s []T, n int) []T {
	if n <= len(s) {
		return s
	}
	out := make([]T, n)
	copy(out, s)
	return out
}

// doubledSize returns the smallest power-of-two multiple of size that
// holds need entries.
func doubledSize(size, need int) int {
	size = max(size, 1)
	for size < need {
		size *= 2
	}
	return size
}

// SetLayerSort enables or disables the depth and layer sort passes.
// Stages that do not use layering disable them so ordering is keyed by
// texture and fill type only.
func (s *RequestStore) SetLayerSort(enabled bool) {
	s.layerSort = enabled
}

// LayerSort reports whether Sort orders by layer and depth.
func (s *RequestStore) LayerSort() bool {
	return s.layerSort
}

// AddIfValid validates req and appends it. Invalid requests are logged
// at warn level and dropped; the store is left unchanged and false is
// returned.
func (s *RequestStore) AddIfValid(req DrawRequest) bool {
	norm, err := req.normalized()
	if err != nil {
		Logger().Warn("drawq: dropping invalid draw request",
			slog.String("fill", req.FillType.String()),
			slog.Int("layer", req.Layer),
			slog.Int("vertices", len(req.Vertices)),
			slog.Int("indices", len(req.Indices)),
			slog.Any("err", err))
		return false
	}
	s.Add(norm)
	return true
}

// Add appends req without validating it. Callers must pass requests that
// already satisfy DrawRequest.Validate.
func (s *RequestStore) Add(req DrawRequest) {
	if s.numRequests == len(s.ordering) {
		n := doubledSize(len(s.ordering), s.numRequests+1)
		Logger().Debug("drawq: growing request arrays", slog.Int("from", len(s.ordering)), slog.Int("to", n))
		s.allocRequests(n)
	}
	if need := s.numVerticesUsed + len(req.Vertices); need > len(s.vertices) {
		n := doubledSize(len(s.vertices), need)
		Logger().Debug("drawq: growing vertex pool", slog.Int("from", len(s.vertices)), slog.Int("to", n))
		s.vertices = growTo(s.vertices, n)
	}
	if need := s.numIndicesUsed + len(req.Indices); need > len(s.indices) {
		n := doubledSize(len(s.indices), need)
		Logger().Debug("drawq: growing index pool", slog.Int("from", len(s.indices)), slog.Int("to", n))
		s.indices = growTo(s.indices, n)
	}

	i := s.numRequests
	s.spaces[i] = req.CoordinateSpace
	s.fillTypes[i] = req.FillType
	s.baseColours[i] = req.BaseColour
	s.textures0[i] = req.Texture0
	s.textures1[i] = req.Texture1
	s.wraps0[i] = req.TextureWrap0
	s.wraps1[i] = req.TextureWrap1
	s.depths[i] = req.Depth
	s.layers[i] = req.Layer

	s.firstVertex[i] = s.numVerticesUsed
	s.numVertices[i] = len(req.Vertices)
	copy(s.vertices[s.numVerticesUsed:], req.Vertices)
	s.numVerticesUsed += len(req.Vertices)

	s.firstIndex[i] = s.numIndicesUsed
	s.numIndices[i] = len(req.Indices)
	copy(s.indices[s.numIndicesUsed:], req.Indices)
	s.numIndicesUsed += len(req.Indices)

	s.ordering[i] = i
	s.numRequests++
}

// Clear forgets all requests. Capacity is kept.
func (s *RequestStore) Clear() {
	s.numRequests = 0
	s.numVerticesUsed = 0
	s.numIndicesUsed = 0
}

// NumRequests returns the number of stored requests.
func (s *RequestStore) NumRequests() int { return s.numRequests }

// NumVertices returns the number of pooled vertices in use.
func (s *RequestStore) NumVertices() int { return s.numVerticesUsed }

// NumIndices returns the number of pooled indices in use.
func (s *RequestStore) NumIndices() int { return s.numIndicesUsed }

// RequestCapacity returns the size of the per-request arrays.
func (s *RequestStore) RequestCapacity() int { return len(s.ordering) }

// VertexCapacity returns the size of the vertex pool.
func (s *RequestStore) VertexCapacity() int { return len(s.vertices) }

// IndexCapacity returns the size of the index pool.
func (s *RequestStore) IndexCapacity() int { return len(s.indices) }

// Request returns a copy of the i-th stored request in insertion order.
// The boolean is false if i is out of range.
func (s *RequestStore) Request(i int) (DrawRequest, bool) {
	if i < 0 || i >= s.numRequests {
		return DrawRequest{}, false
	}
	fv, fi := s.firstVertex[i], s.firstIndex[i]
	return DrawRequest{
		CoordinateSpace: s.spaces[i],
		FillType:        s.fillTypes[i],
		Vertices:        slices.Clone(s.vertices[fv : fv+s.numVertices[i]]),
		Indices:         slices.Clone(s.indices[fi : fi+s.numIndices[i]]),
		BaseColour:      s.baseColours[i],
		Texture0:        s.textures0[i],
		Texture1:        s.textures1[i],
		TextureWrap0:    s.wraps0[i],
		TextureWrap1:    s.wraps1[i],
		Depth:           s.depths[i],
		Layer:           s.layers[i],
	}, true
}

// Ordering returns a copy of the current sorted request order.
func (s *RequestStore) Ordering() []int {
	return slices.Clone(s.ordering[:s.numRequests])
}
