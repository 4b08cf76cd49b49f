// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"cmp"
	"slices"
)

// sortPass compares requests a and b by a single key.
type sortPass func(s *RequestStore, a, b int) int

// Passes run in this order; each is stable, so the last pass is the
// primary key and earlier passes break its ties in reverse order.
var textureSortPasses = []sortPass{
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.wraps1[a], s.wraps1[b]) },
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.wraps0[a], s.wraps0[b]) },
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.fillTypes[a], s.fillTypes[b]) },
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.textures1[a], s.textures1[b]) },
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.textures0[a], s.textures0[b]) },
}

var layerSortPasses = []sortPass{
	// back to front
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.depths[b], s.depths[a]) },
	func(s *RequestStore, a, b int) int { return cmp.Compare(s.layers[a], s.layers[b]) },
}

// Sort computes the store's draw order without moving request data.
//
// The resulting order is by layer ascending, then depth descending (back
// to front), then texture0, texture1, fill type, wrap0 and wrap1. With
// layer sorting disabled only the texture keys apply.
func (s *RequestStore) Sort() {
	order := s.ordering[:s.numRequests]
	for i := range order {
		order[i] = i
	}
	if len(order) < 2 {
		return
	}

	apply := func(p sortPass) {
		slices.SortStableFunc(order, func(a, b int) int { return p(s, a, b) })
	}
	for _, p := range textureSortPasses {
		apply(p)
	}
	if !s.layerSort {
		return
	}
	for _, p := range layerSortPasses {
		apply(p)
	}
}
