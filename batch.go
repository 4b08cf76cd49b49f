// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Batch describes one indexed draw call over the shared buffer.
type Batch struct {
	// StartIndex is the first index in the shared index buffer.
	StartIndex int
	// NumIndices is the number of indices to draw.
	NumIndices int

	Texture0     TextureID
	Texture1     TextureID
	TextureWrap0 TextureWrap
	TextureWrap1 TextureWrap
}

// String returns a compact description of the batch.
func (b Batch) String() string {
	return fmt.Sprintf("Batch{start=%d count=%d tex0=%d/%s tex1=%d/%s}",
		b.StartIndex, b.NumIndices, b.Texture0, b.TextureWrap0, b.Texture1, b.TextureWrap1)
}

// Samplers returns the sampler descriptors for texture slots 0 and 1.
func (b Batch) Samplers() [2]gputypes.SamplerDescriptor {
	return [2]gputypes.SamplerDescriptor{
		samplerFor(b.TextureWrap0),
		samplerFor(b.TextureWrap1),
	}
}

func samplerFor(w TextureWrap) gputypes.SamplerDescriptor {
	d := gputypes.LinearSamplerDescriptor()
	m := w.AddressMode()
	d.AddressModeU, d.AddressModeV, d.AddressModeW = m, m, m
	return d
}

// BatchPool is a reusable list of batches. Its storage doubles when
// full and is kept across Reset.
type BatchPool struct {
	batches []Batch
	n       int
}

// NewBatchPool creates a pool with the given initial capacity.
func NewBatchPool(capacity int) *BatchPool {
	return &BatchPool{batches: make([]Batch, max(capacity, 1))}
}

// Add appends b, doubling the storage if needed.
func (p *BatchPool) Add(b Batch) {
	if p.n == len(p.batches) {
		p.batches = growTo(p.batches, doubledSize(len(p.batches), p.n+1))
	}
	p.batches[p.n] = b
	p.n++
}

// Reset empties the pool without releasing storage.
func (p *BatchPool) Reset() { p.n = 0 }

// Len returns the number of batches in the pool.
func (p *BatchPool) Len() int { return p.n }

// Capacity returns the size of the pool's storage.
func (p *BatchPool) Capacity() int { return len(p.batches) }

// Batches returns the pooled batches. The slice aliases the pool and is
// only valid until the next Add or Reset.
func (p *BatchPool) Batches() []Batch { return p.batches[:p.n] }
