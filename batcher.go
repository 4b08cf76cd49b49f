// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import "log/slog"

// lane is one sorted queue as consumed by the batcher.
type lane struct {
	q *Queue

	pos     int // next position in the store's ordering
	index   int // local index cursor: indices consumed so far
	active  bool
	inLayer bool
}

func (l *lane) current() int { return l.q.store.ordering[l.pos] }

// consume advances the lane past its current request.
func (l *lane) consume() {
	s := l.q.store
	l.index += s.numIndices[l.current()]
	l.pos++
	l.active = l.pos < s.numRequests
}

// batchState is the texture state claimed by the batch being built.
// A zero texture or WrapNone leaves the slot unclaimed.
type batchState struct {
	tex0, tex1   TextureID
	wrap0, wrap1 TextureWrap
}

func texCompatible(claimed, t TextureID) bool {
	return claimed == NoTexture || t == NoTexture || claimed == t
}

func wrapCompatible(claimed, w TextureWrap) bool {
	return claimed == WrapNone || w == WrapNone || claimed == w
}

func (st *batchState) accepts(s *RequestStore, r int) bool {
	return texCompatible(st.tex0, s.textures0[r]) &&
		texCompatible(st.tex1, s.textures1[r]) &&
		wrapCompatible(st.wrap0, s.wraps0[r]) &&
		wrapCompatible(st.wrap1, s.wraps1[r])
}

func (st *batchState) claim(s *RequestStore, r int) {
	if st.tex0 == NoTexture {
		st.tex0 = s.textures0[r]
	}
	if st.tex1 == NoTexture {
		st.tex1 = s.textures1[r]
	}
	if st.wrap0 == WrapNone {
		st.wrap0 = s.wraps0[r]
	}
	if st.wrap1 == WrapNone {
		st.wrap1 = s.wraps1[r]
	}
}

// Batcher merges sorted queues into draw batches.
//
// Each queue is a lane. Batches always come from a single lane because
// only one lane's indices are contiguous in the shared buffer. Among the
// lanes sitting at the lowest pending layer, the one whose next request is
// farthest back starts the batch, and it keeps extending while its next
// request stays in the layer, is not in front of any other lane's pending
// request, and is texture-compatible with the batch.
//
// A Batcher reuses its storage between calls and is not safe for
// concurrent use.
type Batcher struct {
	lanes []lane
	pool  *BatchPool
}

// NewBatcher creates a batcher whose batch pool starts at capacity.
func NewBatcher(capacity int) *Batcher {
	return &Batcher{pool: NewBatchPool(capacity)}
}

// Process batches the dynamic queue and the persistent queues. The queues
// must already be sorted and written to the shared buffer. Lanes are
// visited dynamic first, then persistent in the given order; when two
// lanes tie on depth the earlier lane wins.
//
// The returned slice is owned by the batcher and valid until the next
// call. dynamic may be nil.
func (b *Batcher) Process(dynamic *Queue, persistent []*Queue) []Batch {
	b.pool.Reset()
	b.lanes = b.lanes[:0]
	if dynamic != nil {
		b.addLane(dynamic)
	}
	for _, q := range persistent {
		b.addLane(q)
	}

	for {
		batch, ok := b.nextBatch()
		if !ok {
			break
		}
		b.pool.Add(batch)
	}

	Logger().Debug("drawq: batched queues",
		slog.Int("lanes", len(b.lanes)),
		slog.Int("batches", b.pool.Len()))
	return b.pool.Batches()
}

func (b *Batcher) addLane(q *Queue) {
	b.lanes = append(b.lanes, lane{q: q, active: q.store.numRequests > 0})
}

// nextBatch builds the next batch. It returns false once every lane is
// exhausted.
func (b *Batcher) nextBatch() (Batch, bool) {
	layer, found := 0, false
	for i := range b.lanes {
		l := &b.lanes[i]
		if !l.active {
			continue
		}
		if ly := l.q.store.layers[l.current()]; !found || ly < layer {
			layer, found = ly, true
		}
	}
	if !found {
		return Batch{}, false
	}

	src := -1
	var srcDepth float32
	for i := range b.lanes {
		l := &b.lanes[i]
		l.inLayer = l.active && l.q.store.layers[l.current()] == layer
		if !l.inLayer {
			continue
		}
		if d := l.q.store.depths[l.current()]; src < 0 || d > srcDepth {
			src, srcDepth = i, d
		}
	}

	// Farthest pending depth among the other lanes in this layer. The
	// source lane may not pass in front of it.
	var limit float32
	hasLimit := false
	for i := range b.lanes {
		l := &b.lanes[i]
		if i == src || !l.inLayer {
			continue
		}
		if d := l.q.store.depths[l.current()]; !hasLimit || d > limit {
			limit, hasLimit = d, true
		}
	}

	l := &b.lanes[src]
	s := l.q.store
	start := l.index

	var st batchState
	st.claim(s, l.current())
	l.consume()

	for l.active {
		r := l.current()
		if s.layers[r] != layer {
			break
		}
		if hasLimit && s.depths[r] < limit {
			break
		}
		if !st.accepts(s, r) {
			break
		}
		st.claim(s, r)
		l.consume()
	}

	return Batch{
		StartIndex:   l.q.firstIndexOffset + start,
		NumIndices:   l.index - start,
		Texture0:     st.tex0,
		Texture1:     st.tex1,
		TextureWrap0: st.wrap0,
		TextureWrap1: st.wrap1,
	}, true
}
