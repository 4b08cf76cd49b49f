// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"fmt"
	"log/slog"
	"slices"
)

// QueueID identifies a queue inside its group. The dynamic queue is
// always DynamicQueueID; persistent queues get increasing non-zero ids.
type QueueID uint64

// DynamicQueueID is the id of every group's dynamic queue.
const DynamicQueueID QueueID = 0

// Queue pairs a RequestStore with the location of its region in the
// group's shared buffer. Offsets are assigned by the owning QueueGroup.
type Queue struct {
	id    QueueID
	store *RequestStore

	firstVertexOffset int
	firstIndexOffset  int
}

// ID returns the queue id.
func (q *Queue) ID() QueueID { return q.id }

// Store returns the queue's request store.
func (q *Queue) Store() *RequestStore { return q.store }

// VertexOffset returns the first shared-buffer vertex of the queue.
func (q *Queue) VertexOffset() int { return q.firstVertexOffset }

// IndexOffset returns the first shared-buffer index of the queue.
func (q *Queue) IndexOffset() int { return q.firstIndexOffset }

// QueueGroup owns the dynamic queue and the persistent queues of one
// stage, and keeps their regions in the shared buffer packed.
//
// Persistent queues occupy the buffer from offset 0 in list order with
// no gaps; the dynamic queue starts where the last persistent queue ends.
type QueueGroup struct {
	buffer     *SharedBuffer
	dynamic    *Queue
	persistent []*Queue
	nextID     QueueID

	perRequest int
	layerSort  bool
}

// NewQueueGroup creates a group writing into buffer. The dynamic queue is
// sized from requestCapacity and perRequest; layerSort applies to every
// queue the group creates.
func NewQueueGroup(buffer *SharedBuffer, requestCapacity, perRequest int, layerSort bool) *QueueGroup {
	store := NewRequestStore(requestCapacity, perRequest)
	store.SetLayerSort(layerSort)
	return &QueueGroup{
		buffer:     buffer,
		dynamic:    &Queue{id: DynamicQueueID, store: store},
		nextID:     DynamicQueueID + 1,
		perRequest: max(perRequest, 1),
		layerSort:  layerSort,
	}
}

// Dynamic returns the dynamic queue.
func (g *QueueGroup) Dynamic() *Queue { return g.dynamic }

// Buffer returns the shared buffer.
func (g *QueueGroup) Buffer() *SharedBuffer { return g.buffer }

// PersistentQueues returns the persistent queues in buffer order.
// The returned slice is a copy.
func (g *QueueGroup) PersistentQueues() []*Queue {
	out := make([]*Queue, len(g.persistent))
	copy(out, g.persistent)
	return out
}

// PersistentQueue returns the persistent queue with the given id.
func (g *QueueGroup) PersistentQueue(id QueueID) (*Queue, bool) {
	i := g.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return g.persistent[i], true
}

func (g *QueueGroup) indexOf(id QueueID) int {
	for i, q := range g.persistent {
		if q.id == id {
			return i
		}
	}
	return -1
}

// ProcessDynamicQueue sorts the dynamic queue and, if it holds any
// requests, writes it into the shared buffer at its offset.
func (g *QueueGroup) ProcessDynamicQueue() error {
	return g.process(g.dynamic)
}

// ProcessPersistentQueue sorts and uploads the persistent queue with the
// given id. Unknown ids and empty queues are ignored.
func (g *QueueGroup) ProcessPersistentQueue(id QueueID) error {
	i := g.indexOf(id)
	if i < 0 {
		return nil
	}
	return g.process(g.persistent[i])
}

func (g *QueueGroup) process(q *Queue) error {
	q.store.Sort()
	if q.store.numRequests == 0 {
		return nil
	}
	return g.buffer.writeQueue(q.store, q.firstVertexOffset, q.firstIndexOffset)
}

// CreateNewPersistentQueue builds a persistent queue from requests and
// places it where the dynamic queue currently starts; the dynamic queue
// moves past it. If validate is set, the first invalid request aborts the
// whole creation and the group is left unchanged.
//
// The new queue is neither sorted nor uploaded; call
// ProcessPersistentQueue for that.
func (g *QueueGroup) CreateNewPersistentQueue(requests []DrawRequest, validate bool) (*Queue, error) {
	store := NewRequestStore(len(requests), g.perRequest)
	store.SetLayerSort(g.layerSort)
	for i := range requests {
		if !validate {
			store.Add(requests[i])
			continue
		}
		norm, err := requests[i].normalized()
		if err != nil {
			return nil, fmt.Errorf("drawq: persistent request %d: %w", i, err)
		}
		store.Add(norm)
	}

	q := &Queue{
		id:                g.nextID,
		store:             store,
		firstVertexOffset: g.dynamic.firstVertexOffset,
		firstIndexOffset:  g.dynamic.firstIndexOffset,
	}
	g.nextID++
	g.persistent = append(g.persistent, q)

	g.dynamic.firstVertexOffset += store.numVerticesUsed
	g.dynamic.firstIndexOffset += store.numIndicesUsed

	Logger().Debug("drawq: persistent queue created",
		slog.Uint64("id", uint64(q.id)),
		slog.Int("requests", store.numRequests),
		slog.Int("vertexOffset", q.firstVertexOffset),
		slog.Int("indexOffset", q.firstIndexOffset))
	return q, nil
}

// RemovePersistentQueue removes the persistent queue with the given id.
// Every later persistent queue is moved down to close the gap and
// re-uploaded, and the dynamic queue is moved to the new end. Unknown ids
// are ignored.
//
// The dynamic queue's contents are not rewritten; process it again before
// the next batch pass.
func (g *QueueGroup) RemovePersistentQueue(id QueueID) error {
	i := g.indexOf(id)
	if i < 0 {
		return nil
	}
	g.persistent = slices.Delete(g.persistent, i, i+1)

	var firstErr error
	for j := i; j < len(g.persistent); j++ {
		q := g.persistent[j]
		q.firstVertexOffset, q.firstIndexOffset = g.endOf(j - 1)
		if q.store.numRequests == 0 {
			continue
		}
		if err := g.buffer.writeQueue(q.store, q.firstVertexOffset, q.firstIndexOffset); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.dynamic.firstVertexOffset, g.dynamic.firstIndexOffset = g.endOf(len(g.persistent) - 1)

	Logger().Debug("drawq: persistent queue removed",
		slog.Uint64("id", uint64(id)),
		slog.Int("remaining", len(g.persistent)))
	return firstErr
}

// endOf returns the vertex and index positions just past persistent
// queue j, or 0, 0 when j is negative.
func (g *QueueGroup) endOf(j int) (vertex, index int) {
	if j < 0 {
		return 0, 0
	}
	q := g.persistent[j]
	return q.firstVertexOffset + q.store.numVerticesUsed, q.firstIndexOffset + q.store.numIndicesUsed
}
