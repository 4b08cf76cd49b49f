// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"fmt"
	"log/slog"
)

// Stage is the per-render-stage front end: a QueueGroup, its shared
// buffer and a Batcher driven once per frame.
type Stage struct {
	cfg     Config
	buffer  *SharedBuffer
	group   *QueueGroup
	batcher *Batcher
	batches []Batch
}

// Stats summarizes a stage's current contents.
type Stats struct {
	DynamicRequests  int
	PersistentQueues int
	Vertices         int // vertices in use across all queues
	Indices          int // indices in use across all queues
	Batches          int // batches produced by the last Prepare
}

// NewStage creates a stage configured by opts.
func NewStage(opts ...Option) *Stage {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.sanitize()

	pool := cfg.RequestCapacity * cfg.VerticesPerRequest
	buffer := NewSharedBuffer(pool, pool, cfg.Uploader)
	return &Stage{
		cfg:     cfg,
		buffer:  buffer,
		group:   NewQueueGroup(buffer, cfg.RequestCapacity, cfg.VerticesPerRequest, cfg.LayerSort),
		batcher: NewBatcher(cfg.BatchCapacity),
	}
}

// Config returns the stage settings.
func (st *Stage) Config() Config { return st.cfg }

// Group returns the stage's queue group.
func (st *Stage) Group() *QueueGroup { return st.group }

// Buffer returns the shared vertex/index buffer.
func (st *Stage) Buffer() *SharedBuffer { return st.buffer }

// Draw validates req and adds it to the dynamic queue. Invalid requests
// are logged and dropped.
func (st *Stage) Draw(req DrawRequest) bool {
	return st.group.dynamic.store.AddIfValid(req)
}

// DrawUnchecked adds a pre-validated request to the dynamic queue.
func (st *Stage) DrawUnchecked(req DrawRequest) {
	st.group.dynamic.store.Add(req)
}

// CreatePersistentQueue builds, sorts and uploads a persistent queue and
// returns its id.
func (st *Stage) CreatePersistentQueue(requests []DrawRequest, validate bool) (QueueID, error) {
	q, err := st.group.CreateNewPersistentQueue(requests, validate)
	if err != nil {
		return 0, err
	}
	if err := st.group.ProcessPersistentQueue(q.id); err != nil {
		return q.id, fmt.Errorf("drawq: process persistent queue %d: %w", q.id, err)
	}
	return q.id, nil
}

// RemovePersistentQueue destroys a persistent queue. Unknown ids are
// ignored.
func (st *Stage) RemovePersistentQueue(id QueueID) error {
	return st.group.RemovePersistentQueue(id)
}

// Prepare sorts and uploads the dynamic queue and returns the frame's
// batches. The slice is valid until the next Prepare.
func (st *Stage) Prepare() ([]Batch, error) {
	if err := st.group.ProcessDynamicQueue(); err != nil {
		Logger().Warn("drawq: dynamic queue upload failed", slog.Any("err", err))
		st.batches = st.batches[:0]
		return nil, err
	}
	st.batches = st.batcher.Process(st.group.dynamic, st.group.persistent)
	return st.batches, nil
}

// EndFrame finishes the frame, clearing the dynamic queue when AutoClear
// is set.
func (st *Stage) EndFrame() {
	if st.cfg.AutoClear {
		st.group.dynamic.store.Clear()
	}
}

// Stats returns the stage's current counters.
func (st *Stage) Stats() Stats {
	return Stats{
		DynamicRequests:  st.group.dynamic.store.numRequests,
		PersistentQueues: len(st.group.persistent),
		Vertices:         st.group.dynamic.firstVertexOffset + st.group.dynamic.store.numVerticesUsed,
		Indices:          st.group.dynamic.firstIndexOffset + st.group.dynamic.store.numIndicesUsed,
		Batches:          len(st.batches),
	}
}
