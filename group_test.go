// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"errors"
	"testing"
)

func newTestGroup(u Uploader) *QueueGroup {
	return NewQueueGroup(NewSharedBuffer(16, 16, u), 4, 4, true)
}

func assertOffsets(t *testing.T, name string, q *Queue, vertex, index int) {
	t.Helper()
	if q.VertexOffset() != vertex || q.IndexOffset() != index {
		t.Errorf("%s offsets = (%d, %d), want (%d, %d)", name, q.VertexOffset(), q.IndexOffset(), vertex, index)
	}
}

func TestNewQueueGroup(t *testing.T) {
	g := newTestGroup(nil)

	if g.Dynamic().ID() != DynamicQueueID {
		t.Errorf("Dynamic().ID() = %d, want %d", g.Dynamic().ID(), DynamicQueueID)
	}
	assertOffsets(t, "dynamic", g.Dynamic(), 0, 0)
	if n := len(g.PersistentQueues()); n != 0 {
		t.Errorf("len(PersistentQueues()) = %d, want 0", n)
	}
}

func TestCreateNewPersistentQueueShiftsDynamic(t *testing.T) {
	g := newTestGroup(nil)

	p1, err := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0)}, true)
	if err != nil {
		t.Fatalf("CreateNewPersistentQueue() error = %v", err)
	}
	p2, err := g.CreateNewPersistentQueue([]DrawRequest{triangle(0, 0), triangle(1, 0)}, false)
	if err != nil {
		t.Fatalf("CreateNewPersistentQueue() error = %v", err)
	}

	if p1.ID() == DynamicQueueID || p2.ID() == p1.ID() {
		t.Errorf("ids = %d, %d, want distinct non-zero ids", p1.ID(), p2.ID())
	}
	assertOffsets(t, "p1", p1, 0, 0)
	assertOffsets(t, "p2", p2, 4, 6)
	assertOffsets(t, "dynamic", g.Dynamic(), 10, 12)

	got, ok := g.PersistentQueue(p2.ID())
	if !ok || got != p2 {
		t.Errorf("PersistentQueue(%d) = %v, %v, want p2", p2.ID(), got, ok)
	}
}

func TestCreateNewPersistentQueueValidationFailure(t *testing.T) {
	g := newTestGroup(nil)
	bad := triangle(0, 0)
	bad.Layer = -1

	q, err := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0), bad}, true)
	if err == nil {
		t.Fatal("CreateNewPersistentQueue() error = nil, want validation error")
	}
	if !errors.Is(err, ErrNegativeLayer) {
		t.Errorf("error = %v, want ErrNegativeLayer", err)
	}
	if q != nil {
		t.Error("queue should be nil on failure")
	}
	if n := len(g.PersistentQueues()); n != 0 {
		t.Errorf("len(PersistentQueues()) = %d, want 0", n)
	}
	assertOffsets(t, "dynamic", g.Dynamic(), 0, 0)
}

func TestCreateNewPersistentQueueWithoutValidationKeepsRaw(t *testing.T) {
	g := newTestGroup(nil)
	raw := triangle(0, 0)
	raw.Texture0 = 5 // would be cleared by validation

	q, err := g.CreateNewPersistentQueue([]DrawRequest{raw}, false)
	if err != nil {
		t.Fatalf("CreateNewPersistentQueue() error = %v", err)
	}
	got, _ := q.Store().Request(0)
	if got.Texture0 != 5 {
		t.Errorf("Texture0 = %d, want 5", got.Texture0)
	}
}

func TestProcessPersistentQueueWritesSortedRebasedData(t *testing.T) {
	u := &recordingUploader{}
	g := newTestGroup(u)

	// Pushes the second queue to vertex 4, index 6.
	first, _ := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0)}, true)
	q, _ := g.CreateNewPersistentQueue([]DrawRequest{triangle(0, 0.1), quad(0, 0.9)}, true)

	if err := g.ProcessPersistentQueue(q.ID()); err != nil {
		t.Fatalf("ProcessPersistentQueue() error = %v", err)
	}

	// The quad is farther back, so it comes first.
	buf := g.Buffer()
	want := []uint32{4, 5, 6, 6, 7, 4, 8, 9, 10}
	got := buf.Indices(6, 9)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Indices(6, 9) = %v, want %v", got, want)
		}
	}
	if z := buf.Vertex(4).Position[2]; z != 0.9 {
		t.Errorf("Vertex(4) depth = %v, want 0.9", z)
	}

	if len(u.vertices) != 1 || u.vertices[0] != [2]int{4, 7} {
		t.Errorf("vertex uploads = %v, want [[4 7]]", u.vertices)
	}
	if len(u.indices) != 1 || u.indices[0] != [2]int{6, 9} {
		t.Errorf("index uploads = %v, want [[6 9]]", u.indices)
	}

	// The first queue was never processed.
	if err := g.ProcessPersistentQueue(first.ID()); err != nil {
		t.Fatalf("ProcessPersistentQueue() error = %v", err)
	}
	if len(u.indices) != 2 || u.indices[1] != [2]int{0, 6} {
		t.Errorf("index uploads = %v, want second upload [0 6]", u.indices)
	}
}

func TestProcessPersistentQueueNoOps(t *testing.T) {
	u := &recordingUploader{}
	g := newTestGroup(u)

	empty, err := g.CreateNewPersistentQueue(nil, true)
	if err != nil {
		t.Fatalf("CreateNewPersistentQueue(nil) error = %v", err)
	}
	if err := g.ProcessPersistentQueue(empty.ID()); err != nil {
		t.Errorf("ProcessPersistentQueue(empty) error = %v", err)
	}
	if err := g.ProcessPersistentQueue(999); err != nil {
		t.Errorf("ProcessPersistentQueue(unknown) error = %v", err)
	}
	if len(u.vertices) != 0 || len(u.indices) != 0 {
		t.Errorf("uploads = %v/%v, want none", u.vertices, u.indices)
	}
}

func TestProcessDynamicQueue(t *testing.T) {
	u := &recordingUploader{}
	g := newTestGroup(u)

	if err := g.ProcessDynamicQueue(); err != nil {
		t.Fatalf("ProcessDynamicQueue() error = %v", err)
	}
	if len(u.indices) != 0 {
		t.Errorf("empty dynamic queue uploaded %v", u.indices)
	}

	g.CreateNewPersistentQueue([]DrawRequest{triangle(0, 0)}, true)
	g.Dynamic().Store().Add(quad(0, 0))
	if err := g.ProcessDynamicQueue(); err != nil {
		t.Fatalf("ProcessDynamicQueue() error = %v", err)
	}
	if len(u.indices) != 1 || u.indices[0] != [2]int{3, 6} {
		t.Errorf("index uploads = %v, want [[3 6]]", u.indices)
	}
	if got := g.Buffer().Index(3); got != 3 {
		t.Errorf("Index(3) = %d, want 3 (rebased past persistent vertices)", got)
	}
}

func TestProcessDynamicQueueUploadError(t *testing.T) {
	errUpload := errors.New("device lost")
	g := newTestGroup(&recordingUploader{err: errUpload})
	g.Dynamic().Store().Add(triangle(0, 0))

	err := g.ProcessDynamicQueue()
	if !errors.Is(err, errUpload) {
		t.Errorf("ProcessDynamicQueue() error = %v, want %v", err, errUpload)
	}
}

func TestRemovePersistentQueueRecompacts(t *testing.T) {
	u := &recordingUploader{}
	g := newTestGroup(u)

	// p1: 4 vertices, 6 indices. p2: 6 and 6. p3: 3 and 3.
	p1, _ := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0)}, true)
	p2, _ := g.CreateNewPersistentQueue([]DrawRequest{triangle(0, 0), triangle(0, 0.5)}, true)
	p3, _ := g.CreateNewPersistentQueue([]DrawRequest{triangle(0, 0)}, true)
	for _, q := range []*Queue{p1, p2, p3} {
		g.ProcessPersistentQueue(q.ID())
	}
	assertOffsets(t, "p3 before", p3, 10, 12)
	assertOffsets(t, "dynamic before", g.Dynamic(), 13, 15)

	u.vertices, u.indices = nil, nil
	if err := g.RemovePersistentQueue(p2.ID()); err != nil {
		t.Fatalf("RemovePersistentQueue() error = %v", err)
	}

	assertOffsets(t, "p1", p1, 0, 0)
	assertOffsets(t, "p3", p3, 4, 6)
	assertOffsets(t, "dynamic", g.Dynamic(), 7, 9)

	queues := g.PersistentQueues()
	if len(queues) != 2 || queues[0] != p1 || queues[1] != p3 {
		t.Errorf("PersistentQueues() = %v, want [p1 p3]", queues)
	}
	if _, ok := g.PersistentQueue(p2.ID()); ok {
		t.Error("removed queue still found")
	}

	// Only p3 moved, so only p3 is re-uploaded.
	if len(u.indices) != 1 || u.indices[0] != [2]int{6, 3} {
		t.Errorf("index uploads = %v, want [[6 3]]", u.indices)
	}
	if got := g.Buffer().Indices(6, 3); got[0] != 4 || got[1] != 5 || got[2] != 6 {
		t.Errorf("p3 indices = %v, want [4 5 6]", got)
	}
}

func TestRemovePersistentQueueLastResetsDynamic(t *testing.T) {
	g := newTestGroup(nil)
	p, _ := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0)}, true)
	assertOffsets(t, "dynamic before", g.Dynamic(), 4, 6)

	if err := g.RemovePersistentQueue(p.ID()); err != nil {
		t.Fatalf("RemovePersistentQueue() error = %v", err)
	}
	assertOffsets(t, "dynamic", g.Dynamic(), 0, 0)
}

func TestRemovePersistentQueueUnknownIsNoOp(t *testing.T) {
	g := newTestGroup(nil)
	p, _ := g.CreateNewPersistentQueue([]DrawRequest{quad(0, 0)}, true)

	if err := g.RemovePersistentQueue(p.ID() + 10); err != nil {
		t.Errorf("RemovePersistentQueue(unknown) error = %v", err)
	}
	if err := g.RemovePersistentQueue(DynamicQueueID); err != nil {
		t.Errorf("RemovePersistentQueue(dynamic id) error = %v", err)
	}
	if n := len(g.PersistentQueues()); n != 1 {
		t.Errorf("len(PersistentQueues()) = %d, want 1", n)
	}
	assertOffsets(t, "dynamic", g.Dynamic(), 4, 6)

	// Removing twice is also a no-op.
	g.RemovePersistentQueue(p.ID())
	if err := g.RemovePersistentQueue(p.ID()); err != nil {
		t.Errorf("second RemovePersistentQueue() error = %v", err)
	}
}
