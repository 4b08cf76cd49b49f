// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawq collects 2D draw requests and turns them into an ordered
// list of GPU draw batches.
//
// A draw request is a small triangle list with colour, texture, depth and
// layer metadata. Requests are appended to a [RequestStore], which keeps
// them as parallel arrays and copies their vertices and indices into its
// own pools. Each rendering stage owns one [QueueGroup]: a dynamic queue
// that is refilled every frame, plus any number of persistent queues that
// are built once and kept until removed.
//
// # Ordering
//
// Requests draw in painter's order: lower layers first, and inside a layer
// from the back (depth 1) to the front (depth 0). Ties are broken by
// texture, fill type and wrap mode so that compatible requests end up next
// to each other.
//
// # Batching
//
// All queues of a group share a single vertex/index buffer ([SharedBuffer]).
// Persistent queues are packed first, in creation order, and the dynamic
// queue follows the last one. The [Batcher] merges the sorted queues and
// emits one [Batch] per indexed draw call, extending each batch for as long
// as textures and wrap modes stay compatible and the global back-to-front
// order allows it.
//
// # Usage
//
//	stage := drawq.NewStage(drawq.WithRequestCapacity(256))
//
//	bg, err := stage.CreatePersistentQueue(background, true)
//	if err != nil {
//	    return err
//	}
//
//	for frame := range frames {
//	    for _, req := range frame.Requests {
//	        stage.Draw(req) // invalid requests are logged and dropped
//	    }
//	    batches, err := stage.Prepare()
//	    if err != nil {
//	        return err
//	    }
//	    render(stage.Buffer(), batches)
//	    stage.EndFrame()
//	}
//
//	stage.RemovePersistentQueue(bg)
//
// # Concurrency
//
// A stage is driven from a single render goroutine. Adding requests while a
// sort or batch pass runs on the same queue is not supported. Only
// [SetLogger] and [Logger] are safe for concurrent use.
package drawq
