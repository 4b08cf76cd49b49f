// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import "errors"

// Validation errors returned by DrawRequest.Validate.
var (
	// ErrTooFewVertices is returned when a request has fewer than 3 vertices.
	ErrTooFewVertices = errors.New("drawq: request needs at least 3 vertices")

	// ErrIndexCount is returned when the index count is zero or not a
	// multiple of 3.
	ErrIndexCount = errors.New("drawq: index count must be a positive multiple of 3")

	// ErrIndexOutOfRange is returned when an index addresses a vertex
	// outside the request.
	ErrIndexOutOfRange = errors.New("drawq: index out of vertex range")

	// ErrDepthRange is returned when depth is outside [0, 1].
	ErrDepthRange = errors.New("drawq: depth must be within [0, 1]")

	// ErrNegativeLayer is returned for layers below zero.
	ErrNegativeLayer = errors.New("drawq: layer must not be negative")

	// ErrMissingTexture is returned when a textured fill has no texture bound.
	ErrMissingTexture = errors.New("drawq: textured request has no texture")

	// ErrDuplicateTexture is returned when a dual-textured request uses
	// the same texture in both slots.
	ErrDuplicateTexture = errors.New("drawq: dual-textured request uses the same texture twice")

	// ErrUnknownFillType is returned for fill types outside the enum.
	ErrUnknownFillType = errors.New("drawq: unknown fill type")
)
