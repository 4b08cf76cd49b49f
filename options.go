// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

// Default sizing used when an option is absent or not positive.
const (
	DefaultRequestCapacity    = 64
	DefaultVerticesPerRequest = 4
	DefaultBatchCapacity      = 16
)

// Config holds the settings of a Stage.
type Config struct {
	// RequestCapacity is the initial request capacity of the dynamic queue.
	RequestCapacity int

	// VerticesPerRequest sizes the initial vertex and index pools as a
	// multiple of the request capacity.
	VerticesPerRequest int

	// LayerSort enables the depth and layer sort keys. Stages that do not
	// layer their output (height maps, masks) turn it off to batch purely
	// by texture.
	LayerSort bool

	// AutoClear empties the dynamic queue in EndFrame.
	AutoClear bool

	// BatchCapacity is the initial size of the batch pool.
	BatchCapacity int

	// Uploader receives every segment written to the shared buffer.
	// Nil keeps the buffer CPU-only.
	Uploader Uploader
}

// DefaultConfig returns the default stage settings: layer sorting and
// auto-clear on, no uploader.
func DefaultConfig() Config {
	return Config{
		RequestCapacity:    DefaultRequestCapacity,
		VerticesPerRequest: DefaultVerticesPerRequest,
		LayerSort:          true,
		AutoClear:          true,
		BatchCapacity:      DefaultBatchCapacity,
	}
}

func (c *Config) sanitize() {
	if c.RequestCapacity <= 0 {
		c.RequestCapacity = DefaultRequestCapacity
	}
	if c.VerticesPerRequest <= 0 {
		c.VerticesPerRequest = DefaultVerticesPerRequest
	}
	if c.BatchCapacity <= 0 {
		c.BatchCapacity = DefaultBatchCapacity
	}
}

// Option configures a Stage during creation.
//
// Example:
//
//	stage := drawq.NewStage(
//	    drawq.WithRequestCapacity(1024),
//	    drawq.WithLayerSort(false),
//	)
type Option func(*Config)

// WithRequestCapacity sets the initial request capacity.
func WithRequestCapacity(n int) Option {
	return func(c *Config) {
		c.RequestCapacity = n
	}
}

// WithVerticesPerRequest sets the vertex/index pool multiplier.
func WithVerticesPerRequest(n int) Option {
	return func(c *Config) {
		c.VerticesPerRequest = n
	}
}

// WithLayerSort enables or disables the depth and layer sort keys.
func WithLayerSort(enabled bool) Option {
	return func(c *Config) {
		c.LayerSort = enabled
	}
}

// WithAutoClear controls whether EndFrame empties the dynamic queue.
func WithAutoClear(enabled bool) Option {
	return func(c *Config) {
		c.AutoClear = enabled
	}
}

// WithBatchCapacity sets the initial batch pool size.
func WithBatchCapacity(n int) Option {
	return func(c *Config) {
		c.BatchCapacity = n
	}
}

// WithUploader forwards shared buffer writes to u.
//
// Example:
//
//	up := wgpu.NewUploader(device, queue)
//	stage := drawq.NewStage(drawq.WithUploader(up))
func WithUploader(u Uploader) Option {
	return func(c *Config) {
		c.Uploader = u
	}
}
