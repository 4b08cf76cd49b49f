// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawq

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false, so no record
// is formatted while drawq is silent.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger shared by every stage and backend.
// SetLogger may run while a render goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for drawq and its backends.
// By default drawq produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by drawq:
//   - [slog.LevelDebug]: [Batcher.Process] batch counts, [RequestStore.Add]
//     and shared buffer growth, persistent queue creation and removal in
//     [QueueGroup], GPU buffer allocation in backend/wgpu
//   - [slog.LevelWarn]: requests dropped by [RequestStore.AddIfValid] and
//     [Stage.Draw], dynamic queue uploads failing in [Stage.Prepare]
//
// Example:
//
//	drawq.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current drawq logger. backend/wgpu logs through it
// so one SetLogger call covers the whole pipeline.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
