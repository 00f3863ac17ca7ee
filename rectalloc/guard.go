// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rectalloc

import (
	"log/slog"
	"runtime"

	"github.com/coregfx/rectalloc/xerrors"
)

// LeakHandler is invoked when a Guard detects outstanding allocations at
// Close or at finalization (spec §4.5).
type LeakHandler func(err error)

// DefaultLeakHandler logs the leak at error level and panics. This is this
// module's realization of spec §4.5's "default aborts the process after
// emitting a diagnostic": a true process-level os.Exit would make the
// behavior unrecoverable for an embedding program and untestable, so this
// module panics instead (see DESIGN.md, component 6).
func DefaultLeakHandler(err error) {
	slog.Error(err.Error())
	panic(err)
}

// Guard wraps an Allocator and enforces, at Close and as a finalizer
// safety net, that every cell ever handed out by Allocate has been
// returned via Deallocate. It exists solely to catch caller misuse; the
// algorithmic core never itself leaks (spec §4.5).
type Guard struct {
	a       *Allocator
	handler LeakHandler
	closed  bool
}

// NewGuard wraps a, installing handler as the leak callback. A nil handler
// defaults to DefaultLeakHandler.
func NewGuard(a *Allocator, handler LeakHandler) *Guard {
	if handler == nil {
		handler = DefaultLeakHandler
	}
	g := &Guard{a: a, handler: handler}
	runtime.SetFinalizer(g, func(g *Guard) {
		if !g.closed {
			g.check()
		}
	})
	return g
}

// Allocator returns the wrapped Allocator.
func (g *Guard) Allocator() *Allocator {
	return g.a
}

// Close checks for outstanding allocations and disarms the finalizer. It
// is safe to call more than once.
func (g *Guard) Close() {
	if g.closed {
		return
	}
	g.closed = true
	runtime.SetFinalizer(g, nil)
	g.check()
}

func (g *Guard) check() {
	canvasArea := g.a.Extent().Area()
	remaining := g.a.RemainingArea()
	if remaining != canvasArea {
		g.handler(&xerrors.LeakError{CanvasArea: canvasArea, RemainingArea: remaining})
	}
}
