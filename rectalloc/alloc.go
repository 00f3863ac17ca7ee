// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rectalloc manages a fixed rectangular canvas of integer-coordinate
// cells as a split tree, servicing axis-aligned, non-overlapping rectangle
// requests for things like glyph atlases, sprite sheets, or shadow-map
// pages. Allocating inside a leaf splits it into up to three idle children
// tiling the remainder; freeing coalesces a node back into its parent once
// all three of the parent's children are idle again. Placement is found by
// an alternating, dual-axis ordered search over a fragment/large partition
// of idle rectangles, not by a general best-fit search.
//
// An Allocator is single-threaded: callers must serialize all operations on
// one instance themselves. It performs no I/O of any kind.
package rectalloc

import (
	"github.com/coregfx/rectalloc/geom"
	"github.com/coregfx/rectalloc/xerrors"
)

// defaultMinFragmentThreshold is the floor on the automatic fragment
// threshold, in cells, per spec §4.1.
const defaultMinFragmentThreshold = 96 * 96

// Option configures an Allocator at construction.
type Option func(*config)

type config struct {
	fragmentThreshold uint64
}

// WithFragmentThreshold overrides the automatic fragment/large split point.
// A node whose area is less than or equal to the threshold is classified
// fragment; larger, large. Omitting this option (or passing zero) selects
// max(canvas.Area()/64, 96*96).
func WithFragmentThreshold(n uint64) Option {
	return func(c *config) { c.fragmentThreshold = n }
}

// Allocator manages canvas as a split tree of non-overlapping allocations.
// It must be used by pointer: copying an Allocator value would alias its
// split tree, so always pass and store *Allocator.
type Allocator struct {
	canvas            geom.Point
	fragmentThreshold uint64

	store map[geom.Point]*node

	fragment *partition
	large    *partition

	remaining uint64
}

// New constructs an Allocator over canvas, which starts as a single idle
// root covering the whole canvas.
func New(canvas geom.Point, opts ...Option) *Allocator {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	threshold := cfg.fragmentThreshold
	if threshold == 0 {
		threshold = defaultFragmentThreshold(canvas)
	}

	a := &Allocator{
		canvas:            canvas,
		fragmentThreshold: threshold,
		store:             make(map[geom.Point]*node),
		fragment:          newPartition(),
		large:             newPartition(),
		remaining:         canvas.Area(),
	}

	root := &node{
		botLft: geom.Zero,
		topRit: canvas,
		parent: geom.Zero,
		split:  canvas,
		idle:   true,

		idleTopLft: true,
		idleTopRit: true,
		idleBotRit: true,
	}
	a.store[root.botLft] = root
	a.indexInsert(root)
	return a
}

func defaultFragmentThreshold(canvas geom.Point) uint64 {
	t := canvas.Area() / 64
	if t < defaultMinFragmentThreshold {
		return defaultMinFragmentThreshold
	}
	return t
}

// Extent returns the canvas extent the Allocator was constructed with.
func (a *Allocator) Extent() geom.Point {
	return a.canvas
}

// RemainingArea returns the canvas area not currently covered by any live
// allocation.
func (a *Allocator) RemainingArea() uint64 {
	return a.remaining
}

// LiveCount returns the number of currently live allocations.
func (a *Allocator) LiveCount() int {
	n := 0
	for _, nd := range a.store {
		if !nd.idle {
			n++
		}
	}
	return n
}

// IdleCount returns the number of currently idle tracked rectangles.
func (a *Allocator) IdleCount() int {
	n := 0
	for _, nd := range a.store {
		if nd.idle {
			n++
		}
	}
	return n
}

// Walk calls fn once for every rectangle currently tracked by the split
// tree, live allocation and idle rectangle alike, in unspecified order. It
// performs no I/O itself; it exists purely so callers and tests can verify
// invariants without reaching into package internals.
func (a *Allocator) Walk(fn func(origin, extent geom.Point, idle bool)) {
	for origin, nd := range a.store {
		fn(origin, nd.reportExtent(), nd.idle)
	}
}

func (a *Allocator) isFragment(extent geom.Point) bool {
	return extent.Area() <= a.fragmentThreshold
}

func (a *Allocator) partitionFor(extent geom.Point) *partition {
	if a.isFragment(extent) {
		return a.fragment
	}
	return a.large
}

func (a *Allocator) indexInsert(n *node) {
	a.partitionFor(n.indexedExtent()).insert(n.botLft, n.indexedExtent())
}

func (a *Allocator) indexRemove(n *node) {
	a.partitionFor(n.indexedExtent()).remove(n.botLft, n.indexedExtent())
}

// Allocate finds a placement for extent within the canvas and returns its
// origin. It returns ok == false, leaving the Allocator entirely
// unchanged, when extent is zero-area, exceeds the canvas in either
// dimension, exceeds the remaining area, or no placement exists (spec
// §4.2, §7). The fragment partition is searched before the large
// partition.
func (a *Allocator) Allocate(extent geom.Point) (origin geom.Point, ok bool) {
	if extent.Area() == 0 || extent.X > a.canvas.X || extent.Y > a.canvas.Y {
		return geom.Point{}, false
	}
	if extent.Area() > a.remaining {
		return geom.Point{}, false
	}

	origin, ok = a.fragment.find(extent)
	if !ok {
		origin, ok = a.large.find(extent)
	}
	if !ok {
		return geom.Point{}, false
	}

	a.commit(origin, extent)
	return origin, true
}

// commit places extent at the idle node found at origin, splitting it into
// up to three idle children if it had never been split before, or reusing
// its existing split boundary otherwise (spec §4.2 step 2).
func (a *Allocator) commit(origin, extent geom.Point) {
	n, found := a.store[origin]
	if !found || !n.idle {
		panic(xerrors.New("rectalloc: commit target is not an idle tracked node"))
	}

	a.indexRemove(n)

	if n.isLeaf() {
		split := n.botLft.Add(extent)
		n.split = split
		for _, child := range splitChildren(n.botLft, n.topRit, split) {
			c := &node{
				botLft:     child.botLft,
				topRit:     child.topRit,
				parent:     n.botLft,
				split:      child.topRit,
				idle:       true,
				idleTopLft: true,
				idleTopRit: true,
				idleBotRit: true,
			}
			a.store[c.botLft] = c
			a.indexInsert(c)
		}
	}

	n.usedExtent = extent
	n.idle = false
	// Clear the occupied slot's flag on every ancestor up to the root,
	// mirroring the teacher source's mark_captured. Beyond the immediate
	// parent this is provably redundant under this package's node model
	// (an ancestor's own per-child flag can only be true if that child had
	// already fully merged, and this walk clears it the moment the child is
	// allocated again) — kept anyway for literal fidelity and because the
	// merge side of this file has already shown this bookkeeping is easy
	// to get subtly wrong (see DESIGN.md's §9 decision).
	for cur := n; !cur.isRoot(); {
		parent := a.store[cur.parent]
		setChildIdle(parent, cur.botLft, false)
		cur = parent
	}
	a.remaining -= extent.Area()
}

// Deallocate frees the allocation at origin, coalescing it with its
// siblings as far upward as the split tree's idle flags allow. It returns
// false, leaving the Allocator unchanged, if origin is not currently
// tracked as a live allocation (spec §4.3, §7).
func (a *Allocator) Deallocate(origin geom.Point) bool {
	n, found := a.store[origin]
	if !found || n.idle {
		return false
	}

	a.remaining += n.usedExtent.Area()
	n.usedExtent = geom.Point{}
	n.idle = true

	cur := a.mergeUpward(n)
	a.indexInsert(cur)
	return true
}

// mergeUpward absorbs n's children back into n if all three are idle, then
// walks upward doing the same at each ancestor as long as the ancestor is
// itself idle and all three of its own children are idle, stopping at the
// first node that cannot merge or at the root. It returns the node whose
// [botLft, split) region should be (re-)indexed as idle.
//
// A node only counts as "fully merged" — and only then may it tell its own
// parent that its slot is idle — once it is a leaf again, either because it
// already was one or because deleting its now-all-idle children just made
// it one. If cur has a live descendant elsewhere in its own subtree (one of
// its children isn't idle), the walk must stop at cur without touching
// cur's parent at all: that child is still occupying part of cur's region,
// so cur's parent cannot be told cur's slot is idle. Mirrors the teacher
// source's check_merge, which only updates the parent flag inside its
// is_split_idle() branch.
func (a *Allocator) mergeUpward(n *node) *node {
	cur := n
	for {
		if !cur.isLeaf() {
			if !cur.allChildrenIdle() {
				return cur
			}
			// An idle non-leaf may already be indexed under its old
			// [botLft, split); drop that entry before split changes.
			a.indexRemove(cur)
			a.deleteChildren(cur)
			cur.split = cur.topRit
		}
		if cur.isRoot() {
			return cur
		}
		parent := a.store[cur.parent]
		setChildIdle(parent, cur.botLft, true)
		if !parent.idle || !parent.allChildrenIdle() {
			return cur
		}
		cur = parent
	}
}

// deleteChildren removes parent's up-to-three children from both the store
// and whichever index currently holds them.
func (a *Allocator) deleteChildren(parent *node) {
	for _, child := range splitChildren(parent.botLft, parent.topRit, parent.split) {
		c, ok := a.store[child.botLft]
		if !ok {
			continue
		}
		a.indexRemove(c)
		delete(a.store, child.botLft)
	}
}

func setChildIdle(parent *node, childBotLft geom.Point, val bool) {
	switch childRole(parent.botLft, childBotLft) {
	case childTopLft:
		parent.idleTopLft = val
	case childBotRit:
		parent.idleBotRit = val
	case childTopRit:
		parent.idleTopRit = val
	}
}
