// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rectalloc

import "github.com/coregfx/rectalloc/geom"

// node is one split-point: a tracked rectangle in the split tree, keyed in
// the Allocator's store by its own botLft (spec §3). Nodes are held by
// origin-keyed map lookup rather than raw pointers between siblings, so a
// merge that deletes a node's children never leaves a dangling reference
// to one of them.
type node struct {
	botLft geom.Point
	topRit geom.Point
	parent geom.Point

	split      geom.Point
	usedExtent geom.Point
	idle       bool

	// Per-child idleness, meaningful only once this node has been split
	// (split != topRit). A child omitted for having zero area is treated
	// as vacuously idle, so it never blocks a merge.
	idleTopLft bool
	idleTopRit bool
	idleBotRit bool
}

// isRoot reports whether n is the split tree's root.
func (n *node) isRoot() bool {
	return n.parent == n.botLft
}

// isLeaf reports the strict leaf condition of spec §3: n has never been
// split into children.
func (n *node) isLeaf() bool {
	return n.split == n.topRit
}

// indexedExtent is the extent of the rectangle n currently offers for
// placement, [botLft, split) — this holds whether or not n is a strict
// leaf (see DESIGN.md's resolution of the §9 open question).
func (n *node) indexedExtent() geom.Point {
	return n.split.Sub(n.botLft)
}

// reportExtent is the extent Walk reports for n: the used extent for a
// live allocation, the indexed extent for an idle node.
func (n *node) reportExtent() geom.Point {
	if n.idle {
		return n.indexedExtent()
	}
	return n.usedExtent
}

// allChildrenIdle reports whether all three of n's children are currently
// idle (vacuously true for any child that was never created).
func (n *node) allChildrenIdle() bool {
	return n.idleTopLft && n.idleTopRit && n.idleBotRit
}

// childKind names the three positions a split can produce, per spec §3.
type childKind int

const (
	childBotRit childKind = iota
	childTopRit
	childTopLft
)

type childRegion struct {
	kind   childKind
	botLft geom.Point
	topRit geom.Point
}

// splitChildren returns the up-to-three child rectangles a split at `split`
// produces within [botLft, topRit), in the fixed order bottom-right,
// top-right, top-left. A child whose area would be zero is omitted
// entirely (spec §3).
func splitChildren(botLft, topRit, split geom.Point) []childRegion {
	regions := make([]childRegion, 0, 3)

	botRit := childRegion{
		kind:   childBotRit,
		botLft: geom.Pt(split.X, botLft.Y),
		topRit: geom.Pt(topRit.X, split.Y),
	}
	if hasArea(botRit.botLft, botRit.topRit) {
		regions = append(regions, botRit)
	}

	topRitC := childRegion{kind: childTopRit, botLft: split, topRit: topRit}
	if hasArea(topRitC.botLft, topRitC.topRit) {
		regions = append(regions, topRitC)
	}

	topLft := childRegion{
		kind:   childTopLft,
		botLft: geom.Pt(botLft.X, split.Y),
		topRit: geom.Pt(split.X, topRit.Y),
	}
	if hasArea(topLft.botLft, topLft.topRit) {
		regions = append(regions, topLft)
	}

	return regions
}

func hasArea(botLft, topRit geom.Point) bool {
	return topRit.X > botLft.X && topRit.Y > botLft.Y
}

// childRole determines which of a node's three child positions childBotLft
// occupies, from coordinate coincidence with the parent's own origin, per
// spec §9's per-child flag geometry: x coincides -> top-left, y coincides
// -> bottom-right, otherwise top-right.
func childRole(parentBotLft, childBotLft geom.Point) childKind {
	switch {
	case childBotLft.X == parentBotLft.X:
		return childTopLft
	case childBotLft.Y == parentBotLft.Y:
		return childBotRit
	default:
		return childTopRit
	}
}
