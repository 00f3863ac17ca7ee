// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sizeindex implements the ordered, two-level multi-map the split
// tree's free-region indexes are built from: major key -> minor key ->
// multiset of origins. It supports the lower_bound/alternating-probe search
// the allocator's placement algorithm needs.
//
// No third-party ordered-map or B-tree implementation is used anywhere in
// the corpus this package is grounded on, so the index is a sorted flat
// slice searched with binary search at each level — exactly the substitute
// the algorithm's own design notes sanction for small-to-moderate index
// sizes.
package sizeindex

import (
	"sort"

	"github.com/coregfx/rectalloc/geom"
)

type bucket struct {
	key     uint32
	origins []geom.Point // multiset: several idle leaves can share a (major, minor) size
}

type level struct {
	key   uint32
	inner []bucket
}

// Index is a major -> minor -> multiset(origin) sorted index.
type Index struct {
	outer []level
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

// Len returns the number of origins currently stored.
func (idx *Index) Len() int {
	n := 0
	for _, lv := range idx.outer {
		for _, b := range lv.inner {
			n += len(b.origins)
		}
	}
	return n
}

// Insert records origin under (major, minor).
func (idx *Index) Insert(major, minor uint32, origin geom.Point) {
	i := sort.Search(len(idx.outer), func(k int) bool { return idx.outer[k].key >= major })
	if i == len(idx.outer) || idx.outer[i].key != major {
		idx.outer = insertLevel(idx.outer, i, level{key: major})
	}
	lv := &idx.outer[i]

	j := sort.Search(len(lv.inner), func(k int) bool { return lv.inner[k].key >= minor })
	if j == len(lv.inner) || lv.inner[j].key != minor {
		lv.inner = insertBucket(lv.inner, j, bucket{key: minor})
	}
	lv.inner[j].origins = append(lv.inner[j].origins, origin)
}

// Remove deletes one occurrence of origin from (major, minor). It reports
// whether origin was found. Empty inner and outer buckets are pruned so the
// index never retains stale keys (§4.4 of the spec this implements).
func (idx *Index) Remove(major, minor uint32, origin geom.Point) bool {
	i := sort.Search(len(idx.outer), func(k int) bool { return idx.outer[k].key >= major })
	if i == len(idx.outer) || idx.outer[i].key != major {
		return false
	}
	lv := &idx.outer[i]

	j := sort.Search(len(lv.inner), func(k int) bool { return lv.inner[k].key >= minor })
	if j == len(lv.inner) || lv.inner[j].key != minor {
		return false
	}
	origins := lv.inner[j].origins
	k := indexOf(origins, origin)
	if k < 0 {
		return false
	}
	origins = append(origins[:k], origins[k+1:]...)

	if len(origins) == 0 {
		lv.inner = append(lv.inner[:j], lv.inner[j+1:]...)
	} else {
		lv.inner[j].origins = origins
	}

	if len(lv.inner) == 0 {
		idx.outer = append(idx.outer[:i], idx.outer[i+1:]...)
	}
	return true
}

// Cursor walks the outer levels of an Index starting at the lower bound of
// some major key, probing the inner level for a minor key on demand. It is
// the primitive the allocator's alternating xy/yx placement search is built
// from (spec §4.2).
type Cursor struct {
	idx *Index
	pos int
}

// LowerBound returns a Cursor positioned at the first outer key >= major.
func (idx *Index) LowerBound(major uint32) *Cursor {
	pos := sort.Search(len(idx.outer), func(i int) bool { return idx.outer[i].key >= major })
	return &Cursor{idx: idx, pos: pos}
}

// Done reports whether the cursor has walked off the end of the index.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.idx.outer)
}

// Advance moves the cursor to the next outer level.
func (c *Cursor) Advance() {
	c.pos++
}

// Probe looks, at the cursor's current outer level, for the first inner
// bucket whose key is >= minor, and returns the first origin in its
// multiset. It does not advance the cursor.
func (c *Cursor) Probe(minor uint32) (geom.Point, bool) {
	if c.Done() {
		return geom.Point{}, false
	}
	inner := c.idx.outer[c.pos].inner
	j := sort.Search(len(inner), func(i int) bool { return inner[i].key >= minor })
	if j >= len(inner) || len(inner[j].origins) == 0 {
		return geom.Point{}, false
	}
	return inner[j].origins[0], true
}

func indexOf(origins []geom.Point, origin geom.Point) int {
	for i, o := range origins {
		if o == origin {
			return i
		}
	}
	return -1
}

func insertLevel(s []level, i int, v level) []level {
	s = append(s, level{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertBucket(s []bucket, i int, v bucket) []bucket {
	s = append(s, bucket{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
