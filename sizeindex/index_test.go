// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sizeindex

import (
	"testing"

	"github.com/coregfx/rectalloc/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndProbe(t *testing.T) {
	idx := New()
	idx.Insert(10, 20, geom.Pt(0, 0))
	idx.Insert(10, 30, geom.Pt(1, 1))
	idx.Insert(40, 5, geom.Pt(2, 2))

	c := idx.LowerBound(10)
	require.False(t, c.Done())

	origin, ok := c.Probe(25)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(1, 1), origin)

	origin, ok = c.Probe(20)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 0), origin)

	// No bucket at major=10 satisfies minor>=31.
	_, ok = c.Probe(31)
	assert.False(t, ok)
}

func TestLowerBoundSkipsSmallerMajors(t *testing.T) {
	idx := New()
	idx.Insert(5, 5, geom.Pt(1, 1))
	idx.Insert(50, 5, geom.Pt(2, 2))

	c := idx.LowerBound(10)
	require.False(t, c.Done())
	origin, ok := c.Probe(0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(2, 2), origin)
}

func TestCursorAdvanceAndExhaustion(t *testing.T) {
	idx := New()
	idx.Insert(10, 10, geom.Pt(1, 1))

	c := idx.LowerBound(100)
	assert.True(t, c.Done())

	c = idx.LowerBound(0)
	require.False(t, c.Done())
	c.Advance()
	assert.True(t, c.Done())
}

func TestMultisetSameSize(t *testing.T) {
	idx := New()
	idx.Insert(10, 10, geom.Pt(0, 0))
	idx.Insert(10, 10, geom.Pt(5, 5))
	assert.Equal(t, 2, idx.Len())

	require.True(t, idx.Remove(10, 10, geom.Pt(0, 0)))
	assert.Equal(t, 1, idx.Len())

	origin, ok := idx.LowerBound(10).Probe(10)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(5, 5), origin)
}

func TestRemovePrunesEmptyBuckets(t *testing.T) {
	idx := New()
	idx.Insert(10, 10, geom.Pt(0, 0))
	require.True(t, idx.Remove(10, 10, geom.Pt(0, 0)))
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.outer)
}

func TestRemoveUnknownReturnsFalse(t *testing.T) {
	idx := New()
	idx.Insert(10, 10, geom.Pt(0, 0))
	assert.False(t, idx.Remove(10, 10, geom.Pt(9, 9)))
	assert.False(t, idx.Remove(99, 1, geom.Pt(0, 0)))
}
