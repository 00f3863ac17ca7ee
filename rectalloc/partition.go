// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rectalloc

import (
	"github.com/coregfx/rectalloc/geom"
	"github.com/coregfx/rectalloc/sizeindex"
)

// partition is one size-class (fragment or large) of idle nodes, held as
// both a width-major and a height-major view of the same set of origins so
// the alternating xy/yx search (spec §4.2) has both lower-bound orders
// available at once.
type partition struct {
	xy *sizeindex.Index // width -> height -> origins
	yx *sizeindex.Index // height -> width -> origins
}

func newPartition() *partition {
	return &partition{xy: sizeindex.New(), yx: sizeindex.New()}
}

func (p *partition) insert(origin, extent geom.Point) {
	p.xy.Insert(extent.X, extent.Y, origin)
	p.yx.Insert(extent.Y, extent.X, origin)
}

func (p *partition) remove(origin, extent geom.Point) {
	p.xy.Remove(extent.X, extent.Y, origin)
	p.yx.Remove(extent.Y, extent.X, origin)
}

// find implements the dual-cursor alternating search of spec §4.2 over this
// one partition. It initializes an xy cursor at lower_bound(extent.X) and a
// yx cursor at lower_bound(extent.Y), and alternately probes each for a fit
// in the other dimension, advancing whichever side just failed, until one
// side hits or both are exhausted.
func (p *partition) find(extent geom.Point) (geom.Point, bool) {
	cxy := p.xy.LowerBound(extent.X)
	cyx := p.yx.LowerBound(extent.Y)

	for !cxy.Done() || !cyx.Done() {
		if !cxy.Done() {
			if origin, ok := cxy.Probe(extent.Y); ok {
				return origin, true
			}
			cxy.Advance()
		}
		if !cyx.Done() {
			if origin, ok := cyx.Probe(extent.X); ok {
				return origin, true
			}
			cyx.Advance()
		}
	}
	return geom.Point{}, false
}
