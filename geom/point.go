// Copyright (c) 2026, The rectalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the unsigned integer point/extent type shared by
// every layer of rectalloc. A Point doubles as an extent when it describes
// a width/height rather than a coordinate.
package geom

import "fmt"

// Point is an unsigned coordinate pair. Coordinates are 32 bits; areas are
// always computed in a wider 64-bit accumulator so a canvas whose area
// exceeds 2^32 cells never overflows (see Area).
type Point struct {
	X, Y uint32
}

// Pt constructs a Point from its components.
func Pt(x, y uint32) Point {
	return Point{X: x, Y: y}
}

// Zero is the origin, and also the zero extent.
var Zero = Point{}

// Add returns p+q, componentwise.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q, componentwise. Sub is used both for coordinate
// differences and, per the spec, to compute the extent of the rectangle
// two points bound.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Area treats p as an extent and returns its area widened to 64 bits.
func (p Point) Area() uint64 {
	return uint64(p.X) * uint64(p.Y)
}

// IsZero reports whether p is the zero point/extent.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// LessEq reports whether p is componentwise less than or equal to q, i.e.
// whether an extent p fits within an extent q.
func (p Point) LessEq(q Point) bool {
	return p.X <= q.X && p.Y <= q.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
