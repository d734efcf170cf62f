// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coord is the set of coordinate types usable with the package.
type Coord interface {
	constraints.Float
}

// A Point is an immutable (X, Y) coordinate pair. It is the indexing
// key of an Entry.
type Point[T Coord] struct {
	X T
	Y T
}

// Envelope returns the degenerate envelope covering only p.
func (p Point[T]) Envelope() Envelope[T] {
	return Envelope[T]{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
}

// An Envelope is an axis-aligned bounding box. A non-empty envelope has
// MinX <= MaxX and MinY <= MaxY.
//
// The zero value is the degenerate envelope at the origin, not the
// empty envelope. Use EmptyEnvelope to start accumulating bounds.
type Envelope[T Coord] struct {
	MinX T
	MaxX T
	MinY T
	MaxY T
}

// EmptyEnvelope returns the empty envelope. Its minimums are +Inf and
// its maximums are -Inf, so expanding it by any envelope or point
// adopts the operand unchanged, and it intersects nothing finite.
func EmptyEnvelope[T Coord]() Envelope[T] {
	pos, neg := T(math.Inf(1)), T(math.Inf(-1))
	return Envelope[T]{MinX: pos, MaxX: neg, MinY: pos, MaxY: neg}
}

// NewEnvelope constructs an envelope from raw bounds. It returns an
// error wrapping ErrInvalidArgument if either minimum exceeds its
// maximum or any bound is NaN.
func NewEnvelope[T Coord](minX, maxX, minY, maxY T) (Envelope[T], error) {
	if isNaN(minX) || isNaN(maxX) || isNaN(minY) || isNaN(maxY) {
		return Envelope[T]{}, wrapErr("NaN envelope bound", ErrInvalidArgument)
	} else if minX > maxX {
		return Envelope[T]{}, wrapErr("min x %v exceeds max x %v", ErrInvalidArgument, minX, maxX)
	} else if minY > maxY {
		return Envelope[T]{}, wrapErr("min y %v exceeds max y %v", ErrInvalidArgument, minY, maxY)
	}
	return Envelope[T]{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}, nil
}

func isNaN[T Coord](v T) bool {
	return v != v
}

// IsEmpty reports whether e contains no points at all.
func (e *Envelope[T]) IsEmpty() bool {
	return e.MinX > e.MaxX || e.MinY > e.MaxY
}

func (e *Envelope[T]) Width() T {
	return e.MaxX - e.MinX
}

func (e *Envelope[T]) Height() T {
	return e.MaxY - e.MinY
}

// Area returns the area of e, or zero if e is empty.
func (e *Envelope[T]) Area() T {
	if e.IsEmpty() {
		return 0
	}
	return e.Width() * e.Height()
}

// Expand grows e to the minimal envelope containing both e and o.
func (e *Envelope[T]) Expand(o *Envelope[T]) {
	if o.MinX < e.MinX {
		e.MinX = o.MinX
	}
	if o.MaxX > e.MaxX {
		e.MaxX = o.MaxX
	}
	if o.MinY < e.MinY {
		e.MinY = o.MinY
	}
	if o.MaxY > e.MaxY {
		e.MaxY = o.MaxY
	}
}

// ExpandPoint grows e to the minimal envelope containing both e and p.
func (e *Envelope[T]) ExpandPoint(p Point[T]) {
	if p.X < e.MinX {
		e.MinX = p.X
	}
	if p.X > e.MaxX {
		e.MaxX = p.X
	}
	if p.Y < e.MinY {
		e.MinY = p.Y
	}
	if p.Y > e.MaxY {
		e.MaxY = p.Y
	}
}

// Intersects reports whether e and o share at least one point. Both
// envelopes are closed, so envelopes which only touch intersect.
func (e *Envelope[T]) Intersects(o *Envelope[T]) bool {
	return !(o.MinX > e.MaxX || o.MaxX < e.MinX || o.MinY > e.MaxY || o.MaxY < e.MinY)
}

// ContainsPoint reports whether p lies within the closed envelope e. A
// point with a NaN coordinate is contained by no envelope.
func (e *Envelope[T]) ContainsPoint(p Point[T]) bool {
	return e.MinX <= p.X && p.X <= e.MaxX && e.MinY <= p.Y && p.Y <= e.MaxY
}

// Intersection returns the overlap of e and o, which is empty if they
// do not intersect.
func (e *Envelope[T]) Intersection(o *Envelope[T]) Envelope[T] {
	if !e.Intersects(o) {
		return EmptyEnvelope[T]()
	}
	r := *e
	if o.MinX > r.MinX {
		r.MinX = o.MinX
	}
	if o.MaxX < r.MaxX {
		r.MaxX = o.MaxX
	}
	if o.MinY > r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxY < r.MaxY {
		r.MaxY = o.MaxY
	}
	return r
}

// An Entry is a single indexed item: a point key and the caller's
// payload. The payload is stored by value and never interpreted.
type Entry[P any, T Coord] struct {
	Point   Point[T]
	Payload P
}
