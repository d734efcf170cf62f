// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"sort"
	"strconv"
)

const (
	// DefaultHilbertLevel is the default order of the Hilbert curve
	// used by HilbertSort. A curve of order 12 maps the extent onto a
	// 4096x4096 grid.
	DefaultHilbertLevel = 12
	// MaxHilbertLevel is the highest supported curve order. Hilbert
	// indices of order 16 use all 32 bits of a uint32.
	MaxHilbertLevel = 16
)

// SortStrategy selects the algorithm HilbertSort uses to order entries
// by Hilbert index. Every strategy is stable, so all strategies produce
// exactly the same order.
type SortStrategy int

const (
	// ComparisonSort uses a stable comparison sort over precomputed
	// Hilbert indices.
	ComparisonSort SortStrategy = iota
	// RadixSort uses a stable least-significant-digit radix sort over
	// the Hilbert indices, eight bits per pass.
	RadixSort
)

func (s SortStrategy) String() string {
	switch s {
	case ComparisonSort:
		return "comparison"
	case RadixSort:
		return "radix"
	default:
		return "SortStrategy(" + strconv.Itoa(int(s)) + ")"
	}
}

func validateLevel(level int) {
	if level < 1 || level > MaxHilbertLevel {
		fmtPanic("hilbert level must be in [1, %d], got %d", MaxHilbertLevel, level)
	}
}

// hilbertSortable is an implementation of sort.Interface which allows
// us to use the reflection-free, hence slightly more performant,
// sort.Stable function instead of sort.SliceStable. Each entry's
// Hilbert index is computed once, up front, and travels with the entry
// through every swap.
type hilbertSortable[P any, T Coord] struct {
	entries []Entry[P, T]
	keys    []uint32
}

func (hs *hilbertSortable[P, T]) Len() int {
	return len(hs.entries)
}

func (hs *hilbertSortable[P, T]) Less(i, j int) bool {
	return hs.keys[i] < hs.keys[j]
}

func (hs *hilbertSortable[P, T]) Swap(i, j int) {
	hs.entries[i], hs.entries[j] = hs.entries[j], hs.entries[i]
	hs.keys[i], hs.keys[j] = hs.keys[j], hs.keys[i]
}

// HilbertSort sorts a list of entries, whose points are bounded by
// extent, in ascending order of their position along a Hilbert curve
// of the given level.
//
// The sort is stable: entries with the same Hilbert index keep their
// relative order. Panics if level is outside [1, MaxHilbertLevel] or
// the strategy is unknown.
func HilbertSort[P any, T Coord](entries []Entry[P, T], extent Envelope[T], level int, strategy SortStrategy) {
	validateLevel(level)
	if len(entries) < 2 {
		return
	}
	keys := hilbertKeys(entries, &extent, level)
	switch strategy {
	case ComparisonSort:
		sort.Stable(&hilbertSortable[P, T]{entries: entries, keys: keys})
	case RadixSort:
		radixSort(entries, keys, uint(2*level))
	default:
		fmtPanic("unknown sort strategy %d", int(strategy))
	}
}

// hilbertKeys computes the Hilbert index of every entry.
func hilbertKeys[P any, T Coord](entries []Entry[P, T], extent *Envelope[T], level int) []uint32 {
	g := newGrid(extent, level)
	keys := make([]uint32, len(entries))
	for i := range entries {
		keys[i] = g.hilbert(float64(entries[i].Point.X), float64(entries[i].Point.Y))
	}
	return keys
}

// A grid maps coordinates within an extent onto the integer cells of
// a Hilbert curve of a given level.
type grid struct {
	level            int
	last             uint32
	minX, minY       float64
	strideX, strideY float64
}

func newGrid[T Coord](extent *Envelope[T], level int) grid {
	last := uint32(1)<<level - 1
	return grid{
		level:   level,
		last:    last,
		minX:    float64(extent.MinX),
		minY:    float64(extent.MinY),
		strideX: float64(extent.Width()) / float64(last),
		strideY: float64(extent.Height()) / float64(last),
	}
}

func (g *grid) hilbert(x, y float64) uint32 {
	return hilbertAtLevel(g.level, g.cell(x, g.minX, g.strideX), g.cell(y, g.minY, g.strideY))
}

// cell returns floor((v-origin)/stride) clamped to the grid. A zero,
// negative, or non-finite stride means the extent is degenerate along
// this axis and every coordinate falls in cell zero.
func (g *grid) cell(v, origin, stride float64) uint32 {
	if !(stride > 0) || math.IsInf(stride, 0) {
		return 0
	}
	c := math.Floor((v - origin) / stride)
	if !(c > 0) {
		return 0
	} else if c >= float64(g.last) {
		return g.last
	}
	return uint32(c)
}

// radixSort stably sorts entries by keys using a least-significant
// digit radix sort over the low bits of each key. Keys are permuted in
// step with entries.
func radixSort[P any, T Coord](entries []Entry[P, T], keys []uint32, bits uint) {
	n := len(entries)
	srcE, dstE := entries, make([]Entry[P, T], n)
	srcK, dstK := keys, make([]uint32, n)
	for shift := uint(0); shift < bits; shift += 8 {
		var offsets [257]int
		for _, k := range srcK {
			offsets[(k>>shift)&0xff+1]++
		}
		for b := 1; b < len(offsets); b++ {
			offsets[b] += offsets[b-1]
		}
		for i, k := range srcK {
			b := (k >> shift) & 0xff
			dstE[offsets[b]] = srcE[i]
			dstK[offsets[b]] = k
			offsets[b]++
		}
		srcE, dstE = dstE, srcE
		srcK, dstK = dstK, srcK
	}
	// After an odd number of passes the sorted data is in the scratch
	// buffers.
	if &srcE[0] != &entries[0] {
		copy(entries, srcE)
		copy(keys, srcK)
	}
}

// HilbertIndex calculates the position of the grid cell (x, y) along a
// Hilbert curve of the given level. Both coordinates must be less than
// 2^level. The result is less than 4^level.
//
// NOTES:
//   - Based on https://github.com/rawrunprotected/hilbert_curves, which
//     is in the public domain. The coordinates are shifted into the
//     high bits of a 16-bit curve and the index shifted back down.
func HilbertIndex(level int, x, y uint32) uint32 {
	validateLevel(level)
	return hilbertAtLevel(level, x, y)
}

func hilbertAtLevel(level int, x, y uint32) uint32 {
	shift := uint(MaxHilbertLevel - level)
	return hilbertOfXY(x<<shift, y<<shift) >> (2 * shift)
}

// hilbertOfXY calculates the Hilbert curve index of a given
// two-dimensional coordinate on a curve of order 16.
func hilbertOfXY(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	A := a | (b >> 1)
	B := (a >> 1) ^ a
	C := ((c >> 1) ^ (b & (d >> 1))) ^ c
	D := ((a & (c >> 1)) ^ (d >> 1)) ^ d

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 2)) ^ (b & (b >> 2))
	B = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	C ^= (a & (c >> 2)) ^ (b & (d >> 2))
	D ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 4)) ^ (b & (b >> 4))
	B = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	C ^= (a & (c >> 4)) ^ (b & (d >> 4))
	D ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))

	a = A
	b = B
	c = C
	d = D
	C ^= (a & (c >> 8)) ^ (b & (d >> 8))
	D ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))

	a = C ^ (C >> 1)
	b = D ^ (D >> 1)

	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	return (i1 << 1) | i0
}
