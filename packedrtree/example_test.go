// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree_test

import (
	"fmt"
	"sort"

	"github.com/Ya-hwon/General/packedrtree"
)

// Create an Entry slice for example purposes.
var entries = []packedrtree.Entry[int, float64]{
	{Point: packedrtree.Point[float64]{X: -1.5, Y: -1.5}, Payload: 0},
	{Point: packedrtree.Point[float64]{X: 1.5, Y: 1.5}, Payload: 1},
	{Point: packedrtree.Point[float64]{X: -1.5, Y: 1.5}, Payload: 2},
	{Point: packedrtree.Point[float64]{X: 1.5, Y: -1.5}, Payload: 3},
}

func entriesBounds(entries []packedrtree.Entry[int, float64]) packedrtree.Envelope[float64] {
	b := packedrtree.EmptyEnvelope[float64]() // Important! Don't start with the zero envelope!
	for i := range entries {
		b.ExpandPoint(entries[i].Point)
	}
	return b
}

func ExampleHilbertIndex() {
	// Visit the cells of a 2x2 grid in Hilbert order.
	cells := make([]string, 4)
	for x := uint32(0); x < 2; x++ {
		for y := uint32(0); y < 2; y++ {
			cells[packedrtree.HilbertIndex(1, x, y)] = fmt.Sprintf("(%d,%d)", x, y)
		}
	}

	fmt.Println(len(cells), cells[0])
	// Output: 4 (0,0)
}

func ExampleNew() {
	packedrtree.HilbertSort(entries, entriesBounds(entries), packedrtree.DefaultHilbertLevel, packedrtree.ComparisonSort)
	index := packedrtree.New(entries, 10)

	fmt.Println(index)
	// Output: PackedRTree{Bounds:[-1.5,1.5,-1.5,1.5],NumEntries:4,NodeCapacity:10}
}

func ExamplePackedRTree_Search() {
	packedrtree.HilbertSort(entries, entriesBounds(entries), packedrtree.DefaultHilbertLevel, packedrtree.RadixSort)
	index := packedrtree.New(entries, 10)

	r1 := index.Search(packedrtree.EmptyEnvelope[float64]()) // Search 1
	fmt.Println("Search 1:", r1)

	r2 := index.Search(packedrtree.Envelope[float64]{MinX: -10, MaxX: -5, MinY: -10, MaxY: -5}) // Search 2
	fmt.Println("Search 2:", r2)

	r3 := index.Search(index.Bounds()) // Search 3
	sort.Ints(r3)                      // Search order is not defined.
	fmt.Println("Search 3:", r3)

	r4 := index.Search(packedrtree.Envelope[float64]{MinX: 0, MaxX: 2, MinY: -2, MaxY: 0}) // Search 4
	fmt.Println("Search 4:", r4)
	// Output: Search 1: []
	// Search 2: []
	// Search 3: [0 1 2 3]
	// Search 4: [3]
}

func ExamplePackedRTree_SearchFunc() {
	index := packedrtree.New(entries, packedrtree.DefaultNodeCapacity)

	var n int
	_ = index.SearchFunc(packedrtree.Envelope[float64]{MinX: -2, MaxX: 2, MinY: 0, MaxY: 2}, func(int) error {
		n++
		return nil
	})

	fmt.Println(n, "entries in the upper half")
	// Output: 2 entries in the upper half
}
