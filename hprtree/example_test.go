// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hprtree_test

import (
	"fmt"
	"sort"

	"github.com/Ya-hwon/General/collector"
	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/packedrtree"
)

func ExampleIndex() {
	idx := hprtree.New[string, float64](nil)
	idx.Add("Berlin", packedrtree.Point[float64]{X: 13.40, Y: 52.52})
	idx.Add("Paris", packedrtree.Point[float64]{X: 2.35, Y: 48.86})
	idx.Add("Madrid", packedrtree.Point[float64]{X: -3.70, Y: 40.42})
	idx.Add("Cairo", packedrtree.Point[float64]{X: 31.24, Y: 30.04})
	idx.Build()

	q := packedrtree.Envelope[float64]{MinX: -10, MaxX: 20, MinY: 45, MaxY: 60}
	c := collector.New[string](idx.EstimateCount(q) + 1)
	if err := idx.Query(q, c); err != nil {
		fmt.Println(err)
		return
	}

	cities := c.ToSlice()
	sort.Strings(cities) // Query order is not defined.
	fmt.Println(cities)
	// Output: [Berlin Paris]
}

func ExampleIndex_Build() {
	idx := hprtree.New[int, float64](&hprtree.Config{Sort: packedrtree.RadixSort})
	idx.Add(1, packedrtree.Point[float64]{X: 0, Y: 0})
	idx.Build()
	idx.Add(2, packedrtree.Point[float64]{X: 1, Y: 1})

	fmt.Println(idx)

	idx.Build()

	fmt.Println(idx)
	// Output: Index{Len:1,Staged:1,Bounds:[0,0,0,0]}
	// Index{Len:1,Staged:0,Bounds:[1,1,1,1]}
}
