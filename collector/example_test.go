// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package collector_test

import (
	"fmt"

	"github.com/Ya-hwon/General/collector"
)

func ExampleCollector() {
	c := collector.New[int](4)
	for i := 1; i <= 6; i++ {
		_ = c.Add(i) // A resizable collector only fails to grow past math.MaxInt slots.
	}

	removed := c.RemoveIf(func(v int) bool { return v%3 == 0 })

	fmt.Println(removed, c.ToSlice(), c)
	// Output: 2 [1 2 4 5] Collector{Len:4,Cap:8,Resizable:true}
}

func ExampleNewFixed() {
	c := collector.NewFixed[string](2)
	_ = c.Add("a")
	_ = c.Add("b")

	err := c.Add("c")

	fmt.Println(err, c.ToSlice())
	// Output: collector: capacity exceeded [a b]
}
