// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package collector

import (
	"fmt"
	"testing"
)

func BenchmarkCollector_Add(b *testing.B) {
	for _, n := range []int{16, 1024, 65536} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			c := New[int](n)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.Reset()
				for j := 0; j < n; j++ {
					_ = c.Add(j)
				}
			}
		})
	}
}

func BenchmarkCollector_RemoveIf(b *testing.B) {
	const n = 65536
	c := New[int](n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		c.Reset()
		for j := 0; j < n; j++ {
			_ = c.Add(j)
		}
		b.StartTimer()
		c.RemoveIf(func(v int) bool { return v%2 == 0 })
	}
}
