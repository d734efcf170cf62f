// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hprtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Ya-hwon/General/collector"
	"github.com/Ya-hwon/General/packedrtree"
)

func BenchmarkIndex_Build(b *testing.B) {
	for _, strategy := range []packedrtree.SortStrategy{packedrtree.ComparisonSort, packedrtree.RadixSort} {
		b.Run(strategy.String(), func(b *testing.B) {
			idx := New[int, float64](&Config{Sort: strategy, Retain: true})
			addGrid(idx)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				idx.Build()
			}
		})
	}
}

func BenchmarkIndex_Query(b *testing.B) {
	idx := New[int, float64](nil)
	addGrid(idx)
	idx.Build()

	for _, size := range []float64{1, 10, 50} {
		b.Run(fmt.Sprintf("size=%g", size), func(b *testing.B) {
			r := rand.New(rand.NewSource(1))
			c := collector.New[int](1024)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				x, y := r.Float64()*(360-size)-180, r.Float64()*(180-size)-90
				c.Reset()
				_ = idx.Query(env(x, x+size, y, y+size), c)
			}
		})
	}
}

func BenchmarkIndex_QueryParallel(b *testing.B) {
	idx := New[int, float64](nil)
	addGrid(idx)
	idx.Build()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		c := collector.New[int](1024)
		q := env(-10, 10, -10, 10)
		for pb.Next() {
			c.Reset()
			_ = idx.Query(q, c)
		}
	})
}
