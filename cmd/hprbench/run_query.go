// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/Ya-hwon/General/collector"
	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/internal/metrics"
	"github.com/Ya-hwon/General/orbindex"
)

// queryBounds returns n random square query bounds of the given side
// lying within the globe.
func queryBounds(n int, side float64, seed int64) []orb.Bound {
	r := rand.New(rand.NewSource(seed))
	bounds := make([]orb.Bound, n)
	for i := range bounds {
		x := r.Float64()*(360-side) - 180
		y := r.Float64()*(180-side) - 90
		bounds[i] = orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + side, y + side}}
	}
	return bounds
}

func runQuery(opts stageOpts) {
	concurrencies := []int{1, 4, 8, 16}

	cfg := opts.cfg
	cfg.Retain = true
	idx := hprtree.New[uuid.UUID, float64](&cfg)
	load(idx, grid(0.5))
	idx.Build()
	fmt.Printf("query: %s\n", idx)

	queries := queryBounds(opts.requests, opts.querySize, 12345)

	var rows []metrics.QueryRow
	for _, concurrency := range concurrencies {
		fmt.Printf("query: concurrency %d\n", concurrency)

		// Keep rebuilding while the queries run, so that queries race
		// with publication of new trees.
		var stop atomic.Bool
		var rebuilds int
		rebuilt := make(chan struct{})
		go func() {
			defer close(rebuilt)
			for !stop.Load() {
				idx.Build()
				rebuilds++
			}
		}()

		var wg sync.WaitGroup
		var hits atomic.Int64
		durations := make([]time.Duration, len(queries))
		perWorker := (len(queries) + concurrency - 1) / concurrency
		before := metrics.Take()
		start := time.Now()
		for w := 0; w < concurrency; w++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				c := collector.New[uuid.UUID](1024)
				base := worker * perWorker
				for i := base; i < base+perWorker && i < len(queries); i++ {
					c.Reset()
					t1 := time.Now()
					if err := orbindex.Query(idx, queries[i], c); err != nil {
						log.Fatalf("query %d: %v", i, err)
					}
					durations[i] = time.Since(t1)
					hits.Add(int64(c.Len()))
				}
			}(w)
		}
		wg.Wait()
		elapsed := time.Since(start)
		stop.Store(true)
		<-rebuilt
		after := metrics.Take()

		_, gcs := metrics.Diff(before, after)
		stats := metrics.LatencyStatsFromDurations(durations)
		row := metrics.QueryRow{
			Concurrency: concurrency,
			Entries:     idx.Len(),
			Rebuilds:    rebuilds,
			QPS:         float64(len(queries)) / elapsed.Seconds(),
			AvgHits:     float64(hits.Load()) / float64(len(queries)),
			QueryP50Ms:  stats.P50Ms,
			QueryP99Ms:  stats.P99Ms,
			GCs:         gcs,
		}
		fmt.Printf("  QPS %.0f, P50 %.3fms, P99 %.3fms, avg hits %.1f, rebuilds %d, GCs %d\n",
			row.QPS, row.QueryP50Ms, row.QueryP99Ms, row.AvgHits, row.Rebuilds, row.GCs)
		rows = append(rows, row)
	}

	if opts.reportDir != "" {
		path := metrics.ReportPath(opts.reportDir, "query_")
		if err := metrics.WriteQueryCSV(rows, path); err != nil {
			log.Fatalf("write query report: %v", err)
		}
		fmt.Println("report written to", path)
	}
}
