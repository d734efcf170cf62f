// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/internal/metrics"
)

func runBuild(opts stageOpts) {
	spacings := []float64{2, 1, 0.5, 0.25}

	var rows []metrics.BuildRow
	for _, spacing := range spacings {
		mp := grid(spacing)
		idx := hprtree.New[uuid.UUID, float64](&opts.cfg)
		load(idx, mp)
		metrics.GC()

		fmt.Printf("build: %d points, spacing %g...\n", len(mp), spacing)
		t0 := time.Now()
		idx.Build()
		dur := time.Since(t0)
		after := metrics.Take()

		row := metrics.BuildRow{
			Entries:      idx.Len(),
			NodeCapacity: idx.Config().NodeCapacity,
			HilbertLevel: idx.Config().HilbertLevel,
			Sort:         idx.Config().Sort.String(),
			BuildDurMs:   float64(dur.Nanoseconds()) / 1e6,
			MemSizeMB:    metrics.MB(uint64(idx.MemSize())),
			HeapAllocMB:  metrics.MB(after.HeapAlloc),
		}
		fmt.Printf("  %s, build %.1fms, index %.1fMB, heap %.1fMB\n", idx, row.BuildDurMs, row.MemSizeMB, row.HeapAllocMB)
		rows = append(rows, row)
	}

	if opts.reportDir != "" {
		path := metrics.ReportPath(opts.reportDir, "build_")
		if err := metrics.WriteBuildCSV(rows, path); err != nil {
			log.Fatalf("write build report: %v", err)
		}
		fmt.Println("report written to", path)
	}
}
