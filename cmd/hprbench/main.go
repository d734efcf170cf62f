// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command hprbench measures building and querying a Hilbert-packed
// R-Tree index.
//
// Usage:
//
//	hprbench -stage build|query [flags]
//
// The build stage times Build over growing grids of points. The query
// stage times concurrent queries while another goroutine keeps
// rebuilding the index.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/packedrtree"
)

type stageOpts struct {
	cfg       hprtree.Config
	requests  int
	querySize float64
	reportDir string
	runID     uuid.UUID
}

func parseSort(s string) (packedrtree.SortStrategy, error) {
	switch s {
	case packedrtree.ComparisonSort.String():
		return packedrtree.ComparisonSort, nil
	case packedrtree.RadixSort.String():
		return packedrtree.RadixSort, nil
	default:
		return 0, fmt.Errorf("unknown sort strategy %q", s)
	}
}

func main() {
	stage := flag.String("stage", "", "benchmark stage: build | query")
	nodeCapacity := flag.Int("capacity", packedrtree.DefaultNodeCapacity, "children per node")
	level := flag.Int("level", packedrtree.DefaultHilbertLevel, "Hilbert curve order, 1-16")
	sortName := flag.String("sort", packedrtree.ComparisonSort.String(), "Hilbert sort strategy: comparison | radix")
	requests := flag.Int("requests", 20_000, "queries per concurrency level (query stage)")
	querySize := flag.Float64("size", 20, "query box side in degrees (query stage)")
	reportDir := flag.String("report", "", "directory for CSV reports, none if empty")
	flag.Parse()

	strategy, err := parseSort(*sortName)
	if err != nil {
		log.Fatal(err)
	}
	opts := stageOpts{
		cfg: hprtree.Config{
			NodeCapacity: *nodeCapacity,
			HilbertLevel: *level,
			Sort:         strategy,
		},
		requests:  *requests,
		querySize: *querySize,
		reportDir: *reportDir,
		runID:     uuid.New(),
	}
	log.SetPrefix("hprbench " + opts.runID.String()[:8] + ": ")

	switch *stage {
	case "build":
		runBuild(opts)
	case "query":
		runQuery(opts)
	default:
		log.Fatalf("specify -stage build|query")
	}
	fmt.Println("done, run", opts.runID)
}
