// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	testCases := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"Min", 0, 1},
		{"Negative", -5, 1},
		{"Median", 50, 5},
		{"P90", 90, 9},
		{"Max", 100, 10},
		{"Over", 150, 10},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Percentile(sorted, testCase.p))
		})
	}

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Percentile(nil, 50))
	})
}

func TestLatencyStatsFromDurations(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, LatencyStats{}, LatencyStatsFromDurations(nil))
	})

	t.Run("Unsorted", func(t *testing.T) {
		stats := LatencyStatsFromDurations([]time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond})

		assert.Equal(t, 3, stats.N)
		assert.Equal(t, 2.0, stats.P50Ms)
		assert.Equal(t, 2.0, stats.P99Ms)
		assert.InDelta(t, 2.0, stats.AvgMs, 1e-9)
	})
}

func TestDiff(t *testing.T) {
	before := Snapshot{TS: time.Unix(100, 0), TotalAlloc: 1000, NumGC: 3}
	after := Snapshot{TS: time.Unix(102, 0), TotalAlloc: 5000, NumGC: 5}

	rate, gcs := Diff(before, after)

	assert.Equal(t, 2000.0, rate)
	assert.Equal(t, uint32(2), gcs)

	rate, gcs = Diff(after, before)

	assert.Equal(t, 0.0, rate)
	assert.Equal(t, uint32(0), gcs)
}

func TestTake(t *testing.T) {
	GC()
	s := Take()

	assert.NotZero(t, s.HeapSys)
	assert.Positive(t, s.NumGoroutine)
	assert.Equal(t, 1.0, MB(1<<20))
}

func TestWriteQueryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "query.csv")

	err := WriteQueryCSV([]QueryRow{{Concurrency: 4, Entries: 100, Rebuilds: 2, QPS: 1234.567, AvgHits: 10, QueryP50Ms: 0.5, QueryP99Ms: 1.25, GCs: 7}}, path)

	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Concurrency", "Entries", "Rebuilds", "QPS", "AvgHits", "QueryP50Ms", "QueryP99Ms", "GCs"},
		{"4", "100", "2", "1234.57", "10.00", "0.50", "1.25", "7"},
	}, records)
}

func TestWriteBuildCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.csv")

	err := WriteBuildCSV([]BuildRow{{Entries: 10, NodeCapacity: 16, HilbertLevel: 12, Sort: "radix", BuildDurMs: 1, MemSizeMB: 0.25, HeapAllocMB: 2}}, path)

	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Entries,NodeCapacity,HilbertLevel,Sort,BuildDurMs,MemSizeMB,HeapAllocMB\n10,16,12,radix,1.00,0.25,2.00\n", string(b))
}

func TestReportPath(t *testing.T) {
	p := ReportPath("report", "query_")

	assert.Equal(t, "report", filepath.Dir(p))
	assert.Regexp(t, `^query_\d{8}\.csv$`, filepath.Base(p))
}
