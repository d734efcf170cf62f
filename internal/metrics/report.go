// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// LatencyStats summarizes a set of operation latencies.
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// BuildRow is one line of the build report.
type BuildRow struct {
	Entries      int
	NodeCapacity int
	HilbertLevel int
	Sort         string
	BuildDurMs   float64
	MemSizeMB    float64
	HeapAllocMB  float64
}

// QueryRow is one line of the query report.
type QueryRow struct {
	Concurrency int
	Entries     int
	Rebuilds    int
	QPS         float64
	AvgHits     float64
	QueryP50Ms  float64
	QueryP99Ms  float64
	GCs         uint32
}

// Percentile returns the p-th percentile, with p in [0, 100], of an
// ascending slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	return sorted[int(float64(len(sorted)-1)*p/100)]
}

// LatencyStatsFromDurations computes latency percentiles.
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

func f2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteBuildCSV writes the build report to path.
func WriteBuildCSV(rows []BuildRow, path string) error {
	records := [][]string{{"Entries", "NodeCapacity", "HilbertLevel", "Sort", "BuildDurMs", "MemSizeMB", "HeapAllocMB"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Entries),
			strconv.Itoa(r.NodeCapacity),
			strconv.Itoa(r.HilbertLevel),
			r.Sort,
			f2(r.BuildDurMs),
			f2(r.MemSizeMB),
			f2(r.HeapAllocMB),
		})
	}
	return writeCSV(records, path)
}

// WriteQueryCSV writes the query report to path.
func WriteQueryCSV(rows []QueryRow, path string) error {
	records := [][]string{{"Concurrency", "Entries", "Rebuilds", "QPS", "AvgHits", "QueryP50Ms", "QueryP99Ms", "GCs"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Concurrency),
			strconv.Itoa(r.Entries),
			strconv.Itoa(r.Rebuilds),
			f2(r.QPS),
			f2(r.AvgHits),
			f2(r.QueryP50Ms),
			f2(r.QueryP99Ms),
			fmt.Sprintf("%d", r.GCs),
		})
	}
	return writeCSV(records, path)
}

func writeCSV(records [][]string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}

// ReportPath returns a dated report path under dir.
func ReportPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+time.Now().Format("20060102")+".csv")
}

// WriteJSON writes v to path as indented JSON.
func WriteJSON(v interface{}, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
