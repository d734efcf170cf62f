// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package hprtree provides Index, a bulk-loaded spatial index over
// points which can be rebuilt while it is being queried.
//
// Producers Add entries to a private staging set and periodically call
// Build, which Hilbert-sorts the staged entries into a new packed
// R-Tree and publishes it atomically. Consumers Query whichever tree
// was most recently published, collecting matching payloads into a
// caller-supplied collector.Collector. Queries never block on Add or
// Build, and each query sees exactly one published tree.
package hprtree

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/Ya-hwon/General/collector"
	"github.com/Ya-hwon/General/packedrtree"
)

// Index is a spatial index of payloads of type P keyed by points with
// coordinates of type T.
//
// Add, Build, and Query may be called from any number of goroutines.
// Builds are serialized. A tree replaced by a later Build stays valid
// for queries already reading it and is reclaimed by the garbage
// collector once they return.
type Index[P any, T packedrtree.Coord] struct {
	cfg *Config

	buildMu sync.Mutex

	mu      sync.Mutex // guards staging, extent, reserve
	staging []packedrtree.Entry[P, T]
	extent  packedrtree.Envelope[T]
	reserve int

	// Writers above and readers below touch different cache lines.
	_       cpu.CacheLinePad
	current atomic.Pointer[packedrtree.PackedRTree[P, T]]
}

// New creates an index. Uses default config if cfg is nil. Panics if
// the configuration is invalid.
func New[P any, T packedrtree.Coord](cfg *Config) *Index[P, T] {
	cfg = cfg.OrDefault()
	cfg.validate()
	return &Index[P, T]{
		cfg:     cfg,
		staging: make([]packedrtree.Entry[P, T], 0, cfg.InitialCapacity),
		extent:  packedrtree.EmptyEnvelope[T](),
		reserve: cfg.InitialCapacity,
	}
}

// Config returns the current configuration.
func (idx *Index[P, T]) Config() *Config {
	return idx.cfg
}

// Add stages payload at point p for the next Build. Entries staged
// after a Build has started are kept for the following one.
func (idx *Index[P, T]) Add(payload P, p packedrtree.Point[T]) {
	idx.mu.Lock()
	idx.staging = append(idx.staging, packedrtree.Entry[P, T]{Point: p, Payload: payload})
	idx.extent.ExpandPoint(p)
	idx.mu.Unlock()
}

// Reserve hints that about n entries will be staged, so the staging
// set is allocated once. The hint is kept for the staging sets created
// by later builds. Panics if n is negative.
func (idx *Index[P, T]) Reserve(n int) {
	if n < 0 {
		fmtPanic("reserve must not be negative, got %d", n)
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.reserve = n
	if n > len(idx.staging) {
		idx.staging = slices.Grow(idx.staging, n-len(idx.staging))
	}
}

// Build creates a packed Hilbert R-Tree from the staged entries and
// publishes it for queries, replacing the previously published tree.
//
// Unless the index retains entries, the staging set is emptied. Build
// only holds the staging lock while it detaches the staged entries, so
// Add is never blocked by the sort. Building with nothing staged
// publishes an empty tree which matches nothing.
func (idx *Index[P, T]) Build() {
	idx.buildMu.Lock()
	defer idx.buildMu.Unlock()

	idx.mu.Lock()
	entries, extent := idx.staging, idx.extent
	if idx.cfg.Retain {
		entries = slices.Clone(entries)
	} else {
		idx.staging = make([]packedrtree.Entry[P, T], 0, idx.reserve)
		idx.extent = packedrtree.EmptyEnvelope[T]()
	}
	idx.mu.Unlock()

	packedrtree.HilbertSort(entries, extent, idx.cfg.HilbertLevel, idx.cfg.Sort)
	prt := packedrtree.New(entries, idx.cfg.NodeCapacity)

	idx.current.Store(prt)
}

// Tree returns the most recently published tree, or nil if Build has
// never completed.
func (idx *Index[P, T]) Tree() *packedrtree.PackedRTree[P, T] {
	return idx.current.Load()
}

// Query adds to c the payload of every entry in the published tree
// whose point lies within the closed envelope q. The order in which
// payloads are added is not defined.
//
// Querying before any Build has completed adds nothing. If c rejects a
// payload the query stops and Query returns an error wrapping the
// collector's error. Payloads already added stay in c.
func (idx *Index[P, T]) Query(q packedrtree.Envelope[T], c *collector.Collector[P]) error {
	prt := idx.current.Load()
	if prt == nil {
		return nil
	}
	if err := prt.SearchFunc(q, c.Add); err != nil {
		return wrapErr("query %s stopped after %d results", err, q, c.Len())
	}
	return nil
}

// Search returns the payloads of every entry in the published tree
// whose point lies within the closed envelope q, or nil if there are
// none. The order of the payloads is not defined.
func (idx *Index[P, T]) Search(q packedrtree.Envelope[T]) []P {
	c := collector.New[P](max(1, idx.EstimateCount(q)))
	// A resizable collector only fails past math.MaxInt results.
	_ = idx.Query(q, c)
	return c.ToSlice()
}

// Len returns the number of entries in the published tree.
func (idx *Index[P, T]) Len() int {
	if prt := idx.current.Load(); prt != nil {
		return prt.NumEntries()
	}
	return 0
}

// Staged returns the number of entries the next Build will index.
func (idx *Index[P, T]) Staged() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.staging)
}

// Bounds returns the envelope of the published tree, which is empty if
// nothing has been published or the published tree is empty.
func (idx *Index[P, T]) Bounds() packedrtree.Envelope[T] {
	if prt := idx.current.Load(); prt != nil {
		return prt.Bounds()
	}
	return packedrtree.EmptyEnvelope[T]()
}

// Extent returns the envelope of the staged entries.
func (idx *Index[P, T]) Extent() packedrtree.Envelope[T] {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.extent
}

// Density returns the published entry count per unit area of the
// published bounds. It is zero for an empty index and +Inf if the
// bounds have no area.
func (idx *Index[P, T]) Density() float64 {
	prt := idx.current.Load()
	if prt == nil || prt.NumEntries() == 0 {
		return 0
	}
	b := prt.Bounds()
	area := float64(b.Area())
	if area == 0 {
		return math.Inf(1)
	}
	return float64(prt.NumEntries()) / area
}

// EstimateCount estimates how many entries Query would find in q,
// assuming entries are spread uniformly over the published bounds. It
// is meant for presizing a collector.
func (idx *Index[P, T]) EstimateCount(q packedrtree.Envelope[T]) int {
	prt := idx.current.Load()
	if prt == nil || prt.NumEntries() == 0 {
		return 0
	}
	b := prt.Bounds()
	overlap := b.Intersection(&q)
	if overlap.IsEmpty() {
		return 0
	}
	area := float64(b.Area())
	if area == 0 {
		return prt.NumEntries()
	}
	est := math.Ceil(float64(prt.NumEntries()) * float64(overlap.Area()) / area)
	return min(int(est), prt.NumEntries())
}

// MemSize returns the approximate in-memory size in bytes of the
// published tree and the staging set.
func (idx *Index[P, T]) MemSize() int64 {
	var e packedrtree.Entry[P, T]
	idx.mu.Lock()
	n := int64(cap(idx.staging)) * int64(unsafe.Sizeof(e))
	idx.mu.Unlock()
	if prt := idx.current.Load(); prt != nil {
		n += prt.MemSize()
	}
	return n
}

// String returns a summary description of the index.
func (idx *Index[P, T]) String() string {
	return fmt.Sprintf("Index{Len:%d,Staged:%d,Bounds:%s}", idx.Len(), idx.Staged(), idx.Bounds())
}
