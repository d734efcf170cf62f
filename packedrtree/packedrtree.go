// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"math"
	"unsafe"
)

// DefaultNodeCapacity is the default number of children per node.
const DefaultNodeCapacity = 16

func validateParams(nodeCapacity int) {
	if nodeCapacity < 2 {
		textPanic("node capacity must be at least 2")
	}
}

// Size returns the approximate in-memory size in bytes of a packed
// Hilbert R-Tree holding numEntries entries of type Entry[P, T] with
// the given node capacity. Panics if numEntries is negative or
// nodeCapacity is less than 2, and returns an error if the size
// overflows int64.
func Size[P any, T Coord](numEntries, nodeCapacity int) (int64, error) {
	if numEntries < 0 {
		textPanic("num entries must not be negative")
	}
	validateParams(nodeCapacity)
	var e Entry[P, T]
	var n Envelope[T]
	return size(numEntries, nodeCapacity, int64(unsafe.Sizeof(e)), int64(unsafe.Sizeof(n)))
}

// size returns the size in bytes of a tree's entry and node bound
// arrays, returning an error if integer overflow occurs.
func size(numEntries, nodeCapacity int, entryBytes, nodeBytes int64) (int64, error) {
	levels := levelify(numEntries, nodeCapacity)
	numNodes := int64(levels[len(levels)-1].end)

	if int64(numEntries) > math.MaxInt64/entryBytes {
		return 0, textErr("entry array size overflows int64")
	}
	entrySize := int64(numEntries) * entryBytes

	if numNodes > math.MaxInt64/nodeBytes {
		return 0, textErr("node array size overflows int64")
	}
	nodeSize := numNodes * nodeBytes

	if entrySize > math.MaxInt64-nodeSize {
		return 0, textErr("index size overflows int64")
	}
	return entrySize + nodeSize, nil
}

// A levelRange represents the range of node indices that comprise a
// level. Each levelRange is a closed/open node index pair [start, end)
// where start is the index (into PackedRTree's bounds list) of the
// first node in the level and end is the index that is one past the
// last node in the level.
type levelRange struct {
	start, end int
}

func (lr levelRange) size() int {
	return lr.end - lr.start
}

// ceilDiv returns ceil(n/d) for non-negative n without overflowing.
func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// levelify creates the list of levelRange structures which
// deterministically results from a given entry count (numEntries) and
// child node count (nodeCapacity).
//
// The first level in the list is the leaf level, whose nodes each
// bound up to nodeCapacity consecutive entries, and the last level is
// the root level, which always contains exactly one node. An empty
// tree still has a single leaf node, which is also the root.
//
// For example, assume numEntries = 8, nodeCapacity = 2. The output of
// this function will be [[0, 4], [4, 6], [6, 7]].
func levelify(numEntries, nodeCapacity int) []levelRange {
	nodesThisLevel := ceilDiv(numEntries, nodeCapacity)
	if nodesThisLevel == 0 {
		nodesThisLevel = 1
	}
	levels := make([]levelRange, 0, 16)
	var start int
	for {
		levels = append(levels, levelRange{start: start, end: start + nodesThisLevel})
		start += nodesThisLevel
		if nodesThisLevel == 1 {
			return levels
		}
		nodesThisLevel = ceilDiv(nodesThisLevel, nodeCapacity)
	}
}

// A ticket is a pending work item to be executed during a PackedRTree
// search loop.
type ticket struct {
	// nodeIndex is the index of the first node to search.
	nodeIndex int
	// level is the R-Tree level that nodeIndex belongs to. Recall that
	// level 0 contains the leaf nodes.
	level int
}

// A ticketBag is a stack of pending work items to be executed during
// a PackedRTree search loop.
type ticketBag []ticket

func (tq *ticketBag) push(t ticket) {
	*tq = append(*tq, t)
}

func (tq *ticketBag) pop() ticket {
	old := *tq
	n := len(old)
	x := old[n-1]
	*tq = old[0 : n-1]
	return x
}

// searchStats counts the work done by a search. The zero value is
// ready to use.
type searchStats struct {
	// nodes is the number of node bounds tested against the query.
	nodes int
	// entries is the number of entry points tested against the query.
	entries int
}

// PackedRTree is a packed Hilbert R-Tree over point entries.
//
// The tree is stored as flat arrays: the Hilbert-sorted entries, and
// the bounding envelope of every node, level by level from the leaves
// up to the root. A PackedRTree is never modified after New returns it
// and may be searched from many goroutines at once.
type PackedRTree[P any, T Coord] struct {
	// entries is the Hilbert-sorted list of entries. Leaf node i
	// bounds entries [i*nodeCapacity, (i+1)*nodeCapacity).
	entries []Entry[P, T]
	// nodeCapacity is the number of child nodes, or entries, per node.
	nodeCapacity int
	// levels is the list of levelRange boundaries. The leaf nodes are
	// at levels[0] and the root node is at levels[len(levels)-1].
	levels []levelRange
	// bounds is the envelope of every node in the tree, indexed by the
	// node index ranges in levels.
	bounds []Envelope[T]
}

// New creates a new packed Hilbert R-Tree from a Hilbert-sorted list of
// entries and a given node capacity. The entries are copied. Panics if
// nodeCapacity is less than 2.
//
// Use HilbertSort to sort the entries. If the input slice is not
// Hilbert-sorted the tree still answers every search correctly, but
// its node envelopes overlap heavily and little is pruned.
func New[P any, T Coord](entries []Entry[P, T], nodeCapacity int) *PackedRTree[P, T] {
	validateParams(nodeCapacity)

	levels := levelify(len(entries), nodeCapacity)
	prt := &PackedRTree[P, T]{
		entries:      make([]Entry[P, T], len(entries)),
		nodeCapacity: nodeCapacity,
		levels:       levels,
		bounds:       make([]Envelope[T], levels[len(levels)-1].end),
	}
	copy(prt.entries, entries)

	// Generate the leaf nodes from the entries.
	leaves := levels[0]
	for i := leaves.start; i < leaves.end; i++ {
		b := EmptyEnvelope[T]()
		j := (i - leaves.start) * nodeCapacity
		end := j + nodeCapacity
		if end > len(prt.entries) {
			end = len(prt.entries)
		}
		for ; j < end; j++ {
			b.ExpandPoint(prt.entries[j].Point)
		}
		prt.bounds[i] = b
	}

	// Generate the internal nodes, bottom-up.
	for l := 1; l < len(levels); l++ {
		level, children := levels[l], levels[l-1]
		for i := level.start; i < level.end; i++ {
			b := EmptyEnvelope[T]()
			j := children.start + (i-level.start)*nodeCapacity
			end := j + nodeCapacity
			if end > children.end {
				end = children.end
			}
			for ; j < end; j++ {
				b.Expand(&prt.bounds[j])
			}
			prt.bounds[i] = b
		}
	}

	return prt
}

// Bounds returns the envelope around all entries in the packed Hilbert
// R-Tree. The bounds of an empty tree are the empty envelope.
func (prt *PackedRTree[P, T]) Bounds() Envelope[T] {
	return prt.bounds[len(prt.bounds)-1]
}

// NumEntries returns the number of entries stored in the packed Hilbert
// R-Tree.
func (prt *PackedRTree[P, T]) NumEntries() int {
	return len(prt.entries)
}

// NodeCapacity returns the child node count of the packed Hilbert
// R-Tree.
func (prt *PackedRTree[P, T]) NodeCapacity() int {
	return prt.nodeCapacity
}

// NumLevels returns the number of node levels, which is one for a tree
// whose root is a leaf node.
func (prt *PackedRTree[P, T]) NumLevels() int {
	return len(prt.levels)
}

// NumNodes returns the total number of nodes across all levels.
func (prt *PackedRTree[P, T]) NumNodes() int {
	return len(prt.bounds)
}

// MemSize returns the approximate in-memory size of the tree in bytes.
func (prt *PackedRTree[P, T]) MemSize() int64 {
	var e Entry[P, T]
	var n Envelope[T]
	return int64(len(prt.entries))*int64(unsafe.Sizeof(e)) + int64(len(prt.bounds))*int64(unsafe.Sizeof(n))
}

// AppendEntries appends copies of the tree's entries, in Hilbert order,
// to dst and returns the extended slice.
func (prt *PackedRTree[P, T]) AppendEntries(dst []Entry[P, T]) []Entry[P, T] {
	return append(dst, prt.entries...)
}

// String returns a summary description of the packed Hilbert R-Tree.
func (prt *PackedRTree[P, T]) String() string {
	b := prt.Bounds()
	return fmt.Sprintf("PackedRTree{Bounds:%s,NumEntries:%d,NodeCapacity:%d}", b.String(), len(prt.entries), prt.nodeCapacity)
}

// Search searches the packed Hilbert R-Tree for entries whose points
// lie within the closed query envelope b, returning their payloads.
// The order of the search results is not defined.
func (prt *PackedRTree[P, T]) Search(b Envelope[T]) []P {
	r := make([]P, 0)
	_ = prt.search(&b, func(e *Entry[P, T]) error {
		r = append(r, e.Payload)
		return nil
	}, nil)
	return r
}

// SearchFunc calls fn with the payload of each entry whose point lies
// within the closed query envelope b. If fn returns an error the search
// stops and SearchFunc returns that error. The order of the calls is
// not defined.
func (prt *PackedRTree[P, T]) SearchFunc(b Envelope[T], fn func(payload P) error) error {
	return prt.search(&b, func(e *Entry[P, T]) error {
		return fn(e.Payload)
	}, nil)
}

// SearchEntries is like Search but returns copies of the matching
// entries, points included.
func (prt *PackedRTree[P, T]) SearchEntries(b Envelope[T]) []Entry[P, T] {
	r := make([]Entry[P, T], 0)
	_ = prt.search(&b, func(e *Entry[P, T]) error {
		r = append(r, *e)
		return nil
	}, nil)
	return r
}

// search implements the pruning descent shared by Search and
// SearchFunc. A node whose envelope does not intersect b is neither
// descended into nor itemized. If st is not nil, the work done is
// added to it.
func (prt *PackedRTree[P, T]) search(b *Envelope[T], emit func(*Entry[P, T]) error, st *searchStats) error {
	top := len(prt.levels) - 1
	tq := make(ticketBag, 1, 1+top*prt.nodeCapacity)
	tq[0] = ticket{nodeIndex: prt.levels[top].start, level: top}

	for len(tq) > 0 {
		// Pop the next work ticket and find the end node index to
		// search this iteration.
		t := tq.pop()
		level := prt.levels[t.level]
		end := t.nodeIndex + prt.nodeCapacity
		if level.end < end {
			end = level.end
		}
		// Search the nodes.
		for pos := t.nodeIndex; pos < end; pos++ {
			if st != nil {
				st.nodes++
			}
			if !b.Intersects(&prt.bounds[pos]) {
				continue
			}
			first := (pos - level.start) * prt.nodeCapacity
			if t.level == 0 {
				if err := prt.searchEntries(b, first, emit, st); err != nil {
					return err
				}
			} else {
				tq.push(ticket{nodeIndex: prt.levels[t.level-1].start + first, level: t.level - 1})
			}
		}
	}

	return nil
}

// searchEntries tests the entries of one leaf node, starting at entry
// index first, against b.
func (prt *PackedRTree[P, T]) searchEntries(b *Envelope[T], first int, emit func(*Entry[P, T]) error, st *searchStats) error {
	end := first + prt.nodeCapacity
	if end > len(prt.entries) {
		end = len(prt.entries)
	}
	for i := first; i < end; i++ {
		if st != nil {
			st.entries++
		}
		e := &prt.entries[i]
		if !b.ContainsPoint(e.Point) {
			continue
		}
		if err := emit(e); err != nil {
			return err
		}
	}
	return nil
}
