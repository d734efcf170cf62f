// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package collector provides Collector, an append-then-filter sink for
// query results.
//
// A Collector supports amortized O(1) append, single-pass removal of
// every value matching a predicate without moving the survivors, and
// iteration in insertion order. It is meant to be owned by one
// goroutine and reused across many queries.
package collector

import (
	"fmt"
	"math"
)

// nilSlot marks the absence of a slot index.
const nilSlot = -1

// A slot is one cell of a Collector's arena. Live slots form a singly
// linked list, threaded through next, in insertion order.
type slot[T any] struct {
	value T
	next  int
}

// Collector is an ordered sink of values backed by an arena of slots.
//
// Values are appended at a write cursor which only moves forward, so
// the live list always visits slots in ascending index order. Removal
// unlinks slots without moving any value. When the write cursor
// reaches the end of the arena a resizable Collector doubles the arena,
// while a fixed Collector compacts its live values to the front and
// continues.
//
// The zero value is not usable. Create Collectors with New or NewFixed.
// A Collector is not safe for concurrent use.
type Collector[T any] struct {
	slots     []slot[T]
	head      int
	tail      int
	n         int
	write     int
	resizable bool
}

// New returns an empty resizable Collector with room for capacity
// values before it first grows. Panics if capacity is not positive.
func New[T any](capacity int) *Collector[T] {
	return newCollector[T](capacity, true)
}

// NewFixed returns an empty Collector which never holds more than
// capacity values. Once every slot holds a live value, Add returns
// ErrCapacityExceeded and the value is not added. Panics if capacity is
// not positive.
func NewFixed[T any](capacity int) *Collector[T] {
	return newCollector[T](capacity, false)
}

func newCollector[T any](capacity int, resizable bool) *Collector[T] {
	if capacity <= 0 {
		fmtPanic("capacity must be positive, got %d", capacity)
	}
	return &Collector[T]{
		slots:     make([]slot[T], capacity),
		head:      nilSlot,
		tail:      nilSlot,
		resizable: resizable,
	}
}

// Add appends v after the last live value.
//
// If the arena is exhausted, a resizable Collector doubles its capacity
// and returns ErrAllocation only if the doubled capacity overflows int.
// A fixed Collector reclaims the slots of removed values and returns
// ErrCapacityExceeded if there are none.
func (c *Collector[T]) Add(v T) error {
	if c.write == len(c.slots) {
		if err := c.makeRoom(); err != nil {
			return err
		}
	}
	i := c.write
	c.write++
	c.slots[i] = slot[T]{value: v, next: nilSlot}
	if c.tail == nilSlot {
		c.head = i
	} else {
		c.slots[c.tail].next = i
	}
	c.tail = i
	c.n++
	return nil
}

func (c *Collector[T]) makeRoom() error {
	if c.resizable {
		capacity, err := grownCapacity(len(c.slots))
		if err != nil {
			return err
		}
		slots := make([]slot[T], capacity)
		c.relink(slots)
		c.slots = slots
		return nil
	}
	if c.n == len(c.slots) {
		return ErrCapacityExceeded
	}
	old := c.write
	c.relink(c.slots)
	clear(c.slots[c.n:old])
	return nil
}

// grownCapacity returns double the capacity n.
func grownCapacity(n int) (int, error) {
	if n > math.MaxInt/2 {
		return 0, ErrAllocation
	}
	return 2 * n, nil
}

// relink copies the live values, in order, into the leading slots of
// dst and links them. The destination may be the current arena: live
// slot indices ascend, so each value moves to an index no greater than
// its own.
func (c *Collector[T]) relink(dst []slot[T]) {
	j := 0
	for i := c.head; i != nilSlot; j++ {
		next := c.slots[i].next
		dst[j] = slot[T]{value: c.slots[i].value, next: j + 1}
		i = next
	}
	c.write = j
	if j == 0 {
		c.head, c.tail = nilSlot, nilSlot
		return
	}
	dst[j-1].next = nilSlot
	c.head, c.tail = 0, j-1
}

// RemoveIf removes every value for which pred returns true and returns
// the number removed. Survivors keep their relative order and are not
// moved. pred is never called on an empty Collector.
func (c *Collector[T]) RemoveIf(pred func(v T) bool) int {
	if c.n == 0 {
		return 0
	}
	var removed int
	prev := nilSlot
	for i := c.head; i != nilSlot; {
		s := &c.slots[i]
		next := s.next
		if pred(s.value) {
			if prev == nilSlot {
				c.head = next
			} else {
				c.slots[prev].next = next
			}
			var zero T
			s.value = zero
			s.next = nilSlot
			removed++
		} else {
			prev = i
		}
		i = next
	}
	c.tail = prev
	c.n -= removed
	return removed
}

// ForEach calls fn with a pointer to each live value in order. fn may
// modify the value but must not add to or remove from c.
func (c *Collector[T]) ForEach(fn func(v *T)) {
	i := c.head
	for k := 0; k < c.n; k++ {
		fn(&c.slots[i].value)
		i = c.slots[i].next
	}
}

// Len returns the number of live values.
func (c *Collector[T]) Len() int {
	return c.n
}

// Cap returns the number of slots in the arena.
func (c *Collector[T]) Cap() int {
	return len(c.slots)
}

// Resizable reports whether c grows when its arena is exhausted.
func (c *Collector[T]) Resizable() bool {
	return c.resizable
}

// ToSlice returns a new slice holding the live values in order, or nil
// if c is empty.
func (c *Collector[T]) ToSlice() []T {
	if c.n == 0 {
		return nil
	}
	return c.AppendTo(make([]T, 0, c.n))
}

// AppendTo appends the live values, in order, to dst and returns the
// extended slice.
func (c *Collector[T]) AppendTo(dst []T) []T {
	c.ForEach(func(v *T) {
		dst = append(dst, *v)
	})
	return dst
}

// Reset removes every value while keeping the arena, so c can be
// reused for another query without allocating.
func (c *Collector[T]) Reset() {
	clear(c.slots[:c.write])
	c.head, c.tail = nilSlot, nilSlot
	c.n, c.write = 0, 0
}

// String returns a summary description of the Collector.
func (c *Collector[T]) String() string {
	return fmt.Sprintf("Collector{Len:%d,Cap:%d,Resizable:%t}", c.n, len(c.slots), c.resizable)
}
