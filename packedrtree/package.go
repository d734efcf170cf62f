// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packedrtree provides a static, bulk-loaded Hilbert-packed
// R-Tree over two-dimensional points, together with the geometry
// primitives and Hilbert curve sort it is built from.
//
// A PackedRTree is immutable once created by New and may be searched
// by any number of goroutines concurrently. Package hprtree wraps it
// with an append-only staging set and atomic publication of rebuilt
// trees.
package packedrtree
