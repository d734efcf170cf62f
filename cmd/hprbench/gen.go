// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/orbindex"
)

// grid returns the points of a regular grid covering the globe with
// the given spacing in degrees, row by row.
func grid(spacing float64) orb.MultiPoint {
	columns, rows := int(360/spacing), int(180/spacing)
	mp := make(orb.MultiPoint, 0, columns*rows)
	for i := 0; i < columns; i++ {
		for j := 0; j < rows; j++ {
			mp = append(mp, orb.Point{-180 + float64(i)*spacing, -90 + float64(j)*spacing})
		}
	}
	return mp
}

// load stages mp in idx with a fresh random identifier per point.
func load(idx *hprtree.Index[uuid.UUID, float64], mp orb.MultiPoint) {
	orbindex.AddMultiPoint(idx, mp, func(int) uuid.UUID {
		return uuid.New()
	})
}
