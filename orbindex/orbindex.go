// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package orbindex adapts github.com/paulmach/orb geometry to the
// point keys and query envelopes of package hprtree.
package orbindex

import (
	"github.com/paulmach/orb"

	"github.com/Ya-hwon/General/collector"
	"github.com/Ya-hwon/General/hprtree"
	"github.com/Ya-hwon/General/packedrtree"
)

// Point converts an orb point to an index key.
func Point(p orb.Point) packedrtree.Point[float64] {
	return packedrtree.Point[float64]{X: p.X(), Y: p.Y()}
}

// OrbPoint converts an index key to an orb point.
func OrbPoint(p packedrtree.Point[float64]) orb.Point {
	return orb.Point{p.X, p.Y}
}

// Envelope converts an orb bound to an index envelope.
func Envelope(b orb.Bound) packedrtree.Envelope[float64] {
	return packedrtree.Envelope[float64]{MinX: b.Min.X(), MaxX: b.Max.X(), MinY: b.Min.Y(), MaxY: b.Max.Y()}
}

// Bound converts an index envelope to an orb bound. The empty envelope
// converts to a bound for which orb.Bound.IsEmpty reports true.
func Bound(e packedrtree.Envelope[float64]) orb.Bound {
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

// AddMultiPoint stages every point of mp in idx. The payload of the
// i-th point is payload(i).
func AddMultiPoint[P any](idx *hprtree.Index[P, float64], mp orb.MultiPoint, payload func(i int) P) {
	idx.Reserve(idx.Staged() + len(mp))
	for i, p := range mp {
		idx.Add(payload(i), Point(p))
	}
}

// AddGeometry stages g in idx keyed by the center of its bound. It
// returns the key used.
func AddGeometry[P any](idx *hprtree.Index[P, float64], payload P, g orb.Geometry) packedrtree.Point[float64] {
	key := Point(g.Bound().Center())
	idx.Add(payload, key)
	return key
}

// Query adds to c the payload of every entry of idx whose key lies
// within b.
func Query[P any](idx *hprtree.Index[P, float64], b orb.Bound, c *collector.Collector[P]) error {
	return idx.Query(Envelope(b), c)
}

// Search returns the payloads of every entry of idx whose key lies
// within b, or nil if there are none.
func Search[P any](idx *hprtree.Index[P, float64], b orb.Bound) []P {
	return idx.Search(Envelope(b))
}

// Points returns the keys of the entries of idx's published tree which
// lie within b, as an orb multi-point, or nil if there are none.
func Points[P any](idx *hprtree.Index[P, float64], b orb.Bound) orb.MultiPoint {
	prt := idx.Tree()
	if prt == nil {
		return nil
	}
	var mp orb.MultiPoint
	for _, e := range prt.SearchEntries(Envelope(b)) {
		mp = append(mp, OrbPoint(e.Point))
	}
	return mp
}
