// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hprtree

import (
	"github.com/Ya-hwon/General/packedrtree"
)

// Config holds index parameters.
type Config struct {
	NodeCapacity    int                      // children per node, default 16
	HilbertLevel    int                      // Hilbert curve order in [1, 16], default 12
	Sort            packedrtree.SortStrategy // Hilbert sort algorithm, default ComparisonSort
	InitialCapacity int                      // staging capacity to preallocate, default 0
	Retain          bool                     // keep built entries staged, making every Build cumulative
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NodeCapacity: packedrtree.DefaultNodeCapacity,
		HilbertLevel: packedrtree.DefaultHilbertLevel,
		Sort:         packedrtree.ComparisonSort,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise a copy of c
// with zero-valued fields replaced by their defaults.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	cfg := *c
	if cfg.NodeCapacity == 0 {
		cfg.NodeCapacity = packedrtree.DefaultNodeCapacity
	}
	if cfg.HilbertLevel == 0 {
		cfg.HilbertLevel = packedrtree.DefaultHilbertLevel
	}
	return &cfg
}

func (c *Config) validate() {
	if c.NodeCapacity < 2 {
		fmtPanic("node capacity must be at least 2, got %d", c.NodeCapacity)
	}
	if c.HilbertLevel < 1 || c.HilbertLevel > packedrtree.MaxHilbertLevel {
		fmtPanic("hilbert level must be in [1, %d], got %d", packedrtree.MaxHilbertLevel, c.HilbertLevel)
	}
	if c.Sort != packedrtree.ComparisonSort && c.Sort != packedrtree.RadixSort {
		fmtPanic("unknown sort strategy %d", int(c.Sort))
	}
	if c.InitialCapacity < 0 {
		fmtPanic("initial capacity must not be negative, got %d", c.InitialCapacity)
	}
}
