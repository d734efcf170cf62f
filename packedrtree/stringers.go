// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCoord[T Coord](b *strings.Builder, v T) {
	b.WriteString(strconv.FormatFloat(float64(v), 'g', 8, 64))
}

// String formats the point as "[X,Y]".
func (p Point[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	formatCoord(&b, p.X)
	b.WriteByte(',')
	formatCoord(&b, p.Y)
	b.WriteByte(']')
	return b.String()
}

// String formats the envelope as "[MinX,MaxX,MinY,MaxY]".
func (e Envelope[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	formatCoord(&b, e.MinX)
	b.WriteByte(',')
	formatCoord(&b, e.MaxX)
	b.WriteByte(',')
	formatCoord(&b, e.MinY)
	b.WriteByte(',')
	formatCoord(&b, e.MaxY)
	b.WriteByte(']')
	return b.String()
}

func (e Entry[P, T]) String() string {
	return fmt.Sprintf("Entry{%s,Payload:%v}", e.Point.String(), e.Payload)
}
