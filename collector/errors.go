// Copyright 2023 The General (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when adding a value to a
	// non-resizable Collector whose every slot holds a live value.
	ErrCapacityExceeded = textErr("capacity exceeded")
	// ErrAllocation is returned when a resizable Collector cannot grow
	// because its doubled capacity is not representable.
	ErrAllocation = textErr("allocation failed")
)

const packageName = "collector: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
