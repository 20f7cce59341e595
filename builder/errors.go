// SPDX-License-Identifier: MIT
// Package: builder
//
// errors.go - sentinel errors for the builder package.
//
// Callers branch with errors.Is; constructors attach context with
// builderErrorf and %w.

package builder

import (
	"errors"
	"fmt"
)

// ErrNilResult indicates a constructor was given a nil *series.Result.
var ErrNilResult = errors.New("builder: nil result")

// ErrConstructFailed indicates a nil constructor or a core rejection while
// assembling the graph.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes err with the constructor name, keeping it
// reachable through errors.Is.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
