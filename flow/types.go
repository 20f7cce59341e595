// SPDX-License-Identifier: MIT
// File: types.go
// Role: options, sentinel errors and result types of the flow package.

package flow

import (
	"errors"
	"fmt"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// DefaultTolerance is the relative mass-balance residual accepted silently.
const DefaultTolerance = 1e-6

var (
	// ErrNonFinite is returned when a throughput value is NaN or ±Inf.
	ErrNonFinite = errors.New("flow: non-finite throughput value")

	// ErrBadTolerance is returned for a negative or NaN tolerance.
	ErrBadTolerance = errors.New("flow: tolerance must be a non-negative number")
)

// Options configures Decompose.
//   - Tolerance: relative residual above which a MassBalanceWarning is
//     recorded (default DefaultTolerance). Zero reports every residual.
type Options struct {
	Tolerance float64
}

// DefaultOptions returns Options with the default tolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// MassBalanceWarning reports a process whose consumption and production
// do not cancel within tolerance. It implements error so callers may log
// or collect it, but Decompose never fails because of it.
type MassBalanceWarning struct {
	Process   string
	Consumed  float64 // totC, ≤ 0
	Produced  float64 // totP, ≥ 0
	Residual  float64 // totC + totP
	Relative  float64 // |Residual| / max(|totC|, totP)
	Tolerance float64
}

func (w MassBalanceWarning) Error() string {
	return fmt.Sprintf("flow: process %q mass balance residual %g (relative %.3g > %.3g)",
		w.Process, w.Residual, w.Relative, w.Tolerance)
}

// Decomposition is the outcome of Decompose.
type Decomposition struct {
	// Edges holds allocated flow summed over processes, keyed by
	// (consumer, producer), in first-seen order.
	Edges *network.Edges
	// ByProcess holds allocated flow per (consumer, producer, process).
	ByProcess *network.ProcessEdges
	// Warnings lists processes outside the mass-balance tolerance.
	Warnings []MassBalanceWarning
}
