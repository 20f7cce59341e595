// SPDX-License-Identifier: MIT
// File: decompose.go
// Role: proportional allocation of process throughput onto material pairs.
// Determinism:
//   - Processes are visited in first-seen order of t; inside a process the
//     consumer-major, producer-minor order of rows is kept.

package flow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// Decompose converts a signed throughput table into edges.
//
// Steps:
//  1. Validate opts and reject non-finite values (ErrNonFinite).
//  2. Group rows by process.
//  3. For each process split consumers and producers; skip the process
//     when either side is empty.
//  4. Allocation matrix A = (1/totC) · c ⊗ p; A[i][j] ≥ 0.
//  5. Accumulate A into Edges and record it in ByProcess.
//  6. Check the residual totC + totP against the tolerance.
//
// Complexity: O(Σ |C_P|·|P_P|).
func Decompose(t network.Throughput, opts Options) (*Decomposition, error) {
	if opts.Tolerance < 0 || math.IsNaN(opts.Tolerance) {
		return nil, ErrBadTolerance
	}
	for _, r := range t {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("%s/%s: %w", r.Material, r.Process, ErrNonFinite)
		}
	}

	res := &Decomposition{
		Edges:     network.NewEdges(),
		ByProcess: network.NewProcessEdges(),
	}
	for _, grp := range t.GroupByProcess() {
		cons, prod := split(grp.Rows)
		if len(cons) == 0 || len(prod) == 0 {
			continue
		}
		cv, pv := values(cons), values(prod)
		totC, totP := floats.Sum(cv), floats.Sum(pv)

		var alloc mat.Dense
		alloc.Outer(1/totC, mat.NewVecDense(len(cv), cv), mat.NewVecDense(len(pv), pv))
		for i, c := range cons {
			for j, p := range prod {
				v := alloc.At(i, j)
				res.Edges.Add(network.EdgeKey{Consumer: c.Material, Producer: p.Material}, v)
				res.ByProcess.Add(network.ProcessEdgeKey{
					Consumer: c.Material, Producer: p.Material, Process: grp.Process,
				}, v)
			}
		}

		if w, bad := checkProcess(grp.Process, totC, totP, opts.Tolerance); bad {
			res.Warnings = append(res.Warnings, w)
		}
	}

	return res, nil
}

// CheckMassBalance reports every two-sided process of t whose residual
// exceeds tol relative to its larger side. One-sided processes (pure
// sources or sinks) are not checked.
func CheckMassBalance(t network.Throughput, tol float64) []MassBalanceWarning {
	var out []MassBalanceWarning
	for _, grp := range t.GroupByProcess() {
		cons, prod := split(grp.Rows)
		if len(cons) == 0 || len(prod) == 0 {
			continue
		}
		if w, bad := checkProcess(grp.Process, floats.Sum(values(cons)), floats.Sum(values(prod)), tol); bad {
			out = append(out, w)
		}
	}

	return out
}

func checkProcess(proc string, totC, totP, tol float64) (MassBalanceWarning, bool) {
	resid := totC + totP
	scale := math.Max(-totC, totP)
	rel := math.Abs(resid) / scale
	if rel <= tol {
		return MassBalanceWarning{}, false
	}

	return MassBalanceWarning{
		Process:   proc,
		Consumed:  totC,
		Produced:  totP,
		Residual:  resid,
		Relative:  rel,
		Tolerance: tol,
	}, true
}

// split partitions rows by sign; zero rows belong to neither side.
func split(rows []network.Record) (cons, prod []network.Record) {
	for _, r := range rows {
		switch {
		case r.Consumed():
			cons = append(cons, r)
		case r.Produced():
			prod = append(prod, r)
		}
	}

	return cons, prod
}

func values(rows []network.Record) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}

	return out
}
