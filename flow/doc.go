// Package flow derives per-material summaries and material→material edges
// from a signed throughput table (material × process, negative = consumed,
// positive = produced).
//
// # Summaries
//
//   - GrossProduction:  Σ positive throughput per material.
//   - GrossConsumption: |Σ negative throughput| per material.
//   - NetProduction:    gross production − gross consumption (signed).
//   - Flux:             max(|gross production|, |gross consumption|).
//   - FluxByProcess:    |throughput| per (material, process).
//
// # Decomposition
//
// Decompose walks the table process by process. Rows with value < 0 are
// consumers, rows with value > 0 are producers. For every consumer c and
// producer p of a process P:
//
//	allocated(c, p, P) = c · p / totC      (totC = Σ consumers ≤ 0)
//
// which is never negative. Summed over the producers of P it recovers
// c·totP/totC, i.e. |c| when the process balances exactly. The allocation
// for one process is the outer product of the consumer and producer
// vectors scaled by 1/totC (gonum mat.Dense.Outer).
//
// A process with no consumers or no producers contributes no edges and no
// division is attempted.
//
// # Mass balance
//
// The residual totC + totP of every two-sided process is compared with
// Options.Tolerance relative to max(|totC|, totP). Violations are returned
// as MassBalanceWarning values; they never stop the decomposition.
//
// Complexity: O(Σ_P |C_P|·|P_P|) time, same order of memory for the
// per-process edge table.
package flow
