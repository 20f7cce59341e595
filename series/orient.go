// SPDX-License-Identifier: MIT
// File: orient.go
// Role: dual-link folding and cross-scenario orientation.

package series

import "github.com/yosukefk/chemnetrowk-vis/network"

// foldDual returns copies of edges and byProc in which every pair present
// in both orientations keeps only the larger one, carrying the difference.
// Per-process values of the smaller orientation move onto the kept pair
// with their sign flipped. On a tie the first-seen orientation is kept.
// Complexity: O(E + B).
func foldDual(edges *network.Edges, byProc *network.ProcessEdges) (*network.Edges, *network.ProcessEdges) {
	keep := make(map[network.EdgeKey]network.EdgeKey, edges.Len())
	outE := network.NewEdges()
	edges.Range(func(k network.EdgeKey, v float64) {
		if _, done := keep[k]; done {
			return
		}
		r := k.Reverse()
		rv, dual := edges.Get(r)
		if !dual {
			keep[k] = k
			outE.Set(k, v)
			return
		}
		w, net := k, v-rv
		if rv > v {
			w, net = r, rv-v
		}
		keep[k], keep[r] = w, w
		outE.Set(w, net)
	})

	outP := network.NewProcessEdges()
	byProc.Range(func(k network.ProcessEdgeKey, v float64) {
		w, ok := keep[k.Pair()]
		if !ok || w == k.Pair() {
			outP.Add(k, v)
			return
		}
		outP.Add(network.ProcessEdgeKey{Consumer: w.Consumer, Producer: w.Producer, Process: k.Process}, -v)
	})

	return outE, outP
}

// orientation maps every pair seen so far, in either direction, onto the
// orientation under which it was first seen.
type orientation map[network.EdgeKey]network.EdgeKey

func (o orientation) learn(edges *network.Edges) {
	edges.Range(func(k network.EdgeKey, _ float64) {
		if _, ok := o[k]; !ok {
			o[k] = k
			o[k.Reverse()] = k
		}
	})
}

func (o orientation) canonical(k network.EdgeKey) network.EdgeKey {
	if c, ok := o[k]; ok {
		return c
	}

	return k
}

// apply relabels a scenario's tables to the canonical orientation; values
// are unchanged.
func (o orientation) apply(edges *network.Edges, byProc *network.ProcessEdges) (*network.Edges, *network.ProcessEdges) {
	outE := network.NewEdges()
	edges.Range(func(k network.EdgeKey, v float64) { outE.Add(o.canonical(k), v) })

	outP := network.NewProcessEdges()
	byProc.Range(func(k network.ProcessEdgeKey, v float64) {
		c := o.canonical(k.Pair())
		outP.Add(network.ProcessEdgeKey{Consumer: c.Consumer, Producer: c.Producer, Process: k.Process}, v)
	})

	return outE, outP
}
