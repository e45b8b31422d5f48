// Package gain implements the O(1) KM1 delta model: the change in KM1
// caused by moving a single vertex from block a to block b, computed
// from the current edgeflags snapshot without touching edge_pins.
package gain

import (
	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
)

// Move computes delta = sum over edges incident to v of the per-edge
// contribution: +1 if block b was absent from the edge before the move,
// -1 if v was the sole pin of the edge in block a. Negative delta means
// the move improves (decreases) KM1. The gain is read from the flag
// snapshot as of the call; it becomes stale the moment any adjacent edge
// is mutated by another move.
func Move(h *hypergraph.Hypergraph, flags *edgeflags.Store, v int, a, b int32) int {
	delta := 0
	for _, e32 := range h.NodeEdges(v) {
		e := int(e32)
		any := flags.FlagsAny(e)
		double := flags.FlagsDouble(e)

		if any&(1<<uint(b)) == 0 {
			delta++
		}
		if double&(1<<uint(a)) == 0 {
			delta--
		}
	}
	return delta
}

// AllTargets computes Move(v, a, b) for every destination block b != a,
// writing results into dst (len k, dst[a] left untouched/ignored by
// callers). This is the per-vertex unit of work in the refinement
// engine's score phase: the k-1 deltas for one vertex are independent of
// each other, since none of them mutate state.
func AllTargets(h *hypergraph.Hypergraph, flags *edgeflags.Store, v int, a int32, k int, dst []int) {
	for b := 0; b < k; b++ {
		if int32(b) == a {
			continue
		}
		dst[b] = Move(h, flags, v, a, int32(b))
	}
}
