// Package score implements a from-scratch recomputation of KM1 and
// feasibility, used as a self-check at engine exit independent of the
// incrementally maintained edgeflags state.
package score

import (
	"fmt"
	"math/bits"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

// Result is the outcome of a from-scratch validation pass.
type Result struct {
	KM1       int64
	MaxBlock  int32 // size of the largest block
	MinBlock  int32 // size of the smallest block
	Feasible  bool
	NumBlocks int
}

// Evaluate recomputes counts, flags, KM1 and block sizes from (h, assign)
// with no dependency on any incrementally maintained state, and returns
// (km1, max_block, min_block, feasible).
func Evaluate(h *hypergraph.Hypergraph, assign []int32, k int, cap int32) Result {
	blockSize := make([]int32, k)
	for _, b := range assign {
		blockSize[b]++
	}

	var km1 int64
	for e := 0; e < h.NumEdges(); e++ {
		var any uint64
		for _, v := range h.EdgePins(e) {
			any |= 1 << uint(assign[v])
		}
		km1 += int64(bits.OnesCount64(any) - 1)
	}

	maxSize, minSize := blockSize[0], blockSize[0]
	for b := 1; b < k; b++ {
		if blockSize[b] > maxSize {
			maxSize = blockSize[b]
		}
		if blockSize[b] < minSize {
			minSize = blockSize[b]
		}
	}

	feasible := true
	for b := 0; b < k; b++ {
		if blockSize[b] > cap {
			feasible = false
			break
		}
	}

	return Result{
		KM1:       km1,
		MaxBlock:  maxSize,
		MinBlock:  minSize,
		Feasible:  feasible,
		NumBlocks: k,
	}
}

// EvaluateState is a convenience wrapper over Evaluate for a
// partition.State, used at engine exit for the mandatory validator pass.
func EvaluateState(h *hypergraph.Hypergraph, p *partition.State) Result {
	return Evaluate(h, p.Assignment(), p.K(), p.Cap())
}

// CheckAgainstIncremental compares a from-scratch KM1 against the
// incrementally maintained value. Returns an error describing the
// mismatch, or nil if they agree.
func CheckAgainstIncremental(fromScratch, incremental int64) error {
	if fromScratch != incremental {
		return fmt.Errorf("km1 mismatch: incremental=%d from-scratch=%d", incremental, fromScratch)
	}
	return nil
}
