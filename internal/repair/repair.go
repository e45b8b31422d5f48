// Package repair restores feasibility: while any block exceeds capacity,
// evacuate the most-improving vertex from an overweight block into a
// destination with slack, then run a short final refinement round to
// reclaim quality disturbed by the repair.
package repair

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/gain"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
	"github.com/gilchrisn/hgpart/internal/refine"
)

// InfeasibleError is returned only when no acceptable destination exists
// for an overweight vertex. This is impossible whenever k*cap >= n, so it
// is treated as an internal invariant violation rather than a normal
// failure mode.
type InfeasibleError struct{ Msg string }

func (e *InfeasibleError) Error() string { return "infeasible: " + e.Msg }

// Run evacuates overweight blocks until the partition is feasible,
// mutating p and flags in place. It terminates in at most
// Sum_b max(0, size(b)-cap) moves, since every applied move strictly
// reduces that sum by exactly one.
func Run(h *hypergraph.Hypergraph, p *partition.State, flags *edgeflags.Store, log zerolog.Logger) error {
	for !p.Feasible() {
		overweight := make(map[int32]bool)
		for _, b := range p.OverweightBlocks() {
			overweight[b] = true
		}

		type candidate struct {
			v        int
			from, to int32
			delta    int
			destSize int32
		}
		var best *candidate

		for v := 0; v < p.N(); v++ {
			from := p.Get(v)
			if !overweight[from] {
				continue
			}
			for b := int32(0); b < int32(p.K()); b++ {
				if overweight[b] || p.Slack(b) <= 0 {
					continue
				}
				d := gain.Move(h, flags, v, from, b)
				c := candidate{v: v, from: from, to: b, delta: d, destSize: p.Size(b)}
				if best == nil ||
					c.delta < best.delta ||
					(c.delta == best.delta && c.destSize < best.destSize) ||
					(c.delta == best.delta && c.destSize == best.destSize && c.v < best.v) {
					best = &c
				}
			}
		}

		if best == nil {
			return &InfeasibleError{Msg: "no destination with slack for any overweight vertex"}
		}

		p.Set(best.v, best.to)
		flags.ApplyMove(h, best.v, best.from, best.to)
		log.Debug().Int("vertex", best.v).Int32("from", best.from).Int32("to", best.to).Msg("balance repair move")
	}
	return nil
}

// FinalPolish runs a short refinement pass after feasibility is restored,
// bounded to at most maxIterations, to reclaim quality disturbed by
// repair.
func FinalPolish(ctx context.Context, re *refine.Engine, startIter, maxIterations int, best refine.BestTracker) error {
	if maxIterations <= 0 {
		return nil
	}
	_, _, err := re.Run(ctx, startIter, maxIterations, best)
	return err
}
