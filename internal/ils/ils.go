// Package ils implements the Iterated Local Search outer loop: refine
// for r iterations, perturb on plateau, refine again, keep the result
// only if it strictly improves the tracked best-so-far. Acceptance is
// best-feasible-only, with no simulated-annealing temperature.
package ils

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
	"github.com/gilchrisn/hgpart/internal/refine"
)

// Best owns the best-so-far snapshot. It implements refine.BestTracker
// so the refinement engine can trigger updates from its own bookkeeping
// step while the controller remains the sole owner of the storage and
// lifecycle.
type Best struct {
	km1       int64
	hasResult bool
	assign    *partition.State
	flags     *edgeflags.Store
}

// NewBest returns an empty tracker (no snapshot, BestKM1 = MaxInt64); the
// first call to Record with a feasible state becomes the best.
func NewBest() *Best {
	return &Best{km1: 1<<63 - 1}
}

// Record considers (km1, feasible) as a new best-so-far.
func (b *Best) Record(km1 int64, feasible bool, p *partition.State, f *edgeflags.Store) {
	if !feasible {
		return
	}
	if b.hasResult && km1 >= b.km1 {
		return
	}
	b.km1 = km1
	if b.assign == nil {
		b.assign = p.Clone()
		b.flags = f.Clone()
	} else {
		b.assign.CopyFrom(p)
		b.flags.CopyFrom(f)
	}
	b.hasResult = true
}

// BestKM1 returns the best KM1 recorded, or MaxInt64 if none yet.
func (b *Best) BestKM1() int64 { return b.km1 }

// HasResult reports whether Record has ever been called with a feasible
// state.
func (b *Best) HasResult() bool { return b.hasResult }

// Snapshot returns the best assignment and its KM1. Callers must not
// mutate the returned partition.State/edgeflags.Store.
func (b *Best) Snapshot() (*partition.State, *edgeflags.Store, int64) {
	return b.assign, b.flags, b.km1
}

// RestoreInto copies the best-so-far snapshot into p and f, used when a
// round fails to improve.
func (b *Best) RestoreInto(p *partition.State, f *edgeflags.Store) {
	p.CopyFrom(b.assign)
	f.CopyFrom(b.flags)
}

// Config holds the ILS controller's tunables.
type Config struct {
	RoundLength      int     // r
	PerturbationBase float64 // rho0, decays with round index
	Seed             int64
}

// Controller drives the refine -> perturb -> refine -> accept loop.
type Controller struct {
	h     *hypergraph.Hypergraph
	p     *partition.State
	flags *edgeflags.Store
	cfg   Config
	rng   *rand.Rand
	log   zerolog.Logger
}

// New creates an ILS controller with a reproducible RNG seeded from
// cfg.Seed, so every run is bitwise reproducible for a given seed.
func New(h *hypergraph.Hypergraph, p *partition.State, flags *edgeflags.Store, cfg Config, log zerolog.Logger) *Controller {
	seed := uint64(cfg.Seed)
	return &Controller{
		h:     h,
		p:     p,
		flags: flags,
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		log:   log,
	}
}

// Run drives ILS rounds until the given refinement engine has consumed
// its total budget. re is used for scoring/selecting/committing moves;
// the controller only owns perturbation and accept/restore between
// rounds.
func (c *Controller) Run(ctx context.Context, re *refine.Engine, totalBudget int, best *Best) error {
	iter := 0
	round := 0
	for iter < totalBudget {
		length := c.cfg.RoundLength
		if iter+length > totalBudget {
			length = totalBudget - iter
		}

		done, plateau, err := re.Run(ctx, iter, length, best)
		iter += done

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return err
		}

		if iter >= totalBudget {
			break
		}
		if !plateau {
			// Round consumed its full length without stalling; go
			// straight into the next round's score/select/commit
			// rather than perturbing a state that's still improving.
			continue
		}

		// Plateau: perturb, then refine again for another round length,
		// budget permitting.
		c.perturb(round)
		round++

		length2 := c.cfg.RoundLength
		if iter+length2 > totalBudget {
			length2 = totalBudget - iter
		}
		if length2 <= 0 {
			break
		}
		done2, _, err := re.Run(ctx, iter, length2, best)
		iter += done2
		if err != nil {
			return err
		}

		// Keep the perturbed-and-refined state only if it improved on
		// best-so-far and is feasible; otherwise restore.
		if re.CurrentKM1() < best.BestKM1() && c.p.Feasible() {
			best.Record(re.CurrentKM1(), true, c.p, c.flags)
		} else if best.HasResult() {
			best.RestoreInto(c.p, c.flags)
			re.SyncKM1(best.BestKM1())
		}
	}
	return nil
}

// perturb reassigns a random subset of vertices of size rho*n to a
// uniformly random block among those with positive slack, falling back
// to the least-loaded block. rho decays with round index toward a floor,
// matching the monotone-non-increasing decay used by every other
// schedule in this engine.
func (c *Controller) perturb(round int) {
	n := c.p.N()
	k := c.p.K()

	rho := c.cfg.PerturbationBase * decayFactor(round)
	if rho < 0.02 {
		rho = 0.02
	}
	count := int(rho * float64(n))
	if count < 1 {
		count = 1
	}

	candidateBlocks := make([]int32, 0, k)

	for i := 0; i < count; i++ {
		v := c.rng.IntN(n)
		from := c.p.Get(v)

		candidateBlocks = candidateBlocks[:0]
		for b := 0; b < k; b++ {
			if int32(b) != from && c.p.Slack(int32(b)) > 0 {
				candidateBlocks = append(candidateBlocks, int32(b))
			}
		}

		var to int32
		if len(candidateBlocks) == 0 {
			to = c.p.LeastLoadedBlock()
			if to == from {
				continue
			}
		} else {
			to = candidateBlocks[c.rng.IntN(len(candidateBlocks))]
		}

		c.p.Set(v, to)
		c.flags.ApplyMove(c.h, v, from, to)
	}
}

// decayFactor produces a monotone non-increasing multiplier in (0,1] that
// halves every 8 rounds, floored at 0.25, giving perturbation strength a
// gentle decline over a long ILS run without ever reaching zero.
func decayFactor(round int) float64 {
	f := 1.0
	for i := 0; i < round/8; i++ {
		f *= 0.5
		if f <= 0.25 {
			return 0.25
		}
	}
	return f
}
