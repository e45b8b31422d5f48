// Package refine implements the refinement engine: a parallel score
// phase, a capacity-aware quota-constrained select phase, and a serial
// commit phase with tabu tenure and aspiration, driving KM1 downward
// under the balance constraint.
//
// The score phase is a pure read of the current (partition.State,
// edgeflags.Store) snapshot, so it is farmed out across a bounded worker
// pool with golang.org/x/sync/errgroup.
package refine

import (
	"context"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/gain"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

// Candidate is a single (vertex, destination) move proposal produced by
// the score phase.
type Candidate struct {
	V     int32
	From  int32
	To    int32
	Delta int
}

// BestTracker is the interface the ILS controller exposes so the
// refinement engine's bookkeeping step can record a new best-so-far
// without the refine package owning that state itself. Implementations
// must be safe to call once per iteration from the driver goroutine (no
// internal concurrency is required).
type BestTracker interface {
	// Record considers (km1, feasible) as a new best if it strictly
	// improves the tracked best, snapshotting p and f if so.
	Record(km1 int64, feasible bool, p *partition.State, f *edgeflags.Store)
	// BestKM1 returns the best KM1 recorded so far, used for aspiration.
	BestKM1() int64
}

// Config holds the refinement engine's tunables.
type Config struct {
	K              int
	Budget         int     // total refinement iterations R across the whole run
	TabuTenure     int     // base T, decays via schedule toward a floor
	InitialMoveCap int     // base M, decays via schedule toward a floor
	QuotaFraction  float64 // base alpha, decays via schedule toward a floor
	StallLimit     int
	Workers        int // score-phase worker pool size; 0 = runtime.GOMAXPROCS
}

// Engine drives one or more refinement iterations over a shared
// hypergraph, partition state and edgeflags store.
type Engine struct {
	h     *hypergraph.Hypergraph
	p     *partition.State
	flags *edgeflags.Store
	cfg   Config
	log   zerolog.Logger

	tabuUntil []int64
	current   int64 // running KM1, maintained incrementally

	moveSchedule  Schedule
	alphaSchedule Schedule
	tenuSchedule  Schedule

	workers int
}

// New creates a refinement engine. initialKM1 is the KM1 of the state as
// handed in, used to seed the incrementally maintained running total.
func New(h *hypergraph.Hypergraph, p *partition.State, flags *edgeflags.Store, cfg Config, initialKM1 int64, log zerolog.Logger) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moveCapFloor := float64(cfg.InitialMoveCap) / 20
	if moveCapFloor < 1 {
		moveCapFloor = 1
	}

	return &Engine{
		h:         h,
		p:         p,
		flags:     flags,
		cfg:       cfg,
		log:       log,
		tabuUntil: make([]int64, p.N()),
		current:   initialKM1,
		workers:   workers,
		moveSchedule: Schedule{
			Start: float64(cfg.InitialMoveCap), Floor: moveCapFloor, Budget: cfg.Budget,
		},
		alphaSchedule: Schedule{
			Start: cfg.QuotaFraction, Floor: cfg.QuotaFraction / 10, Budget: cfg.Budget,
		},
		tenuSchedule: Schedule{
			Start: float64(cfg.TabuTenure), Floor: 1, Budget: cfg.Budget,
		},
	}
}

// CurrentKM1 returns the incrementally maintained running KM1.
func (e *Engine) CurrentKM1() int64 { return e.current }

// SyncKM1 overwrites the incrementally maintained running KM1, used by
// the ILS controller after it restores partition/edgeflags state from
// best-so-far, so the engine's running total stays consistent with the
// state it will score against next.
func (e *Engine) SyncKM1(km1 int64) { e.current = km1 }

// scoreResult is one vertex's full row of per-destination deltas,
// computed against a fixed snapshot (no writes happen during the score
// phase, so concurrent readers need no synchronization).
type scoreResult struct {
	v    int32
	from int32
	tabu bool
	best Candidate // vertex's most-improving candidate
	// secondBest is kept so the select phase can fall back to a
	// vertex's next-best destination when its top choice's quota is
	// exhausted; all k-1 destinations are evaluated, not just the best
	// one.
	secondBest Candidate
	hasSecond  bool
}

// scorePhase computes, for every vertex, its best and second-best move
// candidates across all destination blocks, in parallel across a bounded
// worker pool.
func (e *Engine) scorePhase(ctx context.Context, iter int) ([]scoreResult, error) {
	n := e.p.N()
	k := e.cfg.K
	results := make([]scoreResult, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	chunk := (n + e.workers - 1) / e.workers
	if chunk < 1 {
		chunk = 1
	}

	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			buf := make([]int, k)
			for v := start; v < end; v++ {
				a := e.p.Get(v)
				gain.AllTargets(e.h, e.flags, v, a, k, buf)

				best := Candidate{V: int32(v), From: a, To: a, Delta: 0}
				haveBest := false
				second := Candidate{}
				haveSecond := false

				for b := 0; b < k; b++ {
					if int32(b) == a {
						continue
					}
					d := buf[b]
					if !haveBest || d < best.Delta {
						if haveBest {
							second = best
							haveSecond = true
						}
						best = Candidate{V: int32(v), From: a, To: int32(b), Delta: d}
						haveBest = true
					} else if !haveSecond || d < second.Delta {
						second = Candidate{V: int32(v), From: a, To: int32(b), Delta: d}
						haveSecond = true
					}
				}

				results[v] = scoreResult{
					v:          int32(v),
					from:       a,
					tabu:       e.tabuUntil[v] > int64(iter),
					best:       best,
					secondBest: second,
					hasSecond:  haveSecond,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// nonImprovingAdmitFraction bounds how many non-improving (Delta >= 0)
// candidates from non-tabu vertices eligible may admit per iteration, as
// a fraction of n. They are admitted in vertex order as they are met;
// because the select phase sorts by Delta ascending, they are only
// reached after every improving candidate.
const nonImprovingAdmitFraction = 0.02

// eligible collects, from each vertex's scored row, the candidates worth
// sorting: improving candidates (Delta < 0) from non-tabu vertices always,
// a small fraction of non-improving ones from non-tabu vertices to keep
// the select phase from starving once the graph is mostly optimized, and
// aspiration-admissible candidates for tabu vertices.
func (e *Engine) eligible(results []scoreResult, bestKM1 int64) []Candidate {
	out := make([]Candidate, 0, len(results))
	nonImprovingBudget := int(nonImprovingAdmitFraction * float64(len(results)))

	admit := func(c Candidate) bool {
		if c.Delta < 0 {
			out = append(out, c)
			return true
		}
		if nonImprovingBudget > 0 {
			out = append(out, c)
			nonImprovingBudget--
			return true
		}
		return false
	}

	for _, r := range results {
		if !r.tabu {
			admit(r.best)
			if r.hasSecond {
				admit(r.secondBest)
			}
			continue
		}
		// Tabu: only aspiration-admissible candidates bypass the ban.
		if e.current+int64(r.best.Delta) < bestKM1 {
			out = append(out, r.best)
		}
	}
	return out
}

// RunIteration executes one full refinement iteration: score, select,
// commit, then bookkeeping. It returns the number of moves committed and
// whether a plateau (cfg.StallLimit consecutive no-move iterations,
// counted in *stallCount) has been reached.
func (e *Engine) RunIteration(ctx context.Context, iter int, best BestTracker, stallCount *int) (int, bool, error) {
	results, err := e.scorePhase(ctx, iter)
	if err != nil {
		return 0, false, err
	}

	bestKM1 := best.BestKM1()
	candidates := e.eligible(results, bestKM1)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Delta != candidates[j].Delta {
			return candidates[i].Delta < candidates[j].Delta
		}
		if candidates[i].V != candidates[j].V {
			return candidates[i].V < candidates[j].V
		}
		return candidates[i].To < candidates[j].To
	})

	alpha := e.alphaSchedule.At(iter)
	moveCap := e.moveSchedule.AtInt(iter)
	tenure := int64(e.tenuSchedule.AtInt(iter))
	if tenure < 1 {
		tenure = 1
	}

	quota := make([]int, e.cfg.K)
	for b := 0; b < e.cfg.K; b++ {
		quota[b] = int(alpha * float64(e.p.Slack(int32(b))))
	}

	used := make([]bool, e.p.N())
	accepted := make([]Candidate, 0, moveCap)
	for _, c := range candidates {
		if len(accepted) >= moveCap {
			break
		}
		if used[c.V] {
			continue
		}
		if quota[c.To] <= 0 {
			continue
		}
		quota[c.To]--
		used[c.V] = true
		accepted = append(accepted, c)
	}

	moves := 0
	for _, c := range accepted {
		curFrom := e.p.Get(int(c.V))
		actual := gain.Move(e.h, e.flags, int(c.V), curFrom, c.To)
		if actual <= c.Delta {
			e.p.Set(int(c.V), c.To)
			e.flags.ApplyMove(e.h, int(c.V), curFrom, c.To)
			e.tabuUntil[c.V] = int64(iter) + tenure
			e.current += int64(actual)
			moves++
		}
	}

	if moves > 0 {
		*stallCount = 0
	} else {
		*stallCount++
	}

	if e.current < bestKM1 && e.p.Feasible() {
		best.Record(e.current, true, e.p, e.flags)
	}

	plateau := *stallCount >= e.cfg.StallLimit

	e.log.Debug().
		Int("iter", iter).
		Int("moves", moves).
		Int64("km1", e.current).
		Int("move_cap", moveCap).
		Float64("alpha", alpha).
		Bool("plateau", plateau).
		Msg("refinement iteration")

	return moves, plateau, nil
}

// Run executes up to iterations refinement iterations starting at
// startIter, stopping early on plateau. It returns the number of
// iterations actually executed.
func (e *Engine) Run(ctx context.Context, startIter, iterations int, best BestTracker) (int, bool, error) {
	stall := 0
	for i := 0; i < iterations; i++ {
		_, plateau, err := e.RunIteration(ctx, startIter+i, best, &stall)
		if err != nil {
			return i, false, err
		}
		if plateau {
			return i + 1, true, nil
		}
	}
	return iterations, false, nil
}

// TabuUntil exposes the tabu horizon for vertex v, used by tests and by
// the ILS controller when it needs to reason about tabu state across
// rounds (e.g. clearing it isn't required, since iteration counters are
// monotonically increasing for the engine's lifetime).
func (e *Engine) TabuUntil(v int) int64 { return e.tabuUntil[v] }
