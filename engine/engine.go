// Package engine wires the hypergraph KM1 partitioner's components into
// a single public entry point, Partition: build inputs, run the
// algorithm under a context, wrap errors, return a typed result.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/ils"
	"github.com/gilchrisn/hgpart/internal/initpart"
	"github.com/gilchrisn/hgpart/internal/refine"
	"github.com/gilchrisn/hgpart/internal/repair"
	"github.com/gilchrisn/hgpart/internal/score"
)

// CancelledError wraps a context cancellation/deadline so callers can
// distinguish it from InputError/ParameterError/InfeasibleError.
type CancelledError struct{ Cause error }

func (e *CancelledError) Error() string { return fmt.Sprintf("partition cancelled: %v", e.Cause) }
func (e *CancelledError) Unwrap() error { return e.Cause }

// Result is the output of a full Partition run.
type Result struct {
	Assignment []int32
	KM1        int64
	MaxBlock   int32
	MinBlock   int32
	Feasible   bool
	Elapsed    time.Duration
}

// Partition runs the full pipeline: initial partition, incremental gain
// bookkeeping, refinement under iterated local search, balance repair,
// then a from-scratch validator pass. log should be built with
// internal/telemetry (New or Nop), never the zero zerolog.Logger.
func Partition(ctx context.Context, h *hypergraph.Hypergraph, p Params, log zerolog.Logger) (Result, error) {
	start := time.Now()

	r, err := resolveParams(p, h.NumVertices())
	if err != nil {
		return Result{}, err
	}

	select {
	case <-ctx.Done():
		return Result{}, &CancelledError{Cause: ctx.Err()}
	default:
	}

	st := initpart.Build(h, r.K, r.Epsilon)
	flags := edgeflags.Build(h, st)
	initialKM1 := flags.KM1()

	log.Info().
		Int("n", h.NumVertices()).
		Int("m", h.NumEdges()).
		Int("k", r.K).
		Float64("epsilon", r.Epsilon).
		Int64("initial_km1", initialKM1).
		Msg("initial partition built")

	best := ils.NewBest()
	best.Record(initialKM1, st.Feasible(), st, flags)

	refineCfg := refine.Config{
		K:              r.K,
		Budget:         r.budget,
		TabuTenure:     r.TabuTenure,
		InitialMoveCap: r.InitialMoveCap,
		QuotaFraction:  r.QuotaFraction,
		StallLimit:     r.StallLimit,
	}
	re := refine.New(h, st, flags, refineCfg, initialKM1, log)

	ilsCfg := ils.Config{
		RoundLength:      r.ILSRoundLength,
		PerturbationBase: r.Perturbation,
		Seed:             r.Seed,
	}
	controller := ils.New(h, st, flags, ilsCfg, log)

	// finalizeCancelled restores the best feasible assignment seen so far
	// (repairing it if it never reached feasibility) so cancellation
	// returns a usable Result rather than a zero value.
	finalizeCancelled := func(cause error) (Result, error) {
		if best.HasResult() {
			bestState, bestFlags, _ := best.Snapshot()
			st.CopyFrom(bestState)
			flags.CopyFrom(bestFlags)
		}
		if !st.Feasible() {
			if err := repair.Run(h, st, flags, log); err != nil {
				log.Warn().Err(err).Msg("balance repair failed while finalizing a cancelled run")
			}
		}
		result := score.EvaluateState(h, st)
		return Result{
			Assignment: append([]int32(nil), st.Assignment()...),
			KM1:        result.KM1,
			MaxBlock:   result.MaxBlock,
			MinBlock:   result.MinBlock,
			Feasible:   result.Feasible,
			Elapsed:    time.Since(start),
		}, &CancelledError{Cause: cause}
	}

	if err := controller.Run(ctx, re, r.budget, best); err != nil {
		return finalizeCancelled(err)
	}

	if best.HasResult() {
		bestState, bestFlags, _ := best.Snapshot()
		st.CopyFrom(bestState)
		flags.CopyFrom(bestFlags)
		re.SyncKM1(best.BestKM1())
	}

	if !st.Feasible() {
		if err := repair.Run(h, st, flags, log); err != nil {
			return Result{}, err
		}
		re.SyncKM1(flags.KM1())

		polishBudget := r.ILSRoundLength / 4
		if err := repair.FinalPolish(ctx, re, r.budget, polishBudget, best); err != nil {
			return finalizeCancelled(err)
		}
		if best.HasResult() {
			bestState, bestFlags, _ := best.Snapshot()
			if bestState.Feasible() {
				st.CopyFrom(bestState)
				flags.CopyFrom(bestFlags)
			}
		}
	}

	result := score.EvaluateState(h, st)
	if err := score.CheckAgainstIncremental(result.KM1, flags.KM1()); err != nil {
		log.Warn().Err(err).Msg("validator KM1 mismatch against incremental bookkeeping")
	}

	log.Info().
		Int64("km1", result.KM1).
		Bool("feasible", result.Feasible).
		Dur("elapsed", time.Since(start)).
		Msg("partition complete")

	return Result{
		Assignment: append([]int32(nil), st.Assignment()...),
		KM1:        result.KM1,
		MaxBlock:   result.MaxBlock,
		MinBlock:   result.MinBlock,
		Feasible:   result.Feasible,
		Elapsed:    time.Since(start),
	}, nil
}
