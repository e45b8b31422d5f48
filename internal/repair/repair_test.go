package repair

import (
	"context"
	"testing"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
	"github.com/gilchrisn/hgpart/internal/refine"
	"github.com/gilchrisn/hgpart/internal/telemetry"
)

func TestRunRestoresFeasibility(t *testing.T) {
	h, err := hypergraph.Build(6, [][]int32{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := partition.New(6, 2, 0.0) // cap = ceil(6/2) = 3
	for v := 0; v < 5; v++ {
		p.Set(v, 0) // dump 5 vertices in block 0, 1 in block 1
	}
	p.Set(5, 1)
	flags := edgeflags.Build(h, p)

	if p.Feasible() {
		t.Fatalf("test setup expected an infeasible starting partition")
	}

	if err := Run(h, p, flags, telemetry.Nop()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.Feasible() {
		t.Fatalf("partition still infeasible after Run: overweight=%v", p.OverweightBlocks())
	}
}

func TestFinalPolishZeroBudgetIsNoop(t *testing.T) {
	h, err := hypergraph.Build(4, [][]int32{{0, 1}, {2, 3}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := partition.New(4, 2, 0.0)
	p.Set(0, 0)
	p.Set(1, 0)
	p.Set(2, 1)
	p.Set(3, 1)
	flags := edgeflags.Build(h, p)

	cfg := refine.Config{K: 2, Budget: 10, TabuTenure: 2, InitialMoveCap: 4, QuotaFraction: 1.0, StallLimit: 2}
	re := refine.New(h, p, flags, cfg, flags.KM1(), telemetry.Nop())
	best := &noopBestTracker{}

	if err := FinalPolish(context.Background(), re, 0, 0, best); err != nil {
		t.Fatalf("FinalPolish with zero budget returned error: %v", err)
	}
}

type noopBestTracker struct{}

func (*noopBestTracker) Record(km1 int64, feasible bool, p *partition.State, f *edgeflags.Store) {}
func (*noopBestTracker) BestKM1() int64                                                          { return 1 << 62 }
