package score

import (
	"testing"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

func TestEvaluateMatchesIncremental(t *testing.T) {
	h, err := hypergraph.Build(6, [][]int32{{0, 1, 2}, {2, 3}, {3, 4, 5}, {0, 5}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := partition.New(6, 3, 0.2)
	assign := []int32{0, 0, 1, 1, 2, 2}
	for v, b := range assign {
		p.Set(v, b)
	}
	flags := edgeflags.Build(h, p)

	result := Evaluate(h, p.Assignment(), p.K(), p.Cap())
	if result.KM1 != flags.KM1() {
		t.Errorf("Evaluate KM1 = %d, incremental KM1 = %d", result.KM1, flags.KM1())
	}
	if err := CheckAgainstIncremental(result.KM1, flags.KM1()); err != nil {
		t.Errorf("CheckAgainstIncremental: %v", err)
	}
}

func TestEvaluateFeasibility(t *testing.T) {
	h, err := hypergraph.Build(4, [][]int32{{0, 1}, {2, 3}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	assign := []int32{0, 0, 0, 1} // block 0 has 3 vertices
	cap := partition.Capacity(4, 2, 0.0)

	result := Evaluate(h, assign, 2, cap)
	if result.Feasible {
		t.Errorf("expected infeasible: block 0 has 3 vertices, cap is %d", cap)
	}
	if result.MaxBlock != 3 {
		t.Errorf("MaxBlock = %d, want 3", result.MaxBlock)
	}
	if result.MinBlock != 1 {
		t.Errorf("MinBlock = %d, want 1", result.MinBlock)
	}
}

func TestCheckAgainstIncrementalMismatch(t *testing.T) {
	if err := CheckAgainstIncremental(5, 6); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
