package initpart

import (
	"testing"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
)

func TestBuildIsFeasibleAndDeterministic(t *testing.T) {
	edges := make([][]int32, 0, 40)
	for i := 0; i < 40; i++ {
		a := int32(i % 20)
		b := int32((i + 1) % 20)
		if a == b {
			b = (b + 1) % 20
		}
		edges = append(edges, []int32{a, b})
	}
	h, err := hypergraph.Build(20, edges)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p1 := Build(h, 4, 0.1)
	if !p1.Feasible() {
		t.Fatalf("initial partition is infeasible: overweight=%v cap=%d", p1.OverweightBlocks(), p1.Cap())
	}
	for v := 0; v < h.NumVertices(); v++ {
		if p1.Get(v) < 0 || int(p1.Get(v)) >= p1.K() {
			t.Fatalf("vertex %d has invalid block %d", v, p1.Get(v))
		}
	}

	p2 := Build(h, 4, 0.1)
	for v := 0; v < h.NumVertices(); v++ {
		if p1.Get(v) != p2.Get(v) {
			t.Fatalf("Build is not deterministic: vertex %d got %d then %d", v, p1.Get(v), p2.Get(v))
		}
	}
}
