package gain

import (
	"testing"

	"github.com/gilchrisn/hgpart/internal/edgeflags"
	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

func TestMoveMatchesApplyDelta(t *testing.T) {
	h, err := hypergraph.Build(5, [][]int32{{0, 1, 2}, {1, 3}, {2, 3, 4}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := partition.New(5, 3, 1.0)
	p.Set(0, 0)
	p.Set(1, 0)
	p.Set(2, 1)
	p.Set(3, 1)
	p.Set(4, 2)

	flags := edgeflags.Build(h, p)

	for v := 0; v < 5; v++ {
		from := p.Get(v)
		for to := int32(0); to < 3; to++ {
			if to == from {
				continue
			}
			before := flags.KM1()
			predicted := Move(h, flags, v, from, to)

			p.Set(v, to)
			flags.ApplyMove(h, v, from, to)
			actual := flags.KM1() - before

			if int64(predicted) != actual {
				t.Errorf("vertex %d %d->%d: Move predicted %d, actual delta %d", v, from, to, predicted, actual)
			}

			// undo
			flags.ApplyMove(h, v, to, from)
			p.Set(v, from)
		}
	}
}

func TestAllTargets(t *testing.T) {
	h, err := hypergraph.Build(4, [][]int32{{0, 1}, {1, 2, 3}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := partition.New(4, 3, 2.0)
	p.Set(0, 0)
	p.Set(1, 0)
	p.Set(2, 1)
	p.Set(3, 2)

	flags := edgeflags.Build(h, p)

	buf := make([]int, 3)
	AllTargets(h, flags, 1, 0, 3, buf)

	for to := int32(0); to < 3; to++ {
		if to == 0 {
			continue
		}
		want := Move(h, flags, 1, 0, to)
		if buf[to] != want {
			t.Errorf("AllTargets[%d] = %d, want %d", to, buf[to], want)
		}
	}
}
