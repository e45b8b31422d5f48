package partition

import "testing"

func TestCapacity(t *testing.T) {
	cases := []struct {
		n, k    int
		epsilon float64
		want    int32
	}{
		{n: 100, k: 4, epsilon: 0.0, want: 25},
		{n: 100, k: 4, epsilon: 0.03, want: 26},
		{n: 10, k: 3, epsilon: 0.0, want: 4},
		{n: 1, k: 1, epsilon: 0.0, want: 1},
	}
	for _, c := range cases {
		got := Capacity(c.n, c.k, c.epsilon)
		if got != c.want {
			t.Errorf("Capacity(%d,%d,%.2f) = %d, want %d", c.n, c.k, c.epsilon, got, c.want)
		}
	}
}

func TestSetAndSize(t *testing.T) {
	s := New(5, 2, 0.0)

	s.Set(0, 0)
	s.Set(1, 0)
	s.Set(2, 1)

	if s.Size(0) != 2 {
		t.Errorf("Size(0) = %d, want 2", s.Size(0))
	}
	if s.Size(1) != 1 {
		t.Errorf("Size(1) = %d, want 1", s.Size(1))
	}

	// Moving vertex 0 from block 0 to block 1 updates both sizes.
	s.Set(0, 1)
	if s.Size(0) != 1 {
		t.Errorf("after move, Size(0) = %d, want 1", s.Size(0))
	}
	if s.Size(1) != 2 {
		t.Errorf("after move, Size(1) = %d, want 2", s.Size(1))
	}

	// Setting to the same block is a no-op.
	s.Set(0, 1)
	if s.Size(1) != 2 {
		t.Errorf("no-op Set changed Size(1) to %d, want 2", s.Size(1))
	}
}

func TestFeasibleAndOverweight(t *testing.T) {
	s := New(4, 2, 0.0) // cap = ceil(4/2*1.0) = 2
	s.Set(0, 0)
	s.Set(1, 0)
	if !s.Feasible() {
		t.Fatalf("expected feasible at capacity")
	}

	s.Set(2, 0)
	if s.Feasible() {
		t.Fatalf("expected infeasible, block 0 has 3 > cap 2")
	}
	over := s.OverweightBlocks()
	if len(over) != 1 || over[0] != 0 {
		t.Errorf("OverweightBlocks() = %v, want [0]", over)
	}
}

func TestCloneAndCopyFrom(t *testing.T) {
	s := New(3, 2, 0.0)
	s.Set(0, 0)
	s.Set(1, 1)
	s.Set(2, 1)

	clone := s.Clone()
	s.Set(0, 1)

	if clone.Get(0) != 0 {
		t.Errorf("clone mutated by source change: Get(0) = %d, want 0", clone.Get(0))
	}

	restore := New(3, 2, 0.0)
	restore.CopyFrom(clone)
	if restore.Get(0) != 0 || restore.Size(0) != 1 || restore.Size(1) != 2 {
		t.Errorf("CopyFrom did not reproduce clone state: assign=%v sizes=(%d,%d)",
			restore.Assignment(), restore.Size(0), restore.Size(1))
	}
}

func TestLeastLoadedBlock(t *testing.T) {
	s := New(5, 3, 1.0)
	s.Set(0, 0)
	s.Set(1, 0)
	s.Set(2, 1)

	if got := s.LeastLoadedBlock(); got != 2 {
		t.Errorf("LeastLoadedBlock() = %d, want 2 (block 2 is empty, blocks 0 and 1 are not)", got)
	}
}
