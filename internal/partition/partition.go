// Package partition holds block assignment and per-block size/capacity
// bookkeeping. Operations are not concurrent-safe; the refinement and
// repair engines call them only from the single driver thread during the
// serial commit phase.
package partition

import "math"

// State is the partition membership and per-block size bookkeeping for a
// hypergraph with n vertices and k blocks.
type State struct {
	k         int
	assign    []int32
	blockSize []int32
	cap       int32
}

// New creates a State with every vertex unassigned (block -1) for a
// hypergraph of n vertices split into k blocks with imbalance epsilon.
// cap = ceil((n/k)*(1+epsilon)).
func New(n, k int, epsilon float64) *State {
	c := Capacity(n, k, epsilon)
	assign := make([]int32, n)
	for i := range assign {
		assign[i] = -1
	}
	return &State{
		k:         k,
		assign:    assign,
		blockSize: make([]int32, k),
		cap:       c,
	}
}

// Capacity computes ceil((n/k)*(1+epsilon)).
func Capacity(n, k int, epsilon float64) int32 {
	return int32(math.Ceil(float64(n) / float64(k) * (1 + epsilon)))
}

// K returns the number of blocks.
func (s *State) K() int { return s.k }

// N returns the number of vertices.
func (s *State) N() int { return len(s.assign) }

// Get returns the block currently holding vertex v, or -1 if unassigned.
func (s *State) Get(v int) int32 { return s.assign[v] }

// Set assigns vertex v to block b, updating block sizes. It is a caller
// error to call Set concurrently with any other State method; Set itself
// performs no synchronization.
func (s *State) Set(v int, b int32) {
	old := s.assign[v]
	if old == b {
		return
	}
	if old >= 0 {
		s.blockSize[old]--
	}
	s.assign[v] = b
	s.blockSize[b]++
}

// Size returns the current size of block b.
func (s *State) Size(b int32) int32 { return s.blockSize[b] }

// Cap returns the per-block capacity.
func (s *State) Cap() int32 { return s.cap }

// Slack returns max(0, cap - size(b)).
func (s *State) Slack(b int32) int32 {
	slack := s.cap - s.blockSize[b]
	if slack < 0 {
		return 0
	}
	return slack
}

// Feasible reports whether every block is at or under capacity.
func (s *State) Feasible() bool {
	for b := 0; b < s.k; b++ {
		if s.blockSize[b] > s.cap {
			return false
		}
	}
	return true
}

// OverweightBlocks returns the set of blocks currently exceeding capacity.
func (s *State) OverweightBlocks() []int32 {
	var o []int32
	for b := 0; b < s.k; b++ {
		if s.blockSize[b] > s.cap {
			o = append(o, int32(b))
		}
	}
	return o
}

// Assignment returns the full assignment slice. Callers must not mutate
// the returned slice directly; use Set.
func (s *State) Assignment() []int32 { return s.assign }

// Clone returns a deep copy of the state, used for best-so-far
// snapshots.
func (s *State) Clone() *State {
	c := &State{
		k:         s.k,
		assign:    make([]int32, len(s.assign)),
		blockSize: make([]int32, len(s.blockSize)),
		cap:       s.cap,
	}
	copy(c.assign, s.assign)
	copy(c.blockSize, s.blockSize)
	return c
}

// CopyFrom overwrites s in place with the contents of other, avoiding an
// allocation when restoring best-so-far repeatedly inside the ILS loop.
func (s *State) CopyFrom(other *State) {
	copy(s.assign, other.assign)
	copy(s.blockSize, other.blockSize)
	s.cap = other.cap
}

// LeastLoadedBlock returns the block with the smallest current size,
// tie-broken by lowest block id, matching the initial partitioner's
// tie-break rule.
func (s *State) LeastLoadedBlock() int32 {
	best := int32(0)
	for b := int32(1); b < int32(s.k); b++ {
		if s.blockSize[b] < s.blockSize[best] {
			best = b
		}
	}
	return best
}
