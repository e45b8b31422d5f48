// Package edgeflags implements the per-edge dual-bitmask occupancy store:
// a saturating per-(edge,block) pin count plus two k-bit masks, flags_any
// (>=1 pin) and flags_double (>=2 pins), that together let the gain model
// (package gain) evaluate a candidate move in O(1) bit tests. k <= 64 so
// both masks fit one uint64 word.
package edgeflags

import (
	"math/bits"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

const maxCount = 255 // uint8 saturation ceiling.

// Store holds, for every edge, the per-block pin counts and the two
// occupancy bitmasks.
type Store struct {
	numEdges int
	k        int

	// count is a flattened [numEdges][k]uint8 table, count[e*k+b].
	count []uint8

	flagsAny    []uint64
	flagsDouble []uint64
}

// Build performs a single linear pass over edge_pins: for every edge e,
// count[e, assign[v]] += 1 for each pin v, then derives
// flags_any/flags_double from the counts.
func Build(h *hypergraph.Hypergraph, p *partition.State) *Store {
	numEdges := h.NumEdges()
	k := p.K()
	s := &Store{
		numEdges:    numEdges,
		k:           k,
		count:       make([]uint8, numEdges*k),
		flagsAny:    make([]uint64, numEdges),
		flagsDouble: make([]uint64, numEdges),
	}

	for e := 0; e < numEdges; e++ {
		base := e * k
		for _, v := range h.EdgePins(e) {
			b := p.Get(int(v))
			idx := base + int(b)
			if s.count[idx] < maxCount {
				s.count[idx]++
			}
		}
		var any, double uint64
		for b := 0; b < k; b++ {
			c := s.count[base+b]
			if c >= 1 {
				any |= 1 << uint(b)
			}
			if c >= 2 {
				double |= 1 << uint(b)
			}
		}
		s.flagsAny[e] = any
		s.flagsDouble[e] = double
	}

	return s
}

// Count returns count[e,b].
func (s *Store) Count(e int, b int32) uint8 { return s.count[e*s.k+int(b)] }

// FlagsAny returns flags_any[e].
func (s *Store) FlagsAny(e int) uint64 { return s.flagsAny[e] }

// FlagsDouble returns flags_double[e].
func (s *Store) FlagsDouble(e int) uint64 { return s.flagsDouble[e] }

// Lambda returns popcount(flags_any[e]), the number of distinct blocks
// touching edge e.
func (s *Store) Lambda(e int) int { return bits.OnesCount64(s.flagsAny[e]) }

// KM1 returns the full connectivity metric Sum_e (lambda(e) - 1).
func (s *Store) KM1() int64 {
	var total int64
	for e := 0; e < s.numEdges; e++ {
		total += int64(bits.OnesCount64(s.flagsAny[e]) - 1)
	}
	return total
}

// ApplyMove moves vertex v from block fromB to block toB, updating the
// counts and both flag bitmasks for every edge incident to v. It is a
// no-op if fromB == toB; callers are expected to have already rejected
// that case, but ApplyMove tolerates it defensively since the cost of
// the check is negligible next to the incident-edge loop.
func (s *Store) ApplyMove(h *hypergraph.Hypergraph, v int, fromB, toB int32) {
	if fromB == toB {
		return
	}
	for _, e32 := range h.NodeEdges(v) {
		e := int(e32)
		base := e * s.k

		fromIdx := base + int(fromB)
		if s.count[fromIdx] < maxCount {
			s.count[fromIdx]--
			if s.count[fromIdx] == 1 {
				s.flagsDouble[e] &^= 1 << uint(fromB)
			}
			if s.count[fromIdx] == 0 {
				s.flagsAny[e] &^= 1 << uint(fromB)
			}
		}

		toIdx := base + int(toB)
		if s.count[toIdx] < maxCount {
			s.count[toIdx]++
			c := s.count[toIdx]
			if c == 1 {
				s.flagsAny[e] |= 1 << uint(toB)
			}
			if c == 2 {
				s.flagsDouble[e] |= 1 << uint(toB)
			}
		}
	}
}

// Clone returns a deep copy, used when the ILS controller snapshots or
// restores best-so-far state alongside partition.State.
func (s *Store) Clone() *Store {
	c := &Store{
		numEdges:    s.numEdges,
		k:           s.k,
		count:       make([]uint8, len(s.count)),
		flagsAny:    make([]uint64, len(s.flagsAny)),
		flagsDouble: make([]uint64, len(s.flagsDouble)),
	}
	copy(c.count, s.count)
	copy(c.flagsAny, s.flagsAny)
	copy(c.flagsDouble, s.flagsDouble)
	return c
}

// CopyFrom overwrites s in place with the contents of other.
func (s *Store) CopyFrom(other *Store) {
	copy(s.count, other.count)
	copy(s.flagsAny, other.flagsAny)
	copy(s.flagsDouble, other.flagsDouble)
}
