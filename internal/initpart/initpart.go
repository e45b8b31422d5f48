// Package initpart builds a feasible starting partition: a signature-
// clustering seed pass over small edges first, a confidence-weighted
// vertex scoring pass, and a capacity-respecting greedy placement.
package initpart

import (
	"hash/fnv"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
	"github.com/gilchrisn/hgpart/internal/partition"
)

// Build produces a feasible initial partition.State for h with k blocks
// and imbalance epsilon. Output is deterministic for a given hypergraph,
// independent of any RNG.
func Build(h *hypergraph.Hypergraph, k int, epsilon float64) *partition.State {
	p := partition.New(h.NumVertices(), k, epsilon)

	seed := seedEdges(h, k)
	scores := scoreVertices(h, seed, k)
	placeVertices(p, scores, k)

	return p
}

// seedEdges processes edges in small-edge-first order, hashes each
// edge's sorted pin list into a signature, groups edges
// sharing a signature into a micro-cluster, and assign each micro-cluster
// a seed block by always picking the currently lightest-loaded block
// (round-robin over the load ordering falls out of always picking the
// minimum). Returns seed[e] for every edge; ties are broken by (lower
// block id, lower edge id).
func seedEdges(h *hypergraph.Hypergraph, k int) []int32 {
	m := h.NumEdges()
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		ei, ej := order[i], order[j]
		si, sj := h.EdgeSize(ei), h.EdgeSize(ej)
		if si != sj {
			return si < sj
		}
		return ei < ej
	})

	seed := make([]int32, m)
	load := make([]int64, k)
	clusterSeed := make(map[uint64]int32)

	for _, e := range order {
		sig := signature(h.EdgePins(e))

		// A signature collision between edges of different pin-set
		// content is possible but harmless here: it only means two
		// unrelated edges are (rarely) grouped into the same
		// micro-cluster, biasing them to the same seed block.
		if b, ok := clusterSeed[sig]; ok {
			seed[e] = b
			load[b]++
			continue
		}

		b := lightestBlock(load)
		clusterSeed[sig] = b
		seed[e] = b
		load[b]++
	}

	return seed
}

// signature hashes a sorted copy of pins so that pin order (which the
// hypergraph store otherwise preserves) doesn't affect clustering.
func signature(pins []int32) uint64 {
	sorted := make([]int32, len(pins))
	copy(sorted, pins)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	buf := make([]byte, 4)
	for _, v := range sorted {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		h.Write(buf)
	}
	return h.Sum64()
}

// lightestBlock returns the block with the smallest load, tie-broken by
// lower block id.
func lightestBlock(load []int64) int32 {
	best := int32(0)
	for b := int32(1); b < int32(len(load)); b++ {
		if load[b] < load[best] {
			best = b
		}
	}
	return best
}

// vertexScore holds the length-k score vector for one vertex plus its
// derived confidence, used to order placement.
type vertexScore struct {
	v          int
	scores     []float64
	confidence float64
	top        int32
}

// scoreVertices sums w(|e|) = 1/max(1, |e|-1) over each vertex's
// incident edges, voting for each edge's seed block.
func scoreVertices(h *hypergraph.Hypergraph, seed []int32, k int) []vertexScore {
	n := h.NumVertices()
	out := make([]vertexScore, n)

	for v := 0; v < n; v++ {
		scores := make([]float64, k)
		for _, e32 := range h.NodeEdges(v) {
			e := int(e32)
			size := h.EdgeSize(e)
			w := 1.0 / float64(maxInt(1, size-1))
			scores[seed[e]] += w
		}

		top := floats.MaxIdx(scores)
		best := scores[top]
		second := secondMax(scores, top)

		out[v] = vertexScore{v: v, scores: scores, confidence: best - second, top: int32(top)}
	}

	return out
}

func secondMax(scores []float64, topIdx int) float64 {
	second := 0.0
	first := true
	for i, s := range scores {
		if i == topIdx {
			continue
		}
		if first || s > second {
			second = s
			first = false
		}
	}
	return second
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// placeVertices sorts vertices by confidence descending (tie-break lower
// vertex id), and places each into its top-scoring block if it has
// capacity, else the least-loaded block.
func placeVertices(p *partition.State, scores []vertexScore, k int) {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		vi, vj := scores[order[i]], scores[order[j]]
		if vi.confidence != vj.confidence {
			return vi.confidence > vj.confidence
		}
		return vi.v < vj.v
	})

	for _, idx := range order {
		vs := scores[idx]
		dest := vs.top
		if p.Slack(dest) <= 0 {
			dest = p.LeastLoadedBlock()
		}
		p.Set(vs.v, dest)
	}
}
