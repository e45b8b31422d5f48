// Package hypergraph provides the immutable CSR-style incidence store for
// a hypergraph: edges concatenated into a flat pin array with an edge
// offset table, plus the transpose (per-vertex incident edge lists).
package hypergraph

import "fmt"

// Hypergraph is an immutable hypergraph H = (V, E). Vertices are 0-indexed
// 0..NumVertices-1; edges are 0-indexed 0..NumEdges-1. Built once via
// Build and never mutated afterward.
type Hypergraph struct {
	numVertices int
	numEdges    int

	edgePins   []int32 // concatenated pins, edge order, stable within an edge
	edgeOffset []int32 // len NumEdges+1

	nodeEdges  []int32 // concatenated incident-edge lists, vertex order
	nodeOffset []int32 // len NumVertices+1
}

// NumVertices returns |V|.
func (h *Hypergraph) NumVertices() int { return h.numVertices }

// NumEdges returns |E|.
func (h *Hypergraph) NumEdges() int { return h.numEdges }

// EdgePins returns the pins of edge e as a read-only slice.
func (h *Hypergraph) EdgePins(e int) []int32 {
	return h.edgePins[h.edgeOffset[e]:h.edgeOffset[e+1]]
}

// EdgeSize returns the number of pins of edge e, i.e. |e|.
func (h *Hypergraph) EdgeSize(e int) int {
	return int(h.edgeOffset[e+1] - h.edgeOffset[e])
}

// NodeEdges returns the edges incident to vertex v as a read-only slice.
func (h *Hypergraph) NodeEdges(v int) []int32 {
	return h.nodeEdges[h.nodeOffset[v]:h.nodeOffset[v+1]]
}

// NodeDegree returns the number of edges incident to vertex v.
func (h *Hypergraph) NodeDegree(v int) int {
	return int(h.nodeOffset[v+1] - h.nodeOffset[v])
}

// TotalPins returns len(edge_pins), the sum of all edge sizes.
func (h *Hypergraph) TotalPins() int {
	return len(h.edgePins)
}

// InputError is returned by Build when the edge list is malformed.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "hypergraph: " + e.Msg }

// Build constructs a Hypergraph from a vertex count and an edge list given
// as one []int32 of 0-indexed vertex ids per edge. It rejects edges with
// fewer than 2 pins, out-of-range vertex ids, or duplicate pins within an
// edge, returning *InputError. Pin order within each edge is preserved.
func Build(numVertices int, edges [][]int32) (*Hypergraph, error) {
	if numVertices <= 0 {
		return nil, &InputError{Msg: fmt.Sprintf("numVertices must be positive, got %d", numVertices)}
	}

	edgeOffset := make([]int32, len(edges)+1)
	total := 0
	for i, e := range edges {
		if len(e) < 2 {
			return nil, &InputError{Msg: fmt.Sprintf("edge %d has %d pins, need >= 2", i, len(e))}
		}
		seen := make(map[int32]struct{}, len(e))
		for _, v := range e {
			if v < 0 || int(v) >= numVertices {
				return nil, &InputError{Msg: fmt.Sprintf("edge %d references out-of-range vertex %d (numVertices=%d)", i, v, numVertices)}
			}
			if _, dup := seen[v]; dup {
				return nil, &InputError{Msg: fmt.Sprintf("edge %d has duplicate pin %d", i, v)}
			}
			seen[v] = struct{}{}
		}
		total += len(e)
		edgeOffset[i+1] = int32(total)
	}

	edgePins := make([]int32, 0, total)
	for _, e := range edges {
		edgePins = append(edgePins, e...)
	}

	nodeOffset, nodeEdges := buildTranspose(numVertices, edgeOffset, edgePins)

	return &Hypergraph{
		numVertices: numVertices,
		numEdges:    len(edges),
		edgePins:    edgePins,
		edgeOffset:  edgeOffset,
		nodeEdges:   nodeEdges,
		nodeOffset:  nodeOffset,
	}, nil
}

// buildTranspose derives node_edges/node_offset from edge_pins/edge_offset
// with a two-pass counting-sort construction: count incidences per
// vertex, turn counts into offsets, then fill.
func buildTranspose(numVertices int, edgeOffset, edgePins []int32) ([]int32, []int32) {
	degree := make([]int32, numVertices)
	numEdges := len(edgeOffset) - 1
	for e := 0; e < numEdges; e++ {
		for _, v := range edgePins[edgeOffset[e]:edgeOffset[e+1]] {
			degree[v]++
		}
	}

	nodeOffset := make([]int32, numVertices+1)
	for v := 0; v < numVertices; v++ {
		nodeOffset[v+1] = nodeOffset[v] + degree[v]
	}

	cursor := make([]int32, numVertices)
	copy(cursor, nodeOffset[:numVertices])

	nodeEdges := make([]int32, nodeOffset[numVertices])
	for e := 0; e < numEdges; e++ {
		for _, v := range edgePins[edgeOffset[e]:edgeOffset[e+1]] {
			nodeEdges[cursor[v]] = int32(e)
			cursor[v]++
		}
	}

	return nodeOffset, nodeEdges
}
