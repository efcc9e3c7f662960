package ch

import (
	"math/rand"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// IndependentSetSelector picks the nodes contracted together in one round.
// Every pool node draws a fresh random priority per round and is selected iff
// its priority is smaller than the priority of each live neighbour that is
// still in the pool. Ties fall back to the node id. No two selected nodes
// share an edge, so no selected node is a neighbour of another; they may
// still share neighbours. Their contractions run in parallel.
type IndependentSetSelector struct {
	rng        *rand.Rand
	priorities []uint64
	inPool     []bool
}

func NewIndependentSetSelector(nodeCount int, seed int64) *IndependentSetSelector {
	return &IndependentSetSelector{
		rng:        rand.New(rand.NewSource(seed)),
		priorities: make([]uint64, nodeCount),
		inPool:     make([]bool, nodeCount),
	}
}

// Select expects the pool in ascending node order; the priority draw consumes
// one random number per pool node in that order, which keeps rounds
// reproducible for a fixed seed.
func (s *IndependentSetSelector) Select(g *graph.Graph, pool []graph.NodeId) []graph.NodeId {
	for _, nodeId := range pool {
		s.priorities[nodeId] = s.rng.Uint64()
		s.inPool[nodeId] = true
	}

	set := make([]graph.NodeId, 0)
	for _, nodeId := range pool {
		if s.isLocalMinimum(g, nodeId) {
			set = append(set, nodeId)
		}
	}

	for _, nodeId := range pool {
		s.inPool[nodeId] = false
	}
	return set
}

func (s *IndependentSetSelector) isLocalMinimum(g *graph.Graph, nodeId graph.NodeId) bool {
	return s.beatsNeighbors(g, nodeId, graph.OUT) && s.beatsNeighbors(g, nodeId, graph.IN)
}

func (s *IndependentSetSelector) beatsNeighbors(g *graph.Graph, nodeId graph.NodeId, direction graph.Direction) bool {
	for _, edge := range g.NodeEdges(nodeId, direction) {
		neighbor := edge.OtherNode(direction)
		if neighbor == nodeId || !s.inPool[neighbor] {
			continue
		}
		if s.priorities[neighbor] < s.priorities[nodeId] {
			return false
		}
		if s.priorities[neighbor] == s.priorities[nodeId] && neighbor < nodeId {
			return false
		}
	}
	return true
}
