package ch

import (
	"testing"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

func bidirectionalPath(n int) []graph.Edge {
	edges := make([]graph.Edge, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		edges = append(edges, graph.MakeEdge(i, i+1, 1))
		edges = append(edges, graph.MakeEdge(i+1, i, 1))
	}
	return edges
}

func fullPool(n int) []graph.NodeId {
	pool := make([]graph.NodeId, n)
	for i := range pool {
		pool[i] = i
	}
	return pool
}

func TestIndependentSetOnPathGraph(t *testing.T) {
	g := buildGraph(6, bidirectionalPath(6))
	selector := NewIndependentSetSelector(6, 42)

	set := selector.Select(g, fullPool(6))
	if len(set) == 0 {
		t.Fatal("selector returned empty set for non-empty pool")
	}

	selected := make([]bool, 6)
	for _, nodeId := range set {
		selected[nodeId] = true
	}
	for _, nodeId := range set {
		for _, edge := range g.NodeEdges(nodeId, graph.OUT) {
			if selected[edge.To] {
				t.Errorf("adjacent nodes %v and %v both selected", nodeId, edge.To)
			}
		}
		for _, edge := range g.NodeEdges(nodeId, graph.IN) {
			if selected[edge.From] {
				t.Errorf("adjacent nodes %v and %v both selected", edge.From, nodeId)
			}
		}
	}
}

func TestIsolatedNodesAlwaysSelected(t *testing.T) {
	g := buildGraph(4, []graph.Edge{
		graph.MakeEdge(0, 1, 1),
		graph.MakeEdge(1, 0, 1),
	})
	selector := NewIndependentSetSelector(4, 7)

	set := selector.Select(g, fullPool(4))
	selected := make([]bool, 4)
	for _, nodeId := range set {
		selected[nodeId] = true
	}
	if !selected[2] || !selected[3] {
		t.Errorf("isolated nodes missing from set %v", set)
	}
}

func TestSelectorDeterminism(t *testing.T) {
	first := NewIndependentSetSelector(6, 123)
	second := NewIndependentSetSelector(6, 123)
	g := buildGraph(6, bidirectionalPath(6))

	for round := 0; round < 3; round++ {
		a := first.Select(g, fullPool(6))
		b := second.Select(g, fullPool(6))
		if len(a) != len(b) {
			t.Fatalf("round %v: set sizes differ: %v vs %v", round, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("round %v: sets differ: %v vs %v", round, a, b)
			}
		}
	}
}
