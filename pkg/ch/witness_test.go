package ch

import (
	"math"
	"testing"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

func buildGraph(n int, edges []graph.Edge) *graph.Graph {
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = graph.Node{Id: i}
	}
	return graph.NewGraph(nodes, edges)
}

func TestWitnessFound(t *testing.T) {
	g := buildGraph(4, []graph.Edge{
		graph.MakeEdge(0, 1, 5),
		graph.MakeEdge(1, 2, 5),
		graph.MakeEdge(0, 3, 2),
		graph.MakeEdge(3, 2, 2),
	})
	ws := NewWitnessSearcher(g, make([]bool, 4))

	distance, found := ws.Search(0, 2, 1, 10, 16, math.MaxInt)
	if !found {
		t.Fatal("expected witness via node 3")
	}
	if distance != 4 {
		t.Errorf("witness distance = %v, want 4", distance)
	}
}

func TestWitnessRadiusBound(t *testing.T) {
	g := buildGraph(4, []graph.Edge{
		graph.MakeEdge(0, 1, 5),
		graph.MakeEdge(1, 2, 5),
		graph.MakeEdge(0, 3, 2),
		graph.MakeEdge(3, 2, 2),
	})
	ws := NewWitnessSearcher(g, make([]bool, 4))

	if _, found := ws.Search(0, 2, 1, 3, 16, math.MaxInt); found {
		t.Error("witness of weight 4 reported despite bound 3")
	}
}

func TestWitnessHopBound(t *testing.T) {
	g := buildGraph(5, []graph.Edge{
		graph.MakeEdge(0, 1, 1),
		graph.MakeEdge(1, 2, 1),
		graph.MakeEdge(2, 3, 1),
	})
	ws := NewWitnessSearcher(g, make([]bool, 5))

	if _, found := ws.Search(0, 3, 4, 10, 2, math.MaxInt); found {
		t.Error("3 hop path found with hop cap 2")
	}
	distance, found := ws.Search(0, 3, 4, 10, 3, math.MaxInt)
	if !found || distance != 3 {
		t.Errorf("path with hop cap 3: got (%v, %v), want (3, true)", distance, found)
	}
}

func TestWitnessAvoidsForbiddenNode(t *testing.T) {
	g := buildGraph(3, []graph.Edge{
		graph.MakeEdge(0, 1, 1),
		graph.MakeEdge(1, 2, 1),
	})
	ws := NewWitnessSearcher(g, make([]bool, 3))

	if _, found := ws.Search(0, 2, 1, 10, 16, math.MaxInt); found {
		t.Error("witness runs through the forbidden node")
	}
}

func TestWitnessIgnoresContractedNodes(t *testing.T) {
	contracted := make([]bool, 4)
	g := buildGraph(4, []graph.Edge{
		graph.MakeEdge(0, 1, 5),
		graph.MakeEdge(1, 2, 5),
		graph.MakeEdge(0, 3, 2),
		graph.MakeEdge(3, 2, 2),
	})
	ws := NewWitnessSearcher(g, contracted)

	contracted[3] = true
	if _, found := ws.Search(0, 2, 1, 10, 16, math.MaxInt); found {
		t.Error("witness runs through a contracted node")
	}
}

func TestWitnessSettleBound(t *testing.T) {
	g := buildGraph(5, []graph.Edge{
		graph.MakeEdge(0, 1, 1),
		graph.MakeEdge(1, 2, 1),
		graph.MakeEdge(2, 3, 1),
	})
	ws := NewWitnessSearcher(g, make([]bool, 5))

	if _, found := ws.Search(0, 3, 4, 10, 16, 2); found {
		t.Error("target settled although the settle cap cuts the search off")
	}
}

func TestWitnessScratchReuse(t *testing.T) {
	g := buildGraph(4, []graph.Edge{
		graph.MakeEdge(0, 1, 5),
		graph.MakeEdge(1, 2, 5),
		graph.MakeEdge(0, 3, 2),
		graph.MakeEdge(3, 2, 2),
	})
	ws := NewWitnessSearcher(g, make([]bool, 4))

	first, foundFirst := ws.Search(0, 2, 1, 10, 16, math.MaxInt)
	for i := 0; i < 10; i++ {
		distance, found := ws.Search(0, 2, 1, 10, 16, math.MaxInt)
		if found != foundFirst || distance != first {
			t.Fatalf("search %v diverged: (%v, %v) vs (%v, %v)", i, distance, found, first, foundFirst)
		}
	}
}
