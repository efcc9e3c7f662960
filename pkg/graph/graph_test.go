package graph

import "testing"

func testNodes(n int) []Node {
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = Node{Id: i}
	}
	return nodes
}

func TestCSRInvariants(t *testing.T) {
	edges := []Edge{
		MakeEdge(0, 1, 1),
		MakeEdge(1, 2, 2),
		MakeEdge(2, 0, 3),
		MakeEdge(0, 2, 5),
		MakeEdge(1, 0, 1),
	}
	g := NewGraph(testNodes(3), edges)

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %v", g.NodeCount())
	}
	if g.EdgeCount() != 5 {
		t.Errorf("expected 5 edges, got %v", g.EdgeCount())
	}

	for v := 0; v < g.NodeCount(); v++ {
		for _, edge := range g.NodeEdges(v, OUT) {
			if edge.From != v {
				t.Errorf("out edge %v of node %v has From %v", edge.Id, v, edge.From)
			}
		}
		for _, edge := range g.NodeEdges(v, IN) {
			if edge.To != v {
				t.Errorf("in edge %v of node %v has To %v", edge.Id, v, edge.To)
			}
		}
	}

	// every out edge must have a matching in edge
	for v := 0; v < g.NodeCount(); v++ {
		for _, out := range g.NodeEdges(v, OUT) {
			found := false
			for _, in := range g.NodeEdges(out.To, IN) {
				if in.Id == out.Id {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("edge %v missing from in list", out.Id)
			}
		}
	}
}

func TestEdgeIdBijection(t *testing.T) {
	edges := []Edge{
		MakeEdge(2, 1, 4),
		MakeEdge(0, 1, 1),
		MakeEdge(1, 2, 2),
	}
	g := NewGraph(testNodes(3), edges)

	seen := make(map[EdgeId]bool)
	for v := 0; v < g.NodeCount(); v++ {
		for _, edge := range g.NodeEdges(v, OUT) {
			if seen[edge.Id] {
				t.Errorf("edge id %v appears twice", edge.Id)
			}
			seen[edge.Id] = true
			resolved := g.EdgeById(edge.Id)
			if resolved != edge {
				t.Errorf("EdgeById(%v) = %v, want %v", edge.Id, resolved, edge)
			}
		}
	}
	if len(seen) != g.EdgeCount() {
		t.Errorf("expected %v distinct ids, got %v", g.EdgeCount(), len(seen))
	}
}

func TestSortOrder(t *testing.T) {
	edges := []Edge{
		MakeEdge(1, 0, 7),
		MakeEdge(0, 2, 3),
		MakeEdge(0, 1, 5),
		MakeEdge(0, 1, 2),
	}
	g := NewGraph(testNodes(3), edges)

	out := g.NodeEdges(0, OUT)
	if len(out) != 3 {
		t.Fatalf("expected 3 out edges for node 0, got %v", len(out))
	}
	if out[0].To != 1 || out[0].Weight != 2 {
		t.Errorf("out[0] = %v, want 0->1 w=2", out[0])
	}
	if out[1].To != 1 || out[1].Weight != 5 {
		t.Errorf("out[1] = %v, want 0->1 w=5", out[1])
	}
	if out[2].To != 2 {
		t.Errorf("out[2] = %v, want 0->2 w=3", out[2])
	}
}

func TestAddRemoveEdges(t *testing.T) {
	edges := []Edge{
		MakeEdge(0, 1, 1),
		MakeEdge(1, 2, 1),
	}
	g := NewGraph(testNodes(3), edges)
	e01 := g.NodeEdges(0, OUT)[0]
	e12 := g.NodeEdges(1, OUT)[0]

	added := g.AddEdges([]Edge{MakeShortcut(0, 2, 2, e01.Id, e12.Id)})
	if len(added) != 1 {
		t.Fatalf("expected 1 added edge, got %v", len(added))
	}
	if added[0].Id != 2 {
		t.Errorf("new edge id = %v, want 2", added[0].Id)
	}
	// buffered, not yet visible
	if g.EdgeCount() != 2 {
		t.Errorf("edge count before update = %v, want 2", g.EdgeCount())
	}

	g.RemoveEdges([]EdgeId{e01.Id, e12.Id})
	g.Update()

	if g.EdgeCount() != 1 {
		t.Fatalf("edge count after update = %v, want 1", g.EdgeCount())
	}
	shortcut := g.NodeEdges(0, OUT)[0]
	if shortcut.To != 2 || shortcut.Weight != 2 || !shortcut.IsShortcut() {
		t.Errorf("unexpected surviving edge %v", shortcut)
	}
	if len(g.NodeEdges(1, OUT)) != 0 || len(g.NodeEdges(1, IN)) != 0 {
		t.Errorf("node 1 still has live edges")
	}
}

func TestUpdateIdempotent(t *testing.T) {
	edges := []Edge{
		MakeEdge(0, 1, 1),
		MakeEdge(1, 2, 2),
		MakeEdge(2, 0, 3),
	}
	g := NewGraph(testNodes(3), edges)
	before := g.AsString()
	g.Update()
	g.Update()
	if g.AsString() != before {
		t.Errorf("update without mutations changed the graph")
	}
}

func TestFinalizedData(t *testing.T) {
	edges := []Edge{
		MakeEdge(0, 1, 1),
		MakeEdge(1, 2, 1),
	}
	g := NewGraph(testNodes(3), edges)
	e01 := g.NodeEdges(0, OUT)[0]
	e12 := g.NodeEdges(1, OUT)[0]

	g.AddEdges([]Edge{MakeShortcut(0, 2, 2, e01.Id, e12.Id)})
	g.RemoveEdges([]EdgeId{e01.Id, e12.Id})
	g.Update()

	nodes, final := g.FinalizedData()
	if len(nodes) != 3 {
		t.Errorf("expected 3 nodes, got %v", len(nodes))
	}
	if len(final) != 3 {
		t.Fatalf("expected 3 edges (2 dumped + 1 shortcut), got %v", len(final))
	}
	for i, edge := range final {
		if edge.Id != i {
			t.Errorf("edge %v not densely renumbered: id %v", i, edge.Id)
		}
		if i > 0 && compareOut(final[i-1], edge) > 0 {
			t.Errorf("finalized edges not sorted at %v", i)
		}
	}
	var shortcut *Edge
	for i := range final {
		if final[i].IsShortcut() {
			shortcut = &final[i]
		}
	}
	if shortcut == nil {
		t.Fatal("no shortcut in finalized edges")
	}
	c1 := final[shortcut.Child1]
	c2 := final[shortcut.Child2]
	if c1.From != 0 || c1.To != 1 || c2.From != 1 || c2.To != 2 {
		t.Errorf("child remapping broken: %v %v", c1, c2)
	}
}
