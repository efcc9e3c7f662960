package graph

import "golang.org/x/exp/slices"

// FinalizedData collects the complete search graph: all live edges plus the
// edges dumped during contraction. Edges are sorted by (From, To, Weight) and
// renumbered densely, child references are remapped through the new ids. The
// graph itself is rebuilt over the full edge set, so queries over the search
// graph keep working; further contraction is not supported afterwards.
func (g *Graph) FinalizedData() ([]Node, []Edge) {
	if len(g.pendingAdd) > 0 || len(g.pendingRemove) > 0 {
		panic("finalizing a graph with buffered mutations")
	}

	edges := make([]Edge, 0, len(g.outEdges)+len(g.edgesDump))
	edges = append(edges, g.outEdges...)
	edges = append(edges, g.edgesDump...)

	slices.SortFunc(edges, compareOut)

	newId := make([]EdgeId, g.nextEdgeId)
	for i, edge := range edges {
		newId[edge.Id] = i
	}
	for i := range edges {
		edge := &edges[i]
		edge.Id = newId[edge.Id]
		if edge.Child1 != NoEdge {
			edge.Child1 = newId[edge.Child1]
		}
		if edge.Child2 != NoEdge {
			edge.Child2 = newId[edge.Child2]
		}
	}

	g.outEdges = edges
	g.edgesDump = nil
	g.nextEdgeId = len(edges)
	g.inEdges = make([]Edge, len(edges))
	copy(g.inEdges, edges)
	slices.SortFunc(g.inEdges, compareIn)
	g.initOffsets()
	g.initIdToIndex()

	return g.nodes, edges
}
