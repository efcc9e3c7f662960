package graph

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type NodeId = int
type EdgeId = int

// sentinel values for optional references
const (
	NoNode NodeId = -1
	NoEdge EdgeId = -1
)

type Direction int

const (
	OUT Direction = iota
	IN
)

// Node carries the payload read from the input file. The construction only
// relies on the dense index, the remaining fields are passed through to the
// output unchanged.
type Node struct {
	Id        NodeId
	OsmId     int64
	Lat       float64
	Lon       float64
	Elevation float64
}

// Edge is a directed, weighted edge. Shortcuts additionally reference the two
// edges they bridge via Child1/Child2; original edges carry NoEdge there.
type Edge struct {
	Id       EdgeId
	From     NodeId
	To       NodeId
	Weight   int
	Type     int
	MaxSpeed int
	Child1   EdgeId
	Child2   EdgeId
}

func MakeEdge(from, to NodeId, weight int) Edge {
	return Edge{Id: NoEdge, From: from, To: to, Weight: weight, Child1: NoEdge, Child2: NoEdge}
}

func MakeShortcut(from, to NodeId, weight int, child1, child2 EdgeId) Edge {
	return Edge{Id: NoEdge, From: from, To: to, Weight: weight, Child1: child1, Child2: child2}
}

// IsShortcut reports whether this edge was synthesized during contraction.
func (e Edge) IsShortcut() bool {
	return e.Child1 != NoEdge
}

func (e Edge) OtherNode(direction Direction) NodeId {
	if direction == OUT {
		return e.To
	}
	return e.From
}

func compareOut(a, b Edge) int {
	if a.From != b.From {
		return a.From - b.From
	}
	if a.To != b.To {
		return a.To - b.To
	}
	return a.Weight - b.Weight
}

func compareIn(a, b Edge) int {
	if a.To != b.To {
		return a.To - b.To
	}
	if a.From != b.From {
		return a.From - b.From
	}
	return a.Weight - b.Weight
}

// Graph is an adjacency array (CSR) over directed weighted edges. Every edge
// is stored twice, once in the out list sorted by (From, To, Weight) and once
// in the in list sorted by (To, From, Weight). Offsets delimit the per-node
// slices. Mutations are buffered and applied by Update.
type Graph struct {
	nodes      []Node
	outEdges   []Edge
	inEdges    []Edge
	outOffsets []int
	inOffsets  []int
	idToIndex  []int // edge id -> index in outEdges, NoEdge if not live

	nextEdgeId EdgeId

	// edges removed from the live graph, kept for the final search graph
	edgesDump []Edge

	pendingAdd    []Edge
	pendingRemove map[EdgeId]bool
}

// NewGraph takes ownership of nodes and edges. Edge ids are assigned densely
// in input order. Self-loops are rejected as input errors upstream, so they
// are not filtered here.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:         nodes,
		outEdges:      edges,
		pendingRemove: make(map[EdgeId]bool),
	}
	for i := range g.outEdges {
		g.outEdges[i].Id = g.nextEdgeId
		g.nextEdgeId++
	}
	g.inEdges = make([]Edge, len(g.outEdges))
	copy(g.inEdges, g.outEdges)
	g.update()
	return g
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.outEdges) }

func (g *Graph) GetNode(id NodeId) Node { return g.nodes[id] }
func (g *Graph) GetNodes() []Node       { return g.nodes }

// NodeEdges returns the live edges leaving (OUT) or entering (IN) the node,
// in sort order. The returned slice aliases internal storage and is only
// valid until the next Update.
func (g *Graph) NodeEdges(id NodeId, direction Direction) []Edge {
	if direction == OUT {
		return g.outEdges[g.outOffsets[id]:g.outOffsets[id+1]]
	}
	return g.inEdges[g.inOffsets[id]:g.inOffsets[id+1]]
}

// EdgeById resolves a live edge id in O(1).
func (g *Graph) EdgeById(id EdgeId) Edge {
	return g.outEdges[g.idToIndex[id]]
}

// AddEdges buffers new edges for the next Update and assigns their ids, in
// the order given, from the monotone id counter. The assigned edges are
// returned so callers can reference the fresh ids.
func (g *Graph) AddEdges(edges []Edge) []Edge {
	start := len(g.pendingAdd)
	for _, edge := range edges {
		edge.Id = g.nextEdgeId
		g.nextEdgeId++
		g.pendingAdd = append(g.pendingAdd, edge)
	}
	return g.pendingAdd[start:]
}

// RemoveEdges buffers edge removals for the next Update. Removed edges move
// to the dump and stay part of the finalized output.
func (g *Graph) RemoveEdges(ids []EdgeId) {
	for _, id := range ids {
		g.pendingRemove[id] = true
	}
}

// Update applies buffered mutations and restores the CSR invariants:
// sorted edge lists, offset arrays and the id index.
func (g *Graph) Update() {
	if len(g.pendingAdd) == 0 && len(g.pendingRemove) == 0 {
		// already consistent, rebuilding would only churn allocations
		return
	}

	liveEdges := make([]Edge, 0, len(g.outEdges)+len(g.pendingAdd))
	for _, edge := range g.outEdges {
		if g.pendingRemove[edge.Id] {
			g.edgesDump = append(g.edgesDump, edge)
		} else {
			liveEdges = append(liveEdges, edge)
		}
	}
	liveEdges = append(liveEdges, g.pendingAdd...)

	g.outEdges = liveEdges
	g.pendingAdd = nil
	g.pendingRemove = make(map[EdgeId]bool)

	g.inEdges = make([]Edge, len(g.outEdges))
	copy(g.inEdges, g.outEdges)
	g.update()
}

func (g *Graph) update() {
	slices.SortFunc(g.outEdges, compareOut)
	slices.SortFunc(g.inEdges, compareIn)
	g.initOffsets()
	g.initIdToIndex()
}

func (g *Graph) initOffsets() {
	n := len(g.nodes)
	g.outOffsets = make([]int, n+1)
	g.inOffsets = make([]int, n+1)
	for _, edge := range g.outEdges {
		g.outOffsets[edge.From+1]++
	}
	for _, edge := range g.inEdges {
		g.inOffsets[edge.To+1]++
	}
	for i := 0; i < n; i++ {
		g.outOffsets[i+1] += g.outOffsets[i]
		g.inOffsets[i+1] += g.inOffsets[i]
	}
}

func (g *Graph) initIdToIndex() {
	g.idToIndex = make([]int, g.nextEdgeId)
	for i := range g.idToIndex {
		g.idToIndex[i] = NoEdge
	}
	for i, edge := range g.outEdges {
		g.idToIndex[edge.Id] = i
	}
}

func (g *Graph) AsString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.EdgeCount()))
	for _, node := range g.nodes {
		sb.WriteString(fmt.Sprintf("%v %v %v\n", node.Id, node.Lat, node.Lon))
	}
	for _, edge := range g.outEdges {
		sb.WriteString(fmt.Sprintf("%v %v %v\n", edge.From, edge.To, edge.Weight))
	}
	return sb.String()
}
