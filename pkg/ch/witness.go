package ch

import (
	"math"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
	"github.com/natevvv/osm-ch-constructor/pkg/queue"
)

// WitnessSearcher runs bounded forward Dijkstra searches that decide whether
// a candidate shortcut is necessary. Each contraction worker owns one
// searcher; the scratch arrays are reset between calls via a dirty list, so
// the cost per call scales with the touched neighbourhood, not with the
// graph.
//
// The searcher never mutates the graph. It reads the contracted marks that
// the contractor updates between rounds.
type WitnessSearcher struct {
	g          *graph.Graph
	contracted []bool

	dist    []int
	touched []graph.NodeId
	heap    *queue.MinHeap[*searchItem]
}

func NewWitnessSearcher(g *graph.Graph, contracted []bool) *WitnessSearcher {
	dist := make([]int, g.NodeCount())
	for i := range dist {
		dist[i] = math.MaxInt
	}
	return &WitnessSearcher{
		g:          g,
		contracted: contracted,
		dist:       dist,
		heap:       queue.NewMinHeap[*searchItem](nil),
	}
}

func (ws *WitnessSearcher) reset() {
	for _, nodeId := range ws.touched {
		ws.dist[nodeId] = math.MaxInt
	}
	ws.touched = ws.touched[:0]
	ws.heap.Clear()
}

func (ws *WitnessSearcher) setDistance(nodeId graph.NodeId, distance int) {
	if ws.dist[nodeId] == math.MaxInt {
		ws.touched = append(ws.touched, nodeId)
	}
	ws.dist[nodeId] = distance
}

// Search looks for a path from source to target of weight <= maxWeight that
// avoids the forbidden node and all contracted nodes. Nodes are not expanded
// beyond maxHops edges from the source, and at most maxSettled nodes are
// settled. It returns the distance of the witness and whether one was found;
// no witness means the candidate shortcut has to be inserted.
//
// On equal distances the node with the smaller id is settled first, so the
// result is reproducible for a fixed graph state.
func (ws *WitnessSearcher) Search(source, target, forbidden graph.NodeId, maxWeight, maxHops, maxSettled int) (int, bool) {
	ws.reset()
	ws.setDistance(source, 0)
	ws.heap.Push(newSearchItem(source, 0, 0))

	settled := 0
	for !ws.heap.Empty() {
		item := ws.heap.Pop()
		if item.distance > ws.dist[item.nodeId] {
			// outdated duplicate
			continue
		}
		if item.distance > maxWeight {
			// all remaining nodes are at least this far away
			return 0, false
		}
		if item.nodeId == target {
			return item.distance, true
		}
		settled++
		if settled >= maxSettled {
			return 0, false
		}
		if item.hops >= maxHops {
			continue
		}
		for _, edge := range ws.g.NodeEdges(item.nodeId, graph.OUT) {
			to := edge.To
			if to == forbidden || ws.contracted[to] {
				continue
			}
			newDistance := item.distance + edge.Weight
			if newDistance < ws.dist[to] {
				ws.setDistance(to, newDistance)
				ws.heap.Push(newSearchItem(to, newDistance, item.hops+1))
			}
		}
	}
	return 0, false
}
