package ch

import (
	"math"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
	"github.com/natevvv/osm-ch-constructor/pkg/queue"
)

// Dijkstra is a plain textbook search over the full graph. It provides the
// reference distances the hierarchy is checked against.
type Dijkstra struct {
	g *graph.Graph
}

func NewDijkstra(g *graph.Graph) *Dijkstra {
	return &Dijkstra{g: g}
}

// ShortestDistance returns the distance from source to target and whether
// target is reachable.
func (d *Dijkstra) ShortestDistance(source, target graph.NodeId) (int, bool) {
	dist := fullDistances(d.g, source, graph.OUT, nil)
	if dist[target] == math.MaxInt {
		return 0, false
	}
	return dist[target], true
}

// CHDijkstra answers queries on a finished hierarchy with a bidirectional
// search that only relaxes edges towards higher levels. Both halves run to
// exhaustion; the distance is the best meeting point of the two frontiers.
type CHDijkstra struct {
	g      *graph.Graph
	levels []int
}

func NewCHDijkstra(g *graph.Graph, levels []int) *CHDijkstra {
	return &CHDijkstra{g: g, levels: levels}
}

func (d *CHDijkstra) ShortestDistance(source, target graph.NodeId) (int, bool) {
	forward := fullDistances(d.g, source, graph.OUT, d.levels)
	backward := fullDistances(d.g, target, graph.IN, d.levels)

	best := math.MaxInt
	for nodeId := 0; nodeId < d.g.NodeCount(); nodeId++ {
		if forward[nodeId] == math.MaxInt || backward[nodeId] == math.MaxInt {
			continue
		}
		if distance := forward[nodeId] + backward[nodeId]; distance < best {
			best = distance
		}
	}
	if best == math.MaxInt {
		return 0, false
	}
	return best, true
}

// fullDistances settles every node reachable from source. With levels set,
// only edges whose far endpoint has a strictly higher level are relaxed,
// which turns the search into the upward half of a hierarchy query.
func fullDistances(g *graph.Graph, source graph.NodeId, direction graph.Direction, levels []int) []int {
	dist := make([]int, g.NodeCount())
	for i := range dist {
		dist[i] = math.MaxInt
	}
	dist[source] = 0

	heap := queue.NewMinHeap[*searchItem](nil)
	heap.Push(newSearchItem(source, 0, 0))
	for !heap.Empty() {
		item := heap.Pop()
		if item.distance > dist[item.nodeId] {
			continue
		}
		for _, edge := range g.NodeEdges(item.nodeId, direction) {
			to := edge.OtherNode(direction)
			if levels != nil && levels[to] <= levels[item.nodeId] {
				continue
			}
			newDistance := item.distance + edge.Weight
			if newDistance < dist[to] {
				dist[to] = newDistance
				heap.Push(newSearchItem(to, newDistance, 0))
			}
		}
	}
	return dist
}
