package road

import (
	"math"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// BuildGraph converts imported segments into dense graph nodes and edges.
// Shared OSM nodes are deduplicated, edge weights are rounded haversine
// distances in meters. Two-way segments produce both directions.
func BuildGraph(segments []*Segment) ([]graph.Node, []graph.Edge) {
	nodeIndex := make(map[int64]int)
	nodes := make([]graph.Node, 0)
	edges := make([]graph.Edge, 0)

	for _, segment := range segments {
		for i, osmId := range segment.NodeIds {
			if _, ok := nodeIndex[osmId]; ok {
				continue
			}
			point := segment.Points[i]
			nodeIndex[osmId] = len(nodes)
			nodes = append(nodes, graph.Node{
				Id:    len(nodes),
				OsmId: osmId,
				Lat:   point.Lat(),
				Lon:   point.Lon(),
			})
		}

		for i := 0; i+1 < len(segment.NodeIds); i++ {
			from := nodeIndex[segment.NodeIds[i]]
			to := nodeIndex[segment.NodeIds[i+1]]
			if from == to {
				// duplicated way node
				continue
			}
			weight := int(math.Round(segment.Points[i].DistanceTo(segment.Points[i+1])))
			if weight < 1 {
				weight = 1
			}
			edge := graph.MakeEdge(from, to, weight)
			edge.Type = int(segment.Type)
			edge.MaxSpeed = segment.MaxSpeed
			edges = append(edges, edge)
			if !segment.OneWay {
				back := graph.MakeEdge(to, from, weight)
				back.Type = int(segment.Type)
				back.MaxSpeed = segment.MaxSpeed
				edges = append(edges, back)
			}
		}
	}
	return nodes, edges
}
