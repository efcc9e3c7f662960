package ch

import (
	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// implements queue.Priorizable
type searchItem struct {
	nodeId   graph.NodeId // node id of this item in the graph
	distance int          // distance to the search origin
	hops     int          // edges on the path from the origin
	index    int          // internal usage
}

func newSearchItem(nodeId graph.NodeId, distance, hops int) *searchItem {
	return &searchItem{nodeId: nodeId, distance: distance, hops: hops, index: -1}
}

func (item *searchItem) Priority() int      { return item.distance }
func (item *searchItem) Id() int            { return item.nodeId }
func (item *searchItem) Index() int         { return item.index }
func (item *searchItem) SetIndex(index int) { item.index = index }
