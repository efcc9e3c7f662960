package pbf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/natevvv/osm-ch-constructor/pkg/geometry"
	"github.com/natevvv/osm-ch-constructor/pkg/road"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

// ImportXML extracts the road network from an uncompressed OSM XML extract.
// The file is scanned twice: the first pass collects highway ways, the second
// pass resolves the node coordinates they reference.
func ImportXML(filename string) ([]*road.Segment, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ctx := context.Background()

	type pendingWay struct {
		id       int64
		roadType road.RoadType
		oneWay   bool
		maxSpeed string
		nodeIds  []osm.NodeID
	}

	ways := make([]pendingWay, 0)
	referenced := make(map[osm.NodeID]struct{})

	scanner := osmxml.New(ctx, file)
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		roadType := road.TypeFromHighway(way.Tags.Find("highway"))
		if roadType == road.Unknown {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}
		nodeIds := make([]osm.NodeID, len(way.Nodes))
		for i, wayNode := range way.Nodes {
			nodeIds[i] = wayNode.ID
			referenced[wayNode.ID] = struct{}{}
		}
		ways = append(ways, pendingWay{
			id:       int64(way.ID),
			roadType: roadType,
			oneWay:   way.Tags.Find("oneway") == "yes",
			maxSpeed: way.Tags.Find("maxspeed"),
			nodeIds:  nodeIds,
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning ways in %v: %w", filename, err)
	}
	scanner.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	nodes := make(map[osm.NodeID]geometry.Point, len(referenced))
	scanner = osmxml.New(ctx, file)
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[node.ID]; !needed {
			continue
		}
		nodes[node.ID] = geometry.MakePoint(node.Lat, node.Lon)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning nodes in %v: %w", filename, err)
	}
	scanner.Close()

	segments := make([]*road.Segment, 0, len(ways))
	for _, way := range ways {
		segment := &road.Segment{
			ID:       way.id,
			Type:     way.roadType,
			OneWay:   way.oneWay,
			MaxSpeed: maxSpeed(way.maxSpeed, way.roadType),
			NodeIds:  make([]int64, 0, len(way.nodeIds)),
			Points:   make([]geometry.Point, 0, len(way.nodeIds)),
		}
		for _, nodeId := range way.nodeIds {
			if point, ok := nodes[nodeId]; ok {
				segment.NodeIds = append(segment.NodeIds, int64(nodeId))
				segment.Points = append(segment.Points, point)
			}
		}
		if len(segment.NodeIds) > 1 {
			segments = append(segments, segment)
		}
	}
	return segments, nil
}
