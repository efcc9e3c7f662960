package pbf

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/natevvv/osm-ch-constructor/pkg/geometry"
	"github.com/natevvv/osm-ch-constructor/pkg/road"
	"github.com/qedus/osmpbf"
)

// Importer extracts the road network from an OSM PBF extract. The file is
// decoded twice: the first pass collects the node coordinates, the second
// pass resolves the highway ways against them.
type Importer struct {
	filename string
	segments []*road.Segment
	nodes    map[int64]geometry.Point
}

func NewImporter(filename string) *Importer {
	return &Importer{
		filename: filename,
		segments: make([]*road.Segment, 0),
		nodes:    make(map[int64]geometry.Point),
	}
}

func (im *Importer) Segments() []*road.Segment { return im.segments }

func (im *Importer) Import() error {
	if err := im.collectNodes(); err != nil {
		return err
	}

	file, err := os.Open(im.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	var wg sync.WaitGroup
	segmentChan := make(chan *road.Segment, 1000)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for segment := range segmentChan {
			im.segments = append(im.segments, segment)
		}
	}()

	for {
		v, err := decoder.Decode()
		if err != nil {
			close(segmentChan)
			break
		}
		way, ok := v.(*osmpbf.Way)
		if !ok {
			continue
		}
		roadType := road.TypeFromHighway(way.Tags["highway"])
		if roadType == road.Unknown {
			continue
		}
		segment := &road.Segment{
			ID:       way.ID,
			Type:     roadType,
			OneWay:   way.Tags["oneway"] == "yes",
			MaxSpeed: maxSpeed(way.Tags["maxspeed"], roadType),
			NodeIds:  make([]int64, 0, len(way.NodeIDs)),
			Points:   make([]geometry.Point, 0, len(way.NodeIDs)),
		}
		for _, nodeId := range way.NodeIDs {
			if point, ok := im.nodes[nodeId]; ok {
				segment.NodeIds = append(segment.NodeIds, nodeId)
				segment.Points = append(segment.Points, point)
			}
		}
		if len(segment.NodeIds) > 1 {
			segmentChan <- segment
		}
	}

	wg.Wait()
	return nil
}

func (im *Importer) collectNodes() error {
	file, err := os.Open(im.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err != nil {
			break
		}
		if node, ok := v.(*osmpbf.Node); ok {
			im.nodes[node.ID] = geometry.MakePoint(node.Lat, node.Lon)
		}
	}
	return nil
}

func maxSpeed(tag string, roadType road.RoadType) int {
	if speed, err := strconv.Atoi(tag); err == nil && speed > 0 {
		return speed
	}
	return roadType.DefaultMaxSpeed()
}
