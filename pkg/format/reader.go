package format

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// lineReader yields the data lines of a graph file, skipping comments and
// blank lines and keeping track of the position for error messages.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	return &lineReader{scanner: scanner}
}

func (lr *lineReader) next() (string, error) {
	for lr.scanner.Scan() {
		lr.line++
		line := strings.TrimSpace(lr.scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return line, nil
	}
	if err := lr.scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("line %v: unexpected end of file", lr.line)
}

func (lr *lineReader) count() (int, error) {
	line, err := lr.next()
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(line)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("line %v: invalid count %q", lr.line, line)
	}
	return value, nil
}

// ReadGraphFile reads a graph in the given format.
func ReadGraphFile(filename string, f Format) (GraphData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return GraphData{}, err
	}
	defer file.Close()
	data, err := ReadGraph(file, f)
	if err != nil {
		return GraphData{}, fmt.Errorf("%v: %w", filename, err)
	}
	return data, nil
}

// ReadGraph parses a graph from r. The header announces the node and edge
// counts, inconsistencies with the body are reported with their line.
func ReadGraph(r io.Reader, f Format) (GraphData, error) {
	lr := newLineReader(r)

	numNodes, err := lr.count()
	if err != nil {
		return GraphData{}, err
	}
	numEdges, err := lr.count()
	if err != nil {
		return GraphData{}, err
	}

	data := GraphData{Nodes: make([]graph.Node, 0, numNodes), Edges: make([]graph.Edge, 0, numEdges)}
	if f == FMICH {
		data.Levels = make([]int, 0, numNodes)
	}

	for i := 0; i < numNodes; i++ {
		line, err := lr.next()
		if err != nil {
			return GraphData{}, fmt.Errorf("node %v: %w", i, err)
		}
		node, level, err := parseNode(line, i, f)
		if err != nil {
			return GraphData{}, fmt.Errorf("line %v: %w", lr.line, err)
		}
		data.Nodes = append(data.Nodes, node)
		if f == FMICH {
			data.Levels = append(data.Levels, level)
		}
	}

	for i := 0; i < numEdges; i++ {
		line, err := lr.next()
		if err != nil {
			return GraphData{}, fmt.Errorf("edge %v: %w", i, err)
		}
		edge, err := parseEdge(line, f, numNodes)
		if err != nil {
			return GraphData{}, fmt.Errorf("line %v: %w", lr.line, err)
		}
		data.Edges = append(data.Edges, edge)
	}

	if line, err := lr.next(); err == nil {
		return GraphData{}, fmt.Errorf("line %v: unexpected data %q after %v edges", lr.line, line, numEdges)
	}

	return data, nil
}

func parseNode(line string, index int, f Format) (graph.Node, int, error) {
	node := graph.Node{Id: index}
	level := 0
	var err error
	var matched int
	switch f {
	case SIMPLE:
		matched, err = fmt.Sscanf(line, "%f %f", &node.Lat, &node.Lon)
		if err != nil || matched != 2 {
			return node, 0, fmt.Errorf("invalid node %q", line)
		}
	case STD:
		matched, err = fmt.Sscanf(line, "%d %f %f", &node.Id, &node.Lat, &node.Lon)
		if err != nil || matched != 3 {
			return node, 0, fmt.Errorf("invalid node %q", line)
		}
	case FMI:
		matched, err = fmt.Sscanf(line, "%d %d %f %f %f", &node.Id, &node.OsmId, &node.Lat, &node.Lon, &node.Elevation)
		if err != nil || matched != 5 {
			return node, 0, fmt.Errorf("invalid node %q", line)
		}
	case FMICH:
		matched, err = fmt.Sscanf(line, "%d %d %f %f %f %d", &node.Id, &node.OsmId, &node.Lat, &node.Lon, &node.Elevation, &level)
		if err != nil || matched != 6 {
			return node, 0, fmt.Errorf("invalid node %q", line)
		}
	}
	if node.Id != index {
		return node, 0, fmt.Errorf("node id %v out of order, expected %v", node.Id, index)
	}
	return node, level, nil
}

func parseEdge(line string, f Format, numNodes int) (graph.Edge, error) {
	edge := graph.MakeEdge(0, 0, 0)
	var err error
	var matched int
	switch f {
	case SIMPLE, STD:
		matched, err = fmt.Sscanf(line, "%d %d %d", &edge.From, &edge.To, &edge.Weight)
		if err != nil || matched != 3 {
			return edge, fmt.Errorf("invalid edge %q", line)
		}
	case FMI:
		matched, err = fmt.Sscanf(line, "%d %d %d %d %d", &edge.From, &edge.To, &edge.Weight, &edge.Type, &edge.MaxSpeed)
		if err != nil || matched != 5 {
			return edge, fmt.Errorf("invalid edge %q", line)
		}
	case FMICH:
		matched, err = fmt.Sscanf(line, "%d %d %d %d %d %d %d", &edge.From, &edge.To, &edge.Weight, &edge.Type, &edge.MaxSpeed, &edge.Child1, &edge.Child2)
		if err != nil || matched != 7 {
			return edge, fmt.Errorf("invalid edge %q", line)
		}
	}
	if edge.From < 0 || edge.From >= numNodes || edge.To < 0 || edge.To >= numNodes {
		return edge, fmt.Errorf("edge %q references unknown node", line)
	}
	if edge.From == edge.To {
		return edge, fmt.Errorf("self loop %q", line)
	}
	if edge.Weight < 0 {
		return edge, fmt.Errorf("negative weight %q", line)
	}
	return edge, nil
}
