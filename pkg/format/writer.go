package format

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// WriteGraphFile writes a graph in the given format. FMI_CH requires levels
// for every node, the other formats ignore them.
func WriteGraphFile(filename string, f Format, nodes []graph.Node, edges []graph.Edge, levels []int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := WriteGraph(writer, f, nodes, edges, levels); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return writer.Flush()
}

func WriteGraph(w io.Writer, f Format, nodes []graph.Node, edges []graph.Edge, levels []int) error {
	if f == FMICH && len(levels) != len(nodes) {
		return fmt.Errorf("writing %v requires a level for every node", f)
	}

	if f == FMI || f == FMICH {
		if _, err := fmt.Fprintf(w, "# generated by ch-constructor\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%v\n%v\n", len(nodes), len(edges)); err != nil {
		return err
	}

	for i, node := range nodes {
		var err error
		switch f {
		case SIMPLE:
			_, err = fmt.Fprintf(w, "%v %v\n", node.Lat, node.Lon)
		case STD:
			_, err = fmt.Fprintf(w, "%v %v %v\n", i, node.Lat, node.Lon)
		case FMI:
			_, err = fmt.Fprintf(w, "%v %v %v %v %v\n", i, node.OsmId, node.Lat, node.Lon, node.Elevation)
		case FMICH:
			_, err = fmt.Fprintf(w, "%v %v %v %v %v %v\n", i, node.OsmId, node.Lat, node.Lon, node.Elevation, levels[i])
		}
		if err != nil {
			return err
		}
	}

	for _, edge := range edges {
		var err error
		switch f {
		case SIMPLE, STD:
			_, err = fmt.Fprintf(w, "%v %v %v\n", edge.From, edge.To, edge.Weight)
		case FMI:
			_, err = fmt.Fprintf(w, "%v %v %v %v %v\n", edge.From, edge.To, edge.Weight, edge.Type, edge.MaxSpeed)
		case FMICH:
			_, err = fmt.Fprintf(w, "%v %v %v %v %v %v %v\n", edge.From, edge.To, edge.Weight, edge.Type, edge.MaxSpeed, edge.Child1, edge.Child2)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
