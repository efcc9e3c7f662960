package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natevvv/osm-ch-constructor/internal/pbf"
	"github.com/natevvv/osm-ch-constructor/pkg/format"
	"github.com/natevvv/osm-ch-constructor/pkg/road"
)

type arguments struct {
	infile       string
	outfile      string
	segmentsFile string
}

func parseArguments(args []string) (arguments, error) {
	parsed := arguments{}
	flags := flag.NewFlagSet("graph-builder", flag.ContinueOnError)
	flags.StringVar(&parsed.infile, "i", "", "OSM extract (.pbf, .osm) or segment dump (.json)")
	flags.StringVar(&parsed.infile, "infile", "", "OSM extract (.pbf, .osm) or segment dump (.json)")
	flags.StringVar(&parsed.outfile, "o", "road_graph.fmi", "output graph file")
	flags.StringVar(&parsed.outfile, "outfile", "road_graph.fmi", "output graph file")
	flags.StringVar(&parsed.segmentsFile, "dump-segments", "", "also write the imported segments as json")
	if err := flags.Parse(args); err != nil {
		return parsed, err
	}
	if parsed.infile == "" {
		flags.Usage()
		return parsed, fmt.Errorf("No input file specified! Exiting.")
	}
	return parsed, nil
}

func importSegments(infile string) ([]*road.Segment, error) {
	switch filepath.Ext(infile) {
	case ".pbf":
		importer := pbf.NewImporter(infile)
		if err := importer.Import(); err != nil {
			return nil, err
		}
		return importer.Segments(), nil
	case ".osm", ".xml":
		return pbf.ImportXML(infile)
	case ".json":
		return pbf.LoadSegmentsJson(infile)
	}
	return nil, fmt.Errorf("unsupported input file %v", infile)
}

func run(args arguments) error {
	start := time.Now()
	segments, err := importSegments(args.infile)
	if err != nil {
		return err
	}
	fmt.Printf("[TIME] Import road network: %s\n", time.Since(start))
	fmt.Printf("Imported %d segments\n", len(segments))

	if args.segmentsFile != "" {
		start = time.Now()
		if err := pbf.ExportSegmentsJson(segments, args.segmentsFile); err != nil {
			return err
		}
		fmt.Printf("[TIME] Export segments: %s\n", time.Since(start))
	}

	start = time.Now()
	nodes, edges := road.BuildGraph(segments)
	fmt.Printf("[TIME] Build graph: %s\n", time.Since(start))
	fmt.Printf("Number of nodes: %d\n", len(nodes))
	fmt.Printf("Number of edges: %d\n", len(edges))

	start = time.Now()
	if err := format.WriteGraphFile(args.outfile, format.FMI, nodes, edges, nil); err != nil {
		return err
	}
	fmt.Printf("[TIME] Export graph: %s\n", time.Since(start))
	return nil
}

func main() {
	args, err := parseArguments(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
