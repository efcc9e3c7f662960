package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natevvv/osm-ch-constructor/internal/pbf"
	"github.com/natevvv/osm-ch-constructor/pkg/road"
)

var flagInFile = flag.String("i", "", "OSM extract (.pbf, .osm) or segment dump (.json)")
var flagOutFile = flag.String("o", "merged_segments.json", "output segment file")

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

func main() {
	flag.Parse()

	if *flagInFile == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "No input file specified! Exiting.")
		os.Exit(1)
	}

	start := time.Now()
	segments, err := importSegments(*flagInFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("[TIME] Import: %s\n", time.Since(start))

	start = time.Now()
	merger := road.NewMerger(segments)
	merger.Merge()
	fmt.Printf("[TIME] Merge: %s\n", time.Since(start))
	fmt.Printf("Number of segments: %d\n", len(merger.Segments()))
	fmt.Printf("Number of merges: %d\n", merger.MergeCount())
	fmt.Printf("Unmergable segments: %d\n", merger.UnmergableCount())

	start = time.Now()
	if err := pbf.ExportSegmentsJson(merger.Segments(), *flagOutFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("[TIME] Export: %s\n", time.Since(start))
	fmt.Printf("Wrote merged segments to %s\n", *flagOutFile)
}
