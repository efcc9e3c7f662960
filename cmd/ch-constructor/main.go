package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/natevvv/osm-ch-constructor/pkg/ch"
	"github.com/natevvv/osm-ch-constructor/pkg/format"
	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

type arguments struct {
	infile     string
	informat   string
	outfile    string
	outformat  string
	threads    int
	configFile string
	debugLevel int
}

func parseArguments(args []string) (arguments, error) {
	parsed := arguments{}
	flags := flag.NewFlagSet("ch-constructor", flag.ContinueOnError)
	flags.StringVar(&parsed.infile, "i", "", "input graph file")
	flags.StringVar(&parsed.infile, "infile", "", "input graph file")
	flags.StringVar(&parsed.informat, "f", "FMI", "input format (SIMPLE, STD, FMI)")
	flags.StringVar(&parsed.informat, "informat", "FMI", "input format (SIMPLE, STD, FMI)")
	flags.StringVar(&parsed.outfile, "o", "ch_out.graph", "output graph file")
	flags.StringVar(&parsed.outfile, "outfile", "ch_out.graph", "output graph file")
	flags.StringVar(&parsed.outformat, "g", "FMI_CH", "output format (SIMPLE, STD, FMI_CH)")
	flags.StringVar(&parsed.outformat, "outformat", "FMI_CH", "output format (SIMPLE, STD, FMI_CH)")
	flags.IntVar(&parsed.threads, "t", 1, "number of contraction workers")
	flags.IntVar(&parsed.threads, "threads", 1, "number of contraction workers")
	flags.StringVar(&parsed.configFile, "config", "", "yaml file with contraction tuning options")
	flags.IntVar(&parsed.debugLevel, "debug", 1, "debug level of the contraction")
	if err := flags.Parse(args); err != nil {
		return parsed, err
	}
	if parsed.infile == "" {
		flags.Usage()
		return parsed, fmt.Errorf("No input file specified! Exiting.")
	}
	if parsed.threads < 1 {
		return parsed, fmt.Errorf("invalid thread count %v", parsed.threads)
	}
	return parsed, nil
}

func run(args arguments) error {
	inFormat, err := format.ParseInputFormat(args.informat)
	if err != nil {
		return err
	}
	outFormat, err := format.ParseOutputFormat(args.outformat)
	if err != nil {
		return err
	}

	options := ch.MakeDefaultContractionOptions()
	if args.configFile != "" {
		options, err = ch.LoadContractionOptions(args.configFile)
		if err != nil {
			return err
		}
	}
	options.Workers = args.threads

	start := time.Now()
	data, err := format.ReadGraphFile(args.infile, inFormat)
	if err != nil {
		return err
	}
	log.Printf("Read %v graph with %v nodes and %v edges in %v\n", inFormat, len(data.Nodes), len(data.Edges), time.Since(start))

	g := graph.NewGraph(data.Nodes, data.Edges)
	contractor := ch.NewContractor(g, options)
	contractor.SetDebugLevel(args.debugLevel)

	start = time.Now()
	contractor.Run()
	log.Printf("Contracted graph in %v\n", time.Since(start))

	nodes, edges := g.FinalizedData()
	if err := format.WriteGraphFile(args.outfile, outFormat, nodes, edges, contractor.Levels()); err != nil {
		return err
	}
	log.Printf("Wrote %v graph with %v edges to %v\n", outFormat, len(edges), args.outfile)
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
