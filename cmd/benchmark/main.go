package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/natevvv/osm-ch-constructor/pkg/ch"
	"github.com/natevvv/osm-ch-constructor/pkg/format"
	"github.com/natevvv/osm-ch-constructor/pkg/graph"
	"github.com/natevvv/osm-ch-constructor/pkg/slice"
)

// navigator answers point to point queries. Unreachable targets report ok=false.
type navigator interface {
	ShortestDistance(source, target graph.NodeId) (int, bool)
}

func main() {
	plainFile := flag.String("graph", "", "plain graph file (FMI)")
	contractedFile := flag.String("ch", "", "contracted graph file (FMI_CH)")
	algorithm := flag.String("search", "ch", "Select the search algorithm (ch, dijkstra)")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many targets to query")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	targetFile := flag.String("targets", "targets.txt", "target file")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	if !slice.Contains([]string{"ch", "dijkstra"}, *algorithm) {
		log.Fatalf("unknown search algorithm %v", *algorithm)
	}
	if *plainFile == "" {
		log.Fatal("No plain graph file specified! Exiting.")
	}

	start := time.Now()
	plainData, err := format.ReadGraphFile(*plainFile, format.FMI)
	if err != nil {
		log.Fatal(err)
	}
	plainGraph := graph.NewGraph(plainData.Nodes, plainData.Edges)
	reference := ch.NewDijkstra(plainGraph)
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))

	target := func() navigator {
		if *algorithm == "dijkstra" {
			return reference
		}
		if *contractedFile == "" {
			log.Fatal("No contracted graph file specified! Exiting.")
		}
		contractedData, err := format.ReadGraphFile(*contractedFile, format.FMICH)
		if err != nil {
			log.Fatal(err)
		}
		contractedGraph := graph.NewGraph(contractedData.Nodes, contractedData.Edges)
		return ch.NewCHDijkstra(contractedGraph, contractedData.Levels)
	}()

	var targets [][3]int
	if *useRandomTargets {
		targets = createTargets(*amountTargets, plainGraph.NodeCount(), reference)
		if *storeTargets {
			writeTargets(targets, *targetFile)
		}
	} else {
		targets = readTargets(*targetFile)
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(target, targets)
}

func readTargets(filename string) [][3]int {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([][3]int, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var origin, destination, length int
		fmt.Sscanf(line, "%d %d %d", &origin, &destination, &length)
		targets = append(targets, [3]int{origin, destination, length})
	}
	return targets
}

// createTargets draws random queries and solves them with the reference
// search. Unreachable pairs are stored with length -1.
func createTargets(n, nodeCount int, reference *ch.Dijkstra) [][3]int {
	targets := make([][3]int, n)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < n; i++ {
		origin := rng.Intn(nodeCount)
		destination := rng.Intn(nodeCount)
		length, ok := reference.ShortestDistance(origin, destination)
		if !ok {
			length = -1
		}
		targets[i] = [3]int{origin, destination, length}
	}
	return targets
}

func writeTargets(targets [][3]int, targetFile string) {
	var sb strings.Builder
	for _, target := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v\n", target[0], target[1], target[2]))
	}

	file, err := os.Create(targetFile)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writer.WriteString(sb.String())
	writer.Flush()
}

func benchmark(target navigator, targets [][3]int) {
	var runtime time.Duration = 0
	completed := 0
	invalidLengths := make([][3]int, 0)

	showResults := func() {
		if completed == 0 {
			return
		}
		fmt.Printf("Average runtime: %.3fms\n", float64(int(runtime.Nanoseconds())/completed)/1000000)
		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, lengths := range invalidLengths {
			testcase := lengths[0]
			actualLength := lengths[1]
			referenceLength := lengths[2]
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Has: %v, Reference: %v, Difference: %v\n", i, testcase, targets[testcase][0], targets[testcase][1], actualLength, referenceLength, actualLength-referenceLength)
		}
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, testcase := range targets {
		origin := testcase[0]
		destination := testcase[1]
		referenceLength := testcase[2]

		start := time.Now()
		length, ok := target.ShortestDistance(origin, destination)
		elapsed := time.Since(start)
		if !ok {
			length = -1
		}

		fmt.Printf("[%3v TIME-Navigate] = %12s\n", i, elapsed)

		if length != referenceLength {
			invalidLengths = append(invalidLengths, [3]int{i, length, referenceLength})
		}

		runtime += elapsed
		completed++
	}
	showResults()
}
