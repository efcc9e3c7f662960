package ch

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
	"github.com/natevvv/osm-ch-constructor/pkg/slice"
	"golang.org/x/exp/slices"
)

// Describes a candidate shortcut before it is committed to the graph.
// It keeps the node it is spanned over for deterministic merge ordering.
type shortcut struct {
	from   graph.NodeId // the source node
	to     graph.NodeId // the target node
	center graph.NodeId // over which node this shortcut is spanned
	weight int          // cost of the shortcut
	child1 graph.EdgeId // the incoming edge it replaces
	child2 graph.EdgeId // the outgoing edge it replaces
}

func compareShortcuts(a, b shortcut) int {
	if a.from != b.from {
		return a.from - b.from
	}
	if a.to != b.to {
		return a.to - b.to
	}
	if a.weight != b.weight {
		return a.weight - b.weight
	}
	return a.center - b.center
}

// Contractor drives the hierarchy construction. Rounds alternate between a
// parallel phase, where the workers compute shortcut lists for an independent
// set of nodes against a read-only graph, and a single threaded commit phase
// that merges the shortcuts, removes the contracted nodes' edges and assigns
// their level.
type Contractor struct {
	g          *graph.Graph
	selector   *IndependentSetSelector
	workers    []*WitnessSearcher
	contracted slice.FixedSizeSlice
	levels     []int
	level      int
	options    ContractionOptions

	shortcutCount int
	debugLevel    int
}

func NewContractor(g *graph.Graph, options ContractionOptions) *Contractor {
	contracted := slice.MakeFixedSizeSlice(g.NodeCount())
	workers := make([]*WitnessSearcher, 0, options.Workers)
	for i := 0; i < options.Workers; i++ {
		workers = append(workers, NewWitnessSearcher(g, contracted.Get()))
	}
	return &Contractor{
		g:          g,
		selector:   NewIndependentSetSelector(g.NodeCount(), options.Seed),
		workers:    workers,
		contracted: contracted,
		levels:     make([]int, g.NodeCount()),
		level:      1,
		options:    options,
	}
}

func (c *Contractor) SetDebugLevel(level int) { c.debugLevel = level }

// Levels returns the level of every node. Uncontracted nodes are at 0.
func (c *Contractor) Levels() []int { return c.levels }

// Run contracts all nodes: a few cheap warmup rounds thin out the dense
// bottom of the hierarchy, the full rounds finish the job.
func (c *Contractor) Run() {
	pool := make([]graph.NodeId, c.g.NodeCount())
	for i := range pool {
		pool[i] = i
	}
	pool = c.QuickContract(pool, c.options.QuickHops, c.options.QuickRounds)
	c.Contract(pool)
}

// QuickContract runs a fixed number of rounds with a small hop cap. The weak
// witness bound over-approximates the needed shortcuts but the rounds are
// cheap. Returns the remaining pool; levels are assigned from the shared
// counter, so the full contraction continues where the warmup stopped.
func (c *Contractor) QuickContract(pool []graph.NodeId, maxHops, rounds int) []graph.NodeId {
	for round := 0; round < rounds && len(pool) > 0; round++ {
		set := c.selector.Select(c.g, pool)
		added := c.contractSet(set, maxHops)
		pool = c.prunePool(pool)
		if c.debugLevel >= 1 {
			log.Printf("quick round %v: contracted %v nodes, %v shortcuts, %v nodes left\n", round+1, len(set), added, len(pool))
		}
	}
	return pool
}

// Contract empties the pool with the full hop cap.
func (c *Contractor) Contract(pool []graph.NodeId) {
	round := 0
	for len(pool) > 0 {
		set := c.selector.Select(c.g, pool)
		added := c.contractSet(set, c.options.FullHops)
		pool = c.prunePool(pool)
		round++
		if c.debugLevel >= 1 {
			log.Printf("round %v: contracted %v nodes, %v shortcuts, %v nodes left\n", round, len(set), added, len(pool))
		}
	}
	if c.debugLevel >= 1 {
		log.Printf("contraction finished: %v shortcuts, %v levels, contracted ratio %v\n", c.shortcutCount, c.level-1, c.contracted.Ratio())
	}
}

// contractSet contracts an independent set of nodes in one round and commits
// the result. The workers pull nodes via a shared counter and only read the
// graph; the commit happens on the calling goroutine after the barrier.
func (c *Contractor) contractSet(set []graph.NodeId, maxHops int) int {
	results := make([][]shortcut, len(set))

	var next int64
	var wg sync.WaitGroup
	for _, worker := range c.workers {
		wg.Add(1)
		go func(worker *WitnessSearcher) {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1)) - 1
				if i >= len(set) {
					return
				}
				results[i] = c.contractNode(worker, set[i], maxHops)
			}
		}(worker)
	}
	wg.Wait()

	candidates := make([]shortcut, 0)
	for _, result := range results {
		candidates = append(candidates, result...)
	}
	accepted := c.mergeShortcuts(candidates)

	removed := make([]graph.EdgeId, 0)
	for _, nodeId := range set {
		for _, edge := range c.g.NodeEdges(nodeId, graph.OUT) {
			removed = append(removed, edge.Id)
		}
		for _, edge := range c.g.NodeEdges(nodeId, graph.IN) {
			removed = append(removed, edge.Id)
		}
	}

	c.g.AddEdges(accepted)
	c.g.RemoveEdges(removed)
	for _, nodeId := range set {
		c.levels[nodeId] = c.level
	}
	c.contracted.Add(set...)
	c.level++
	c.g.Update()

	c.shortcutCount += len(accepted)
	return len(accepted)
}

// contractNode computes the shortcuts needed to bypass one node. For every
// incoming and outgoing edge pair a witness search decides whether the
// detour over the node is the only shortest connection.
func (c *Contractor) contractNode(worker *WitnessSearcher, nodeId graph.NodeId, maxHops int) []shortcut {
	contracted := c.contracted.Get()
	shortcuts := make([]shortcut, 0)
	for _, in := range c.g.NodeEdges(nodeId, graph.IN) {
		source := in.From
		if source == nodeId || contracted[source] {
			continue
		}
		for _, out := range c.g.NodeEdges(nodeId, graph.OUT) {
			target := out.To
			if target == nodeId || target == source || contracted[target] {
				continue
			}
			weight := in.Weight + out.Weight
			if _, found := worker.Search(source, target, nodeId, weight, maxHops, c.options.MaxSettledNodes); found {
				continue
			}
			shortcuts = append(shortcuts, shortcut{
				from:   source,
				to:     target,
				center: nodeId,
				weight: weight,
				child1: in.Id,
				child2: out.Id,
			})
		}
	}
	return shortcuts
}

// mergeShortcuts orders the candidates of a round and drops the dominated
// ones: only the cheapest candidate per node pair survives, and candidates
// that an existing live edge already covers are suppressed. Edge ids are
// assigned afterwards in this order, which makes the output independent of
// the worker schedule.
func (c *Contractor) mergeShortcuts(candidates []shortcut) []graph.Edge {
	slices.SortFunc(candidates, compareShortcuts)

	edges := make([]graph.Edge, 0, len(candidates))
	for i, candidate := range candidates {
		if i > 0 && candidates[i-1].from == candidate.from && candidates[i-1].to == candidate.to {
			continue
		}
		if c.hasEdgeWithin(candidate.from, candidate.to, candidate.weight) {
			continue
		}
		edges = append(edges, graph.MakeShortcut(candidate.from, candidate.to, candidate.weight, candidate.child1, candidate.child2))
	}
	return edges
}

func (c *Contractor) prunePool(pool []graph.NodeId) []graph.NodeId {
	contracted := c.contracted.Get()
	remaining := pool[:0]
	for _, nodeId := range pool {
		if !contracted[nodeId] {
			remaining = append(remaining, nodeId)
		}
	}
	return remaining
}

func (c *Contractor) hasEdgeWithin(from, to graph.NodeId, weight int) bool {
	for _, edge := range c.g.NodeEdges(from, graph.OUT) {
		if edge.To == to && edge.Weight <= weight {
			return true
		}
	}
	return false
}
