// cutproblem.go - CutProblem: a self-contained cut instance with an explicit
// sourceSet/sinkSet of already-contracted nodes plus the "remaining" graph
// (spec.md §3, §4.3). initializeProblem builds the first sub-instance from
// the super graph; contractProblem derives the next one from a solved
// instance using the nested-cut monotonicity property. Neither has a direct
// analogue in the teacher (a single-lambda solver has no notion of
// contraction), so both are built from spec.md's description, using the
// teacher's node/arc/outOfTree wiring (wireOutOfTree below is the
// generalization of the teacher's SessionInitializer.Complete /
// readDimacsFile arc-placement logic) as the underlying mechanism.

package pseudo

// CutProblem is one sub-instance solved by a single call into the engine.
type CutProblem struct {
	ctx *SolverContext

	lambdaValue float64

	nodeList []*node
	arcList  []*arc

	// sourceSet/sinkSet hold original (N_super-space) node ids already
	// contracted into the artificial source/sink of this sub-instance.
	sourceSet map[int]bool
	sinkSet   map[int]bool

	solved                    bool
	optimalSourceSetIndicator []int

	cutConstant, cutMultiplier, cutValue float64
}

// InitializeProblem builds the first CutProblem for a top-level solve: the
// artificial source (originalIndex -1) and sink (originalIndex -2) occupy
// nodeList[0] and nodeList[1], sourceSet/sinkSet each hold exactly the
// super graph's source/sink node, and every other super-graph node appears
// as an interior node.
func InitializeProblem(ctx *SolverContext, lambda float64) *CutProblem {
	g := ctx.Graph
	p := &CutProblem{
		ctx:         ctx,
		lambdaValue: lambda,
		sourceSet:   map[int]bool{g.Source: true},
		sinkSet:     map[int]bool{g.Sink: true},
	}

	nodes := make([]*node, 0, g.NumNodes)
	nodes = append(nodes, newNode(0, -1))
	nodes = append(nodes, newNode(1, -2))

	byOriginal := make(map[int]*node, g.NumNodes)
	for oi := 0; oi < g.NumNodes; oi++ {
		if oi == g.Source || oi == g.Sink {
			continue
		}
		n := newNode(uint(len(nodes)), oi)
		nodes = append(nodes, n)
		byOriginal[oi] = n
	}

	lookup := func(oi int) *node {
		switch oi {
		case g.Source:
			return nodes[0]
		case g.Sink:
			return nodes[1]
		default:
			return byOriginal[oi]
		}
	}

	arcs := make([]*arc, 0, len(g.Arcs))
	for _, sa := range g.Arcs {
		arcs = append(arcs, &arc{
			from: lookup(sa.from), to: lookup(sa.to),
			constant: sa.constant, multiplier: sa.multiplier,
			direction: 1,
		})
	}

	wireOutOfTree(nodes, arcs)
	p.nodeList = nodes
	p.arcList = arcs
	return p
}

// nodeRole classifies an old sub-instance node against a new contraction.
type nodeRole int

const (
	roleSource nodeRole = iota
	roleSink
	roleInterior
)

// ContractProblem derives a new sub-instance from a solved old one, per
// spec.md §4.3: nodes with lowInd[i]==1 move into the new sourceSet, nodes
// with highInd[i]==0 move into the new sinkSet, the rest stay interior.
// lowInd and highInd are full N_super-indexed indicators (already folding
// in old's own sourceSet/sinkSet, since solveMinCut always writes a
// complete indicator).
func ContractProblem(ctx *SolverContext, old *CutProblem, lambda float64, lowInd, highInd []int) *CutProblem {
	g := ctx.Graph
	p := &CutProblem{
		ctx:         ctx,
		lambdaValue: lambda,
		sourceSet:   map[int]bool{},
		sinkSet:     map[int]bool{},
	}
	for oi := 0; oi < g.NumNodes; oi++ {
		if lowInd[oi] == 1 {
			p.sourceSet[oi] = true
		} else if highInd[oi] == 0 {
			p.sinkSet[oi] = true
		}
	}

	classify := func(n *node) nodeRole {
		switch n.originalIndex {
		case -1:
			return roleSource
		case -2:
			return roleSink
		default:
			if p.sourceSet[n.originalIndex] {
				return roleSource
			}
			if p.sinkSet[n.originalIndex] {
				return roleSink
			}
			return roleInterior
		}
	}

	nodes := make([]*node, 0, len(old.nodeList))
	nodes = append(nodes, newNode(0, -1))
	nodes = append(nodes, newNode(1, -2))

	newByOld := make(map[*node]*node, len(old.nodeList))
	newByOld[old.nodeList[0]] = nodes[0]
	newByOld[old.nodeList[1]] = nodes[1]
	for _, on := range old.nodeList[2:] {
		if classify(on) == roleInterior {
			nn := newNode(uint(len(nodes)), on.originalIndex)
			nodes = append(nodes, nn)
			newByOld[on] = nn
		}
	}

	type accum struct {
		constant, multiplier float64
		touched              bool
	}
	sourceAdj := make([]accum, len(nodes)) // indexed by new interior node position
	sinkAdj := make([]accum, len(nodes))
	var srcSink accum
	var interiorArcs []*arc

	for _, a := range old.arcList {
		fr, to := classify(a.from), classify(a.to)

		switch {
		case fr == roleSink || to == roleSource:
			continue // contradicts the contraction: dropped
		case fr == roleSource && to == roleSink:
			srcSink.constant += a.constant
			srcSink.multiplier += a.multiplier
			srcSink.touched = true
		case fr == roleSource:
			idx := newByOld[a.to].number
			sourceAdj[idx].constant += a.constant
			sourceAdj[idx].multiplier += a.multiplier
			sourceAdj[idx].touched = true
		case to == roleSink:
			idx := newByOld[a.from].number
			sinkAdj[idx].constant += a.constant
			sinkAdj[idx].multiplier += a.multiplier
			sinkAdj[idx].touched = true
		default:
			interiorArcs = append(interiorArcs, &arc{
				from: newByOld[a.from], to: newByOld[a.to],
				constant: a.constant, multiplier: a.multiplier,
				direction: 1,
			})
		}
	}

	arcs := make([]*arc, 0, len(interiorArcs)+len(nodes)+1)
	if srcSink.touched {
		arcs = append(arcs, &arc{from: nodes[0], to: nodes[1], constant: srcSink.constant, multiplier: srcSink.multiplier, direction: 1})
	}
	for i := 2; i < len(nodes); i++ {
		if sourceAdj[i].touched {
			arcs = append(arcs, &arc{from: nodes[0], to: nodes[i], constant: sourceAdj[i].constant, multiplier: sourceAdj[i].multiplier, direction: 1})
		}
	}
	for i := 2; i < len(nodes); i++ {
		if sinkAdj[i].touched {
			arcs = append(arcs, &arc{from: nodes[i], to: nodes[1], constant: sinkAdj[i].constant, multiplier: sinkAdj[i].multiplier, direction: 1})
		}
	}
	arcs = append(arcs, interiorArcs...)

	wireOutOfTree(nodes, arcs)
	p.nodeList = nodes
	p.arcList = arcs
	return p
}

// wireOutOfTree organizes arcs into each node's out-of-tree adjacency list,
// generalizing the teacher's SessionInitializer.Complete/readDimacsFile
// placement rule: source-adjacent arcs live on the source, sink-adjacent
// arcs live on the sink, everything else lives on its "from" node. A direct
// source-to-sink arc is wired nowhere (it never participates in label
// propagation) - its capacity still reaches the cut value through
// evaluateCut, which scans arcList directly rather than the engine's tree
// state.
func wireOutOfTree(nodes []*node, arcs []*arc) {
	source, sink := nodes[0], nodes[1]

	for _, a := range arcs {
		if a.to == source || a.from == sink || a.from == a.to {
			continue
		}
		a.from.numAdjacent++
		a.to.numAdjacent++
	}
	for _, n := range nodes {
		n.createOutOfTree()
	}
	for _, a := range arcs {
		if a.to == source || a.from == sink || a.from == a.to {
			continue
		}
		switch {
		case a.from == source && a.to == sink:
			// direct arc; see comment above.
		case a.from == source || a.to != sink:
			a.from.addOutOfTreeNode(a)
		case a.to == sink:
			a.to.addOutOfTreeNode(a)
		}
	}
}

// solveMinCut runs the engine on p and writes optimalSourceSetIndicator
// (over the full N_super index space) plus the cut's affine coefficients.
// When maximalSourceSet is true, the engine instead runs on a reversed
// (source/sink-swapped, arc-flipped) copy of p and the result is
// complemented, yielding the maximum rather than minimum source-side cut
// among all minimum cuts at this lambda (spec.md §4.2).
func (ctx *SolverContext) solveMinCut(p *CutProblem, maximalSourceSet bool) error {
	byOriginal := make(map[int]*node, len(p.nodeList))
	for _, n := range p.nodeList[2:] {
		byOriginal[n.originalIndex] = n
	}
	n := uint(len(p.nodeList))

	var bit func(oi int) int

	if !maximalSourceSet {
		if err := ctx.runPhaseOne(p.nodeList, p.arcList, p.lambdaValue); err != nil {
			return err
		}
		bit = func(oi int) int {
			if byOriginal[oi].label >= n {
				return 1
			}
			return 0
		}
	} else {
		revNodes, revArcs := buildReverseCopy(p)
		if err := ctx.runPhaseOne(revNodes, revArcs, p.lambdaValue); err != nil {
			return err
		}
		revByOriginal := make(map[int]*node, len(revNodes))
		for _, rn := range revNodes[2:] {
			revByOriginal[rn.originalIndex] = rn
		}
		bit = func(oi int) int {
			if revByOriginal[oi].label >= n {
				return 0 // complement
			}
			return 1
		}
	}

	ind := make([]int, ctx.Graph.NumNodes)
	for oi := 0; oi < ctx.Graph.NumNodes; oi++ {
		switch {
		case oi == ctx.Graph.Source:
			ind[oi] = 1
		case oi == ctx.Graph.Sink:
			ind[oi] = 0
		case p.sourceSet[oi]:
			ind[oi] = 1
		case p.sinkSet[oi]:
			ind[oi] = 0
		default:
			ind[oi] = bit(oi)
		}
	}

	p.optimalSourceSetIndicator = ind
	p.solved = true

	if err := ctx.evaluateCapacities(p.arcList, p.lambdaValue); err != nil {
		return err
	}
	ctx.evaluateCut(p)
	return nil
}

// buildReverseCopy makes an independent node/arc copy of p with the
// artificial source and sink roles swapped and every arc direction
// reversed - running the engine on this copy and complementing its result
// yields the maximal rather than minimal source-side minimum cut.
func buildReverseCopy(p *CutProblem) ([]*node, []*arc) {
	mapping := make(map[*node]*node, len(p.nodeList))
	newNodes := make([]*node, len(p.nodeList))
	for i, on := range p.nodeList {
		nn := &node{originalIndex: on.originalIndex}
		newNodes[i] = nn
		mapping[on] = nn
	}
	newNodes[0], newNodes[1] = newNodes[1], newNodes[0]
	for i, nn := range newNodes {
		nn.number = uint(i)
	}

	newArcs := make([]*arc, len(p.arcList))
	for i, a := range p.arcList {
		newArcs[i] = &arc{
			from: mapping[a.to], to: mapping[a.from],
			constant: a.constant, multiplier: a.multiplier,
			direction: 1,
		}
	}

	wireOutOfTree(newNodes, newArcs)
	return newNodes, newArcs
}

// evaluateCut sums, over p.arcList, the arcs whose from-side is on the
// source side of p.optimalSourceSetIndicator and whose to-side is not,
// into cutConstant/cutMultiplier/cutValue (spec.md §4.3).
func (ctx *SolverContext) evaluateCut(p *CutProblem) {
	ind := p.optimalSourceSetIndicator

	inSource := func(n *node) bool {
		switch n.originalIndex {
		case -1:
			return true
		case -2:
			return false
		default:
			return ind[n.originalIndex] == 1
		}
	}

	p.cutConstant, p.cutMultiplier, p.cutValue = 0, 0, 0
	for _, a := range p.arcList {
		if inSource(a.from) && !inSource(a.to) {
			p.cutConstant += a.constant
			p.cutMultiplier += a.multiplier
			p.cutValue += a.capacity
		}
	}
}
