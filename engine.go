// engine.go - the pseudoflow maximum-flow/minimum-cut engine: normalized
// trees with strong/weak labels, gap relabeling, and highest-label
// selection of strong roots (Hochbaum, 2008). This is a direct
// generalization of the teacher's pseudo.go phase-1 implementation
// (pushUpward/pushDownward/processRoot/merge/pushExcess/checkChildren/
// liftAll/getHighestStrongRoot/simpleInitialization/flowPhaseOne) to affine,
// float64 capacities realized at a given lambda, operating on a CutProblem
// instead of the teacher's single package-global graph.
//
// Flow recovery (recoverFlow/decompose/checkOptimality/minisort/quickSort in
// the teacher) is vestigial on the parametric path per spec.md §1 Non-goals
// and is not implemented here.

package pseudo

// engineState is the per-call working state of one engine invocation: the
// label counts, strong-root buckets, and highest-strong-label cursor. It is
// allocated fresh for each call into the engine and discarded on return, so
// no state leaks between sub-instances (spec.md §5).
type engineState struct {
	ctx                 *SolverContext
	numNodes            uint
	highestStrongLabel  uint
	ls                  *labelState
	source, sink        *node
}

// runPhaseOne realizes capacities at lambda on the given node/arc lists
// (source at index 0, sink at index 1), then runs simpleInitialization and
// the phase-1 main loop to completion. On return, every node's label
// reflects the minimum s-t cut: label >= numNodes marks the source side.
func (ctx *SolverContext) runPhaseOne(nodes []*node, arcs []*arc, lambda float64) error {
	if err := ctx.evaluateCapacities(arcs, lambda); err != nil {
		return err
	}

	n := uint(len(nodes))
	es := &engineState{
		ctx:      ctx,
		numNodes: n,
		ls:       newLabelState(n),
		source:   nodes[0],
		sink:     nodes[1],
	}
	es.highestStrongLabel = 1

	es.simpleInitialization(nodes)
	es.flowPhaseOne()
	return nil
}

// evaluateCapacities realizes arc.capacity = constant + multiplier*lambda
// for every arc, per spec.md §4.1. A negative result is clamped to 0 when
// RoundNegative is set or the value is within tolerance of 0; otherwise the
// solve fails with CapacityInfeasible.
func (ctx *SolverContext) evaluateCapacities(arcs []*arc, lambda float64) error {
	for _, a := range arcs {
		a.capacity = a.constant + a.multiplier*lambda
		a.flow = 0
		if a.capacity < 0 {
			if ctx.RoundNegative || a.capacity > -ctx.Tolerance {
				a.capacity = 0
				continue
			}
			return capacityError(lambda, int(a.from.number), int(a.to.number))
		}
	}
	return nil
}

// simpleInitialization saturates every source- and sink-adjacent arc and
// seeds the label-1 strong-root bucket with every node left with positive
// excess (spec.md §4.2).
func (es *engineState) simpleInitialization(nodes []*node) {
	source, sink := es.source, es.sink

	for i := uint(0); i < source.numOutOfTree; i++ {
		a := source.outOfTree[i]
		a.flow = a.capacity
		a.to.excess += a.capacity
	}

	for i := uint(0); i < sink.numOutOfTree; i++ {
		a := sink.outOfTree[i]
		a.flow = a.capacity
		a.from.excess -= a.capacity
	}

	source.excess = 0
	sink.excess = 0

	for _, n := range nodes {
		if n == source || n == sink {
			continue
		}
		if n.excess > 0 {
			n.label = 1
			es.ls.incr(1)
			es.ls.addStrongRoot(n)
		}
	}

	source.label = es.numNodes
	sink.label = 0
	es.ls.counts[0] = uint(len(nodes)-2) - es.ls.counts[1]
}

// flowPhaseOne repeatedly selects the highest-labeled strong root and
// processes it until none remain.
func (es *engineState) flowPhaseOne() {
	for strongRoot := es.getHighestStrongRoot(); strongRoot != nil; strongRoot = es.getHighestStrongRoot() {
		es.processRoot(strongRoot)
	}
}

// getHighestStrongRoot scans labels from highestStrongLabel downward. A
// non-empty bucket whose predecessor label has no members is a gap: every
// root at that label is lifted to label n (spec.md §4.2).
func (es *engineState) getHighestStrongRoot() *node {
	for i := es.highestStrongLabel; i > 0; i-- {
		if es.ls.buckets[i].start == nil {
			continue
		}

		es.highestStrongLabel = i
		if es.ls.counts[i-1] > 0 {
			return es.ls.buckets[i].pop()
		}

		for es.ls.buckets[i].start != nil {
			es.ctx.stats.Gaps++
			strongRoot := es.ls.buckets[i].pop()
			es.liftAll(strongRoot)
		}
	}

	if es.ls.buckets[0].start == nil {
		return nil
	}

	for es.ls.buckets[0].start != nil {
		strongRoot := es.ls.buckets[0].pop()
		strongRoot.label = 1

		es.ls.decr(0)
		es.ls.incr(1)
		es.ctx.stats.Relabels++

		es.ls.addStrongRoot(strongRoot)
	}

	es.highestStrongLabel = 1
	return es.ls.buckets[1].pop()
}

// processRoot is the teacher's processRoot: it first looks for a weak
// out-of-tree neighbor to merge with; failing that it walks the sub-tree
// via checkChildren, relabeling nodes that have run out of same-label
// children, until either a merge becomes possible or the root itself is
// requeued at a higher label.
func (es *engineState) processRoot(n *node) {
	strongNode := n
	n.nextScan = n.childList

	if out, weakNode := es.findWeakNode(n); out != nil {
		es.merge(weakNode, strongNode, out)
		es.pushExcess(n)
		return
	}

	es.checkChildren(n)

	for strongNode != nil {
		for strongNode.nextScan != nil {
			temp := strongNode.nextScan
			strongNode.nextScan = strongNode.nextScan.next
			strongNode = temp
			strongNode.nextScan = strongNode.childList

			if out, weakNode := es.findWeakNode(strongNode); out != nil {
				es.merge(weakNode, strongNode, out)
				es.pushExcess(n)
				return
			}

			es.checkChildren(strongNode)
		}

		if strongNode = strongNode.parent; strongNode != nil {
			es.checkChildren(strongNode)
		}
	}

	es.ls.addStrongRoot(n)
	es.highestStrongLabel++
}

// findWeakNode scans n's out-of-tree arcs for an endpoint labeled exactly
// highestStrongLabel-1, removing it from the out-of-tree list (it becomes a
// tree arc via merge) and returning it along with the weak endpoint.
func (es *engineState) findWeakNode(n *node) (*arc, *node) {
	size := n.numOutOfTree

	for i := n.nextArc; i < size; i++ {
		es.ctx.stats.ArcScans++
		a := n.outOfTree[i]

		var weak *node
		if a.to.label == es.highestStrongLabel-1 {
			weak = a.to
		} else if a.from.label == es.highestStrongLabel-1 {
			weak = a.from
		} else {
			continue
		}

		n.nextArc = i
		n.numOutOfTree--
		n.outOfTree[i] = n.outOfTree[n.numOutOfTree]
		return a, weak
	}

	n.nextArc = n.numOutOfTree
	return nil, nil
}

// checkChildren walks n's same-label children via nextScan; if every child
// has a strictly lower label, n itself is relabeled (incremented by one)
// and its out-of-tree scan cursor reset.
func (es *engineState) checkChildren(n *node) {
	for ; n.nextScan != nil; n.nextScan = n.nextScan.next {
		if n.nextScan.label == n.label {
			return
		}
	}

	es.ls.decr(n.label)
	n.label++
	es.ls.incr(n.label)
	es.ctx.stats.Relabels++

	n.nextArc = 0
}

// merge rotates child's ancestral chain so the path from child to its old
// root becomes a path from child up to newParent; the old root ends up
// hanging off child.
func (es *engineState) merge(newParent, child *node, newArc *arc) {
	es.ctx.stats.Mergers++

	current := child

	for current.parent != nil {
		oldArc := current.arcToParent
		current.arcToParent = newArc
		oldParent := current.parent
		oldParent.breakRelationship(current)
		newParent.addRelationship(current)

		newParent = current
		current = oldParent
		newArc = oldArc
		newArc.direction = 1 - newArc.direction
	}

	current.arcToParent = newArc
	newParent.addRelationship(current)
}

// pushExcess walks from root up through parent links while the current node
// has excess, pushing along each tree arc according to its direction.
func (es *engineState) pushExcess(n *node) {
	var current, parent *node
	prevEx := 1.0

	for current = n; current.excess != 0 && current.parent != nil && current.arcToParent != nil; current = parent {
		parent = current.parent
		prevEx = parent.excess

		a := current.arcToParent
		if a.direction != 0 {
			es.pushUpward(a, current, parent, a.capacity-a.flow)
		} else {
			es.pushDownward(a, current, parent, a.flow)
		}
	}

	if current.excess > 0 && prevEx <= 0 {
		es.ls.addStrongRoot(current)
	}
}

func (es *engineState) pushUpward(a *arc, child, parent *node, resCap float64) {
	es.ctx.stats.Pushes++

	if resCap >= child.excess {
		parent.excess += child.excess
		a.flow += child.excess
		child.excess = 0
		return
	}

	a.direction = 0
	parent.excess += resCap
	child.excess -= resCap
	a.flow = a.capacity
	parent.addOutOfTreeNode(a)
	parent.breakRelationship(child)

	es.ls.addStrongRoot(child)
}

func (es *engineState) pushDownward(a *arc, child, parent *node, flow float64) {
	es.ctx.stats.Pushes++

	if flow >= child.excess {
		parent.excess += child.excess
		a.flow -= child.excess
		child.excess = 0
		return
	}

	a.direction = 1
	child.excess -= flow
	parent.excess += flow
	a.flow = 0
	parent.addOutOfTreeNode(a)
	parent.breakRelationship(child)

	es.ls.addStrongRoot(child)
}

// liftAll assigns label n (the source label) to every node reachable via
// child links from root, used when a gap is detected at a lower label.
func (es *engineState) liftAll(n *node) {
	current := n
	current.nextScan = current.childList

	es.ls.decr(current.label)
	current.label = es.numNodes

	for ; current != nil; current = current.parent {
		for current.nextScan != nil {
			temp := current.nextScan
			current.nextScan = current.nextScan.next
			current = temp
			current.nextScan = current.childList

			es.ls.decr(current.label)
			current.label = es.numNodes
		}
	}
}
