// breakpoints.go - the Breakpoint Store (spec.md §3, §4.5): an ordered
// singly-linked list of (lambda, indicator), deduplicated by adjacent equal
// lambda before being flattened into the dense output matrix the public API
// returns. The teacher has no equivalent (a single-lambda solver never
// accumulates a sequence of cuts); this is built directly from spec.md's
// description, using the teacher's preference for small intrusive
// linked structures (mirrored from root/node list-splicing in graph.go) as
// its idiom.

package pseudo

// Breakpoint is one node of the store: the upper bound of the interval for
// which sourceSetIndicator is optimal.
type Breakpoint struct {
	lambdaValue        float64
	sourceSetIndicator []int
	next               *Breakpoint
}

// BreakpointStore is a singly-linked list with head/tail pointers, appended
// to in ascending lambda order by the parametric driver.
type BreakpointStore struct {
	head, tail *Breakpoint
	count      int
}

// addBreakpoint deep-copies ind (the caller may reuse its buffer) and
// appends a new Breakpoint to the tail of the list.
func (s *BreakpointStore) addBreakpoint(lambda float64, ind []int) {
	cp := make([]int, len(ind))
	copy(cp, ind)

	bp := &Breakpoint{lambdaValue: lambda, sourceSetIndicator: cp}
	if s.tail != nil {
		s.tail.next = bp
	} else {
		s.head = bp
	}
	s.tail = bp
	s.count++
}

// removeDuplicateBreakpoints walks the ordered list and drops any node whose
// lambda equals its predecessor's exactly (spec.md §4.4), keeping the
// predecessor's indicator (the earlier of two equal-lambda cuts; in practice
// they describe the same interval boundary).
func (s *BreakpointStore) removeDuplicateBreakpoints() {
	if s.head == nil {
		return
	}

	prev := s.head
	count := 1
	for cur := prev.next; cur != nil; cur = prev.next {
		if cur.lambdaValue == prev.lambdaValue {
			prev.next = cur.next
			continue
		}
		prev = cur
		count++
	}
	s.tail = prev
	s.count = count
}

// Result is the flattened output packaging of §4.5: K breakpoints, their
// lambdas in ascending order, and an N_super x K indicator matrix in
// column-major layout (column j is breakpoint j's indicator).
type Result struct {
	K        int
	Lambdas  []float64
	Indicators []int // column-major, length NumNodes*K
	NumNodes int
}

// flatten packages the store into a Result. NumNodes must equal the length
// of every stored indicator.
func (s *BreakpointStore) flatten(numNodes int) *Result {
	r := &Result{K: s.count, NumNodes: numNodes}
	r.Lambdas = make([]float64, 0, s.count)
	r.Indicators = make([]int, numNodes*s.count)

	j := 0
	for bp := s.head; bp != nil; bp = bp.next {
		r.Lambdas = append(r.Lambdas, bp.lambdaValue)
		copy(r.Indicators[j*numNodes:(j+1)*numNodes], bp.sourceSetIndicator)
		j++
	}
	return r
}
