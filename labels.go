// labels.go - the label/bucket structures of spec.md §2.2: a per-label
// count array and an array of FIFO strong-root buckets indexed 0..n-1
// (label n, the source label that liftAll assigns, is never counted or
// queued).
// Split out from engine.go because the spec calls this out as its own
// component, even though the teacher keeps it inline with the node/arc
// code; the separation makes the component boundary explicit without
// changing any of the teacher's bucket-management logic.

package pseudo

// labelState tracks, for a CutProblem instance of n nodes, how many
// non-source/non-sink nodes currently carry each label, and the FIFO
// strong-root bucket for each label.
type labelState struct {
	counts  []uint
	buckets []*root
}

func newLabelState(n uint) *labelState {
	ls := &labelState{
		counts:  make([]uint, n),
		buckets: make([]*root, n),
	}
	for i := range ls.buckets {
		ls.buckets[i] = &root{}
	}
	return ls
}

func (ls *labelState) addStrongRoot(n *node) {
	ls.buckets[n.label].push(n)
}

func (ls *labelState) incr(label uint) { ls.counts[label]++ }
func (ls *labelState) decr(label uint) { ls.counts[label]-- }
