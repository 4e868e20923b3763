// session.go - SolverContext bundles the process-wide mutable state spec.md
// §5/§9 calls out: current lambda bounds, the round-negative flag, the
// tolerance, a pointer to the super graph, and the running statistics
// counters. A fresh SolverContext is created per top-level solve so that
// repeated invocations from the same host process are reproducible, mirroring
// the teacher's own per-Session stats reset in RunReadWriter.

package pseudo

import "time"

// DefaultTolerance is the TOL used throughout spec.md §4.4's case analysis
// and §4.1's capacity rounding.
const DefaultTolerance = 1e-8

// Statistics mirrors the teacher's statistics struct (pseudo.go), extended
// with nothing: arc scans, mergers, pushes, relabels, and gaps are exactly
// the five counters spec.md §6 asks the flat-array API to report.
type Statistics struct {
	ArcScans uint `json:"arcScans"`
	Mergers  uint `json:"mergers"`
	Pushes   uint `json:"pushes"`
	Relabels uint `json:"relabels"`
	Gaps     uint `json:"gaps"`
}

// ParametricStatistics extends Statistics with counters specific to the
// parametric driver (SPEC_FULL.md §4): how many breakpoints were found, how
// many contractions were performed, and the deepest the explicit work-stack
// reached.
type ParametricStatistics struct {
	Statistics
	Breakpoints   int `json:"breakpoints"`
	Contractions  int `json:"contractions"`
	MaxStackDepth int `json:"maxStackDepth"`
}

// Timings records the three phases spec.md §6 asks for: read, init, solve -
// each as a time.Duration (SolveFlat and WriteDimacs report them in seconds).
type Timings struct {
	Read  time.Duration
	Init  time.Duration
	Solve time.Duration
}

// SolverContext is the single struct threaded through every routine in the
// engine and the parametric driver, per spec.md §9's "bundle process-wide
// mutable state into a single solver context struct" guidance.
type SolverContext struct {
	LambdaLow, LambdaHigh float64
	RoundNegative         bool
	Tolerance             float64

	Graph *Graph

	stats  ParametricStatistics
	timing Timings
}

// NewSolverContext builds a fresh, zeroed SolverContext for one top-level
// solve. Tolerance defaults to DefaultTolerance if zero.
func NewSolverContext(g *Graph, lambdaLow, lambdaHigh float64, roundNegative bool) *SolverContext {
	return &SolverContext{
		LambdaLow:     lambdaLow,
		LambdaHigh:    lambdaHigh,
		RoundNegative: roundNegative,
		Tolerance:     DefaultTolerance,
		Graph:         g,
	}
}

// Stats returns a copy of the running statistics.
func (ctx *SolverContext) Stats() ParametricStatistics { return ctx.stats }

// Timings returns a copy of the phase timings.
func (ctx *SolverContext) Timings() Timings { return ctx.timing }
