// api.go - the programmatic flat-array entry point (spec.md §6). Kept
// separate from the DIMACS-text reader/writer (dimacs.go) so either
// collaborator can feed the core without the other; this mirrors the
// teacher's own split between pseudo.go's Session API and its
// readwriter.go DIMACS helpers.

package pseudo

import "time"

// SolveFlat is the public entry point: N nodes, source s, sink t, a flat
// [from, to, constant, multiplier]*M arc table, a lambda range, and the
// round-negative flag. It returns the number of breakpoints K, their lambda
// values (ascending), an N*K column-major indicator matrix, a 5-element
// statistics vector (arc scans, mergers, pushes, relabels, gaps), and a
// 3-element timings vector (read, init, solve) in seconds. Read timing is
// always 0 here: there is no I/O on this path, only construction (init) and
// the parametric sweep (solve).
func SolveFlat(n, m, source, sink int, flatArcs []float64, lambdaLow, lambdaHigh float64, roundNegative bool) (k int, lambdas []float64, indicators []int, stats [5]int, timings [3]float64, err error) {
	if len(flatArcs) != 4*m {
		return 0, nil, nil, stats, timings, inputError("flatArcs", "expected length 4*M=%d, got %d", 4*m, len(flatArcs))
	}

	raw := make([]RawArc, m)
	for i := 0; i < m; i++ {
		raw[i] = RawArc{
			From:       int(flatArcs[4*i]),
			To:         int(flatArcs[4*i+1]),
			Constant:   flatArcs[4*i+2],
			Multiplier: flatArcs[4*i+3],
		}
	}

	initStart := time.Now()
	g, gerr := NewGraph(n, source, sink, raw)
	if gerr != nil {
		return 0, nil, nil, stats, timings, gerr
	}
	ctx := NewSolverContext(g, lambdaLow, lambdaHigh, roundNegative)
	ctx.timing.Init = time.Since(initStart)

	solveStart := time.Now()
	result, serr := ctx.Solve()
	ctx.timing.Solve = time.Since(solveStart)
	if serr != nil {
		return 0, nil, nil, stats, timings, serr
	}

	s := ctx.Stats()
	stats = [5]int{int(s.ArcScans), int(s.Mergers), int(s.Pushes), int(s.Relabels), int(s.Gaps)}
	t := ctx.Timings()
	timings = [3]float64{t.Read.Seconds(), t.Init.Seconds(), t.Solve.Seconds()}

	return result.K, result.Lambdas, result.Indicators, stats, timings, nil
}
